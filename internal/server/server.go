// Package server exposes the catalog proxy endpoints over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tessro/tapedeck/internal/logger"
	"github.com/tessro/tapedeck/internal/lrclib"
	"github.com/tessro/tapedeck/internal/saavn"
)

// ShutdownTimeout bounds graceful shutdown in Run.
const ShutdownTimeout = 5 * time.Second

// Server proxies search, song details and lyrics to the upstream providers.
type Server struct {
	Saavn  *saavn.Client
	LRC    *lrclib.Client
	Limit  int
	Logger *logger.Logger
}

// New creates a proxy over the given clients.
func New(sc *saavn.Client, lc *lrclib.Client, limit int, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		Saavn:  sc,
		LRC:    lc,
		Limit:  limit,
		Logger: log.WithComponent("server"),
	}
}

// Routes returns the router with every endpoint registered.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.Search)
		r.Get("/song", s.Song)
		r.Get("/lyrics", s.Lyrics)
		r.Get("/lyrics-fallback", s.LyricsFallback)
	})
	return r
}

// Search proxies search.getResults.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "Query parameter is required")
		return
	}
	s.passThrough(w, r, saavn.SearchParams(query, s.Limit), "Failed to fetch from provider")
}

// Song proxies song.getDetails.
func (s *Server) Song(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Song ID is required")
		return
	}
	s.passThrough(w, r, saavn.DetailsParams(id), "Failed to fetch song details")
}

// Lyrics proxies lyrics.getLyrics.
func (s *Server) Lyrics(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Song ID is required")
		return
	}
	s.passThrough(w, r, saavn.LyricsParams(id), "Failed to fetch lyrics")
}

// LyricsFallback returns the first LRCLib match as {"lyrics": string|null}.
func (s *Server) LyricsFallback(w http.ResponseWriter, r *http.Request) {
	track := r.URL.Query().Get("track")
	artist := r.URL.Query().Get("artist")
	if track == "" || artist == "" {
		writeError(w, http.StatusBadRequest, "Track and artist names required")
		return
	}

	lyrics, err := s.LRC.PlainLyrics(r.Context(), track, artist)
	if err != nil {
		s.Logger.Error("lrclib request failed", "track", track, "artist", artist, "error", err)
		writeError(w, http.StatusBadGateway, "Failed to fetch lyrics")
		return
	}

	body := map[string]*string{"lyrics": nil}
	if lyrics != "" {
		body["lyrics"] = &lyrics
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) passThrough(w http.ResponseWriter, r *http.Request, params map[string]string, failure string) {
	body, err := s.Saavn.Raw(r.Context(), params)
	if err == nil && !json.Valid(body) {
		err = errors.New("upstream returned invalid JSON")
	}
	if err != nil {
		s.Logger.Error("saavn request failed", "call", params["__call"], "error", err)
		writeError(w, http.StatusBadGateway, failure)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
