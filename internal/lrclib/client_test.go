package lrclib

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPlainLyrics(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "first hit", body: `[{"plainLyrics":"line one\nline two"},{"plainLyrics":"other"}]`, want: "line one\nline two"},
		{name: "no hits", body: `[]`, want: ""},
		{name: "blank lyrics", body: `[{"plainLyrics":"  "}]`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("track_name") != "Kushi" || r.URL.Query().Get("artist_name") != "Hesham" {
					t.Errorf("unexpected query %q", r.URL.RawQuery)
				}
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := New(srv.URL, nil).PlainLyrics(context.Background(), "Kushi", "Hesham")
			if err != nil {
				t.Fatalf("PlainLyrics: %v", err)
			}
			if got != tt.want {
				t.Errorf("PlainLyrics() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := New(srv.URL, nil).Search(context.Background(), "a", "b"); err == nil {
		t.Error("expected error on 500")
	}
}
