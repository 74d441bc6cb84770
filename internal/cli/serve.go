package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tessro/tapedeck/internal/app"
	"github.com/tessro/tapedeck/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the catalog proxy server",
	Long: `Run an HTTP proxy in front of the song catalog and LRCLib.

Routes:
  GET /api/search?query=...             Catalog search
  GET /api/song?id=...                  Song details
  GET /api/lyrics?id=...                Catalog lyrics
  GET /api/lyrics-fallback?track=&artist=  LRCLib plain lyrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withApp(func(a *app.App) error {
		srv := server.New(a.Saavn, a.Lyrics, cfg.Catalog.SearchLimit, a.Logger)
		return srv.Run(ctx, addr)
	})
}
