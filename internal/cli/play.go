package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tessro/tapedeck/internal/app"
	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
	"github.com/tessro/tapedeck/internal/playback"
)

var (
	playSearch    string
	playTrack     int
	playVolume    int
	playOnce      bool
	playNoEmoji   bool
	playTimestamp bool
	playFormat    string
)

var playCmd = &cobra.Command{
	Use:   "play [mix]",
	Short: "Play a mix without the interactive shell",
	Long: `Insert a mix and play it in the foreground, printing a line for every
playback change. The tape loops until interrupted unless --once is given.

Examples:
  tapedeck play "Road Trip"
  tapedeck play 1 --track 3 --once
  tapedeck play --search kushi           # play now, like the search menu
  tapedeck play 1 --format '{{.Time}} {{.Song}}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&playSearch, "search", "s", "", "search and play the first result on the On-the-Go mix")
	playCmd.Flags().IntVar(&playTrack, "track", 0, "start at this position (1-based)")
	playCmd.Flags().IntVar(&playVolume, "volume", -1, "volume (0-100)")
	playCmd.Flags().BoolVar(&playOnce, "once", false, "stop after the last song")
	playCmd.Flags().BoolVar(&playNoEmoji, "no-emoji", false, "disable emoji output")
	playCmd.Flags().BoolVarP(&playTimestamp, "timestamp", "t", false, "show timestamps")
	playCmd.Flags().StringVarP(&playFormat, "format", "f", "", "custom format template")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withApp(func(a *app.App) error {
		events := a.Engine.Subscribe()

		mixID, index, err := playTarget(ctx, a, args)
		if err != nil {
			return err
		}
		if playVolume >= 0 {
			a.Engine.SetVolume(core.ClampUnit(float64(playVolume) / 100))
		}
		if err := a.Engine.PlayAt(mixID, index); err != nil {
			return err
		}

		formatter := playback.NewFormatter(
			playback.WithEmoji(!playNoEmoji),
			playback.WithTimestamp(playTimestamp),
			playback.WithTemplate(playFormat),
			playback.WithMixTitles(func(id string) string {
				if m, ok := a.Library.Get(id); ok {
					return m.Title
				}
				return ""
			}),
		)
		return followPlayback(ctx, cmd, a, events, formatter)
	})
}

// playTarget picks the mix and start index from the arguments.
func playTarget(ctx context.Context, a *app.App, args []string) (string, int, error) {
	if q := strings.TrimSpace(playSearch); q != "" {
		results := a.Catalog.Search(ctx, q)
		if len(results) == 0 {
			return "", 0, fmt.Errorf("no results for %q", q)
		}
		if _, err := a.History.Add(q); err != nil {
			a.Logger.Warn("failed to save search", "error", err)
		}
		return a.Library.PlayNowTarget(results[0])
	}

	mix, err := resolveMix(a, args)
	if err != nil {
		return "", 0, err
	}
	if len(mix.Songs) == 0 {
		return "", 0, tderr.WithSuggestion(fmt.Errorf("%s is blank", mix.Title), "Add songs with 'tapedeck mix add'")
	}

	index := mix.CurrentSongIndex
	if playTrack > 0 {
		if index, err = parsePosition(mix, fmt.Sprint(playTrack)); err != nil {
			return "", 0, err
		}
	}
	return mix.ID, index, nil
}

// followPlayback prints events until ctx is done, the tape is ejected, or
// with --once, the last song completes. Unplayable songs are skipped.
func followPlayback(ctx context.Context, cmd *cobra.Command, a *app.App, events <-chan playback.Event, f *playback.Formatter) error {
	out := cmd.OutOrStdout()
	skipped := 0
	for {
		select {
		case <-ctx.Done():
			a.Engine.Pause()
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !playback.Quiet(ev) {
				if JSONOutput() {
					_ = printJSON(out, map[string]any{
						"type":  ev.Type.String(),
						"time":  ev.Timestamp,
						"state": ev.Current,
					})
				} else {
					_, _ = fmt.Fprintln(out, f.Format(ev))
				}
			}

			switch ev.Type {
			case playback.EventEjected:
				return nil
			case playback.EventSongCompleted:
				if playOnce && lastSong(a, ev.Current) {
					return nil
				}
			case playback.EventSourceReady:
				skipped = 0
			case playback.EventUnplayable:
				skipped++
				if mix, ok := a.Engine.ActiveMix(); !ok || skipped >= len(mix.Songs) {
					return tderr.ErrUnplayable
				}
				a.Engine.Next()
			}
		}
	}
}

func lastSong(a *app.App, st *core.PlaybackState) bool {
	if st == nil {
		return false
	}
	mix, ok := a.Library.Get(st.ActiveMixID)
	return ok && st.Index >= len(mix.Songs)-1
}
