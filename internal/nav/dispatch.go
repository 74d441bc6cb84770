package nav

import (
	"fmt"

	"github.com/samber/lo/mutable"

	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
	"github.com/tessro/tapedeck/internal/library"
)

func shuffleSongs(songs []core.Song) {
	mutable.Shuffle(songs)
}

// dispatch runs one Action. Every item behavior goes through here so menu
// items never capture state.
func (n *Navigator) dispatch(a Action, p Payload) *Request {
	switch a {
	case ActionCreatePlaylist:
		n.createPlaylist()

	case ActionPlayMixSong:
		if err := n.player.PlayAt(p.MixID, p.Index); err != nil {
			n.log.Warn("play failed", "mix_id", p.MixID, "index", p.Index, "error", err)
			return nil
		}
		n.showNowPlaying()

	case ActionShareMix:
		n.shareMix(p.MixID)

	case ActionRenameMix:
		n.openRename(p.MixID)

	case ActionDeleteMix:
		if err := n.lib.Delete(p.MixID); err != nil {
			n.log.Warn("delete failed", "mix_id", p.MixID, "error", err)
		}
		n.pop()

	case ActionPlayNow:
		if p.Song != nil {
			n.playNow(*p.Song)
		}

	case ActionAddToMix:
		// Pops back past the song options whether or not the song was new.
		if p.Song != nil {
			if _, err := n.lib.AppendSong(p.MixID, *p.Song); err != nil {
				n.log.Warn("add to mix failed", "mix_id", p.MixID, "error", err)
			}
		}
		n.pop()
		n.pop()

	case ActionCancel, ActionPop:
		n.pop()

	case ActionShuffleSongs:
		n.shuffleAll()

	case ActionToggleClickSounds:
		n.updateSettings(func(s *core.Settings) { s.ClickSounds = !s.ClickSounds })

	case ActionCycleTheme:
		n.updateSettings(func(s *core.Settings) { s.Theme = s.Theme.Next() })

	case ActionResetSettings:
		s, err := n.prefs.Reset()
		if err != nil {
			n.log.Warn("failed to reset settings", "error", err)
		}
		n.player.SetVolume(s.Volume)

	case ActionClearHistory:
		if err := n.history.Clear(); err != nil {
			n.log.Warn("failed to clear search history", "error", err)
		}

	case ActionRecentSearch:
		n.input = p.Query
		return n.search(p.Query)

	case ActionToggleFavorite:
		state := n.player.State()
		if state.Song == nil {
			return nil
		}
		if _, err := n.lib.ToggleFavorite(*state.Song); err != nil {
			n.log.Warn("favorite toggle failed", "song_id", state.Song.ID, "error", err)
		}

	case ActionAbout:
		about := n.hooks.About
		if about == "" {
			about = "tapedeck"
		}
		n.showMessage("About", about)

	default:
		n.log.Warn("unknown action", "action", string(a))
	}
	return nil
}

func (n *Navigator) createPlaylist() {
	mix, err := n.lib.CreateMix(n.lib.NextMixTitle(), core.ColorPurple)
	if err != nil {
		n.showMessage("Playlists", tderr.Format(err))
		return
	}
	n.NavigateTo(prefixMix+mix.ID, Payload{MixID: mix.ID}, mix.Title)
	n.openRename(mix.ID)
}

func (n *Navigator) playNow(song core.Song) {
	mixID, index, err := n.lib.PlayNowTarget(song)
	if err != nil {
		n.log.Warn("play now failed", "song_id", song.ID, "error", err)
		return
	}
	if err := n.player.PlayAt(mixID, index); err != nil {
		n.log.Warn("play failed", "mix_id", mixID, "error", err)
		return
	}
	n.showNowPlaying()
}

func (n *Navigator) shuffleAll() {
	songs := library.AllSongs(n.lib.List())
	if len(songs) == 0 {
		n.showMessage("Songs", "No songs yet")
		return
	}
	n.shuffler(songs)
	mixID, err := n.lib.FillOnTheGo(songs)
	if err != nil {
		n.log.Warn("shuffle failed", "error", err)
		return
	}
	if err := n.player.PlayAt(mixID, 0); err != nil {
		n.log.Warn("play failed", "mix_id", mixID, "error", err)
		return
	}
	n.showNowPlaying()
}

func (n *Navigator) shareMix(mixID string) {
	mix, ok := n.lib.Get(mixID)
	if !ok {
		return
	}
	link := library.ShareURL(n.hooks.ShareBaseURL, mix)
	body := "Copy this link:\n" + link
	if n.hooks.CopyToClipboard != nil {
		if err := n.hooks.CopyToClipboard(link); err != nil {
			n.log.Warn("clipboard unavailable", "error", err)
		} else {
			body = "Link copied to clipboard\n" + link
		}
	}
	n.showMessage(fmt.Sprintf("Share %s", mix.Title), body)
}

func (n *Navigator) updateSettings(fn func(*core.Settings)) {
	if _, err := n.prefs.Update(fn); err != nil {
		n.log.Warn("failed to save settings", "error", err)
	}
}
