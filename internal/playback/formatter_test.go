package playback

import (
	"strings"
	"testing"
	"time"

	"github.com/tessro/tapedeck/internal/core"
)

func TestFormatterLine(t *testing.T) {
	song := &core.Song{ID: "1", Name: "Kushi", PrimaryArtists: "Hesham", Album: core.Album{Name: "Kushi OST"}}
	curr := &core.PlaybackState{ActiveMixID: "m", Song: song, Volume: 0.73}

	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{"song change", Event{Type: EventSongChanged, Current: curr}, "🎵 Now playing: Hesham - Kushi"},
		{"completed", Event{Type: EventSongCompleted, Previous: curr}, "✅ Finished: Hesham - Kushi"},
		{"volume", Event{Type: EventVolumeChanged, Current: curr}, "🔊 Volume: 73%"},
		{"insert", Event{Type: EventInserted, Current: curr}, "📼 Inserted: Main Mix"},
		{"unplayable", Event{Type: EventUnplayable, Current: curr}, "⚠️ No playable source: Kushi"},
		{"pause", Event{Type: EventPaused}, "⏸️ Paused"},
	}

	f := NewFormatter(WithMixTitles(func(id string) string {
		if id == "m" {
			return "Main Mix"
		}
		return ""
	}))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Format(tt.ev); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatterTimestampNoEmoji(t *testing.T) {
	f := NewFormatter(WithEmoji(false), WithTimestamp(true))
	ts := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	got := f.Format(Event{Type: EventEjected, Timestamp: ts})
	if got != "15:04:05 Ejected" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatterTemplate(t *testing.T) {
	f := NewFormatter(WithTemplate("{{.Type}}|{{.Title}}|{{.Artist}}|{{.Album}}|{{.Mix}}|{{.Volume}}"))
	ev := Event{Type: EventSongChanged, Current: &core.PlaybackState{
		ActiveMixID: "m",
		Volume:      0.5,
		Song:        &core.Song{Name: "Kushi", PrimaryArtists: "Hesham", Album: core.Album{Name: "OST"}},
	}}
	if got, want := f.Format(ev), "song_change|Kushi|Hesham|OST|m|50"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatterBadTemplateFallsBack(t *testing.T) {
	f := NewFormatter(WithTemplate("{{.Nope"))
	if got := f.Format(Event{Type: EventPaused}); !strings.Contains(got, "Paused") {
		t.Errorf("Format() = %q", got)
	}
}

func TestDiffStates(t *testing.T) {
	s1 := &core.Song{ID: "1"}
	prev := core.PlaybackState{}
	curr := core.PlaybackState{ActiveMixID: "m", Song: s1, IsPlaying: true}

	types := map[EventType]bool{}
	for _, ev := range diffStates(prev, curr) {
		types[ev.Type] = true
	}
	for _, want := range []EventType{EventInserted, EventSongChanged, EventResumed} {
		if !types[want] {
			t.Errorf("missing event %d", want)
		}
	}

	progressed := curr
	progressed.Song = &core.Song{ID: "1"}
	progressed.Progress = 0.5
	evs := diffStates(curr, progressed)
	if len(evs) != 1 || evs[0].Type != EventStateChanged {
		t.Errorf("progress-only diff = %+v", evs)
	}

	if evs := diffStates(curr, curr); len(evs) != 0 {
		t.Errorf("identical states produced %d events", len(evs))
	}
}
