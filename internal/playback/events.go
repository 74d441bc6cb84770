package playback

import (
	"time"

	"github.com/tessro/tapedeck/internal/core"
)

// EventType represents the type of playback event.
type EventType int

const (
	EventStateChanged EventType = iota
	EventInserted
	EventEjected
	EventSongChanged
	EventSongCompleted
	EventPaused
	EventResumed
	EventVolumeChanged
	EventSourceReady
	EventUnplayable
)

// Event represents a playback state change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  *core.PlaybackState
	Current   *core.PlaybackState
}

// diffStates compares two states and returns detected events.
func diffStates(prev, curr core.PlaybackState) []Event {
	now := time.Now()
	var events []Event
	add := func(t EventType) {
		p, c := prev, curr
		events = append(events, Event{Type: t, Timestamp: now, Previous: &p, Current: &c})
	}

	// Mix insert/eject
	if prev.ActiveMixID != curr.ActiveMixID {
		if curr.ActiveMixID == "" {
			add(EventEjected)
		} else {
			add(EventInserted)
		}
	}

	if songChanged(prev, curr) && curr.Song != nil {
		add(EventSongChanged)
	}

	// Pause/Resume detection
	if prev.IsPlaying && !curr.IsPlaying {
		add(EventPaused)
	} else if !prev.IsPlaying && curr.IsPlaying {
		add(EventResumed)
	}

	if prev.Volume != curr.Volume {
		add(EventVolumeChanged)
	}

	if prev.StreamURL == "" && curr.StreamURL != "" {
		add(EventSourceReady)
	}
	if !prev.Unplayable && curr.Unplayable {
		add(EventUnplayable)
	}

	if len(events) == 0 && !sameState(prev, curr) {
		add(EventStateChanged)
	}
	return events
}

// songChanged returns true if the current song changed.
func songChanged(prev, curr core.PlaybackState) bool {
	if prev.Song == nil && curr.Song == nil {
		return false
	}
	if prev.Song == nil || curr.Song == nil {
		return true
	}
	return prev.Song.ID != curr.Song.ID || prev.Index != curr.Index || prev.ActiveMixID != curr.ActiveMixID
}

func sameState(a, b core.PlaybackState) bool {
	if songChanged(a, b) {
		return false
	}
	a.Song, b.Song = nil, nil
	return a == b
}

var timeNow = time.Now

// String returns the snake_case event name used in templates and JSON.
func (t EventType) String() string {
	return eventTypeName(t)
}
