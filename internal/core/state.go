package core

import "time"

// Status is the coarse transport state of the playback engine.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoaded  Status = "loaded"
	StatusPlaying Status = "playing"
	StatusPaused  Status = "paused"
)

// PlaybackState is a snapshot of the playback engine.
type PlaybackState struct {
	ActiveMixID string  `json:"active_mix_id,omitempty"`
	Song        *Song   `json:"song,omitempty"`
	Index       int     `json:"index"`
	IsPlaying   bool    `json:"is_playing"`
	Volume      float64 `json:"volume"`
	Progress    float64 `json:"progress"`
	Duration    float64 `json:"duration"`
	StreamURL   string  `json:"stream_url,omitempty"`
	Unplayable  bool    `json:"unplayable,omitempty"`
	Status      Status  `json:"status"`
}

// HasSong returns true if there is a current song.
func (s *PlaybackState) HasSong() bool {
	return s != nil && s.Song != nil
}

// Elapsed converts the progress fraction into a position.
func (s *PlaybackState) Elapsed() time.Duration {
	if s == nil || s.Duration <= 0 {
		return 0
	}
	return time.Duration(s.Progress * s.Duration * float64(time.Second))
}

// Total returns the loaded media duration.
func (s *PlaybackState) Total() time.Duration {
	if s == nil || s.Duration <= 0 {
		return 0
	}
	return time.Duration(s.Duration * float64(time.Second))
}

// ProgressPercent returns playback progress as a percentage (0-100).
func (s *PlaybackState) ProgressPercent() float64 {
	if s == nil {
		return 0
	}
	return s.Progress * 100
}
