package playback

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
	mixTitle      func(id string) string
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// WithMixTitles resolves mix ids to titles.
func WithMixTitles(lookup func(id string) string) FormatterOption {
	return func(f *Formatter) {
		f.mixTitle = lookup
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji:     true,
		showTimestamp: false,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Quiet reports whether an event is too chatty for a line-per-event log.
func Quiet(e Event) bool {
	return e.Type == EventStateChanged
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

func (f *Formatter) formatLine(e Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}
	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}
	parts = append(parts, f.eventDescription(e))

	return strings.Join(parts, " ")
}

func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      eventTypeName(e.Type),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
	}

	if e.Current != nil {
		if e.Current.Song != nil {
			data.Title = e.Current.Song.Name
			data.Artist = e.Current.Song.PrimaryArtists
			data.Album = e.Current.Song.Album.Name
		}
		data.Mix = f.mixName(e.Current.ActiveMixID)
		data.Volume = volumePercent(e.Current.Volume)
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Title     string
	Artist    string
	Album     string
	Mix       string
	Volume    int
}

func (f *Formatter) mixName(id string) string {
	if id == "" {
		return ""
	}
	if f.mixTitle != nil {
		if title := f.mixTitle(id); title != "" {
			return title
		}
	}
	return id
}

func volumePercent(v float64) int {
	return int(math.Round(v * 100))
}

func (f *Formatter) eventDescription(e Event) string {
	switch e.Type {
	case EventSongChanged:
		if e.Current != nil && e.Current.Song != nil {
			return fmt.Sprintf("Now playing: %s - %s",
				e.Current.Song.PrimaryArtists,
				e.Current.Song.Name)
		}
		return "Song changed"

	case EventSongCompleted:
		if e.Previous != nil && e.Previous.Song != nil {
			return fmt.Sprintf("Finished: %s - %s",
				e.Previous.Song.PrimaryArtists,
				e.Previous.Song.Name)
		}
		return "Song completed"

	case EventInserted:
		if e.Current != nil {
			return fmt.Sprintf("Inserted: %s", f.mixName(e.Current.ActiveMixID))
		}
		return "Mix inserted"

	case EventEjected:
		return "Ejected"

	case EventPaused:
		return "Paused"

	case EventResumed:
		return "Playing"

	case EventVolumeChanged:
		if e.Current != nil {
			return fmt.Sprintf("Volume: %d%%", volumePercent(e.Current.Volume))
		}
		return "Volume changed"

	case EventSourceReady:
		return "Stream ready"

	case EventUnplayable:
		if e.Current != nil && e.Current.Song != nil {
			return fmt.Sprintf("No playable source: %s", e.Current.Song.Name)
		}
		return "No playable source"

	case EventStateChanged:
		return "State changed"

	default:
		return "Unknown event"
	}
}

func eventEmoji(t EventType) string {
	switch t {
	case EventSongChanged:
		return "🎵"
	case EventSongCompleted:
		return "✅"
	case EventInserted:
		return "📼"
	case EventEjected:
		return "⏏️"
	case EventPaused:
		return "⏸️"
	case EventResumed:
		return "▶️"
	case EventVolumeChanged:
		return "🔊"
	case EventSourceReady:
		return "📡"
	case EventUnplayable:
		return "⚠️"
	default:
		return "•"
	}
}

func eventTypeName(t EventType) string {
	switch t {
	case EventSongChanged:
		return "song_change"
	case EventSongCompleted:
		return "song_complete"
	case EventInserted:
		return "insert"
	case EventEjected:
		return "eject"
	case EventPaused:
		return "pause"
	case EventResumed:
		return "resume"
	case EventVolumeChanged:
		return "volume"
	case EventSourceReady:
		return "source_ready"
	case EventUnplayable:
		return "unplayable"
	case EventStateChanged:
		return "state"
	default:
		return "unknown"
	}
}
