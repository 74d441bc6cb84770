package core

import "context"

// Transport is the media output driven by the playback engine.
type Transport interface {
	// Source control
	Load(ctx context.Context, url string) error
	Stop()

	// Playback control
	Play()
	Pause()
	Seek(seconds float64)

	// Volume control, 0 to 1
	SetVolume(v float64)

	// Callbacks raised from the transport's own goroutines
	SetHandlers(h TransportHandlers)
}

// TransportHandlers receive transport notifications. Any field may be nil.
type TransportHandlers struct {
	OnEnded    func()
	OnProgress func(fraction float64)
	OnDuration func(seconds float64)
	OnError    func(err error)
}
