package ingest

import "github.com/chartlight/chartlight/pkg/events"

// Handler receives decoded events from an ingestion run. Callbacks are
// invoked from the single read loop, in wire order, never concurrently.
type Handler interface {
	// OnEvent is called once per successfully decoded record. Returning an
	// error stops the run.
	OnEvent(ev events.Event) error

	// OnComplete is called when the stream ends normally.
	OnComplete(stats Stats)

	// OnError is called when a transport read fails mid-stream.
	OnError(err error)
}

// HandlerFunc is a function adapter for Handler
type HandlerFunc struct {
	EventFunc    func(ev events.Event) error
	CompleteFunc func(stats Stats)
	ErrorFunc    func(err error)
}

// OnEvent implements Handler
func (h HandlerFunc) OnEvent(ev events.Event) error {
	if h.EventFunc != nil {
		return h.EventFunc(ev)
	}
	return nil
}

// OnComplete implements Handler
func (h HandlerFunc) OnComplete(stats Stats) {
	if h.CompleteFunc != nil {
		h.CompleteFunc(stats)
	}
}

// OnError implements Handler
func (h HandlerFunc) OnError(err error) {
	if h.ErrorFunc != nil {
		h.ErrorFunc(err)
	}
}

var _ Handler = HandlerFunc{}
