package transcript

import (
	"fmt"

	"github.com/chartlight/chartlight/pkg/events"
)

// Reducer applies decoded stream events to a Transcript and ProcessingSet.
// It is driven from a single ingestion loop; events arrive and are applied
// strictly in wire order.
type Reducer struct {
	transcript *Transcript
	processing *ProcessingSet
	busy       bool
}

func NewReducer(t *Transcript, p *ProcessingSet) *Reducer {
	return &Reducer{
		transcript: t,
		processing: p,
	}
}

// Busy reports whether the backend is between a thinking indicator and a
// terminal event.
func (r *Reducer) Busy() bool {
	return r.busy
}

// Apply dispatches one event.
//
// dataItem payloads drive the processing set regardless of event kind.
// Thinking indicators raise the busy flag, terminal kinds clear it, and
// final kinds additionally finalize the in-flight message with their
// content instead of being appended to its event list. Everything else,
// recognized or not, is appended to the in-flight message.
func (r *Reducer) Apply(ev events.Event) {
	if ev.DataItem != nil {
		r.processing.Apply(*ev.DataItem)
	}

	switch {
	case ev.IsThinking():
		r.busy = true
		r.transcript.DropLoading()

	case ev.IsFinal():
		r.busy = false
		r.transcript.DropLoading()
		r.transcript.FinalizeStreaming(finalContent(ev))

	case ev.IsError():
		r.busy = false
		r.transcript.DropLoading()
		r.transcript.AppendEvent(ev)

	default:
		r.transcript.DropLoading()
		r.transcript.AppendEvent(ev)
	}
}

// Fail finalizes the in-flight message with a visible error description
// after a transport failure, clearing all processing state.
func (r *Reducer) Fail(err error) {
	r.busy = false
	r.transcript.DropLoading()
	if !r.transcript.IsStreaming() {
		r.transcript.StartStreaming()
	}
	r.transcript.FinalizeStreaming(fmt.Sprintf("Stream failed: %v", err))
}

// Finish clears the busy flag and closes out any message still streaming,
// used when the stream ends without an explicit final record.
func (r *Reducer) Finish() {
	r.busy = false
	r.transcript.DropLoading()
	r.transcript.FinalizeStreaming("")
}

func finalContent(ev events.Event) string {
	if ev.Content != "" {
		return ev.Content
	}
	return ev.Message
}
