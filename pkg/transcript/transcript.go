package transcript

import "github.com/chartlight/chartlight/pkg/events"

// Transcript is the ordered message history of one review session. At most
// one message is streaming at a time, and while ingestion is active it is
// always the most recently appended assistant message.
type Transcript struct {
	messages []Message
}

func New() *Transcript {
	return &Transcript{}
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(msg Message) {
	t.messages = append(t.messages, msg)
}

// Messages returns a copy of the message history.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent message.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// StartStreaming appends a fresh in-flight assistant message, finalizing any
// previous one first so the single-streaming-message invariant holds.
func (t *Transcript) StartStreaming() {
	t.FinalizeStreaming("")
	t.messages = append(t.messages, NewStreamingMessage())
}

// streaming returns the in-flight message, if any.
func (t *Transcript) streaming() *Message {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].IsStreaming {
			return &t.messages[i]
		}
	}
	return nil
}

// IsStreaming reports whether an in-flight message exists.
func (t *Transcript) IsStreaming() bool {
	return t.streaming() != nil
}

// AppendEvent attaches a stream event to the in-flight message, creating one
// if the stream produced events before any message was started.
func (t *Transcript) AppendEvent(ev events.Event) {
	msg := t.streaming()
	if msg == nil {
		t.StartStreaming()
		msg = t.streaming()
	}
	msg.Events = append(msg.Events, ev)
}

// FinalizeStreaming copies content into the in-flight message and clears its
// streaming flag. Finalizing with empty content keeps whatever content the
// message already carries. No-op when nothing is streaming.
func (t *Transcript) FinalizeStreaming(content string) {
	msg := t.streaming()
	if msg == nil {
		return
	}
	if content != "" {
		msg.Content = content
	}
	msg.IsStreaming = false
}

// DropLoading removes any loading placeholder messages, used once real
// stream output begins.
func (t *Transcript) DropLoading() {
	kept := t.messages[:0]
	for _, msg := range t.messages {
		if !msg.IsLoading() {
			kept = append(kept, msg)
		}
	}
	t.messages = kept
}
