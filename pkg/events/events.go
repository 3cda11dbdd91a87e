package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the discriminator of a stream event.
type Kind string

const (
	// KindThinking indicates the model is reasoning before producing output
	KindThinking Kind = "llm_thinking"

	// KindToolCall indicates a tool invocation was requested
	KindToolCall Kind = "tool_call"

	// KindToolResult carries the output of a completed tool invocation
	KindToolResult Kind = "tool_result"

	// KindDecision carries an intermediate routing or analysis decision
	KindDecision Kind = "decision"

	// KindAgentResult carries the result of a delegated agent step
	KindAgentResult Kind = "agent_result"

	// KindFinalResult marks the end of a workflow run with its outcome
	KindFinalResult Kind = "final_result"

	// KindFinal marks the end of a chat turn; its content replaces the
	// in-flight streaming message
	KindFinal Kind = "final"

	// KindError reports a backend-side failure for the current run
	KindError Kind = "error"

	// KindUnknown is assigned when the wire discriminator is empty
	KindUnknown Kind = ""
)

// ItemStatus is the lifecycle state reported for a data item.
type ItemStatus string

const (
	StatusProcessing ItemStatus = "processing"
	StatusCompleted  ItemStatus = "completed"
)

// DataItem identifies one source record (note, medication, diagnosis,
// flowsheet row) whose processing state changed.
type DataItem struct {
	Type   string     `json:"type"`
	ID     string     `json:"id"`
	Status ItemStatus `json:"status"`
}

// Event is one decoded record from the review stream. The wire format uses
// either "event" or "type" as the discriminator; fields beyond the
// discriminator are populated per kind and zero otherwise. Discriminators we
// do not recognize are preserved as-is so the caller can render them
// generically rather than dropping them.
type Event struct {
	ID         string    `json:"-"`
	ReceivedAt time.Time `json:"-"`

	Event    string          `json:"event,omitempty"`
	Type     string          `json:"type,omitempty"`
	ToolName string          `json:"tool_name,omitempty"`
	Args     map[string]any  `json:"args,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
	Message  string          `json:"message,omitempty"`
	Stage    string          `json:"stage,omitempty"`
	Content  string          `json:"content,omitempty"`
	DataItem *DataItem       `json:"dataItem,omitempty"`
	Step     string          `json:"step,omitempty"`
}

// Kind resolves the event discriminator, preferring "event" over "type".
func (e Event) Kind() Kind {
	if e.Event != "" {
		return Kind(e.Event)
	}
	return Kind(e.Type)
}

// IsThinking reports whether the event signals active model reasoning.
func (e Event) IsThinking() bool {
	return e.Kind() == KindThinking
}

// IsTerminal reports whether the event ends the stream's processing phase.
func (e Event) IsTerminal() bool {
	switch e.Kind() {
	case KindFinalResult, KindFinal, KindError:
		return true
	}
	return false
}

// IsFinal reports whether the event carries the finished message content
// that replaces the in-flight streaming message.
func (e Event) IsFinal() bool {
	k := e.Kind()
	return k == KindFinal || k == KindFinalResult
}

// IsError reports whether the event is a backend-side failure record.
func (e Event) IsError() bool {
	return e.Kind() == KindError
}

// IsRecognized reports whether the discriminator is one of the enumerated
// kinds. Unrecognized events are still kept and rendered generically.
func (e Event) IsRecognized() bool {
	switch e.Kind() {
	case KindThinking, KindToolCall, KindToolResult, KindDecision,
		KindAgentResult, KindFinalResult, KindFinal, KindError:
		return true
	}
	return false
}

// Decode parses one wire line into an Event, assigning it a unique id and
// capture timestamp. The id and timestamp are used only for rendering order
// and list keys, never for dispatch logic.
func Decode(line []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return Event{}, err
	}
	ev.ID = uuid.NewString()
	ev.ReceivedAt = time.Now()
	return ev, nil
}
