package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("should decode a tool call event", func(t *testing.T) {
		line := []byte(`{"event":"tool_call","tool_name":"lookup_medications","args":{"mrn":"100234"}}`)

		ev, err := Decode(line)
		require.NoError(t, err)

		assert.Equal(t, KindToolCall, ev.Kind())
		assert.Equal(t, "lookup_medications", ev.ToolName)
		assert.Equal(t, "100234", ev.Args["mrn"])
		assert.NotEmpty(t, ev.ID)
		assert.False(t, ev.ReceivedAt.IsZero())
	})

	t.Run("should prefer event over type as discriminator", func(t *testing.T) {
		ev, err := Decode([]byte(`{"event":"decision","type":"tool_call"}`))
		require.NoError(t, err)
		assert.Equal(t, KindDecision, ev.Kind())
	})

	t.Run("should fall back to type when event is absent", func(t *testing.T) {
		ev, err := Decode([]byte(`{"type":"llm_thinking","stage":"triage"}`))
		require.NoError(t, err)
		assert.Equal(t, KindThinking, ev.Kind())
		assert.Equal(t, "triage", ev.Stage)
	})

	t.Run("should decode dataItem payloads", func(t *testing.T) {
		ev, err := Decode([]byte(`{"event":"tool_result","dataItem":{"type":"medications","id":"42","status":"processing"}}`))
		require.NoError(t, err)
		require.NotNil(t, ev.DataItem)
		assert.Equal(t, "medications", ev.DataItem.Type)
		assert.Equal(t, "42", ev.DataItem.ID)
		assert.Equal(t, StatusProcessing, ev.DataItem.Status)
	})

	t.Run("should reject invalid JSON", func(t *testing.T) {
		_, err := Decode([]byte(`{"event":`))
		assert.Error(t, err)
	})

	t.Run("should assign distinct ids to each decoded event", func(t *testing.T) {
		a, err := Decode([]byte(`{"event":"decision"}`))
		require.NoError(t, err)
		b, err := Decode([]byte(`{"event":"decision"}`))
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestEventClassification(t *testing.T) {
	t.Run("should classify terminal kinds", func(t *testing.T) {
		assert.True(t, Event{Event: "final"}.IsTerminal())
		assert.True(t, Event{Event: "final_result"}.IsTerminal())
		assert.True(t, Event{Event: "error"}.IsTerminal())
		assert.False(t, Event{Event: "tool_call"}.IsTerminal())
		assert.False(t, Event{Event: "llm_thinking"}.IsTerminal())
	})

	t.Run("should classify final kinds", func(t *testing.T) {
		assert.True(t, Event{Event: "final"}.IsFinal())
		assert.True(t, Event{Type: "final_result"}.IsFinal())
		assert.False(t, Event{Event: "error"}.IsFinal())
	})

	t.Run("should preserve unrecognized discriminators", func(t *testing.T) {
		ev, err := Decode([]byte(`{"event":"progress_update","message":"halfway"}`))
		require.NoError(t, err)
		assert.Equal(t, Kind("progress_update"), ev.Kind())
		assert.False(t, ev.IsRecognized())
		assert.False(t, ev.IsTerminal())
	})

	t.Run("should treat an empty discriminator as unknown", func(t *testing.T) {
		assert.Equal(t, KindUnknown, Event{}.Kind())
		assert.False(t, Event{}.IsRecognized())
	})
}
