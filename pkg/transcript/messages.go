package transcript

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chartlight/chartlight/pkg/events"
)

type Message struct {
	ID          string         `json:"id"`
	Role        string         `json:"role"`
	Content     string         `json:"content"`
	Events      []events.Event `json:"events,omitempty"`
	IsStreaming bool           `json:"is_streaming"`
	Timestamp   time.Time      `json:"timestamp"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleLoading   = "loading"
)

func NewUserMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   strings.TrimSpace(content),
		Timestamp: time.Now(),
	}
}

func NewAssistantMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewStreamingMessage creates the in-flight assistant message that receives
// stream events until the final record arrives.
func NewStreamingMessage() Message {
	return Message{
		ID:          uuid.NewString(),
		Role:        RoleAssistant,
		IsStreaming: true,
		Timestamp:   time.Now(),
	}
}

// NewLoadingMessage creates the placeholder shown between sending a request
// and the first stream event.
func NewLoadingMessage() Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleLoading,
		Timestamp: time.Now(),
	}
}

func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

func (m Message) IsLoading() bool {
	return m.Role == RoleLoading
}

func (m Message) IsEmpty() bool {
	return strings.TrimSpace(m.Content) == "" && len(m.Events) == 0
}
