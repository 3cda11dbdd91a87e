// Package render turns a reduced transcript into terminal output.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chartlight/chartlight/pkg/events"
	"github.com/chartlight/chartlight/pkg/highlight"
	"github.com/chartlight/chartlight/pkg/transcript"
)

var (
	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true).
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6347"))

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)
)

// Transcript renders the full message history.
func Transcript(msgs []transcript.Message) string {
	var b strings.Builder
	for _, msg := range msgs {
		b.WriteString(Message(msg))
		b.WriteString("\n")
	}
	return b.String()
}

// Message renders one message with its attached events.
func Message(msg transcript.Message) string {
	var b strings.Builder

	switch {
	case msg.IsUser():
		b.WriteString(userStyle.Render("you> "))
		b.WriteString(msg.Content)
	case msg.IsLoading():
		b.WriteString(loadingStyle.Render("waiting for backend..."))
	default:
		for _, ev := range msg.Events {
			b.WriteString(eventStyle.Render(Event(ev)))
			b.WriteString("\n")
		}
		if msg.Content != "" {
			// Final answers may carry evidence markers from highlighting.
			b.WriteString(assistantStyle.Render(highlight.Render(msg.Content)))
		}
	}
	return b.String()
}

// Event renders one stream event generically; unrecognized kinds fall back
// to their discriminator and message.
func Event(ev events.Event) string {
	switch ev.Kind() {
	case events.KindToolCall:
		return fmt.Sprintf("[tool] %s", ev.ToolName)
	case events.KindToolResult:
		if ev.ToolName != "" {
			return fmt.Sprintf("[tool done] %s", ev.ToolName)
		}
		return "[tool done]"
	case events.KindDecision:
		return fmt.Sprintf("[decision] %s", ev.Message)
	case events.KindAgentResult:
		return fmt.Sprintf("[agent] %s", ev.Message)
	case events.KindError:
		return errorStyle.Render(fmt.Sprintf("[error] %s", ev.Message))
	default:
		if ev.Message != "" {
			return fmt.Sprintf("[%s] %s", ev.Kind(), ev.Message)
		}
		return fmt.Sprintf("[%s]", ev.Kind())
	}
}

// ProcessingBadges renders the per-category in-flight item badges.
func ProcessingBadges(categories map[string][]string) string {
	if len(categories) == 0 {
		return ""
	}
	names := make([]string, 0, len(categories))
	for category := range categories {
		names = append(names, category)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, category := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", category, strings.Join(categories[category], ", ")))
	}
	return eventStyle.Render("processing " + strings.Join(parts, " | "))
}
