package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/chartlight/chartlight/pkg/client"
	"github.com/chartlight/chartlight/pkg/config"
	"github.com/chartlight/chartlight/pkg/render"
	"github.com/chartlight/chartlight/pkg/session"
)

// runReview drives one supervisor exchange: send the prompt, ingest the
// stream to completion, print the reduced transcript.
func runReview(ctx context.Context) error {
	prompt := viper.GetString("prompt")
	if prompt == "" {
		return fmt.Errorf("a prompt is required (use --prompt)")
	}

	settings := config.Get()
	c := client.NewClientWithTimeout(settings.Backend.URL, settings.Backend.Timeout)

	source := session.SourceFunc(func(ctx context.Context, message string) (io.ReadCloser, error) {
		return c.StreamSupervisor(ctx, client.SupervisorRequest{
			Messages:  []client.ChatMessage{{Role: "user", Content: message}},
			DatasetID: settings.Review.DatasetID,
		})
	})

	s := session.New(source)
	defer s.Close()

	if err := s.Send(ctx, prompt); err != nil {
		// The transcript already carries the failure; render it anyway so
		// the user sees how far the review got.
		fmt.Print(render.Transcript(s.Messages()))
		return err
	}

	fmt.Print(render.Transcript(s.Messages()))

	if cats := s.ProcessingCategories(); len(cats) > 0 {
		pending := make(map[string][]string, len(cats))
		for _, cat := range cats {
			pending[cat] = s.ProcessingIDs(cat)
		}
		fmt.Println(render.ProcessingBadges(pending))
	}
	return nil
}
