// Package session owns the state of one review conversation: the
// transcript, the per-item processing set, and the lifecycle of the stream
// feeding them. Starting a new stream supersedes the previous one; events
// that arrive for a superseded stream are dropped before they can touch
// state the new stream owns.
package session

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/chartlight/chartlight/pkg/events"
	"github.com/chartlight/chartlight/pkg/ingest"
	"github.com/chartlight/chartlight/pkg/transcript"
)

// ErrSuperseded is returned by a stream run that was replaced by a newer
// one before it finished.
var ErrSuperseded = errors.New("stream superseded by a newer request")

// Source opens the event stream for one outgoing message. The client
// package provides implementations for the supervisor and workflow-agent
// endpoints.
type Source interface {
	Stream(ctx context.Context, message string) (io.ReadCloser, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, message string) (io.ReadCloser, error)

func (f SourceFunc) Stream(ctx context.Context, message string) (io.ReadCloser, error) {
	return f(ctx, message)
}

type Session struct {
	source Source

	mu         sync.Mutex
	transcript *transcript.Transcript
	processing *transcript.ProcessingSet
	reducer    *transcript.Reducer
	epoch      int
	cancel     context.CancelFunc
}

func New(source Source) *Session {
	t := transcript.New()
	p := transcript.NewProcessingSet()
	return &Session{
		source:     source,
		transcript: t,
		processing: p,
		reducer:    transcript.NewReducer(t, p),
	}
}

// Send submits one user message and ingests the resulting stream to
// completion. Calling Send while a previous stream is still running
// supersedes it: the old stream's context is cancelled and any of its
// events still in flight are discarded.
func (s *Session) Send(ctx context.Context, message string) error {
	s.mu.Lock()
	s.epoch++
	gen := s.epoch
	if s.cancel != nil {
		s.cancel()
	}
	streamCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.processing.Clear()
	s.transcript.FinalizeStreaming("")
	s.transcript.Append(transcript.NewUserMessage(message))
	s.transcript.Append(transcript.NewLoadingMessage())
	s.transcript.StartStreaming()
	s.mu.Unlock()

	body, err := s.source.Stream(streamCtx, message)
	if err != nil {
		s.mu.Lock()
		if gen == s.epoch {
			s.reducer.Fail(err)
		}
		s.mu.Unlock()
		return err
	}

	runErr := ingest.New().Run(streamCtx, body, s.guarded(gen))
	if errors.Is(runErr, ErrSuperseded) || errors.Is(runErr, context.Canceled) {
		log.Debug().Int("epoch", gen).Msg("Stream superseded before completion")
		return ErrSuperseded
	}
	return runErr
}

// guarded wraps the reducer in an epoch check so a superseded stream can
// never mutate state belonging to its successor.
func (s *Session) guarded(gen int) ingest.Handler {
	return ingest.HandlerFunc{
		EventFunc: func(ev events.Event) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if gen != s.epoch {
				return ErrSuperseded
			}
			s.reducer.Apply(ev)
			return nil
		},
		CompleteFunc: func(stats ingest.Stats) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if gen != s.epoch {
				return
			}
			if stats.TruncatedTail {
				log.Warn().Msg("Stream ended with a truncated trailing record")
			}
			s.reducer.Finish()
		},
		ErrorFunc: func(err error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if gen != s.epoch {
				return
			}
			s.reducer.Fail(err)
		},
	}
}

// Messages returns a snapshot of the transcript.
func (s *Session) Messages() []transcript.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Messages()
}

// Busy reports whether the backend is actively processing.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reducer.Busy()
}

// ProcessingIDs returns the in-flight item ids for a category.
func (s *Session) ProcessingIDs(category string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing.IDs(category)
}

// ProcessingCategories returns the categories with in-flight items.
func (s *Session) ProcessingCategories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing.Categories()
}

// Close cancels any active stream.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
