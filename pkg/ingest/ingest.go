package ingest

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/chartlight/chartlight/pkg/events"
)

// readBufferSize is the transport read granularity. Record boundaries are
// independent of it; LineBuffer reassembles lines across reads.
const readBufferSize = 4096

// Stats summarizes one ingestion run.
type Stats struct {
	Lines         int  // complete non-blank lines seen
	Events        int  // events successfully decoded and dispatched
	ParseFailures int  // lines that were not valid JSON
	TruncatedTail bool // stream ended with a non-empty partial line
}

// Ingestor drives one newline-delimited JSON stream from an io.Reader
// through a Handler. Each chunk is fully processed before the next read is
// issued, so events reach the handler in exact wire order.
type Ingestor struct {
	buf   LineBuffer
	stats Stats
}

// New creates an Ingestor for a single stream. Ingestors are single-use.
func New() *Ingestor {
	return &Ingestor{}
}

// Stats returns counters for the run so far.
func (in *Ingestor) Stats() Stats {
	return in.stats
}

// Run reads body to completion, dispatching every decoded event to handler.
// It returns when the stream ends, the context is cancelled, a read fails,
// or the handler rejects an event. body is always closed before returning.
func (in *Ingestor) Run(ctx context.Context, body io.ReadCloser, handler Handler) error {
	defer body.Close()

	chunk := make([]byte, readBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := body.Read(chunk)
		if n > 0 {
			if herr := in.dispatchLines(in.buf.Write(chunk[:n]), handler); herr != nil {
				return herr
			}
		}
		if err == io.EOF {
			in.finish(handler)
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			handler.OnError(err)
			return err
		}
	}
}

func (in *Ingestor) dispatchLines(lines []string, handler Handler) error {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		in.stats.Lines++

		ev, err := events.Decode([]byte(line))
		if err != nil {
			// One bad record must not poison the stream.
			in.stats.ParseFailures++
			log.Warn().Err(err).Str("line", line).Msg("Skipping malformed stream record")
			continue
		}

		if err := handler.OnEvent(ev); err != nil {
			return err
		}
		in.stats.Events++
	}
	return nil
}

// finish handles normal end-of-stream. A leftover partial line is never
// parsed: it is either empty or a record the sender failed to terminate,
// and guessing at its contents would fabricate an event. It is counted and
// logged so callers can observe the truncation.
func (in *Ingestor) finish(handler Handler) {
	if tail := in.buf.Remainder(); strings.TrimSpace(tail) != "" {
		in.stats.TruncatedTail = true
		log.Warn().Int("bytes", len(tail)).Msg("Discarding truncated trailing record at end of stream")
	}
	in.buf.Reset()
	handler.OnComplete(in.stats)
}
