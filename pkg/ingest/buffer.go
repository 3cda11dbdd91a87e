package ingest

import "strings"

// LineBuffer reassembles newline-delimited records from arbitrarily
// fragmented chunks. Chunk boundaries carry no meaning on the wire, so the
// buffer retains any trailing partial line until the newline that completes
// it arrives.
type LineBuffer struct {
	pending strings.Builder
}

// Write appends one chunk and returns every line completed by it, in order.
// The trailing element after the final newline stays buffered.
func (b *LineBuffer) Write(chunk []byte) []string {
	b.pending.Write(chunk)

	buffered := b.pending.String()
	if !strings.Contains(buffered, "\n") {
		return nil
	}

	parts := strings.Split(buffered, "\n")
	b.pending.Reset()
	b.pending.WriteString(parts[len(parts)-1])
	return parts[:len(parts)-1]
}

// Remainder returns whatever partial line is still buffered.
func (b *LineBuffer) Remainder() string {
	return b.pending.String()
}

// Reset discards any buffered partial line.
func (b *LineBuffer) Reset() {
	b.pending.Reset()
}
