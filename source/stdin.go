package source

import (
	"fmt"
	"io"

	"github.com/klauspost/readahead"
)

// Acquire drains the guarded reader to exhaustion and returns a Source over
// the captured bytes. Standard input is a single-pass stream, so only the
// first call succeeds: every subsequent call returns [ErrStdinConsumed]
// without attempting to read.
//
// Draining uses bounded chunked reads into a growable buffer, never a single
// allocation proportional to a length claim from the stream.
func (c *Capture) Acquire() (*Source, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.taken {
		return nil, ErrStdinConsumed
	}

	c.taken = true

	// Wrap the reader with async read-ahead so data is pre-fetched while
	// previously buffered chunks are appended.
	ra := readahead.NewReader(c.r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadStdin, err)
	}

	return FromBytes(StdinLabel, data), nil
}
