// Package source resolves program bytes for the runic front end.
//
// A [Source] is an owned handle over one program's input: a label for
// diagnostics, a buffered read cursor, and the byte/line base accumulated by
// shebang skipping so compiler positions stay relative to the original file.
// The package also provides [Capture], the single-use claim ticket guarding
// standard input.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Labels reported for sources that are not backed by a named file.
const (
	StdinLabel = "[stdin]"
	TextLabel  = "[-s argument]"
)

// StdinPath is the conventional path argument naming standard input.
const StdinPath = "-"

// Sentinel errors reported while resolving program sources.
var (
	ErrOpen          = errors.New("failed to open source")
	ErrStdinConsumed = errors.New("can read from stdin only once")
	ErrReadStdin     = errors.New("failed to read stdin")
)

// Source is an owned descriptor over a single program's input bytes.
//
// Exactly one component owns a Source at any time, and the owner is
// responsible for calling [Source.Close] exactly once.
type Source struct {
	label   string
	r       *bufio.Reader
	closer  io.Closer
	skipped int // bytes consumed by SkipShebang
	lines   int // newlines consumed by SkipShebang
}

// Open returns a Source reading from the file at path.
// The path doubles as the Source label.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}

	return &Source{
		label:  path,
		r:      bufio.NewReader(f),
		closer: f,
	}, nil
}

// FromText returns a Source over an in-memory string.
func FromText(label, text string) *Source {
	return &Source{
		label: label,
		r:     bufio.NewReader(strings.NewReader(text)),
	}
}

// FromBytes returns a Source over an owned byte buffer.
func FromBytes(label string, data []byte) *Source {
	return &Source{
		label: label,
		r:     bufio.NewReader(bytes.NewReader(data)),
	}
}

// Label returns the human-readable name of this source, such as "[stdin]",
// "[-s argument]", or a file path.
func (s *Source) Label() string { return s.label }

// Read implements io.Reader over the remaining program bytes.
func (s *Source) Read(p []byte) (int, error) { return s.r.Read(p) }

// Skipped returns the number of bytes discarded by [Source.SkipShebang].
func (s *Source) Skipped() int { return s.skipped }

// Lines returns the number of line terminators discarded by
// [Source.SkipShebang].
func (s *Source) Lines() int { return s.lines }

// SkipShebang discards a leading "#!" interpreter directive, if present,
// through its terminating newline (or end of input). The discarded byte and
// line counts accumulate into the position base reported by [Source.Skipped]
// and [Source.Lines]. When the source does not begin with "#!", no bytes are
// consumed and the handle reads the original content unaltered.
func (s *Source) SkipShebang() error {
	head, err := s.r.Peek(2)
	if err != nil || len(head) < 2 {
		// Fewer than two bytes available: nothing to skip.
		return nil
	}

	if head[0] != '#' || head[1] != '!' {
		return nil
	}

	line, err := s.r.ReadBytes('\n')
	s.skipped += len(line)

	if err == nil {
		s.lines++
	} else if !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// Close releases the backing file, if any. Only the first call has an
// effect; a Source remains safe to close on every exit path.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}

	c := s.closer
	s.closer = nil

	return c.Close()
}

// Capture is the process-wide standard-input claim ticket. It is created
// once per invocation and threaded to every call site that may need stdin,
// so the at-most-once consumption invariant holds without ambient state.
type Capture struct {
	mu    sync.Mutex
	r     io.Reader
	taken bool
}

// NewCapture returns a Capture guarding the given reader, normally os.Stdin.
func NewCapture(r io.Reader) *Capture {
	return &Capture{r: r}
}

// Taken reports whether standard input has already been claimed.
func (c *Capture) Taken() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.taken
}
