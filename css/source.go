package css

import (
	"bufio"
	"context"
	"io"
)

// TextSource is a bounded character stream with lookahead and line/column
// tracking. It is the external collaborator the tokenizer reads from; the
// parser core never talks to a file or a socket directly.
type TextSource interface {
	// Peek returns the rune at the given lookahead offset (0 == the next
	// rune to be returned by Advance) without consuming it. ok is false at
	// end of input.
	Peek(offset int) (r rune, ok bool)
	// Advance consumes and returns the next rune. ok is false at end of input.
	Advance() (r rune, ok bool)
	// Position returns the position of the next rune Advance would return.
	Position() Position
	// PrefetchAll materializes the full source, suspending on I/O if the
	// underlying source is a stream. Used by the asynchronous entry point
	// before parsing begins; a purely in-memory source treats this as a
	// no-op.
	PrefetchAll(ctx context.Context) error
}

// runeSource is the built-in TextSource implementation: a slice of runes
// that may be filled eagerly (from a string) or lazily via PrefetchAll
// (from an io.Reader).
type runeSource struct {
	runes  []rune
	pos    int
	line   int
	col    int
	reader *bufio.Reader
}

// NewStringSource returns a TextSource over an in-memory string. Prefetch
// is a no-op since the whole source is already resident.
func NewStringSource(s string) TextSource {
	return &runeSource{runes: []rune(s)}
}

// NewReaderSource returns a TextSource that lazily drains r. The
// synchronous parse entry points drain it eagerly on first use; the
// asynchronous entry point drains it explicitly via PrefetchAll, which is
// the only point in this package that may suspend on I/O.
func NewReaderSource(r io.Reader) TextSource {
	return &runeSource{reader: bufio.NewReader(r)}
}

func (s *runeSource) drainAll() error {
	if s.reader == nil {
		return nil
	}
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		s.runes = append(s.runes, r)
	}
	s.reader = nil
	return nil
}

func (s *runeSource) PrefetchAll(ctx context.Context) error {
	if s.reader == nil {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		s.runes = append(s.runes, r)
	}
	s.reader = nil
	return nil
}

func (s *runeSource) ensureMaterialized() {
	if s.reader != nil {
		// A synchronous caller never awaited PrefetchAll; fall back to a
		// blocking drain so the sync API still works standalone.
		_ = s.drainAll()
	}
}

func (s *runeSource) Peek(offset int) (rune, bool) {
	s.ensureMaterialized()
	i := s.pos + offset
	if i < 0 || i >= len(s.runes) {
		return 0, false
	}
	return s.runes[i], true
}

func (s *runeSource) Advance() (rune, bool) {
	s.ensureMaterialized()
	r, ok := s.Peek(0)
	if !ok {
		return 0, false
	}
	s.pos++
	if r == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	return r, true
}

func (s *runeSource) Position() Position {
	return Position{Line: s.line + 1, Col: s.col + 1, Offset: s.pos}
}
