package xmlstream

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNoSuchElement is returned when pulling from an exhausted reader.
	// It wraps io.EOF so that errors.Is(err, io.EOF) also holds.
	ErrNoSuchElement = fmt.Errorf("no such element: %w", io.EOF)

	// ErrUnsupported is returned by mutation attempts on read-only readers.
	ErrUnsupported = fmt.Errorf("event reader is read-only: %w", errors.ErrUnsupported)

	// ErrClosed is returned when pulling from a closed reader.
	ErrClosed = errors.New("event reader closed")
)

// EventReader abstracts over pull-style XML event sources, like
// DocumentReader. It follows the iterator contract: HasNext reports whether a
// following NextEvent call will return an event, Peek returns that event
// without consuming it.
type EventReader interface {
	HasNext() bool
	NextEvent() (Token, error)
	Peek() (Token, error)
	Close() error
}

// ErrEventReader is an EventReader extension implemented by readers that
// retain an error encountered while answering HasNext. This will typically be
// a read error from the input io.Reader, or a syntax error from the decoder.
type ErrEventReader interface {
	EventReader
	Err() error
}

// ReaderError returns any error retained by the given EventReader.
// See the ErrEventReader extension.
func ReaderError(r EventReader) (err error) {
	if er, ok := r.(ErrEventReader); ok {
		err = er.Err()
	}
	return err
}

// TokenError translates exhaustion errors into the io.EOF sentinel expected
// by xml.TokenReader consumers; other errors pass through.
func TokenError(err error) error {
	if errors.Is(err, ErrNoSuchElement) {
		return io.EOF
	}
	return err
}
