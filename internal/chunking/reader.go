// Package chunking implements a streaming XML event transformer that chunks
// serialized markup into character events.
//
// A Reader sits between an upstream EventReader and a downstream consumer that
// serializes every event it pulls into an EventWriter. Events pass through
// unchanged, except for trigger elements: when a start element's local name is
// in the ElementTable, the text serialized so far is captured, and the element's
// Source generates character events in its place. Captured text is further
// split by the PatternTable (see Split).
//
// Once the stream has been consumed and the Reader closed, CharacterEvents
// returns the document as alternating literal text and placeholder events.
package chunking

import (
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jcorbin/xmlchunk/internal/charevent"
	"github.com/jcorbin/xmlchunk/internal/logging"
	"github.com/jcorbin/xmlchunk/internal/xmlstream"
)

// TextBuffer is the text buffer that a Reader's EventWriter serializes into,
// like a bytes.Buffer or strings.Builder.
type TextBuffer interface {
	String() string
	Reset()
}

// Reader is a chunking xmlstream.EventReader decorator.
//
// Besides the upstream reader, it holds two optional slots: a peeked event,
// returned by the next NextEvent, and a deferred capture element. A trigger
// element is deferred when it directly follows another start element: the
// Reader then returns an empty xml.CharData, so that the consumer finishes
// serializing the preceding start tag before its text is captured; the
// deferred element is expanded on the following pull.
//
// It is not safe to use Reader from parallel goroutines.
type Reader struct {
	in       xmlstream.EventReader
	out      xmlstream.EventWriter
	text     TextBuffer
	elements ElementTable
	patterns PatternTable

	stripDecl bool
	log       *slog.Logger

	events  []charevent.Event
	prev    xmlstream.Token   // last event returned
	peeked  xmlstream.Token   // returned by the next NextEvent, if non-nil
	capture *xml.StartElement // deferred trigger element
	err     error
	closed  bool
}

// Option customizes a Reader.
type Option func(*Reader)

// WithStripDeclaration controls whether any XML declaration serialized at the
// start of the document is discarded rather than captured. Defaults to true.
func WithStripDeclaration(strip bool) Option {
	return func(cr *Reader) { cr.stripDecl = strip }
}

// WithLogger sets a logger for debug tracing of trigger expansion. Defaults to
// discarding.
func WithLogger(log *slog.Logger) Option {
	return func(cr *Reader) {
		if log != nil {
			cr.log = log
		}
	}
}

// NewReader creates a chunking Reader pulling from in. The consumer is
// expected to write every event that it pulls into out, which serializes into
// text.
func NewReader(
	in xmlstream.EventReader,
	out xmlstream.EventWriter,
	text TextBuffer,
	elements ElementTable,
	patterns PatternTable,
	opts ...Option,
) *Reader {
	cr := &Reader{
		in:        in,
		out:       out,
		text:      text,
		elements:  elements,
		patterns:  patterns,
		stripDecl: true,
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(cr)
	}
	return cr
}

// CharacterEvents returns a copy of the character events accumulated so far.
// The list is only complete after the stream has been consumed and the
// Reader closed.
func (cr *Reader) CharacterEvents() []charevent.Event {
	return append([]charevent.Event(nil), cr.events...)
}

// HasNext returns true if a following NextEvent call will return an event.
// Returns false at the end of the stream, or after an error, which is then
// available from Err.
func (cr *Reader) HasNext() bool {
	if cr.peeked != nil {
		return true
	}
	if cr.err != nil || cr.closed {
		return false
	}
	if cr.capture == nil && !cr.in.HasNext() {
		cr.err = xmlstream.ReaderError(cr.in)
		return false
	}
	_, err := cr.Peek()
	return err == nil
}

// Err returns any upstream or expansion error encountered.
func (cr *Reader) Err() error { return cr.err }

// Peek returns the next event without consuming it; repeated calls return the
// same event.
func (cr *Reader) Peek() (xmlstream.Token, error) {
	if cr.peeked == nil {
		tok, err := cr.NextEvent()
		if err != nil {
			return nil, err
		}
		cr.peeked = tok
	}
	return cr.peeked, nil
}

// NextEvent consumes and returns the next event.
// Returns xmlstream.ErrNoSuchElement once the upstream reader is exhausted.
func (cr *Reader) NextEvent() (xmlstream.Token, error) {
	tok, err := cr.nextEvent()
	if err != nil {
		if !errors.Is(err, xmlstream.ErrNoSuchElement) {
			cr.err = err
		}
		return nil, err
	}
	cr.prev = tok
	return tok, nil
}

// Token implements xml.TokenReader, returning io.EOF once exhausted. Events
// are converted by xmlstream.EncodeToken, so document markers are replaced by
// any XML declaration or skipped.
func (cr *Reader) Token() (xml.Token, error) { return xmlstream.TokenOf(cr) }

// Remove always fails: Reader is read-only.
func (cr *Reader) Remove() error { return xmlstream.ErrUnsupported }

// Close captures any text serialized since the last capture, and then closes
// the upstream reader. Calls after the first do nothing.
func (cr *Reader) Close() (rerr error) {
	if cr.closed {
		return nil
	}
	cr.closed = true
	cr.peeked = nil
	defer func() {
		if cerr := cr.in.Close(); rerr == nil {
			rerr = cerr
		}
	}()
	return cr.captureText()
}

func (cr *Reader) nextEvent() (xmlstream.Token, error) {
	if tok := cr.peeked; tok != nil {
		cr.peeked = nil
		return tok, nil
	}
	if cr.err != nil {
		return nil, cr.err
	}
	if cr.closed {
		return nil, xmlstream.ErrClosed
	}

	// discard any declaration serialized at the top of the document
	if xmlstream.IsStartDocument(cr.prev) {
		if err := cr.out.Flush(); err != nil {
			return nil, err
		}
		if cr.stripDecl {
			cr.text.Reset()
		}
	}

	if start := cr.capture; start != nil {
		cr.capture = nil
		return cr.tryChunking(*start)
	}

	tok, err := cr.in.NextEvent()
	if err != nil {
		return nil, err
	}
	if start, ok := tok.(xml.StartElement); ok {
		return cr.tryChunking(start)
	}
	return tok, nil
}

// tryChunking expands start if it is a trigger element, along with any
// trigger elements that immediately follow it, returning the first event
// after them; otherwise start is returned unchanged.
func (cr *Reader) tryChunking(start xml.StartElement) (xmlstream.Token, error) {
	for src := cr.elements[start.Name.Local]; src != nil; src = cr.elements[start.Name.Local] {
		if xmlstream.IsStartElement(cr.prev) {
			cr.capture = &start
			cr.log.Debug("deferred trigger element", "element", xmlstream.QualifiedName(start.Name))
			return xml.CharData(""), nil
		}

		if err := cr.captureText(); err != nil {
			return nil, err
		}
		if err := cr.expand(src, start); err != nil {
			return nil, err
		}

		tok, err := cr.in.NextEvent()
		if err != nil {
			return nil, err
		}
		next, ok := tok.(xml.StartElement)
		if !ok {
			return tok, nil
		}
		start = next
	}
	return start, nil
}

func (cr *Reader) expand(src Source, start xml.StartElement) error {
	sub := &subtreeReader{in: cr.in, depth: 1}
	events, err := src.ElementEvents(start, sub)
	if err != nil {
		return fmt.Errorf("expanding <%s>: %w", xmlstream.QualifiedName(start.Name), err)
	}
	consumed := sub.consumed
	skipped, err := sub.drain()
	if err != nil {
		return err
	}
	cr.events = append(cr.events, events...)
	cr.log.Debug("expanded trigger element",
		"element", xmlstream.QualifiedName(start.Name),
		"events", len(events),
		"consumed", consumed,
		"skipped", skipped)
	return nil
}

// captureText flushes the writer, and splits all serialized text since the
// last capture into character events.
func (cr *Reader) captureText() error {
	if err := cr.out.Flush(); err != nil {
		return err
	}
	events, err := Split(cr.text.String(), cr.patterns)
	if err != nil {
		return err
	}
	cr.text.Reset()
	cr.events = append(cr.events, events...)
	return nil
}
