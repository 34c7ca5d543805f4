package xmlstream

import (
	"bytes"
	"encoding/xml"
)

// EventWriter abstracts over XML event serializers. Written events may be
// buffered internally until Flush.
type EventWriter interface {
	WriteEvent(tok Token) error
	Flush() error
}

// BufferWriter combines an xml.Encoder with the text buffer that it writes
// into. Serialized text only lands in the buffer on Flush. Example use:
//
//	var text bytes.Buffer
//	bw := xmlstream.NewBufferWriter(&text)
//	for r.HasNext() {
//		tok, _ := r.NextEvent() // TODO errcheck
//		bw.WriteEvent(tok)      // TODO errcheck
//	}
//	bw.Flush() // TODO errcheck
//	fmt.Print(text.String())
//
// NOTE: the text buffer may be reset by its owner between flushes.
type BufferWriter struct {
	To  *bytes.Buffer
	enc *xml.Encoder
}

// NewBufferWriter creates a BufferWriter serializing into the given buffer.
func NewBufferWriter(to *bytes.Buffer) *BufferWriter {
	return &BufferWriter{
		To:  to,
		enc: xml.NewEncoder(to),
	}
}

// WriteEvent encodes the given event as converted by EncodeToken: a
// StartDocument writes its XML declaration, if any; an EndDocument writes
// nothing; names are written with their prefixes.
func (bw *BufferWriter) WriteEvent(tok Token) error {
	if t, ok := EncodeToken(tok); ok {
		return bw.enc.EncodeToken(t)
	}
	return nil
}

// Flush writes any encoder-buffered text into To.
func (bw *BufferWriter) Flush() error { return bw.enc.Flush() }

// Reset flushes, and then discards all buffered text.
func (bw *BufferWriter) Reset() error {
	_, err := bw.Take()
	return err
}

// Take flushes, returning and then discarding all buffered text.
func (bw *BufferWriter) Take() (string, error) {
	err := bw.Flush()
	s := bw.To.String()
	bw.To.Reset()
	return s, err
}
