package chunking

import (
	"encoding/xml"

	"github.com/jcorbin/xmlchunk/internal/xmlstream"
)

// subtreeReader limits an EventReader to the remainder of one element, whose
// start has already been read. It is exhausted after the element's end.
type subtreeReader struct {
	in       xmlstream.EventReader
	depth    int
	consumed int
}

func (sr *subtreeReader) HasNext() bool { return sr.depth > 0 && sr.in.HasNext() }

func (sr *subtreeReader) Err() error { return xmlstream.ReaderError(sr.in) }

func (sr *subtreeReader) Peek() (xmlstream.Token, error) {
	if sr.depth <= 0 {
		return nil, xmlstream.ErrNoSuchElement
	}
	return sr.in.Peek()
}

func (sr *subtreeReader) NextEvent() (xmlstream.Token, error) {
	if sr.depth <= 0 {
		return nil, xmlstream.ErrNoSuchElement
	}
	tok, err := sr.in.NextEvent()
	if err != nil {
		return nil, err
	}
	switch tok.(type) {
	case xml.StartElement:
		sr.depth++
	case xml.EndElement:
		sr.depth--
	}
	sr.consumed++
	return tok, nil
}

// Close does nothing; the upstream reader belongs to the chunking Reader.
func (sr *subtreeReader) Close() error { return nil }

// drain consumes the rest of the element, returning how many events it skipped.
func (sr *subtreeReader) drain() (n int, err error) {
	for sr.depth > 0 {
		if _, err := sr.NextEvent(); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
