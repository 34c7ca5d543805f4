package xmlstream

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// DocumentReader adapts an xml.TokenReader into an EventReader over one
// document. It emits a StartDocument marker first (carrying any leading XML
// declaration), then every decoded token, then an EndDocument marker.
//
// Tokens are copied, so they remain valid after further reads. Names are taken
// as the source provides them; an *xml.Decoder source is read raw, so that
// names keep their prefixes (see the package documentation).
//
// It is not safe to use DocumentReader from parallel goroutines.
type DocumentReader struct {
	src    xml.TokenReader
	closer io.Closer

	state   docState
	pending Token // token read while looking for a declaration
	peeked  Token
	err     error
}

type docState int

const (
	docStart docState = iota
	docBody
	docDone
	docClosed
)

// NewDocumentReader creates a DocumentReader reading tokens from src.
// If src implements io.Closer, it is closed by Close.
func NewDocumentReader(src xml.TokenReader) *DocumentReader {
	if d, ok := src.(*xml.Decoder); ok {
		src = &rawDecoder{d: d}
	}
	dr := &DocumentReader{src: src}
	if cl, ok := src.(io.Closer); ok {
		dr.closer = cl
	}
	return dr
}

// Decode creates a DocumentReader decoding markup from r.
// If r implements io.Closer, it is closed by Close.
func Decode(r io.Reader) *DocumentReader {
	dr := NewDocumentReader(xml.NewDecoder(r))
	if cl, ok := r.(io.Closer); ok {
		dr.closer = cl
	}
	return dr
}

// HasNext returns true if a following NextEvent call will return an event.
// Returns false at the end of the document, or after an error, which is then
// available from Err.
func (dr *DocumentReader) HasNext() bool {
	if dr.peeked != nil {
		return true
	}
	_, err := dr.Peek()
	return err == nil
}

// Err returns any decode error encountered.
func (dr *DocumentReader) Err() error { return dr.err }

// Peek returns the next event without consuming it.
func (dr *DocumentReader) Peek() (Token, error) {
	if dr.peeked == nil {
		tok, err := dr.pull()
		if err != nil {
			return nil, err
		}
		dr.peeked = tok
	}
	return dr.peeked, nil
}

// NextEvent consumes and returns the next event.
// Returns ErrNoSuchElement after EndDocument has been returned.
func (dr *DocumentReader) NextEvent() (Token, error) {
	if tok := dr.peeked; tok != nil {
		dr.peeked = nil
		return tok, nil
	}
	return dr.pull()
}

// Token implements xml.TokenReader, returning io.EOF once exhausted.
// Events are converted by EncodeToken: the XML declaration is returned in
// place of StartDocument, and EndDocument is skipped.
func (dr *DocumentReader) Token() (xml.Token, error) {
	return TokenOf(dr)
}

// TokenOf reads the next event from r that converts to an xml.Token by
// EncodeToken, returning io.EOF once r is exhausted.
func TokenOf(r EventReader) (xml.Token, error) {
	for {
		tok, err := r.NextEvent()
		if err != nil {
			return nil, TokenError(err)
		}
		if t, ok := EncodeToken(tok); ok {
			return t, nil
		}
	}
}

// Close closes any underlying closer; it is safe to call more than once.
func (dr *DocumentReader) Close() error {
	if dr.state == docClosed {
		return nil
	}
	dr.state = docClosed
	dr.peeked = nil
	dr.pending = nil
	if dr.closer != nil {
		return dr.closer.Close()
	}
	return nil
}

func (dr *DocumentReader) pull() (Token, error) {
	if dr.err != nil {
		return nil, dr.err
	}
	switch dr.state {
	case docStart:
		dr.state = docBody
		tok, err := dr.read()
		if err != nil {
			return nil, err
		}
		var sd StartDocument
		if pi, ok := tok.(xml.ProcInst); ok && pi.Target == "xml" {
			sd.Decl = pi
		} else {
			dr.pending = tok
		}
		return sd, nil

	case docBody:
		if tok := dr.pending; tok != nil {
			dr.pending = nil
			return tok, nil
		}
		tok, err := dr.read()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			dr.state = docDone
			return EndDocument{}, nil
		}
		return tok, nil

	case docClosed:
		return nil, ErrClosed
	}
	return nil, ErrNoSuchElement
}

// read returns the next copied source token, or nil at the end of input.
func (dr *DocumentReader) read() (Token, error) {
	tok, err := dr.src.Token()
	if tok != nil {
		tok = CopyToken(tok)
	}
	if errors.Is(err, io.EOF) {
		if tok == nil {
			return nil, nil
		}
		err = nil
	}
	if err != nil {
		dr.err = err
		return nil, err
	}
	return tok, nil
}

// rawDecoder reads raw tokens from an xml.Decoder, which leaves names as
// written, while still checking that elements nest.
type rawDecoder struct {
	d    *xml.Decoder
	open []xml.Name
}

func (rd *rawDecoder) Token() (xml.Token, error) {
	tok, err := rd.d.RawToken()
	switch t := tok.(type) {
	case xml.StartElement:
		rd.open = append(rd.open, t.Name)
	case xml.EndElement:
		i := len(rd.open) - 1
		if i < 0 {
			return nil, rd.syntaxError(fmt.Sprintf("unexpected end element </%s>", QualifiedName(t.Name)))
		}
		if top := rd.open[i]; top != t.Name {
			return nil, rd.syntaxError(fmt.Sprintf("element <%s> closed by </%s>",
				QualifiedName(top), QualifiedName(t.Name)))
		}
		rd.open = rd.open[:i]
	}
	if errors.Is(err, io.EOF) && len(rd.open) > 0 {
		return nil, rd.syntaxError("unexpected EOF")
	}
	return tok, err
}

func (rd *rawDecoder) syntaxError(msg string) error {
	line, _ := rd.d.InputPos()
	return &xml.SyntaxError{Msg: msg, Line: line}
}
