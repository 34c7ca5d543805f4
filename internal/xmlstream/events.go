// Package xmlstream implements pull-style XML event streams over encoding/xml.
//
// A DocumentReader adapts an xml.TokenReader into an EventReader, bracketing the
// decoded tokens with StartDocument and EndDocument markers. A BufferWriter is
// the downstream half: it serializes events into a text buffer that is only
// materialized on Flush, so that callers can capture serialized text between
// arbitrary points of a stream.
//
// Events carry names as written in the document: Name.Space holds the
// namespace prefix, not a resolved namespace URL, and xmlns attributes pass
// through as ordinary attributes. EncodeToken turns such events back into
// tokens that an xml.Encoder serializes faithfully.
package xmlstream

import (
	"encoding/xml"
	"fmt"
)

// Token is an XML event: any encoding/xml token, or one of the document
// markers StartDocument and EndDocument.
type Token = xml.Token

// StartDocument marks the top of a document stream. Decl holds the document's
// XML declaration, if it had one.
type StartDocument struct {
	Decl xml.ProcInst
}

// EndDocument marks the end of a document stream.
type EndDocument struct{}

// Declared returns true if the document had an XML declaration.
func (sd StartDocument) Declared() bool { return sd.Decl.Target == "xml" }

// IsStartElement returns true if tok is an xml.StartElement.
func IsStartElement(tok Token) bool {
	_, ok := tok.(xml.StartElement)
	return ok
}

// IsStartDocument returns true if tok is a StartDocument marker.
func IsStartDocument(tok Token) bool {
	_, ok := tok.(StartDocument)
	return ok
}

// CopyToken returns a copy of tok that remains valid after the producing
// decoder advances. Document markers are returned as is.
func CopyToken(tok Token) Token {
	switch t := tok.(type) {
	case StartDocument:
		t.Decl = t.Decl.Copy()
		return t
	case EndDocument:
		return t
	}
	return xml.CopyToken(tok)
}

// EncodeToken returns the xml.Token that serializes tok with an xml.Encoder,
// or false if tok serializes to nothing. A StartDocument becomes its XML
// declaration, if any, and an EndDocument is dropped. Element and attribute
// names have any prefix folded into their local part, so that the encoder
// writes them as is, instead of declaring namespaces of its own.
func EncodeToken(tok Token) (xml.Token, bool) {
	switch t := tok.(type) {
	case StartDocument:
		return t.Decl, t.Declared()
	case EndDocument:
		return nil, false
	case xml.StartElement:
		t.Name = prefixed(t.Name)
		if len(t.Attr) > 0 {
			attrs := make([]xml.Attr, len(t.Attr))
			for i, attr := range t.Attr {
				attr.Name = prefixed(attr.Name)
				attrs[i] = attr
			}
			t.Attr = attrs
		}
		return t, true
	case xml.EndElement:
		t.Name = prefixed(t.Name)
		return t, true
	}
	return tok, true
}

func prefixed(name xml.Name) xml.Name {
	if name.Space == "" {
		return name
	}
	return xml.Name{Local: name.Space + ":" + name.Local}
}

// QualifiedName returns name as written in markup, prefix:local.
func QualifiedName(name xml.Name) string { return prefixed(name).Local }

// Format writes a terse textual representation of the receiver.
func (sd StartDocument) Format(f fmt.State, _ rune) {
	if sd.Declared() {
		fmt.Fprintf(f, "StartDocument(%q)", sd.Decl.Inst)
	} else {
		fmt.Fprint(f, "StartDocument")
	}
}

// Format writes a terse textual representation of the receiver.
func (EndDocument) Format(f fmt.State, _ rune) { fmt.Fprint(f, "EndDocument") }
