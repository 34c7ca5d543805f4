// Package placeholder provides stock chunking sources that generate
// placeholder events for portlet windows.
package placeholder

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/jcorbin/xmlchunk/internal/charevent"
	"github.com/jcorbin/xmlchunk/internal/chunking"
	"github.com/jcorbin/xmlchunk/internal/xmlstream"
)

// DefaultAttr is the element attribute that identifies a window, unless a
// Source specifies another.
const DefaultAttr = "id"

var (
	errMissingID   = errors.New("missing placeholder id")
	errMissingType = errors.New("missing placeholder type")
)

// Source generates one placeholder event of Type per trigger.
//
// For a trigger element, the placeholder is identified by the value of its
// Attr attribute (DefaultAttr if empty). For a pattern match, it is
// identified by the Group submatch: a group name, or the whole match if
// empty.
type Source struct {
	Type  charevent.Type
	Attr  string
	Group string
}

// ElementEvents returns a placeholder identified by an attribute of start.
func (src Source) ElementEvents(start xml.StartElement, _ xmlstream.EventReader) ([]charevent.Event, error) {
	if !src.Type.IsPlaceholder() {
		return nil, errMissingType
	}
	attr := src.Attr
	if attr == "" {
		attr = DefaultAttr
	}
	for _, a := range start.Attr {
		if a.Name.Space != "xmlns" && a.Name.Local == attr {
			return []charevent.Event{charevent.Placeholder(src.Type, a.Value)}, nil
		}
	}
	return nil, fmt.Errorf("%w: no %q attribute", errMissingID, attr)
}

// MatchEvents returns a placeholder identified by a submatch of m.
func (src Source) MatchEvents(m chunking.Match) ([]charevent.Event, error) {
	if !src.Type.IsPlaceholder() {
		return nil, errMissingType
	}
	id := m.Text
	if src.Group != "" {
		var ok bool
		if id, ok = m.Group(src.Group); !ok {
			return nil, fmt.Errorf("%w: pattern has no %q group", errMissingID, src.Group)
		}
	}
	if id == "" {
		return nil, fmt.Errorf("%w: empty match", errMissingID)
	}
	return []charevent.Event{charevent.Placeholder(src.Type, id)}, nil
}

// Literal is a Source that replaces any trigger with fixed text.
type Literal string

// ElementEvents returns the literal text.
func (lit Literal) ElementEvents(xml.StartElement, xmlstream.EventReader) ([]charevent.Event, error) {
	return lit.events(), nil
}

// MatchEvents returns the literal text.
func (lit Literal) MatchEvents(chunking.Match) ([]charevent.Event, error) {
	return lit.events(), nil
}

func (lit Literal) events() []charevent.Event {
	if lit == "" {
		return nil
	}
	return []charevent.Event{charevent.Text(string(lit))}
}
