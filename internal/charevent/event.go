// Package charevent defines the character events produced by chunking a
// serialized markup stream: runs of literal text, interleaved with
// placeholders for content that is resolved later.
package charevent

import (
	"fmt"
	"io"
	"strings"
)

// Event is a character event. Its Type determines which fields are
// meaningful:
//
//   - Characters: Data holds literal text
//   - any placeholder type: ID holds the key that its owner resolves it by,
//     e.g. a portlet window identifier
//
// Events are comparable; two events are equal when they have the same type
// and payload.
type Event struct {
	Type Type
	Data string
	ID   string
}

// Type is the kind of a character event.
type Type int

// Type constants; every type other than Characters is a placeholder.
const (
	noType Type = iota // 0 value should never be seen by user
	Characters
	PortletContent
	PortletHeader
	PortletTitle
	PortletHelp
	PortletNewItemCount
	PortletLink
)

var typeNames = [...]string{
	noType:              "none",
	Characters:          "characters",
	PortletContent:      "portlet-content",
	PortletHeader:       "portlet-header",
	PortletTitle:        "portlet-title",
	PortletHelp:         "portlet-help",
	PortletNewItemCount: "portlet-new-item-count",
	PortletLink:         "portlet-link",
}

// Text returns a Characters event carrying s.
func Text(s string) Event { return Event{Type: Characters, Data: s} }

// Placeholder returns a placeholder event of the given type.
func Placeholder(t Type, id string) Event { return Event{Type: t, ID: id} }

// IsText returns true for Characters events.
func (ev Event) IsText() bool { return ev.Type == Characters }

// IsPlaceholder returns true for events of any valid placeholder type.
func (ev Event) IsPlaceholder() bool { return ev.Type.IsPlaceholder() }

// IsPlaceholder returns true if t is a valid placeholder type.
func (t Type) IsPlaceholder() bool {
	return t > Characters && int(t) < len(typeNames)
}

// ParseType returns the Type with the given name, as written by String.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if i != int(noType) && n == name {
			return Type(i), nil
		}
	}
	return noType, fmt.Errorf("unknown character event type %q", name)
}

// Concat returns the concatenation of all text event data, skipping
// placeholders.
func Concat(events []Event) string {
	var sb strings.Builder
	for _, ev := range events {
		if ev.IsText() {
			sb.WriteString(ev.Data)
		}
	}
	return sb.String()
}

// String returns the type's name.
func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("invalid-type-%d", int(t))
}

// Format writes a textual representation of the receiver, providing improved
// fmt.Printf display: `text "data"` or `portlet-content[id]`. Produces a
// verbose "Type attr=value" form when formatted with `%+v`.
func (ev Event) Format(f fmt.State, _ rune) {
	if f.Flag('+') {
		io.WriteString(f, ev.Type.String())
		if ev.IsText() {
			fmt.Fprintf(f, " data=%q", ev.Data)
		} else {
			fmt.Fprintf(f, " id=%q", ev.ID)
		}
		return
	}
	if ev.IsText() {
		fmt.Fprintf(f, "text %q", ev.Data)
	} else {
		fmt.Fprintf(f, "%v[%v]", ev.Type, ev.ID)
	}
}
