package chunking

import (
	"encoding/xml"
	"regexp"

	"github.com/jcorbin/xmlchunk/internal/charevent"
	"github.com/jcorbin/xmlchunk/internal/xmlstream"
)

// Source is the interface implemented by character event generators.
//
// ElementEvents is called for a trigger element's start; r is scoped to the
// element's subtree, so a source may consume the element's content (up to and
// including its end tag) but nothing after it. Whatever the source leaves
// unread is skipped by the Reader.
//
// MatchEvents is called for every match of a trigger pattern within captured
// text.
type Source interface {
	ElementEvents(start xml.StartElement, r xmlstream.EventReader) ([]charevent.Event, error)
	MatchEvents(m Match) ([]charevent.Event, error)
}

// SourceFuncs is a functional adaptor for Source; nil functions generate no
// events.
type SourceFuncs struct {
	Element func(start xml.StartElement, r xmlstream.EventReader) ([]charevent.Event, error)
	Match   func(m Match) ([]charevent.Event, error)
}

// ElementEvents calls the Element function pointer.
func (sf SourceFuncs) ElementEvents(start xml.StartElement, r xmlstream.EventReader) ([]charevent.Event, error) {
	if sf.Element == nil {
		return nil, nil
	}
	return sf.Element(start, r)
}

// MatchEvents calls the Match function pointer.
func (sf SourceFuncs) MatchEvents(m Match) ([]charevent.Event, error) {
	if sf.Match == nil {
		return nil, nil
	}
	return sf.Match(m)
}

// Match is a pattern match within a text chunk.
type Match struct {
	Pattern *regexp.Regexp
	Text    string   // the whole matched text
	Groups  []string // submatches, Groups[0] == Text; "" for non-participating groups
	Start   int      // offset of Text within the chunk
	End     int
}

func newMatch(re *regexp.Regexp, s string, loc []int) Match {
	m := Match{
		Pattern: re,
		Text:    s[loc[0]:loc[1]],
		Groups:  make([]string, len(loc)/2),
		Start:   loc[0],
		End:     loc[1],
	}
	for i := range m.Groups {
		if a, b := loc[2*i], loc[2*i+1]; a >= 0 {
			m.Groups[i] = s[a:b]
		}
	}
	return m
}

// Group returns the named submatch, and whether the pattern has such a group.
func (m Match) Group(name string) (string, bool) {
	if m.Pattern == nil {
		return "", false
	}
	if i := m.Pattern.SubexpIndex(name); i >= 0 && i < len(m.Groups) {
		return m.Groups[i], true
	}
	return "", false
}

// ElementTable maps element local names to the Source that expands them.
// Being a map, a name has at most one source; builders that register a name
// twice keep the last registration.
type ElementTable map[string]Source

// PatternSource pairs a trigger pattern with the Source that expands its
// matches.
type PatternSource struct {
	Pattern *regexp.Regexp
	Source  Source
}

// PatternTable is an ordered list of trigger patterns; patterns apply in
// table order.
type PatternTable []PatternSource

// Add appends a pattern to the table.
func (pt *PatternTable) Add(re *regexp.Regexp, src Source) {
	*pt = append(*pt, PatternSource{re, src})
}

// MustAdd compiles and appends a pattern to the table, panicking if expr does
// not compile.
func (pt *PatternTable) MustAdd(expr string, src Source) {
	pt.Add(regexp.MustCompile(expr), src)
}
