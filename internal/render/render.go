// Package render writes chunked character events back out as text,
// substituting resolved content for every placeholder.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/russross/blackfriday"

	"github.com/jcorbin/xmlchunk/internal/charevent"
)

// ErrUnresolved is returned when a Resolver has no content for a placeholder.
var ErrUnresolved = errors.New("unresolved placeholder")

// Resolver is the interface implemented by placeholder content providers.
type Resolver interface {
	Resolve(ev charevent.Event) (string, error)
}

// ResolverFunc is a functional adaptor for Resolver.
type ResolverFunc func(ev charevent.Event) (string, error)

// Resolve calls the receiver function pointer.
func (f ResolverFunc) Resolve(ev charevent.Event) (string, error) { return f(ev) }

// Write writes all text event data into w, and the resolved content for every
// placeholder event.
// Stops on the first resolve or write error, returning the number of bytes
// written into w and any error.
func Write(w io.Writer, events []charevent.Event, res Resolver) (n int64, err error) {
	ws := writeState{w: w}
	for _, ev := range events {
		s := ev.Data
		if !ev.IsText() {
			if s, err = res.Resolve(ev); err != nil {
				return ws.n, fmt.Errorf("resolving %v: %w", ev, err)
			}
		}
		if _, err = io.WriteString(&ws, s); err != nil {
			break
		}
	}
	return ws.n, err
}

// Contents is a Resolver over static content, keyed by placeholder type and
// then id.
type Contents map[charevent.Type]map[string]string

// Set stores content for placeholders of the given type and id.
func (cs Contents) Set(t charevent.Type, id, content string) {
	byID := cs[t]
	if byID == nil {
		byID = make(map[string]string)
		cs[t] = byID
	}
	byID[id] = content
}

// Resolve returns stored content, or an ErrUnresolved error.
func (cs Contents) Resolve(ev charevent.Event) (string, error) {
	if s, ok := cs[ev.Type][ev.ID]; ok {
		return s, nil
	}
	return "", ErrUnresolved
}

// Markdown is a Resolver that renders the content resolved by another from
// markdown into HTML. If Types is non-empty, only content for those types is
// rendered; other content passes through.
type Markdown struct {
	Resolver
	Types map[charevent.Type]bool
}

var markdownExtensions = blackfriday.WithExtensions(0 |
	blackfriday.NoIntraEmphasis |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.SpaceHeadings)

// Resolve resolves ev, rendering its content as markdown.
func (md Markdown) Resolve(ev charevent.Event) (string, error) {
	s, err := md.Resolver.Resolve(ev)
	if err != nil || (len(md.Types) > 0 && !md.Types[ev.Type]) {
		return s, err
	}
	return string(blackfriday.Run([]byte(s), markdownExtensions)), nil
}

type writeState struct {
	w   io.Writer
	n   int64
	err error
}

func (ws *writeState) Write(p []byte) (n int, err error) {
	if err = ws.err; err == nil {
		n, err = ws.w.Write(p)
		ws.n += int64(n)
		ws.err = err
	}
	return n, err
}
