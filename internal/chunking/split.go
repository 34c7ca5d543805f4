package chunking

import (
	"fmt"

	"github.com/jcorbin/xmlchunk/internal/charevent"
)

// Split breaks a text chunk into character events.
//
// Patterns apply in table order. Each pattern is applied to every text event
// produced so far: all of its non-overlapping matches are replaced by the
// events that its source generates, keeping any text around them. Placeholder
// events are never split again. Zero-length text events are dropped, so an
// empty chunk yields no events.
//
// Concatenating the resulting text, with each generated run of events standing
// in for the text that it matched, always reproduces chunk.
func Split(chunk string, patterns PatternTable) ([]charevent.Event, error) {
	events := appendText(nil, chunk)
	for _, ps := range patterns {
		var err error
		if events, err = splitPattern(events, ps); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func splitPattern(events []charevent.Event, ps PatternSource) ([]charevent.Event, error) {
	out := make([]charevent.Event, 0, len(events))
	for _, ev := range events {
		if !ev.IsText() {
			out = append(out, ev)
			continue
		}
		locs := ps.Pattern.FindAllStringSubmatchIndex(ev.Data, -1)
		if len(locs) == 0 {
			out = append(out, ev)
			continue
		}
		last := 0
		for _, loc := range locs {
			out = appendText(out, ev.Data[last:loc[0]])
			generated, err := ps.Source.MatchEvents(newMatch(ps.Pattern, ev.Data, loc))
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", ps.Pattern, err)
			}
			out = append(out, generated...)
			last = loc[1]
		}
		out = appendText(out, ev.Data[last:])
	}
	return out, nil
}

func appendText(events []charevent.Event, s string) []charevent.Event {
	if s == "" {
		return events
	}
	return append(events, charevent.Text(s))
}
