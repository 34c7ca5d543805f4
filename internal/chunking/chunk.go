package chunking

import (
	"bytes"

	"github.com/jcorbin/xmlchunk/internal/charevent"
	"github.com/jcorbin/xmlchunk/internal/xmlstream"
)

// Chunk runs a complete chunking pass over in, serializing every event with an
// xmlstream.BufferWriter, and returns the resulting character events.
// The upstream reader is closed before return.
func Chunk(
	in xmlstream.EventReader,
	elements ElementTable,
	patterns PatternTable,
	opts ...Option,
) ([]charevent.Event, error) {
	var text bytes.Buffer
	out := xmlstream.NewBufferWriter(&text)
	cr := NewReader(in, out, &text, elements, patterns, opts...)
	_, err := xmlstream.CopyEvents(out, cr)
	if cerr := cr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return cr.CharacterEvents(), nil
}
