package render_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/xmlchunk/internal/charevent"
	. "github.com/jcorbin/xmlchunk/internal/render"
)

func TestWrite(t *testing.T) {
	contents := Contents{}
	contents.Set(PortletContent, "w1", "<div>one</div>")
	contents.Set(PortletTitle, "w1", "One")

	events := []Event{
		Text("<h1>"),
		Placeholder(PortletTitle, "w1"),
		Text("</h1>"),
		Placeholder(PortletContent, "w1"),
	}

	var out bytes.Buffer
	n, err := Write(&out, events, contents)
	require.NoError(t, err, "must write")
	assert.Equal(t, "<h1>One</h1><div>one</div>", out.String())
	assert.Equal(t, int64(out.Len()), n, "expected byte count")
}

func TestWrite_unresolved(t *testing.T) {
	var out bytes.Buffer
	n, err := Write(&out, []Event{
		Text("a"),
		Placeholder(PortletHelp, "w9"),
		Text("b"),
	}, Contents{})
	assert.ErrorIs(t, err, ErrUnresolved)
	assert.Contains(t, err.Error(), "portlet-help[w9]", "error should name the placeholder")
	assert.Equal(t, int64(1), n, "should stop at the unresolved placeholder")
	assert.Equal(t, "a", out.String())
}

func TestWrite_writeError(t *testing.T) {
	errFull := errors.New("full")
	w := &limitWriter{limit: 2, err: errFull}
	n, err := Write(w, []Event{Text("ab"), Text("cd")}, Contents{})
	assert.ErrorIs(t, err, errFull)
	assert.Equal(t, int64(2), n)
}

func TestMarkdown(t *testing.T) {
	contents := Contents{}
	contents.Set(PortletHelp, "w1", "some **help**")
	contents.Set(PortletTitle, "w1", "*Title*")

	md := Markdown{
		Resolver: contents,
		Types:    map[Type]bool{PortletHelp: true},
	}

	s, err := md.Resolve(Placeholder(PortletHelp, "w1"))
	require.NoError(t, err)
	assert.Equal(t, "<p>some <strong>help</strong></p>\n", s, "help is rendered")

	s, err = md.Resolve(Placeholder(PortletTitle, "w1"))
	require.NoError(t, err)
	assert.Equal(t, "*Title*", s, "title passes through")

	_, err = md.Resolve(Placeholder(PortletHelp, "w2"))
	assert.ErrorIs(t, err, ErrUnresolved)

	all := Markdown{Resolver: contents}
	s, err = all.Resolve(Placeholder(PortletTitle, "w1"))
	require.NoError(t, err)
	assert.Equal(t, "<p><em>Title</em></p>\n", s, "all types rendered without a filter")
}

type limitWriter struct {
	limit int
	err   error
}

func (lw *limitWriter) Write(p []byte) (int, error) {
	if len(p) > lw.limit {
		n := lw.limit
		lw.limit = 0
		return n, lw.err
	}
	lw.limit -= len(p)
	return len(p), nil
}
