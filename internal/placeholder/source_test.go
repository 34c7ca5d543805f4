package placeholder_test

import (
	"encoding/xml"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/xmlchunk/internal/charevent"
	"github.com/jcorbin/xmlchunk/internal/chunking"
	. "github.com/jcorbin/xmlchunk/internal/placeholder"
	"github.com/jcorbin/xmlchunk/internal/xmlstream"
)

func TestSource_element(t *testing.T) {
	start := xml.StartElement{
		Name: xml.Name{Local: "channel"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "id"}, Value: "n1"},
			{Name: xml.Name{Local: "windowId"}, Value: "w7"},
		},
	}

	events, err := Source{Type: PortletContent}.ElementEvents(start, nil)
	require.NoError(t, err)
	assert.Equal(t, []Event{Placeholder(PortletContent, "n1")}, events, "default attribute")

	events, err = Source{Type: PortletHeader, Attr: "windowId"}.ElementEvents(start, nil)
	require.NoError(t, err)
	assert.Equal(t, []Event{Placeholder(PortletHeader, "w7")}, events, "named attribute")

	_, err = Source{Type: PortletHeader, Attr: "nope"}.ElementEvents(start, nil)
	assert.Error(t, err, "missing attribute")

	_, err = Source{}.ElementEvents(start, nil)
	assert.Error(t, err, "missing type")

	nsStart := xml.StartElement{
		Name: xml.Name{Space: "up", Local: "channel"},
		Attr: []xml.Attr{
			{Name: xml.Name{Space: "xmlns", Local: "id"}, Value: "urn:id"},
			{Name: xml.Name{Local: "id"}, Value: "n2"},
		},
	}
	events, err = Source{Type: PortletContent}.ElementEvents(nsStart, nil)
	require.NoError(t, err)
	assert.Equal(t, []Event{Placeholder(PortletContent, "n2")}, events, "namespace declarations are not ids")
}

func TestSource_match(t *testing.T) {
	var patterns chunking.PatternTable
	patterns.MustAdd(`\{\{title:(?P<win>[^}]*)\}\}`, Source{Type: PortletTitle, Group: "win"})
	patterns.MustAdd(`@@help@@`, Source{Type: PortletHelp})

	events, err := chunking.Split("<h1>{{title:w1}}</h1>@@help@@", patterns)
	require.NoError(t, err, "must split")
	assert.Equal(t, []Event{
		Text("<h1>"),
		Placeholder(PortletTitle, "w1"),
		Text("</h1>"),
		Placeholder(PortletHelp, "@@help@@"),
	}, events)

	_, err = chunking.Split("{{title:}}", patterns)
	assert.Error(t, err, "empty id")

	m := chunking.Match{Pattern: regexp.MustCompile(`x`), Text: "x", Groups: []string{"x"}}
	_, err = Source{Type: PortletTitle, Group: "win"}.MatchEvents(m)
	assert.Error(t, err, "missing group")
}

func TestLiteral(t *testing.T) {
	events, err := chunking.Chunk(
		xmlstream.Decode(strings.NewReader(`<p><sep/>a<br-marker/></p>`)),
		chunking.ElementTable{
			"sep":       Literal(""),
			"br-marker": Literal("<br/>"),
		}, nil)
	require.NoError(t, err, "must chunk")
	assert.Equal(t, []Event{
		Text("<p>"),
		Text("a"),
		Text("<br/>"),
		Text("</p>"),
	}, events)
}
