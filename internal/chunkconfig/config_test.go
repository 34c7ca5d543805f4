package chunkconfig_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/xmlchunk/internal/charevent"
	. "github.com/jcorbin/xmlchunk/internal/chunkconfig"
	"github.com/jcorbin/xmlchunk/internal/chunking"
	"github.com/jcorbin/xmlchunk/internal/xmlstream"
)

const testConfig = `
strip_declaration = false
markdown = ["portlet-help"]

[[element]]
name = "channel"
kind = "portlet-content"
id_attr = "ID"

[[element]]
name = "nbsp"
kind = "text"
text = "&#160;"

[[pattern]]
regex = '\{\{title:(?P<win>[^}]+)\}\}'
kind = "portlet-title"
group = "win"

[[pattern]]
regex = '\{\{help:(?P<win>[^}]+)\}\}'
kind = "portlet-help"
group = "win"

[content.portlet-content]
w1 = "<div>one</div>"

[content.portlet-title]
w1 = "One"

[content.portlet-help]
w1 = "read **this**"
`

func TestConfig(t *testing.T) {
	cfg, err := Parse(testConfig)
	require.NoError(t, err, "must parse")

	elements, patterns, err := cfg.Tables()
	require.NoError(t, err, "must build tables")
	assert.Len(t, elements, 2)
	if assert.Len(t, patterns, 2) {
		assert.Equal(t, `\{\{title:(?P<win>[^}]+)\}\}`, patterns[0].Pattern.String(), "patterns keep file order")
	}

	events, err := chunking.Chunk(
		xmlstream.Decode(strings.NewReader(`<?xml version="1.0"?><body><h1>{{title:w1}}<nbsp/></h1><channel ID="w1"/><p>{{help:w1}}</p></body>`)),
		elements, patterns, cfg.Options()...)
	require.NoError(t, err, "must chunk")
	assert.Equal(t, []charevent.Event{
		charevent.Text(`<?xml version="1.0"?><body><h1>`),
		charevent.Placeholder(charevent.PortletTitle, "w1"),
		charevent.Text("&#160;"),
		charevent.Text("</h1>"),
		charevent.Placeholder(charevent.PortletContent, "w1"),
		charevent.Text("<p>"),
		charevent.Placeholder(charevent.PortletHelp, "w1"),
		charevent.Text("</p></body>"),
	}, events)

	res, err := cfg.Resolver()
	require.NoError(t, err, "must build resolver")
	s, err := res.Resolve(charevent.Placeholder(charevent.PortletHelp, "w1"))
	require.NoError(t, err)
	assert.Equal(t, "<p>read <strong>this</strong></p>\n", s, "help is markdown")
	s, err = res.Resolve(charevent.Placeholder(charevent.PortletTitle, "w1"))
	require.NoError(t, err)
	assert.Equal(t, "One", s, "title is not markdown")
}

func TestConfig_errors(t *testing.T) {
	for _, tc := range []struct {
		name string
		data string
		err  string
	}{
		{"unknown key", "bogus = 1", "bogus"},
		{"unknown kind", "[[element]]\nname = \"x\"\nkind = \"nope\"", `unknown character event type "nope"`},
		{"characters kind", "[[element]]\nname = \"x\"\nkind = \"characters\"", "not a placeholder kind"},
		{"missing name", "[[element]]\nkind = \"portlet-content\"", "missing name"},
		{"bad regex", "[[pattern]]\nregex = \"(\"\nkind = \"portlet-title\"", "pattern[0]"},
		{"missing regex", "[[pattern]]\nkind = \"portlet-title\"", "missing regex"},
		{"missing group", "[[pattern]]\nregex = \"x\"\nkind = \"portlet-title\"\ngroup = \"g\"", `no group named "g"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse(tc.data)
			if err == nil {
				_, _, err = cfg.Tables()
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.err)
			}
		})
	}
}

func TestConfig_resolverErrors(t *testing.T) {
	cfg, err := Parse("[content.bogus]\nw1 = \"x\"")
	require.NoError(t, err, "must parse")
	_, err = cfg.Resolver()
	assert.Error(t, err)

	cfg, err = Parse(`markdown = ["characters"]`)
	require.NoError(t, err, "must parse")
	_, err = cfg.Resolver()
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunk.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644), "must write config")
	cfg, err := Load(path)
	require.NoError(t, err, "must load")
	assert.Len(t, cfg.Elements, 2)
	assert.Len(t, cfg.Patterns, 2)
	if assert.NotNil(t, cfg.StripDeclaration) {
		assert.False(t, *cfg.StripDeclaration)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
