// Package chunkconfig loads chunking trigger configuration from TOML.
//
// Example:
//
//	strip_declaration = true
//	markdown = ["portlet-help"]
//
//	[[element]]
//	name = "channel"
//	kind = "portlet-content"
//	id_attr = "ID"
//
//	[[pattern]]
//	regex = '\{\{title:(?P<win>[^}]+)\}\}'
//	kind = "portlet-title"
//	group = "win"
//
//	[[pattern]]
//	regex = '&nbsp;'
//	kind = "text"
//	text = "&#160;"
//
//	[content.portlet-content]
//	w1 = "<div>...</div>"
//
// Patterns apply in file order. An element name listed twice keeps its last
// entry. The "text" kind replaces its trigger with fixed text instead of a
// placeholder.
package chunkconfig

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jcorbin/xmlchunk/internal/charevent"
	"github.com/jcorbin/xmlchunk/internal/chunking"
	"github.com/jcorbin/xmlchunk/internal/placeholder"
	"github.com/jcorbin/xmlchunk/internal/render"
)

// TextKind is the kind of triggers that generate literal text.
const TextKind = "text"

var errUndecoded = errors.New("unknown configuration keys")

// Config is a chunking configuration.
type Config struct {
	StripDeclaration *bool                        `toml:"strip_declaration"`
	Markdown         []string                     `toml:"markdown"`
	Elements         []Element                    `toml:"element"`
	Patterns         []Pattern                    `toml:"pattern"`
	Content          map[string]map[string]string `toml:"content"`
}

// Element configures a trigger element.
type Element struct {
	Name   string `toml:"name"`
	Kind   string `toml:"kind"`
	IDAttr string `toml:"id_attr"`
	Text   string `toml:"text"`
}

// Pattern configures a trigger pattern.
type Pattern struct {
	Regex string `toml:"regex"`
	Kind  string `toml:"kind"`
	Group string `toml:"group"`
	Text  string `toml:"text"`
}

// Load reads a configuration file.
func Load(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("loading %v: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("loading %v: %w", path, err)
	}
	return &cfg, nil
}

// Parse reads configuration from a string.
func Parse(data string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, err
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = key.String()
	}
	sort.Strings(names)
	return fmt.Errorf("%w: %v", errUndecoded, strings.Join(names, ", "))
}

// Tables builds chunking trigger tables.
func (cfg *Config) Tables() (chunking.ElementTable, chunking.PatternTable, error) {
	elements := make(chunking.ElementTable, len(cfg.Elements))
	for i, el := range cfg.Elements {
		if el.Name == "" {
			return nil, nil, fmt.Errorf("element[%d]: missing name", i)
		}
		src, err := newSource(el.Kind, el.Text, placeholder.Source{Attr: el.IDAttr})
		if err != nil {
			return nil, nil, fmt.Errorf("element[%d] %q: %w", i, el.Name, err)
		}
		elements[el.Name] = src
	}

	patterns := make(chunking.PatternTable, 0, len(cfg.Patterns))
	for i, pat := range cfg.Patterns {
		if pat.Regex == "" {
			return nil, nil, fmt.Errorf("pattern[%d]: missing regex", i)
		}
		re, err := regexp.Compile(pat.Regex)
		if err != nil {
			return nil, nil, fmt.Errorf("pattern[%d]: %w", i, err)
		}
		if pat.Group != "" && re.SubexpIndex(pat.Group) < 0 {
			return nil, nil, fmt.Errorf("pattern[%d] %q: no group named %q", i, pat.Regex, pat.Group)
		}
		src, err := newSource(pat.Kind, pat.Text, placeholder.Source{Group: pat.Group})
		if err != nil {
			return nil, nil, fmt.Errorf("pattern[%d] %q: %w", i, pat.Regex, err)
		}
		patterns.Add(re, src)
	}

	return elements, patterns, nil
}

func newSource(kind, text string, src placeholder.Source) (chunking.Source, error) {
	if kind == TextKind {
		return placeholder.Literal(text), nil
	}
	typ, err := placeholderType(kind)
	if err != nil {
		return nil, err
	}
	src.Type = typ
	return src, nil
}

func placeholderType(kind string) (charevent.Type, error) {
	typ, err := charevent.ParseType(kind)
	if err != nil {
		return typ, err
	}
	if !typ.IsPlaceholder() {
		return typ, fmt.Errorf("%q is not a placeholder kind", kind)
	}
	return typ, nil
}

// Options returns chunking Reader options.
func (cfg *Config) Options() []chunking.Option {
	var opts []chunking.Option
	if cfg.StripDeclaration != nil {
		opts = append(opts, chunking.WithStripDeclaration(*cfg.StripDeclaration))
	}
	return opts
}

// Resolver returns a render.Resolver over the configured content tables,
// rendering markdown for the configured kinds.
func (cfg *Config) Resolver() (render.Resolver, error) {
	contents := render.Contents{}
	for kind, byID := range cfg.Content {
		typ, err := placeholderType(kind)
		if err != nil {
			return nil, fmt.Errorf("content: %w", err)
		}
		for id, content := range byID {
			contents.Set(typ, id, content)
		}
	}
	if len(cfg.Markdown) == 0 {
		return contents, nil
	}
	md := render.Markdown{
		Resolver: contents,
		Types:    make(map[charevent.Type]bool, len(cfg.Markdown)),
	}
	for _, kind := range cfg.Markdown {
		typ, err := placeholderType(kind)
		if err != nil {
			return nil, fmt.Errorf("markdown: %w", err)
		}
		md.Types[typ] = true
	}
	return md, nil
}
