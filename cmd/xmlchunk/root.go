package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jcorbin/xmlchunk/internal/charevent"
	"github.com/jcorbin/xmlchunk/internal/chunkconfig"
	"github.com/jcorbin/xmlchunk/internal/chunking"
	"github.com/jcorbin/xmlchunk/internal/logging"
	"github.com/jcorbin/xmlchunk/internal/xmlstream"
)

const rootLongDesc string = `xmlchunk chunks XML documents into character events.

Every document is serialized back to text, except that trigger elements and
text matching trigger patterns are replaced by placeholder events. Triggers
are read from a TOML configuration file; see --config.

Examples:
  xmlchunk events -c portal.toml page.xml
  xmlchunk render -c portal.toml -o page.html page.xml`

const rootShortDesc string = "Chunk XML documents into character events"

type globalOptions struct {
	config   string
	debug    bool
	jsonLog  bool
	pretty   bool
	keepDecl bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:          "xmlchunk",
		Short:        rootShortDesc,
		Long:         rootLongDesc,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.config, "config", "c", "", "Trigger configuration file (TOML)")
	pf.BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")
	pf.BoolVar(&opts.jsonLog, "json", false, "Log JSON records")
	pf.BoolVar(&opts.pretty, "pretty", false, "Log colorized, human-friendly records")
	pf.BoolVar(&opts.keepDecl, "keep-declaration", false, "Keep any leading XML declaration")

	cmd.AddCommand(newEventsCmd(opts))
	cmd.AddCommand(newRenderCmd(opts))
	return cmd
}

// pass is one chunking pass over an input document.
type pass struct {
	log    *slog.Logger
	config *chunkconfig.Config
	input  string
	events []charevent.Event
}

// runPass loads configuration, and chunks the input named by args (stdin if
// none, or "-").
func (opts *globalOptions) runPass(cmd *cobra.Command, args []string) (*pass, error) {
	p := &pass{
		log: logging.New(
			logging.WithWriter(cmd.ErrOrStderr()),
			logging.WithDebug(opts.debug),
			logging.WithJSON(opts.jsonLog),
			logging.WithPretty(opts.pretty),
		).With("pass", uuid.NewString()),
		config: &chunkconfig.Config{},
		input:  "-",
	}
	if len(args) > 0 {
		p.input = args[0]
	}

	if opts.config != "" {
		cfg, err := chunkconfig.Load(opts.config)
		if err != nil {
			return nil, err
		}
		p.config = cfg
	}

	elements, patterns, err := p.config.Tables()
	if err != nil {
		return nil, fmt.Errorf("%v: %w", opts.config, err)
	}
	chunkOpts := append(p.config.Options(), chunking.WithLogger(p.log))
	if opts.keepDecl {
		chunkOpts = append(chunkOpts, chunking.WithStripDeclaration(false))
	}

	in, err := openInput(p.input, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	p.log.Debug("chunking",
		"input", p.input,
		"elements", len(elements),
		"patterns", len(patterns))

	if p.events, err = p.chunk(xmlstream.Decode(in), elements, patterns, chunkOpts); err != nil {
		return nil, fmt.Errorf("%v: %w", p.input, err)
	}
	p.log.Info("chunked", "input", p.input, "events", len(p.events))
	return p, nil
}

func (p *pass) chunk(
	in xmlstream.EventReader,
	elements chunking.ElementTable,
	patterns chunking.PatternTable,
	opts []chunking.Option,
) ([]charevent.Event, error) {
	var text bytes.Buffer
	out := xmlstream.NewBufferWriter(&text)
	cr := chunking.NewReader(in, out, &text, elements, patterns, opts...)
	traced := p.log.Enabled(context.Background(), slog.LevelDebug)
	n, err := xmlstream.CopyEventsFunc(out, cr, func(tok xmlstream.Token) error {
		if traced {
			p.log.Debug("event", "type", fmt.Sprintf("%T", tok))
		}
		return nil
	})
	if cerr := cr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	p.log.Debug("copied events", "count", n)
	return cr.CharacterEvents(), nil
}

func openInput(name string, stdin io.Reader) (io.Reader, error) {
	if name == "-" {
		return io.NopCloser(stdin), nil
	}
	return os.Open(name)
}
