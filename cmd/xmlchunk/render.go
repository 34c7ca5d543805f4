package main

import (
	"github.com/spf13/cobra"

	"github.com/jcorbin/xmlchunk/internal/render"
)

const renderLongDesc string = `Render an XML document, resolving its placeholders.

Placeholder content is read from the [content] tables of the configuration
file; kinds listed under markdown are rendered from markdown to HTML. Output
files are replaced atomically, and left untouched if rendering fails.

Examples:
  xmlchunk render -c portal.toml page.xml
  xmlchunk render -c portal.toml -o page.html page.xml`

const renderShortDesc string = "Render a document with resolved placeholders"

func newRenderCmd(opts *globalOptions) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: renderShortDesc,
		Long:  renderLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (rerr error) {
			p, err := opts.runPass(cmd, args)
			if err != nil {
				return err
			}
			res, err := p.config.Resolver()
			if err != nil {
				return err
			}

			out, err := openOutput(outPath, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() {
				if cerr := out.Cleanup(); rerr == nil {
					rerr = cerr
				}
			}()

			n, err := render.Write(out, p.events, res)
			if err != nil {
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			p.log.Info("rendered", "output", outPath, "bytes", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "Output file")
	return cmd
}
