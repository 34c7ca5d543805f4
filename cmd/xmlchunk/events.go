package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const eventsLongDesc string = `Print the character events of an XML document.

Events are listed in document order, one per line: literal text chunks, and
placeholders for trigger elements and pattern matches.

Examples:
  xmlchunk events -c portal.toml page.xml
  xmlchunk events --verbose < page.xml`

const eventsShortDesc string = "Print character events"

func newEventsCmd(opts *globalOptions) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "events [file]",
		Short: eventsShortDesc,
		Long:  eventsLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.runPass(cmd, args)
			if err != nil {
				return err
			}
			format := "%v. %v\n"
			if verbose {
				format = "%v. %+v\n"
			}
			w := cmd.OutOrStdout()
			for i, ev := range p.events {
				if _, err := fmt.Fprintf(w, format, i+1, ev); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print verbose event detail")
	return cmd
}
