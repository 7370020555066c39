package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/domscript/dom"
	"github.com/chrisuehlinger/domscript/html"
)

type dumpOptions struct {
	raw        bool
	runScripts bool
}

func newDumpCmd(root *rootOptions) *cobra.Command {
	opts := &dumpOptions{}
	cmd := &cobra.Command{
		Use:   "dump <file.html>",
		Short: "Print the parsed document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := root.env(cmd)
			if err != nil {
				return err
			}

			var doc *dom.Document
			if opts.runScripts {
				doc, _, _, err = e.execute(args[0])
			} else {
				doc, err = e.load(args[0])
			}
			if err != nil {
				return err
			}

			if opts.raw {
				return html.Render(cmd.OutOrStdout(), doc)
			}
			return printDocument(cmd.OutOrStdout(), doc)
		},
	}
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print without indentation")
	cmd.Flags().BoolVar(&opts.runScripts, "run", false, "run the document's scripts first")
	return cmd
}
