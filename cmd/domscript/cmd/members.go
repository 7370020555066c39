package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/domscript/binding"
	"github.com/chrisuehlinger/domscript/dom"
)

type membersOptions struct {
	all        bool
	runScripts bool
}

func newMembersCmd(root *rootOptions) *cobra.Command {
	opts := &membersOptions{}
	cmd := &cobra.Command{
		Use:   "members <file.html> <element-id>",
		Short: "List the members an element exposes to scripts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := root.env(cmd)
			if err != nil {
				return err
			}

			var doc *dom.Document
			if opts.runScripts {
				var scriptErrs []error
				doc, _, scriptErrs, err = e.execute(args[0])
				if len(scriptErrs) > 0 {
					e.log.WithField("failed", len(scriptErrs)).Warn("some scripts failed")
				}
			} else {
				doc, err = e.load(args[0])
			}
			if err != nil {
				return err
			}

			el := doc.GetElementByID(args[1])
			if el == nil {
				return errors.Errorf("no element with id %q", args[1])
			}
			filter := binding.DefaultFilter
			if opts.all {
				filter = binding.AllMembers
			}
			return writeMembers(cmd.OutOrStdout(), el, filter)
		},
	}
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "include hidden members")
	cmd.Flags().BoolVar(&opts.runScripts, "run", false, "run the document's scripts first, so expandos are listed")
	return cmd
}

func writeMembers(out io.Writer, el *dom.Element, filter binding.Filter) error {
	fmt.Fprintf(out, "%s (%s) at %s\n", el, el.TypeToken(), el.ScriptLevel())
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tSOURCE\tSINCE\tFLAGS")
	for _, mi := range el.Members(filter) {
		since := "-"
		if mi.Source == binding.BuiltIn {
			since = mi.Since.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mi.Name, mi.Kind, mi.Source, since, memberFlags(mi))
	}
	return tw.Flush()
}

func memberFlags(mi binding.MemberInfo) string {
	var flags []string
	if mi.ReadOnly {
		flags = append(flags, "readonly")
	}
	if mi.Static {
		flags = append(flags, "static")
	}
	if mi.Hidden {
		flags = append(flags, "hidden")
	}
	if len(mi.Params) > 0 {
		names := make([]string, len(mi.Params))
		for i, p := range mi.Params {
			names[i] = p.Name
			if p.Optional {
				names[i] += "?"
			}
		}
		flags = append(flags, "("+strings.Join(names, ", ")+")")
	}
	return strings.Join(flags, " ")
}
