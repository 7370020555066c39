package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/domscript/dom"
	"github.com/chrisuehlinger/domscript/html"
	"github.com/chrisuehlinger/domscript/internal/watch"
	"github.com/chrisuehlinger/domscript/js"
)

type runOptions struct {
	eval  []string
	dump  bool
	watch bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <file.html>",
		Short: "Run a document's inline scripts",
		Long: `
		run parses the document, binds it into a fresh JavaScript runtime and
		executes every inline script in document order. Each --eval expression
		runs afterwards and its result is printed.
		`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := root.env(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !opts.watch {
				return e.run(out, args[0], opts)
			}

			if err := e.run(out, args[0], opts); err != nil {
				e.log.WithError(err).Error("run failed")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			e.log.WithField("file", args[0]).Info("watching for changes")
			return watch.File(ctx, args[0], watch.DefaultDebounce, e.log, func() {
				if err := e.run(out, args[0], opts); err != nil {
					e.log.WithError(err).Error("run failed")
				}
			})
		},
	}
	cmd.Flags().StringArrayVarP(&opts.eval, "eval", "e", nil, "expression to evaluate after the scripts (repeatable)")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "print the document after running")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "run again whenever the file changes")
	return cmd
}

func (e *env) run(out io.Writer, path string, opts *runOptions) error {
	doc, se, scriptErrs, err := e.execute(path)
	if err != nil {
		return err
	}

	for _, code := range opts.eval {
		v, err := se.Runtime().Execute(code)
		if err != nil {
			return errors.Wrapf(err, "eval %q", code)
		}
		fmt.Fprintln(out, v.String())
	}

	if opts.dump {
		if err := printDocument(out, doc); err != nil {
			return err
		}
	}

	if len(scriptErrs) > 0 {
		return errors.Errorf("%d script(s) failed", len(scriptErrs))
	}
	return nil
}

// execute loads path and runs its scripts. Script failures are logged and
// returned separately; they do not stop later scripts.
func (e *env) execute(path string) (*dom.Document, *js.ScriptExecutor, []error, error) {
	doc, err := e.load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	rt := js.NewRuntime()
	rt.SetLogger(e.log.WithField("component", "js"))
	se := js.NewScriptExecutor(rt, doc)
	doc.OnSubmit(func(form *dom.Element) {
		action, _ := form.GetAttribute("action")
		e.log.WithField("action", action).Info("submit ignored, no network")
	})
	return doc, se, se.ExecuteScripts(), nil
}

func printDocument(out io.Writer, doc *dom.Document) error {
	formatted, err := html.Format(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, formatted)
	return err
}
