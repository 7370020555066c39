package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/domscript/binding"
	"github.com/chrisuehlinger/domscript/config"
	"github.com/chrisuehlinger/domscript/dom"
	"github.com/chrisuehlinger/domscript/html"
	"github.com/chrisuehlinger/domscript/internal/logging"
)

type rootOptions struct {
	configPath string
	level      string
	verbose    bool
}

// NewRootCmd builds the domscript command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "domscript",
		Short: "Run scripts against HTML documents and inspect element bindings",
		Long: `
		domscript loads an HTML document, binds its elements into a JavaScript
		runtime and runs the document's inline scripts. It can also list the
		members an element exposes at each scripting level.
		`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ./"+config.FileName+" if present)")
	root.PersistentFlags().StringVarP(&opts.level, "level", "l", "", "scripting level: dom0, dom1 or dom2")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(newRunCmd(opts), newMembersCmd(opts), newDumpCmd(opts))
	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// env is what every subcommand needs: the resolved config, a logger and the
// scripting level.
type env struct {
	cfg   *config.Config
	log   *logrus.Logger
	level binding.Level
}

func (o *rootOptions) env(cmd *cobra.Command) (*env, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadOptional(".")
	}
	if err != nil {
		return nil, err
	}
	if o.level != "" {
		cfg.Script.Level = o.level
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}

	level, err := cfg.ScriptLevel()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewWithOutput(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	binding.SetLogger(logger.WithField("component", "binding"))
	return &env{cfg: cfg, log: logger, level: level}, nil
}

func (e *env) load(path string) (*dom.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open document")
	}
	defer f.Close()

	doc, err := html.ParseReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	doc.SetLevel(e.level)
	doc.SetLogger(e.log.WithField("component", "dom"))
	return doc, nil
}
