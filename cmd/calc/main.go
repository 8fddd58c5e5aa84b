// Command calc evaluates arithmetic expressions.
//
//	calc '1+2/3*4' '(1%4)^1.2'
//	calc -n --in exprs.txt
//	calc ast --go '2^3^2'
//	calc repl
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jcgregorio/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calcore"
)

// errFailed reports that a failure was already printed.
var errFailed = errors.New("evaluation failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if err != errFailed {
			fmt.Fprintln(os.Stderr, "calc:", err)
		}
		os.Exit(1)
	}
}

// app is the state shared by all commands of one invocation.
type app struct {
	flags globalFlags
	cfg   Config
	log   *logger.Logger
	red   *color.Color
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var ef evalFlags
	root := &cobra.Command{
		Use:   "calc [expr...]",
		Short: "Evaluate arithmetic expressions.",
		Long: `Evaluate arithmetic expressions of numbers, parentheses, and the
operators + - * / % ^. Each argument is a separate expression. With no
arguments, the expression is read from standard input or --in.

All binary operators are left-associative, including ^. A leading + or -
applies only to the number immediately after it. Results are rounded to
8 decimal places.
`,
		Args:              cobra.ArbitraryArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEval(cmd, args, &ef)
		},
	}
	a.flags.Register(root.PersistentFlags())
	ef.Register(root.Flags())
	root.AddCommand(a.tokensCmd(), a.astCmd(), a.replCmd())
	return root
}

// setup loads the configuration and creates the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(a.flags.config)
	if err != nil {
		return err
	}
	if err := a.flags.apply(cmd.Flags(), &cfg); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.NewFromOptions(&logger.Options{
		SyncWriter:   os.Stderr,
		IncludeDebug: a.flags.verbose,
	})
	a.red = color.New(color.FgRed)
	if !cfg.Color {
		a.red.DisableColor()
	}
	a.log.Debugf("config: %+v", a.cfg)
	return nil
}

func (a *app) parseOptions() []calcore.ParseOption {
	return []calcore.ParseOption{calcore.MaxDepth(a.cfg.MaxDepth)}
}

// fail prints err in red and returns errFailed.
func (a *app) fail(cmd *cobra.Command, err error) error {
	a.red.Fprintln(cmd.ErrOrStderr(), err)
	return errFailed
}
