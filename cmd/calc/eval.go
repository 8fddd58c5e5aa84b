package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zephyrtronium/calcore"
)

// evalFlags are the flags of the root command.
type evalFlags struct {
	in     string
	format string
	lines  bool
	echo   bool
}

// Register adds the flags to fs.
func (f *evalFlags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.in, "in", "", "input file, - for stdin (default stdin if no args given)")
	fs.StringVar(&f.format, "fmt", "", `result formatting string (default from config, else "%g")`)
	fs.BoolVarP(&f.lines, "lines", "n", false, "evaluate each input line as a separate expression")
	fs.BoolVar(&f.echo, "echo", false, "print parse trees")
}

// source is one expression to evaluate with a name for error messages.
type source struct {
	name string
	text string
}

func (a *app) runEval(cmd *cobra.Command, args []string, f *evalFlags) error {
	format := a.cfg.Format
	if cmd.Flags().Changed("fmt") {
		format = f.format
	}
	srcs := make([]source, 0, len(args))
	for i, arg := range args {
		srcs = append(srcs, source{name: "arg " + strconv.Itoa(i+1), text: arg})
	}
	in, err := readInput(cmd, f.in, len(args) == 0)
	if err != nil {
		return err
	}
	if in != nil {
		srcs = append(srcs, splitInput(*in, f.lines)...)
	}

	texts := make([]string, len(srcs))
	for i, src := range srcs {
		texts[i] = src.text
	}
	start := time.Now()
	results, err := calcore.EvalAll(texts, calcore.Parallel(a.cfg.Parallel), calcore.WithParseOptions(a.parseOptions()...))
	a.log.Debugf("evaluated %d expressions in %v", len(texts), time.Since(start))

	out := cmd.OutOrStdout()
	for i, r := range results {
		if r.Err != nil {
			a.red.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", srcs[i].name, r.Err)
			continue
		}
		if f.echo {
			// Successful results always parse.
			e, _ := calcore.ParseString(r.Src, a.parseOptions()...)
			fmt.Fprintf(out, "%v : ", e)
		}
		fmt.Fprintf(out, format+"\n", r.Value)
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		a.log.Debugf("%d of %d expressions failed", len(merr.Errors), len(texts))
		return errFailed
	}
	return err
}

// readInput reads the whole input file, or stdin if name is "-" or if name
// is empty and std is true. The result is nil if there is no input to read.
func readInput(cmd *cobra.Command, name string, std bool) (*source, error) {
	var r io.Reader
	switch {
	case name != "" && name != "-":
		f, err := os.Open(name)
		if err != nil {
			return nil, errors.Wrapf(err, "opening input")
		}
		defer f.Close()
		r = f
	case name == "-", std:
		name = "stdin"
		r = cmd.InOrStdin()
	default:
		return nil, nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return &source{name: name, text: string(b)}, nil
}

// splitInput makes the input one source, or with lines, a source for each
// line which is not blank.
func splitInput(in source, lines bool) []source {
	if !lines {
		return []source{in}
	}
	var srcs []source
	sc := bufio.NewScanner(strings.NewReader(in.text))
	for n := 1; sc.Scan(); n++ {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		srcs = append(srcs, source{name: in.name + ":" + strconv.Itoa(n), text: sc.Text()})
	}
	return srcs
}
