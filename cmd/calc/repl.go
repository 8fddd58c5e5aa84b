package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calcore"
)

const replHelp = `Enter an expression to evaluate it. Input with unclosed parentheses
continues on the next line.

  :ast expr      print the parse tree of expr
  :tokens expr   print the tokens of expr
  :help          print this message
  :quit          exit (also Ctrl-D)`

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions interactively.",
		Args:  cobra.NoArgs,
		RunE:  a.runRepl,
	}
}

func (a *app) runRepl(cmd *cobra.Command, _ []string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if path := a.cfg.historyPath(); path != "" {
		if f, err := os.Open(path); err == nil {
			n, _ := ln.ReadHistory(f)
			f.Close()
			a.log.Debugf("read %d history entries from %s", n, path)
		}
		defer func() {
			f, err := os.Create(path)
			if err != nil {
				a.log.Warningf("saving history: %v", err)
				return
			}
			if _, err := ln.WriteHistory(f); err != nil {
				a.log.Warningf("saving history: %v", err)
			}
			f.Close()
		}()
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Type :help for help, :quit to exit.")
	s := session{app: a, cmd: cmd, in: ln, hist: ln.AppendHistory}
	return s.run()
}

// prompter reads a line of input after showing a prompt. It returns io.EOF
// when the input ends.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// session is one run of the REPL.
type session struct {
	app  *app
	cmd  *cobra.Command
	in   prompter
	hist func(string)
}

func (s *session) run() error {
	out := s.cmd.OutOrStdout()
	for {
		src, err := s.read()
		if err == io.EOF {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading input")
		}
		line := strings.TrimSpace(src)
		if line == "" {
			continue
		}
		s.hist(strings.ReplaceAll(src, "\n", " "))
		if strings.HasPrefix(line, ":") {
			if s.meta(line) {
				return nil
			}
			continue
		}
		v, err := calcore.EvalString(src, s.app.parseOptions()...)
		if err != nil {
			s.app.red.Fprintln(s.cmd.ErrOrStderr(), err)
			continue
		}
		fmt.Fprintf(out, s.app.cfg.Format+"\n", v)
	}
}

// read prompts for lines until they form an expression that is complete,
// whether or not it is valid. Ctrl-C discards the lines read so far.
func (s *session) read() (string, error) {
	var b strings.Builder
	for {
		p := s.app.cfg.Prompt
		if b.Len() > 0 {
			p = contPrompt(p)
		}
		line, err := s.in.Prompt(p)
		if err == liner.ErrPromptAborted {
			b.Reset()
			continue
		}
		if err != nil {
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		trimmed := strings.TrimSpace(src)
		if trimmed == "" || strings.HasPrefix(trimmed, ":") {
			return src, nil
		}
		if _, err := calcore.ParseString(src, s.app.parseOptions()...); calcore.IsIncomplete(err) {
			continue
		}
		return src, nil
	}
}

// contPrompt right-aligns a continuation marker under p.
func contPrompt(p string) string {
	n := utf8.RuneCountInString(p)
	if n <= 4 {
		return "... "
	}
	return strings.Repeat(" ", n-4) + "... "
}

// meta runs a REPL command and reports whether the REPL should exit.
func (s *session) meta(line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(s.cmd.OutOrStdout(), replHelp)
	case ":ast":
		e, err := calcore.ParseString(arg, s.app.parseOptions()...)
		if err != nil {
			s.app.red.Fprintln(s.cmd.ErrOrStderr(), err)
			break
		}
		printTree(s.cmd, e, false)
	case ":tokens":
		toks, err := calcore.Tokenize(arg)
		if err != nil {
			s.app.red.Fprintln(s.cmd.ErrOrStderr(), err)
			break
		}
		printTokens(s.cmd, toks)
	default:
		fmt.Fprintf(s.cmd.ErrOrStderr(), "unknown command %s. Type :help for help.\n", name)
	}
	return false
}
