package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calcore"
)

func (a *app) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens expr...",
		Short: "Print the tokens of an expression.",
		Long: `Print the tokens of an expression, one per line, each with its
1-based column. Multiple arguments are joined with spaces.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toks, err := calcore.Tokenize(strings.Join(args, " "))
			if err != nil {
				return a.fail(cmd, err)
			}
			a.log.Debugf("%d tokens", len(toks))
			printTokens(cmd, toks)
			return nil
		},
	}
}

func printTokens(cmd *cobra.Command, toks []calcore.Token) {
	for _, tok := range toks {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%v\n", tok.Pos, tok)
	}
}

func (a *app) astCmd() *cobra.Command {
	var gosyntax bool
	cmd := &cobra.Command{
		Use:   "ast expr...",
		Short: "Print the parse tree of an expression.",
		Long: `Print the parse tree of an expression. Each node is enclosed in
brackets, alternating between round and square by depth. With --go, print
the tree as Go syntax instead. Multiple arguments are joined with spaces.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := calcore.ParseString(strings.Join(args, " "), a.parseOptions()...)
			if err != nil {
				return a.fail(cmd, err)
			}
			printTree(cmd, e, gosyntax)
			return nil
		},
	}
	cmd.Flags().BoolVar(&gosyntax, "go", false, "print the tree as Go syntax")
	return cmd
}

func printTree(cmd *cobra.Command, e calcore.Expr, gosyntax bool) {
	if gosyntax {
		fmt.Fprintln(cmd.OutOrStdout(), repr.String(e, repr.Indent("  ")))
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), e)
}
