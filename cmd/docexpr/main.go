/*
Command docexpr is the entry point for the document-query CLI: a `query`
subcommand that runs one expression against a JSON or YAML document, and
a `repl` subcommand for interactive exploration. Grounded on the
teacher's main/main.go (banner/version/author constants, colored
stdout/stderr) and repl/repl.go (readline-backed interactive loop), but
restructured onto cobra/pflag for subcommands and flags rather than the
teacher's bare os.Args switch, since SPEC_FULL.md §7 calls for a proper
flag surface (--format, --legacy-literals, --ast, --doc).
*/
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// VERSION is the CLI's reported version.
const VERSION = "v1.0.0"

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "docexpr",
		Short:   "Query JSON and YAML documents with a JMESPath-like expression language",
		Version: VERSION,
	}
	root.AddCommand(newQueryCmd())
	root.AddCommand(newReplCmd())
	return root
}

func fatalf(format string, args ...interface{}) {
	redColor.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
