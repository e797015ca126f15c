package main

import (
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/docexpr/docexpr"
	"github.com/docexpr/docexpr/value"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const replBanner = `
  _____                   _____
 |  __ \                 | ____|_  ___ __  _ __
 | |  | | ___   ___ _____|  _| \ \/ / '_ \| '__|
 | |  | |/ _ \ / __|______| |___ >  <| |_) | |
 | |__| | (_) | (__       |_____/_/\_\ .__/|_|
 |_____/ \___/ \___|                 |_|
`

const replLine = "----------------------------------------------------------------"

var (
	blueColor  = color.New(color.FgBlue)
	greenColor = color.New(color.FgGreen)
)

func newReplCmd() *cobra.Command {
	var docPath string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session for exploring a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := value.Nil
			if docPath != "" {
				raw, err := os.ReadFile(docPath)
				if err != nil {
					fatalf("[INPUT ERROR] %v", err)
				}
				decoded, err := decodeDocument(raw, formatFromExt(docPath))
				if err != nil {
					fatalf("[INPUT ERROR] %v", err)
				}
				doc = decoded
			}
			runRepl(doc)
			return nil
		},
	}
	cmd.Flags().StringVar(&docPath, "doc", "", "JSON or YAML document to query (defaults to null)")
	return cmd
}

func formatFromExt(path string) string {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return "yaml"
	}
	return "json"
}

func printBanner() {
	blueColor.Printf("%s\n", replLine)
	greenColor.Printf("%s\n", replBanner)
	blueColor.Printf("%s\n", replLine)
	cyanColor.Println("Type an expression and press enter. Ctrl-D to quit.")
	blueColor.Printf("%s\n", replLine)
}

func runRepl(doc value.Value) {
	printBanner()

	rl, err := readline.New("docexpr> ")
	if err != nil {
		fatalf("[REPL ERROR] %v", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			os.Stdout.WriteString("Bye!\n")
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			os.Stdout.WriteString("Bye!\n")
			return
		}
		rl.SaveHistory(line)
		evalLine(line, doc)
	}
}

func evalLine(line string, doc value.Value) {
	expr, err := docexpr.Compile(line)
	if err != nil {
		redColor.Printf("%v\n", err)
		return
	}
	result, err := expr.Search(doc)
	if err != nil {
		redColor.Printf("%v\n", err)
		return
	}
	yellowColor.Printf("%s\n", result.String())
}
