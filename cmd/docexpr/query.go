package main

import (
	"encoding/json"
	"os"

	"github.com/docexpr/docexpr"
	"github.com/docexpr/docexpr/value"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newQueryCmd() *cobra.Command {
	var (
		format         string
		legacyLiterals bool
		showAST        bool
	)
	cmd := &cobra.Command{
		Use:   "query <expression> [file]",
		Short: "Evaluate an expression against a JSON or YAML document",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := docexpr.Compile(args[0], docexpr.WithLegacyLiterals(legacyLiterals))
			if err != nil {
				fatalf("[PARSE ERROR] %v", err)
			}
			if showAST {
				cyanColor.Fprintln(os.Stdout, expr.String())
			}

			doc, err := readDocument(args, format)
			if err != nil {
				fatalf("[INPUT ERROR] %v", err)
			}

			result, err := expr.Search(doc)
			if err != nil {
				fatalf("[EVAL ERROR] %v", err)
			}

			out, err := encodeResult(result, format)
			if err != nil {
				fatalf("[OUTPUT ERROR] %v", err)
			}
			yellowColor.Fprintln(os.Stdout, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "input and output document format: json or yaml")
	cmd.Flags().BoolVar(&legacyLiterals, "legacy-literals", false, "allow backtick literals that aren't strict JSON")
	cmd.Flags().BoolVar(&showAST, "ast", false, "print the parsed expression tree before evaluating")
	return cmd
}

// readDocument loads args[1] (or stdin when no file is given) and decodes
// it into a value.Value, per format.
func readDocument(args []string, format string) (value.Value, error) {
	var raw []byte
	var err error
	if len(args) == 2 {
		raw, err = os.ReadFile(args[1])
	} else {
		raw, err = readAllStdin()
	}
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw, format)
}

func decodeDocument(raw []byte, format string) (value.Value, error) {
	var decoded interface{}
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(raw, &decoded); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, err
		}
	}
	return value.FromGo(decoded, value.NewOrderedMap), nil
}

func encodeResult(v value.Value, format string) (string, error) {
	goVal := value.ToGo(v)
	switch format {
	case "yaml":
		out, err := yaml.Marshal(goVal)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		out, err := json.MarshalIndent(goVal, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

func readAllStdin() ([]byte, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}
	if (info.Mode() & os.ModeCharDevice) != 0 {
		return []byte("null"), nil
	}
	buf := make([]byte, 0, 4096)
	tmp := make([]byte, 4096)
	for {
		n, err := os.Stdin.Read(tmp)
		buf = append(buf, tmp[:n]...)
		if err != nil {
			break
		}
	}
	return buf, nil
}
