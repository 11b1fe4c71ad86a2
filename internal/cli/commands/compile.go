package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/mdschema/internal/compiler"
)

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compile [path...]",
		Short: "Compile schema documents into the semantic model",
		Long: `Compile parses, reconciles, builds, and validates every named
schema document. Diagnostics print to stderr; a document that fails to
compile does not abort the others.`,
		Example: `  # Compile every .md document in the current directory
  mdschema compile

  # Compile specific documents
  mdschema compile schemas/orders.md schemas/users.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args)
		},
	}
}

func runCompile(cmd *cobra.Command, args []string) error {
	c, err := newCompiler(cmd)
	if err != nil {
		return err
	}
	sources, err := collectSources(args)
	if err != nil {
		return err
	}

	results := c.CompileAll(cmd.Context(), sources)

	failed := 0
	for _, res := range results {
		printResult(cmd, res)
		if res.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d document(s) failed to compile", failed, len(results))
	}
	return nil
}

func printResult(cmd *cobra.Command, res *compiler.Result) {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	if res.Failed() {
		fmt.Fprintf(errOut, "%s: %v\n", res.Name, res.Err)
		return
	}
	for _, d := range res.Diagnostics {
		fmt.Fprintf(errOut, "%s: %s\n", res.Name, d)
	}
	doc := res.Document
	fmt.Fprintf(out, "%s: %d model(s), %d enum(s), %d interface(s), %d conflict(s) [%s]\n",
		res.Name, len(doc.Models), len(doc.Enums), len(doc.Interfaces),
		len(res.Conflicts), res.Duration.Round(time.Microsecond))
}
