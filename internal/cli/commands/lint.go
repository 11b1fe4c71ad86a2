package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/mdschema/pkg/schema"
)

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	var minSeverity string

	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Compile and report diagnostics only",
		Long: `Lint compiles the named documents and prints every diagnostic at or
above the given severity. The exit code is non-zero when any document
fails to compile or any error-severity diagnostic is found.`,
		Example: `  # Report everything
  mdschema lint schemas/

  # Only warnings and errors
  mdschema lint --severity warning schemas/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, minSeverity)
		},
	}

	cmd.Flags().StringVarP(&minSeverity, "severity", "s", "info", "minimum severity to report (info|warning|error)")
	return cmd
}

func runLint(cmd *cobra.Command, args []string, minSeverity string) error {
	threshold, ok := schema.ParseSeverity(minSeverity)
	if !ok {
		return fmt.Errorf("unknown severity %q, must be info, warning, or error", minSeverity)
	}

	c, err := newCompiler(cmd)
	if err != nil {
		return err
	}
	sources, err := collectSources(args)
	if err != nil {
		return err
	}

	results := c.CompileAll(cmd.Context(), sources)

	out := cmd.OutOrStdout()
	failed := 0
	errors := 0
	reported := 0
	for _, res := range results {
		if res.Failed() {
			failed++
			fmt.Fprintf(out, "%s: %v\n", res.Name, res.Err)
			continue
		}
		for _, d := range res.Diagnostics {
			if d.Severity > threshold {
				continue
			}
			if d.Severity == schema.SeverityError {
				errors++
			}
			reported++
			fmt.Fprintf(out, "%s:%d %s\n", res.Name, d.Pos.Line, d)
		}
	}

	fmt.Fprintf(out, "%d finding(s) in %d document(s)\n", reported, len(results))
	if failed > 0 || errors > 0 {
		return fmt.Errorf("lint failed: %d compile failure(s), %d error(s)", failed, errors)
	}
	return nil
}
