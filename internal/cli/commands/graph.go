package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/mdschema/internal/refgraph"
)

// NewGraphCommand creates the graph command.
func NewGraphCommand() *cobra.Command {
	var showLevels bool

	cmd := &cobra.Command{
		Use:   "graph [path...]",
		Short: "Print the reference graph of compiled documents",
		Long: `Graph compiles the named documents and prints each document's
reference edges with their cascade behavior, plus the creation order an
emitter must follow. Cyclic graphs report the cycle instead.`,
		Example: `  # Print edges and creation order
  mdschema graph schemas/

  # Group models by reference depth
  mdschema graph --levels schemas/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, args, showLevels)
		},
	}

	cmd.Flags().BoolVar(&showLevels, "levels", false, "group models by reference depth")
	return cmd
}

func runGraph(cmd *cobra.Command, args []string, showLevels bool) error {
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
	for _, res := range results {
		if res.Failed() {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.Name, res.Err)
			continue
		}

		g := refgraph.Build(res.Document)
		fmt.Fprintf(out, "%s: %d model(s), %d reference edge(s)\n", res.Name, g.NodeCount(), g.EdgeCount())
		for _, name := range g.Names() {
			for _, e := range g.Outgoing(name) {
				fmt.Fprintf(out, "  %s\n", e)
			}
		}

		if cyclic, path := g.HasCycle(); cyclic {
			fmt.Fprintf(out, "  cycle: %s\n", strings.Join(path, " -> "))
			continue
		}

		if showLevels {
			levels, err := g.Levels()
			if err != nil {
				return err
			}
			for depth, names := range levels {
				fmt.Fprintf(out, "  level %d: %s\n", depth, strings.Join(names, ", "))
			}
		} else {
			order, err := g.TopologicalOrder()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "  order: %s\n", strings.Join(order, " -> "))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d document(s) failed to compile", failed)
	}
	return nil
}
