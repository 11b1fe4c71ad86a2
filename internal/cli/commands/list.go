package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/mdschema/pkg/schema"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [path...]",
		Short: "List compiled models and their relationships",
		Long: `List compiles the named documents and prints one table per document
with each model's field count, primary key, and resolved relationships.`,
		Example: `  # List every model in the current directory's documents
  mdschema list

  # List a single document
  mdschema list schemas/orders.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args)
		},
	}
}

func runList(cmd *cobra.Command, args []string) error {
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

		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.SetTitle(res.Name)
		t.AppendHeader(table.Row{"Model", "Fields", "Primary Key", "Relationships"})
		for _, m := range res.Document.Models {
			t.AppendRow(table.Row{m.Name, len(m.Fields), primaryKeyName(m), relationshipSummary(m)})
		}
		t.Render()

		if len(res.Document.Enums) > 0 {
			names := make([]string, len(res.Document.Enums))
			for i, e := range res.Document.Enums {
				names[i] = fmt.Sprintf("%s (%d)", e.Name, len(e.Values))
			}
			fmt.Fprintf(out, "Enums: %s\n", strings.Join(names, ", "))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d document(s) failed to compile", failed)
	}
	return nil
}

func primaryKeyName(m *schema.Model) string {
	if pk := m.PrimaryKey(); pk != nil {
		return pk.Name
	}
	return "-"
}

// relationshipSummary renders "Name→Target" per resolved relationship,
// with "*" marking the collection side.
func relationshipSummary(m *schema.Model) string {
	if len(m.Relationships) == 0 {
		return "-"
	}
	parts := make([]string, len(m.Relationships))
	for i, r := range m.Relationships {
		marker := ""
		if r.IsCollection {
			marker = "*"
		}
		parts[i] = fmt.Sprintf("%s->%s%s", r.Name, r.Target, marker)
	}
	return strings.Join(parts, ", ")
}
