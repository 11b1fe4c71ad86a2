package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/mdschema/internal/compiler"
	"github.com/leapstack-labs/mdschema/internal/config"
)

type setupKey struct{}

// setup carries per-invocation state from the root command's
// PersistentPreRun into subcommands via the command context.
type setup struct {
	cfgFile string
	logger  *slog.Logger
}

// Setup stores the config-file path and logger on the command context.
// Called by the root command before any subcommand runs.
func Setup(cmd *cobra.Command, cfgFile string, logger *slog.Logger) {
	ctx := context.WithValue(cmd.Context(), setupKey{}, &setup{cfgFile: cfgFile, logger: logger})
	cmd.SetContext(ctx)
}

// newCompiler loads the layered configuration and constructs a compiler
// for the invoking command.
func newCompiler(cmd *cobra.Command) (*compiler.Compiler, error) {
	s, _ := cmd.Context().Value(setupKey{}).(*setup)
	if s == nil {
		s = &setup{logger: slog.New(slog.DiscardHandler)}
	}
	cfg, err := config.Load(s.cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}
	return compiler.New(compiler.Config{Settings: cfg, Logger: s.logger}), nil
}

// collectSources reads the schema documents named by args. Directory
// arguments expand to their *.md files, non-recursively. With no args
// the current directory is used. Keys are paths relative to the working
// directory where possible.
func collectSources(args []string) (map[string]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.md"))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no schema documents found")
	}

	sources := make(map[string]string, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		sources[docName(p)] = string(data)
	}
	return sources, nil
}

// docName derives the document name from its path: the base name
// without the .md extension.
func docName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".md")
}
