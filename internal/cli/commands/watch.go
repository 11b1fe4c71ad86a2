package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// debounceWindow coalesces editor save bursts into one recompile.
const debounceWindow = 200 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [path...]",
		Short: "Recompile schema documents on change",
		Long: `Watch compiles the named documents, then watches their directories
and recompiles whenever a .md file is written or created. Runs until
interrupted.`,
		Example: `  # Watch the current directory
  mdschema watch

  # Watch a schemas directory
  mdschema watch schemas/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args)
		},
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	c, err := newCompiler(cmd)
	if err != nil {
		return err
	}

	compile := func() {
		sources, err := collectSources(args)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "watch: %v\n", err)
			return
		}
		for _, res := range c.CompileAll(cmd.Context(), sources) {
			printResult(cmd, res)
		}
	}
	compile()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range watchDirs(args) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "watching for changes, interrupt to stop")

	var debounce *time.Timer
	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != ".md" {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceWindow, func() {
				fmt.Fprintf(cmd.ErrOrStderr(), "change detected: %s\n", filepath.Base(event.Name))
				compile()
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		}
	}
}

// watchDirs maps the command arguments to the directories to watch:
// the argument itself when it is a directory, its parent otherwise.
func watchDirs(args []string) []string {
	if len(args) == 0 {
		args = []string{"."}
	}
	seen := map[string]bool{}
	var dirs []string
	for _, arg := range args {
		dir := arg
		if info, err := os.Stat(arg); err != nil || !info.IsDir() {
			dir = filepath.Dir(arg)
		}
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
