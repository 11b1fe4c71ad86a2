// Package compiler orchestrates the compile pipeline: parse, reconcile,
// build, validate, freeze. It owns no semantics of its own; each stage
// lives in its package and the compiler wires them together, times the
// run, and isolates per-document failures in multi-document compiles.
package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/mdschema/internal/builder"
	"github.com/leapstack-labs/mdschema/internal/config"
	"github.com/leapstack-labs/mdschema/internal/parser"
	"github.com/leapstack-labs/mdschema/internal/reconcile"
	"github.com/leapstack-labs/mdschema/internal/typemap"
	"github.com/leapstack-labs/mdschema/internal/validate"
	"github.com/leapstack-labs/mdschema/pkg/schema"
)

// Config holds compiler construction options.
type Config struct {
	// Settings is the compiler configuration; defaults apply when nil.
	Settings *config.Config
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
	// Concurrency caps parallel document compiles in CompileAll.
	// Zero means one worker per document.
	Concurrency int
}

// Compiler compiles schema DSL documents into frozen semantic models.
type Compiler struct {
	cfg         *config.Config
	logger      *slog.Logger
	concurrency int
}

// Result is the outcome of compiling one document. Err is set when the
// document failed; Document is nil in that case. Diagnostics and
// conflicts are structured findings on a successful compile.
type Result struct {
	Name        string
	RunID       string
	Document    *schema.Document
	Diagnostics []schema.Diagnostic
	Conflicts   []schema.CascadeConflict
	Duration    time.Duration
	Err         error
}

// Failed reports whether the compile produced no usable document.
func (r *Result) Failed() bool { return r.Err != nil }

// New creates a compiler.
func New(cfg Config) *Compiler {
	settings := cfg.Settings
	if settings == nil {
		settings = config.Default()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Compiler{
		cfg:         settings,
		logger:      logger,
		concurrency: cfg.Concurrency,
	}
}

// Compile runs the full pipeline over one document. The input is never
// mutated; compiling the same source twice yields equivalent results.
func (c *Compiler) Compile(name, source string) *Result {
	start := time.Now()
	res := &Result{Name: name, RunID: uuid.NewString()}

	c.logger.Debug("compiling document", "document", name, "run_id", res.RunID)

	parsed, err := parser.New().Parse(name, source)
	if err != nil {
		return c.fail(res, start, fmt.Errorf("parse: %w", err))
	}
	doc := parsed.Document

	mapper := typemap.NewMapper(&c.cfg.Types)
	if err := reconcile.New(mapper).Apply(parsed); err != nil {
		return c.fail(res, start, fmt.Errorf("reconcile: %w", err))
	}

	diags, err := builder.New(c.cfg).Build(doc)
	if err != nil {
		return c.fail(res, start, fmt.Errorf("build: %w", err))
	}
	res.Diagnostics = diags

	conflicts, err := validate.New(&c.cfg.Validate).Validate(doc)
	if err != nil {
		return c.fail(res, start, fmt.Errorf("validate: %w", err))
	}
	res.Conflicts = conflicts
	doc.Conflicts = conflicts
	for _, conflict := range conflicts {
		res.Diagnostics = append(res.Diagnostics, conflict.Diagnostic())
	}

	doc.Freeze()
	res.Document = doc
	res.Duration = time.Since(start)

	c.logger.Info("compiled document",
		"document", name,
		"run_id", res.RunID,
		"models", len(doc.Models),
		"diagnostics", len(res.Diagnostics),
		"duration_ms", res.Duration.Milliseconds())
	return res
}

// CompileAll compiles every named source concurrently. A failure in one
// document never aborts the others; each Result carries its own error.
// Results come back sorted by document name for deterministic output.
func (c *Compiler) CompileAll(ctx context.Context, sources map[string]string) []*Result {
	results := make([]*Result, 0, len(sources))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}

	for name, source := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				res := &Result{Name: name, Err: err}
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
				return nil
			}
			res := c.Compile(name, source)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	// Workers return nil by contract; failures ride on the Result.
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results
}

func (c *Compiler) fail(res *Result, start time.Time, err error) *Result {
	res.Err = err
	res.Duration = time.Since(start)
	c.logger.Error("compile failed", "document", res.Name, "run_id", res.RunID, "error", err)
	return res
}
