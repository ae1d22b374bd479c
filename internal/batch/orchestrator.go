package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fyrsmithlabs/pageporter/internal/assets"
	"github.com/fyrsmithlabs/pageporter/internal/config"
	"github.com/fyrsmithlabs/pageporter/internal/logging"
	"github.com/fyrsmithlabs/pageporter/internal/miglog"
)

// Result is the aggregate outcome of a batch run.
type Result struct {
	RunID string

	Seen      int
	Succeeded int
	Failed    int
	Skipped   int

	Sections   int
	Items      int
	Exclusions int

	// Failures is a bounded preview of failure descriptions; FailedTotal
	// is always the full count.
	Failures []string
}

// Orchestrator discovers origin/template pairs and drives the single-file
// pipeline per pair, isolating failures to the file they happened in.
type Orchestrator struct {
	cfg      *config.Config
	resolver assets.Resolver
	logger   *logging.Logger

	mu  sync.Mutex
	res Result
}

// New returns an orchestrator for one configured run.
func New(cfg *config.Config, resolver assets.Resolver, logger *logging.Logger) *Orchestrator {
	return &Orchestrator{cfg: cfg, resolver: resolver, logger: logger}
}

// Run executes the whole batch. Every discovered origin file is attempted
// exactly once; a file's failure never aborts the run or touches another
// file's tally. The returned error covers run-level problems (discovery,
// global log) only, never per-file ones.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	o.res = Result{RunID: runID}

	files, err := Discover(o.cfg.Paths.Source)
	if err != nil {
		return nil, fmt.Errorf("discover origin files: %w", err)
	}
	o.logger.Info(ctx, "batch run starting",
		zap.String("run_id", runID),
		zap.Int("files", len(files)),
		zap.Bool("apply", o.cfg.Run.Apply))

	global, err := miglog.OpenGlobal(o.cfg.Paths.GlobalLog, runID)
	if err != nil {
		return nil, err
	}
	defer global.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Run.Workers)

	for _, rel := range files {
		rel := rel
		o.mu.Lock()
		o.res.Seen++
		o.mu.Unlock()

		templatePath := filepath.Join(o.cfg.Paths.Templates, rel)
		if _, err := os.Stat(templatePath); err != nil {
			// Missing template is a skip, never a failure.
			o.mu.Lock()
			o.res.Skipped++
			o.mu.Unlock()
			o.logger.Warn(ctx, "no template for origin, skipping", zap.String("file", rel))
			continue
		}

		g.Go(func() error {
			o.runOne(logging.WithFile(gctx, rel), rel, templatePath, global)
			// Per-file errors never cancel the group.
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.logger.Info(ctx, "batch run finished",
		zap.Int("succeeded", o.res.Succeeded),
		zap.Int("failed", o.res.Failed),
		zap.Int("skipped", o.res.Skipped),
		zap.Int("exclusions", o.res.Exclusions))
	res := o.res
	return &res, nil
}

// runOne migrates a single file, recording its outcome. Panics are caught
// here: the unit of failure isolation is one file.
func (o *Orchestrator) runOne(ctx context.Context, rel, templatePath string, global *miglog.GlobalLog) {
	defer func() {
		if r := recover(); r != nil {
			o.recordFailure(ctx, rel, fmt.Errorf("panic: %v", r))
		}
	}()

	originPath := filepath.Join(o.cfg.Paths.Source, rel)
	fr, err := MigrateFile(ctx, originPath, templatePath, o.resolver)

	// Whatever audit entries exist go to the global log, success or not.
	if fr != nil && fr.Log != nil {
		if aerr := global.Append(rel, fr.Log.Entries()); aerr != nil {
			o.logger.Error(ctx, "global log append failed", zap.Error(aerr))
		}
	}

	if err != nil {
		o.recordFailure(ctx, rel, err)
		return
	}

	if o.cfg.Run.Apply {
		outPath := filepath.Join(o.cfg.Paths.Output, rel)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			o.recordFailure(ctx, rel, err)
			return
		}
		if err := os.WriteFile(outPath, fr.Output, 0o644); err != nil {
			o.recordFailure(ctx, rel, err)
			return
		}
	}

	o.mu.Lock()
	o.res.Succeeded++
	o.res.Sections++
	o.res.Items += fr.ItemCount
	o.res.Exclusions += len(fr.Exclusions)
	o.mu.Unlock()
	o.logger.Debug(ctx, "file migrated",
		zap.Int("items", fr.ItemCount),
		zap.Int("exclusions", len(fr.Exclusions)))
}

func (o *Orchestrator) recordFailure(ctx context.Context, rel string, err error) {
	o.mu.Lock()
	o.res.Failed++
	if len(o.res.Failures) < o.cfg.Run.MaxFailures {
		o.res.Failures = append(o.res.Failures, fmt.Sprintf("%s: %v", rel, err))
	}
	o.mu.Unlock()
	o.logger.Error(ctx, "file migration failed", zap.Error(err))
}
