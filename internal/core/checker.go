package core

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/lRainZz/scs-mod-comp-checker/internal/config"
	"github.com/lRainZz/scs-mod-comp-checker/internal/detector"
	"github.com/lRainZz/scs-mod-comp-checker/internal/report"
	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProgressCallback is called to report analysis progress
type ProgressCallback func(phase string, current, total int, message string)

// Progress phases
const (
	PhaseStarted      = "started"
	PhaseMaterialized = "materialized"
	PhaseDetecting    = "detecting"
)

// Checker runs the analysis pipeline: materialize, detect, report
type Checker struct {
	config           *config.Config
	logger           *zap.Logger
	materializer     *Materializer
	reporter         *report.Generator
	progressCallback ProgressCallback
	version          string
	game             string
	mu               sync.Mutex
}

// NewChecker creates a new checker instance
func NewChecker(cfg *config.Config, tool ArchiveTool, logger *zap.Logger) *Checker {
	opts := MaterializerOptions{
		IncludeAutomat: cfg.IncludeAutomat,
		GameVersion:    cfg.GameVersion,
		LocalNames:     NameStrategy(cfg.LocalNames),
		WorkshopNames:  NameStrategy(cfg.WorkshopNames),
	}

	return &Checker{
		config:       cfg,
		logger:       logger,
		materializer: NewMaterializer(tool, opts, logger),
		reporter:     report.NewGenerator(cfg, logger),
	}
}

// SetProgressCallback sets the progress callback function
func (c *Checker) SetProgressCallback(cb ProgressCallback) {
	c.progressCallback = cb
}

// SetRunInfo sets the checker version and game name stored on results
func (c *Checker) SetRunInfo(version, game string) {
	c.version = version
	c.game = game
}

// reportProgress calls the progress callback if set.
// Calls are serialized so callbacks may write to the terminal.
func (c *Checker) reportProgress(phase string, current, total int, message string) {
	if c.progressCallback == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progressCallback(phase, current, total, message)
}

// Analyze materializes all containers and detects conflicts between them.
// Failing containers end up in result.Errors, only cancellation aborts.
func (c *Checker) Analyze(ctx context.Context, containers []models.Container) (*models.AnalysisResult, error) {
	c.logger.Info("Starting analysis",
		zap.Int("containers", len(containers)),
		zap.String("game_version", c.config.GameVersion),
		zap.Bool("include_automat", c.config.IncludeAutomat))

	result := &models.AnalysisResult{
		Version:         c.version,
		Game:            c.game,
		GameVersion:     c.config.GameVersion,
		StartTime:       time.Now(),
		TotalContainers: len(containers),
	}

	c.reportProgress(PhaseStarted, 0, len(containers), "Analyzing mods...")

	mods, err := c.materializeAll(ctx, containers)
	if err != nil {
		return nil, err
	}

	c.reportProgress(PhaseDetecting, len(containers), len(containers), "Detecting conflicts...")

	result.Duplicates = detector.Detect(mods)
	if result.Duplicates == nil {
		result.Duplicates = []models.Duplicate{}
	}
	result.Report = report.BuildConflictReport(result.Duplicates)
	result.Errors = failures(mods)

	for _, mod := range mods {
		if mod.Failed() {
			continue
		}
		result.AnalyzedMods++
		result.TotalFiles += len(mod.Files)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	c.logger.Info("Analysis completed",
		zap.Duration("duration", result.Duration),
		zap.Int("mods", result.AnalyzedMods),
		zap.Int("failed", len(result.Errors)),
		zap.Int("duplicates", len(result.Duplicates)))

	return result, nil
}

// Run analyzes the containers and writes the report
func (c *Checker) Run(ctx context.Context, containers []models.Container) (*models.AnalysisResult, error) {
	result, err := c.Analyze(ctx, containers)
	if err != nil {
		return nil, err
	}

	reportPath, err := c.reporter.Generate(result)
	if err != nil {
		c.logger.Error("Failed to generate report", zap.Error(err))
		return result, err
	}
	result.ReportPath = reportPath

	return result, nil
}

// Reporter returns the report generator used by Run
func (c *Checker) Reporter() *report.Generator {
	return c.reporter
}

// materializeAll runs the materializer on a bounded worker pool.
// The returned mods keep the container order.
func (c *Checker) materializeAll(ctx context.Context, containers []models.Container) ([]*models.Mod, error) {
	workers := c.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	mods := make([]*models.Mod, len(containers))
	total := len(containers)
	done := 0
	var doneMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, container := range containers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			mod := c.materializer.Materialize(gctx, container)
			mods[i] = mod

			doneMu.Lock()
			done++
			current := done
			doneMu.Unlock()

			c.reportProgress(PhaseMaterialized, current, total, mod.Identifier())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis aborted: %w", err)
	}

	return mods, nil
}

// failures lists the mods that could not be analyzed, in container order
func failures(mods []*models.Mod) []models.ModFailure {
	out := make([]models.ModFailure, 0)
	for _, mod := range detector.FailedMods(mods) {
		kind := string(models.KindOf(mod.Err))
		if kind == "" {
			kind = "io"
		}
		out = append(out, models.ModFailure{
			ID:         mod.ContainerID,
			Name:       mod.Name,
			WorkshopID: mod.WorkshopID,
			Kind:       kind,
			Error:      mod.Err.Error(),
		})
	}
	return out
}
