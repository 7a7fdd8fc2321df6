package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/mathgen/internal/catalog"
	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/sampler"
	"github.com/abhisek/mathgen/internal/store"
	"github.com/spf13/cobra"
)

// scopeFlags registers the grade/category/level trio shared by the
// generation commands.
func scopeFlags(cmd *cobra.Command) {
	cmd.Flags().Int("grade", 0, "Grade level (required)")
	cmd.Flags().String("category", "", "Category, e.g. arithmetic or fractions (required)")
	cmd.Flags().Int("level", 0, "Difficulty level 1-10 (required)")
	_ = cmd.MarkFlagRequired("grade")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("level")
}

func readScope(cmd *cobra.Command) (grade int, category string, level int) {
	grade, _ = cmd.Flags().GetInt("grade")
	category, _ = cmd.Flags().GetString("category")
	level, _ = cmd.Flags().GetInt("level")
	return grade, category, level
}

// loadCatalog builds the template registry: builtin templates plus the
// configured extra directory.
func loadCatalog() (*catalog.Registry, error) {
	reg, err := catalog.Load(cfg.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return reg, nil
}

// newGenerator returns a generator seeded from cfg.Seed, or from the global
// source when no seed is configured.
func newGenerator() *problemgen.Generator {
	var src sampler.Source
	if cfg.Seed != "" {
		src = sampler.NewSeeded(sampler.SeedFromString(cfg.Seed))
	}
	gc := problemgen.DefaultConfig()
	gc.Logger = slog.Default()
	return problemgen.New(src, gc)
}

// recordGeneration appends a generation event. Logging failures are reported
// but never fail the command: the questions were already produced.
func recordGeneration(ctx context.Context, command string, req problemgen.GenerateRequest, report problemgen.Report, started time.Time) {
	if ctx == nil {
		ctx = context.Background()
	}
	dbPath, err := resolveDBPath()
	if err != nil {
		slog.Warn("generation log unavailable", "error", err)
		return
	}
	st, err := store.Open(dbPath)
	if err != nil {
		slog.Warn("generation log unavailable", "path", dbPath, "error", err)
		return
	}
	defer st.Close()

	err = st.EventRepo().AppendGeneration(ctx, store.GenerationEventData{
		Command:    command,
		Grade:      req.Grade,
		Category:   req.Category,
		Level:      req.Level,
		Requested:  report.Requested,
		Produced:   report.Produced,
		Collisions: report.Collisions,
		Degraded:   report.Degraded,
		Failures:   report.Failures,
		Seed:       cfg.Seed,
		LatencyMs:  time.Since(started).Milliseconds(),
	})
	if err != nil {
		slog.Warn("record generation event", "error", err)
	}
}
