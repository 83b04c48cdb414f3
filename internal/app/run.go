package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/gcsim/internal/collector"
	"github.com/specialistvlad/gcsim/internal/config"
	"github.com/specialistvlad/gcsim/internal/engine"
	"github.com/specialistvlad/gcsim/internal/heap"
)

// Run loads the configured scenario, replays it and writes the report. The
// report is written even when a step fails, up to the failing step.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.")

	model, err := a.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	a.logger.Debug("Scenario loaded.", "objects", len(model.Objects), "steps", len(model.Steps))

	if len(model.Objects) == 0 && len(model.Steps) == 0 {
		a.logger.Warn("Scenario is empty, nothing to run.")
		return nil
	}

	arena := heap.NewArena()
	gc := collector.New(arena, a.strategy)
	report, runErr := engine.New(arena, gc).Run(ctx, model)
	a.writeReport(report)
	if runErr != nil {
		return fmt.Errorf("scenario failed: %w", runErr)
	}

	a.logger.Info("Scenario finished.", "steps", len(report.Steps), "survivors", len(report.Survivors))
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) load(ctx context.Context) (*config.Model, error) {
	if a.config.Demo {
		return a.loader.LoadSource(ctx, "demo.hcl", demoScenario)
	}
	return a.loader.Load(ctx, a.config.ScenarioPath)
}

// writeReport prints one line per step. Only the counts are meaningful; the
// wording is for humans.
func (a *App) writeReport(report *engine.Report) {
	if report == nil {
		return
	}
	fmt.Fprintf(a.outW, "strategy: %s\n", report.Strategy)
	fmt.Fprintf(a.outW, "initial: %d objects registered\n", report.Initial)

	for _, step := range report.Steps {
		line := fmt.Sprintf("[%s %s] %d objects registered", step.Kind, step.Name, step.Count)
		switch {
		case step.Stats != nil:
			line += fmt.Sprintf(" (marked %d, swept %d)", step.Stats.Marked, step.Stats.Swept)
		case step.Kind == config.StepDisconnect:
			line += fmt.Sprintf(" (removed %d edges)", step.Removed)
		}
		fmt.Fprintln(a.outW, line)
	}

	if report.Survivors != nil {
		fmt.Fprintf(a.outW, "survivors: %s\n", strings.Join(report.Survivors, ", "))
		fmt.Fprintf(a.outW, "collections: %d\n", report.Collections)
	}
}
