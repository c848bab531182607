package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ftest/internal/coverage"
	"ftest/internal/discovery"
	"ftest/internal/domain"
	"ftest/internal/execution"
	"ftest/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	env    *Env
	filter *discovery.Filter
	viewer ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(env *Env) *RunCommand {
	return &RunCommand{
		env:    env,
		filter: discovery.NewFilter(),
		viewer: ui.NewFailureViewer(),
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := rc.env.Config
	logger := rc.env.Logger

	a, err := analyze(rc.env)
	if err != nil {
		return err
	}

	suites := rc.filter.FilterSuites(a.suites, cfg.Flags.NameFilter)
	total := 0
	for _, s := range suites {
		total += len(s.Cases)
	}

	runner := execution.NewRunner(cfg, logger)
	executor := execution.NewWorkerPool(cfg, runner, logger)
	if total > 0 && stderrIsTerminal() {
		executor.SetProgress(ui.NewProgressBar(total, rc.env.Err))
	}

	results, duration, err := executor.Execute(cmd.Context(), suites)
	if err != nil {
		return fmt.Errorf("test run interrupted: %w", err)
	}

	ui.NewReporter(rc.env.Out).Report(results, coverage.ByModule(a.coverages))

	summary := domain.Summarize(results)
	logger.Info().
		Int("passed", summary.Passed).
		Int("failed", summary.Failed).
		Int("workers", cfg.Processors).
		Dur("duration", duration).
		Msg("test run finished")

	if summary.Failed == 0 {
		return nil
	}
	if cfg.Flags.Inspect {
		if err := rc.viewer.View(ui.Failures(results)); err != nil {
			return err
		}
	}
	return ErrTestsFailed
}
