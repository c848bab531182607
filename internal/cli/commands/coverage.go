package commands

import (
	"github.com/spf13/cobra"

	"ftest/internal/coverage"
	"ftest/internal/ui"
)

// CoverageCommand handles the coverage command
type CoverageCommand struct {
	env *Env
}

// NewCoverageCommand creates a new CoverageCommand
func NewCoverageCommand(env *Env) *CoverageCommand {
	return &CoverageCommand{env: env}
}

// Execute runs the command
func (cc *CoverageCommand) Execute(cmd *cobra.Command, args []string) error {
	a, err := analyze(cc.env)
	if err != nil {
		return err
	}

	ui.NewReporter(cc.env.Out).ReportCoverage(a.modules, coverage.ByModule(a.coverages))
	return nil
}
