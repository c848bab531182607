package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ftest/internal/discovery"
	"ftest/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	env    *Env
	filter *discovery.Filter
}

// NewListCommand creates a new ListCommand
func NewListCommand(env *Env) *ListCommand {
	return &ListCommand{
		env:    env,
		filter: discovery.NewFilter(),
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := lc.env.Config
	formatter := ui.NewFormatter(lc.env.Out)

	if cfg.Flags.Symbols {
		modules, errs, err := discovery.NewHeaderScanner().ScanDir(cfg.GetHeaderPath())
		if err != nil {
			return err
		}
		for module, err := range errs {
			lc.env.Logger.Warn().Str("module", module).Err(err).Msg("skipping unreadable header")
		}
		if len(modules) == 0 {
			fmt.Fprintln(lc.env.Out, color.YellowString("No headers found"))
			return nil
		}
		formatter.PrintSymbols(modules)
		return nil
	}

	suites, suiteErrs, err := discovery.NewScanner(cfg).Scan(cfg.GetTestsPath())
	if err != nil {
		return err
	}
	for module, err := range suiteErrs {
		lc.env.Logger.Warn().Str("module", module).Err(err).Msg("skipping unreadable test directory")
	}
	suites = lc.filter.FilterSuites(suites, cfg.Flags.NameFilter)

	if len(suites) == 0 {
		fmt.Fprintln(lc.env.Out, color.YellowString("No tests found"))
		return nil
	}

	formatter.PrintTestList(suites)
	return nil
}
