package commands

import (
	"errors"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"ftest/internal/cli"
	"ftest/internal/config"
	"ftest/internal/coverage"
	"ftest/internal/discovery"
	"ftest/internal/domain"
	"ftest/internal/logging"
)

// ErrTestsFailed is returned by the run command when any test failed
var ErrTestsFailed = errors.New("one or more tests failed")

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Coverage *CoverageCommand

	env *Env
}

// Env carries what every command needs once flags are parsed
type Env struct {
	Config *config.Config
	Logger *log.Logger
	Out    io.Writer
	Err    io.Writer
}

// NewCommands creates all commands sharing one environment. The config and
// logger are filled in by Register's PersistentPreRunE once flags are known.
func NewCommands(out, errOut io.Writer) *Commands {
	env := &Env{Config: config.New(), Logger: logging.Discard(), Out: out, Err: errOut}
	return &Commands{
		Run:      NewRunCommand(env),
		List:     NewListCommand(env),
		Coverage: NewCoverageCommand(env),
		env:      env,
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetOut(c.env.Out)
	rootCmd.SetErr(c.env.Err)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		if cfg.NoColor {
			color.NoColor = true
		}
		c.env.Config = cfg
		c.env.Logger = logging.New(cfg.LogLevel, c.env.Err)
		return nil
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.ProjectPath, "project", "C", "", "Project root (default: current directory)")
	pf.StringVar(&flags.HeaderDir, "headers", "", "Directory holding the module headers (default: include/fiesta)")
	pf.StringVar(&flags.TestsDir, "tests", "", "Tests root with one directory per module (default: tests)")
	pf.StringVar(&flags.BuildDir, "build", "", "Directory holding the compiled test binaries (default: build)")
	pf.StringVar(&flags.LogLevel, "log-level", "", "Diagnostics level: debug, info, warn, error")
	pf.BoolVar(&flags.NoColor, "no-color", false, "Disable colorized output")

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the test binaries and report coverage",
		Long:  "Compute per-module API coverage, run every compiled test binary and compare its output with the golden fixture",
		Args:  cobra.NoArgs,
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of tests to run at once (default: number of CPUs)")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Per-test timeout (default: 10s)")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Run only test cases matching a name pattern (supports wildcards, e.g. 'trim_*')")
	runCmd.Flags().BoolVarP(&flags.Inspect, "inspect", "i", false, "Open the interactive failure viewer when tests fail")
	rootCmd.AddCommand(runCmd)

	// Coverage command
	coverageCmd := &cobra.Command{
		Use:   "coverage",
		Short: "Report API coverage per module",
		Long:  "Scan module headers and test sources and list the declared symbols no test references",
		Args:  cobra.NoArgs,
		RunE:  c.Coverage.Execute,
	}
	rootCmd.AddCommand(coverageCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered test cases",
		Long:  "Scan the tests root and list every module's test cases without running them",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test cases by name pattern (supports wildcards, e.g. 'trim_*')")
	listCmd.Flags().BoolVarP(&flags.Symbols, "symbols", "s", false, "List declared symbols per module instead of test cases")
	rootCmd.AddCommand(listCmd)
}

// analysis is the coverage side of a run
type analysis struct {
	modules   []domain.Module
	suites    []domain.TestSuite
	coverages []domain.Coverage
}

// analyze scans headers and tests and aggregates coverage. Module-scoped scan
// errors are logged and skipped; a missing header or tests directory is fatal.
func analyze(env *Env) (*analysis, error) {
	cfg := env.Config

	modules, headerErrs, err := discovery.NewHeaderScanner().ScanDir(cfg.GetHeaderPath())
	if err != nil {
		return nil, err
	}
	for module, err := range headerErrs {
		env.Logger.Warn().Str("module", module).Err(err).Msg("skipping unreadable header")
	}

	suites, suiteErrs, err := discovery.NewScanner(cfg).Scan(cfg.GetTestsPath())
	if err != nil {
		return nil, err
	}
	for module, err := range suiteErrs {
		env.Logger.Warn().Str("module", module).Err(err).Msg("skipping unreadable test directory")
	}

	usage, usageErrs := coverage.NewAnalyzer().Analyze(suites, modules)
	for module, err := range usageErrs {
		env.Logger.Warn().Str("module", module).Err(err).Msg("skipping coverage for unreadable test sources")
	}

	coverages := coverage.NewAggregator().Aggregate(modules, usage)
	env.Logger.Debug().
		Int("modules", len(modules)).
		Int("suites", len(suites)).
		Int("coverages", len(coverages)).
		Msg("coverage computed")

	return &analysis{modules: modules, suites: suites, coverages: coverages}, nil
}

// stderrIsTerminal reports whether progress rendering makes sense
func stderrIsTerminal() bool {
	return log.IsTerminal(os.Stderr.Fd())
}

// NewRootCommand builds the ftest command tree
func NewRootCommand(version string, out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ftest",
		Short: "Coverage and golden-output test harness for C modules",
		Long: `Scans module headers for declared functions and macros, measures which of them
the module's test sources reference, runs each compiled test binary and
compares its output with the expected fixture.`,
		Version: version,
	}

	var flags cli.Flags
	NewCommands(out, errOut).Register(rootCmd, &flags)
	return rootCmd
}
