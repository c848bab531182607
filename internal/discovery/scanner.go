package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ftest/internal/config"
	"ftest/internal/domain"
)

const (
	sourceExt  = ".c"
	fixtureExt = ".expected"
)

// Scanner finds the test suites under a tests root: one subdirectory per
// module, each holding <case>.c sources and <case>.expected fixtures.
type Scanner struct {
	config  *config.Config
	readDir func(string) ([]os.DirEntry, error)
}

// NewScanner creates a new Scanner that pairs cases with the binaries the
// config expects in the build directory
func NewScanner(cfg *config.Config) *Scanner {
	return &Scanner{config: cfg, readDir: os.ReadDir}
}

// Scan returns one suite per module directory in lexical order. A missing
// tests root is an error; a module directory without sources yields a suite
// with no cases. Unreadable module directories are returned in errs keyed by
// module name and left out of the result.
func (s *Scanner) Scan(root string) ([]domain.TestSuite, map[string]error, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	entries, err := s.readDir(root)
	if err != nil {
		return nil, nil, fmt.Errorf("read test path %s: %w", root, err)
	}

	var suites []domain.TestSuite
	errs := make(map[string]error)
	for _, e := range entries {
		// Skip hidden directories and loose files such as test.h
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		suite, err := s.scanModule(e.Name(), filepath.Join(root, e.Name()))
		if err != nil {
			errs[e.Name()] = err
			continue
		}
		suites = append(suites, suite)
	}
	return suites, errs, nil
}

func (s *Scanner) scanModule(module, dir string) (domain.TestSuite, error) {
	suite := domain.TestSuite{Module: module, Dir: dir}

	entries, err := s.readDir(dir)
	if err != nil {
		return suite, fmt.Errorf("read module tests %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), sourceExt) {
			continue
		}
		name, _, _ := strings.Cut(e.Name(), ".")
		suite.Cases = append(suite.Cases, domain.TestCase{
			Module:         module,
			Name:           name,
			SourcePath:     filepath.Join(dir, e.Name()),
			ExpectedPath:   filepath.Join(dir, name+fixtureExt),
			ExecutablePath: s.config.GetExecutablePath(name),
		})
	}
	return suite, nil
}
