// Package coverage decides which declared symbols the test sources reference
// and turns that into per-module coverage figures.
package coverage

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"ftest/internal/domain"
)

// Usage is an immutable snapshot of the symbols each module's tests reference
type Usage struct {
	byModule map[string][]string
	all      map[string]struct{}
}

// Used returns the sorted symbol names found in a module's test sources.
// ok is false when the module had no test sources at all.
func (u *Usage) Used(module string) (names []string, ok bool) {
	names, ok = u.byModule[module]
	return names, ok
}

// Anywhere reports whether any module's test sources reference name
func (u *Usage) Anywhere(name string) bool {
	_, ok := u.all[name]
	return ok
}

// Analyzer finds symbol references in test sources by plain substring search.
// A name inside a comment or string literal counts as used.
type Analyzer struct {
	readFile func(string) ([]byte, error)
}

// NewAnalyzer creates a new Analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{readFile: os.ReadFile}
}

// UsedIn returns the names from symbols that occur in the concatenated text
// of the given source files, in the order of symbols.
func (a *Analyzer) UsedIn(sources []string, symbols []string) ([]string, error) {
	var text strings.Builder
	for _, src := range sources {
		content, err := a.readFile(src)
		if err != nil {
			return nil, fmt.Errorf("error reading test source %s: %w", src, err)
		}
		text.Write(content)
		text.WriteByte('\n')
	}

	all := text.String()
	seen := make(map[string]struct{}, len(symbols))
	used := []string{}
	for _, name := range symbols {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if strings.Contains(all, name) {
			used = append(used, name)
		}
	}
	return used, nil
}

// Analyze builds the usage snapshot for every suite. Each suite is matched
// against the symbols of the header with the same module name. Suites without
// sources are left out of the snapshot, and so are suites whose sources cannot
// be read; the latter are returned in errs keyed by module.
func (a *Analyzer) Analyze(suites []domain.TestSuite, modules []domain.Module) (*Usage, map[string]error) {
	declared := make(map[string][]string, len(modules))
	for _, m := range modules {
		declared[m.Name] = m.SymbolNames()
	}

	usage := &Usage{
		byModule: make(map[string][]string),
		all:      make(map[string]struct{}),
	}
	errs := make(map[string]error)

	for _, suite := range suites {
		if len(suite.Cases) == 0 {
			continue
		}
		used, err := a.UsedIn(suite.SourcePaths(), declared[suite.Module])
		if err != nil {
			errs[suite.Module] = err
			continue
		}
		sort.Strings(used)
		usage.byModule[suite.Module] = used
		for _, name := range used {
			usage.all[name] = struct{}{}
		}
	}
	return usage, errs
}
