package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"ftest/internal/domain"
)

// Formatter prints discovered test cases and declared symbols as trees
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

func branch(last bool) (connector, indent string) {
	if last {
		return "└── ", "    "
	}
	return "├── ", "│   "
}

// PrintTestList prints each module with its test cases. Cases whose fixture
// or binary is missing are marked.
func (f *Formatter) PrintTestList(suites []domain.TestSuite) {
	total := 0
	for _, s := range suites {
		total += len(s.Cases)
	}
	fmt.Fprintln(f.out, color.GreenString("Found %d module(s) with %d test case(s):\n", len(suites), total))

	for i, suite := range suites {
		connector, indent := branch(i == len(suites)-1)
		fmt.Fprintln(f.out, connector+color.CyanString(suite.Module))

		if len(suite.Cases) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", indent, color.RedString("(no test cases found)"))
			continue
		}
		for j, tc := range suite.Cases {
			caseConnector, _ := branch(j == len(suite.Cases)-1)
			fmt.Fprintf(f.out, "%s%s%s%s\n", indent, caseConnector, color.YellowString(tc.Name), missingMarkers(tc))
		}
	}
}

func missingMarkers(tc domain.TestCase) string {
	var markers string
	if _, err := os.Stat(tc.ExpectedPath); err != nil {
		markers += " " + color.RedString("[no fixture]")
	}
	if _, err := os.Stat(tc.ExecutablePath); err != nil {
		markers += " " + color.RedString("[not built]")
	}
	return markers
}

// PrintSymbols prints each module's declared symbols grouped by category
func (f *Formatter) PrintSymbols(modules []domain.Module) {
	for i, m := range modules {
		connector, indent := branch(i == len(modules)-1)
		fmt.Fprintf(f.out, "%s%s %s\n", connector, color.CyanString(m.Name), color.HiBlackString("(%d symbols)", len(m.Symbols)))

		if !m.HasAPI() {
			fmt.Fprintf(f.out, "%s└── %s\n", indent, color.RedString("(no declarations)"))
			continue
		}

		groups := groupByCategory(m)
		for j, g := range groups {
			groupConnector, groupIndent := branch(j == len(groups)-1)
			name := g.category
			if name == "" {
				name = "(uncategorized)"
			}
			fmt.Fprintf(f.out, "%s%s%s\n", indent, groupConnector, color.MagentaString(name))

			for k, sym := range g.symbols {
				symConnector, _ := branch(k == len(g.symbols)-1)
				fmt.Fprintf(f.out, "%s%s%s%s\n", indent+groupIndent, symConnector, symbolLine(sym), docSuffix(sym))
			}
		}
	}
}

func symbolLine(sym domain.Symbol) string {
	if sym.Kind == domain.KindMacro {
		return color.YellowString("#define ") + sym.Signature
	}
	return color.YellowString(sym.ReturnType+" ") + sym.Signature
}

func docSuffix(sym domain.Symbol) string {
	if sym.Doc == "" {
		return ""
	}
	return color.HiBlackString("  // %s", sym.Doc)
}

type symbolGroup struct {
	category string
	symbols  []domain.Symbol
}

// groupByCategory keeps categories and symbols in header order
func groupByCategory(m domain.Module) []symbolGroup {
	var groups []symbolGroup
	index := make(map[string]int)
	for _, sym := range m.Symbols {
		i, ok := index[sym.Category]
		if !ok {
			i = len(groups)
			index[sym.Category] = i
			groups = append(groups, symbolGroup{category: sym.Category})
		}
		groups[i].symbols = append(groups[i].symbols, sym)
	}
	return groups
}
