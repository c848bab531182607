package coverage

import (
	"fmt"

	"ftest/internal/domain"
)

// Aggregator combines declared symbols and usage into coverage figures
type Aggregator struct{}

// NewAggregator creates a new Aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate returns coverage for each module in the given order.
//
// A module without declared symbols gets a NoAPI entry. A module missing from
// usage (no test sources) gets no entry; the modules after it are still
// processed. Unused symbols are checked against the usage of every module, so
// a name exercised by another module's tests does not count as unused.
func (g *Aggregator) Aggregate(modules []domain.Module, usage *Usage) []domain.Coverage {
	var coverages []domain.Coverage
	for _, m := range modules {
		if !m.HasAPI() {
			coverages = append(coverages, domain.Coverage{Module: m.Name, NoAPI: true})
			continue
		}

		used, ok := usage.Used(m.Name)
		if !ok {
			continue
		}

		declared := m.SymbolNames()
		unused := []string{}
		for _, name := range declared {
			if !usage.Anywhere(name) {
				unused = append(unused, name)
			}
		}

		coverages = append(coverages, domain.Coverage{
			Module:     m.Name,
			Declared:   len(declared),
			Used:       len(used),
			Percentage: Percent(len(used), len(declared)),
			Unused:     unused,
		})
	}
	return coverages
}

// Percent formats used/declared on a 0-100 scale with two decimals.
// declared must be positive.
func Percent(used, declared int) string {
	return fmt.Sprintf("%.2f", 100*float64(used)/float64(declared))
}

// ByModule indexes coverages by module name
func ByModule(coverages []domain.Coverage) map[string]domain.Coverage {
	index := make(map[string]domain.Coverage, len(coverages))
	for _, c := range coverages {
		index[c.Module] = c
	}
	return index
}
