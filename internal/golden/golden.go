// Package golden compares program output with stored fixtures.
package golden

import "strings"

// Normalize converts CRLF line endings to LF. Every other byte is kept.
func Normalize(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// Divergence locates the first line where two outputs differ
type Divergence struct {
	Line     int // 1-based
	Expected string
	Actual   string
	Missing  bool // Actual output ended before this line
	Extra    bool // Actual output continues past the end of the fixture
}

// FirstDivergence returns the first differing line of the normalized outputs,
// or false when they are equal.
func FirstDivergence(expected, actual string) (Divergence, bool) {
	expected, actual = Normalize(expected), Normalize(actual)
	if expected == actual {
		return Divergence{}, false
	}

	exp := strings.Split(expected, "\n")
	act := strings.Split(actual, "\n")
	for i := 0; i < len(exp) || i < len(act); i++ {
		switch {
		case i >= len(act):
			return Divergence{Line: i + 1, Expected: exp[i], Missing: true}, true
		case i >= len(exp):
			return Divergence{Line: i + 1, Actual: act[i], Extra: true}, true
		case exp[i] != act[i]:
			return Divergence{Line: i + 1, Expected: exp[i], Actual: act[i]}, true
		}
	}
	// Unreachable: equal line slices imply equal strings
	return Divergence{}, false
}
