package domain

// TestCase is one test source file paired with its fixture and executable
type TestCase struct {
	Module         string // Module the test belongs to (name of its test directory)
	Name           string // File stem shared by source, fixture and executable
	SourcePath     string // Path to <case>.c
	ExpectedPath   string // Path to <case>.expected
	ExecutablePath string // Path to the compiled binary in the build directory
}

// TestSuite groups the test cases found in one module's test directory
type TestSuite struct {
	Module string
	Dir    string
	Cases  []TestCase
}

// SourcePaths returns the source file of every case in the suite
func (s TestSuite) SourcePaths() []string {
	paths := make([]string, 0, len(s.Cases))
	for _, tc := range s.Cases {
		paths = append(paths, tc.SourcePath)
	}
	return paths
}
