package domain

// Coverage is the share of a module's declared symbols referenced by its tests
type Coverage struct {
	Module     string
	Declared   int
	Used       int
	Percentage string   // Two decimals on a 0-100 scale, e.g. "50.00"
	Unused     []string // Declared names no test source mentions, in header order
	NoAPI      bool     // Header declares nothing; Percentage is empty
}
