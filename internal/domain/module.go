package domain

// SymbolKind tells functions and function-like macros apart
type SymbolKind int

const (
	KindFunction SymbolKind = iota
	KindMacro
)

func (k SymbolKind) String() string {
	if k == KindMacro {
		return "macro"
	}
	return "function"
}

// Symbol is a function or macro declared in a module header
type Symbol struct {
	Name       string
	Module     string
	Kind       SymbolKind
	ReturnType string // Type tokens in front of the name; empty for macros
	Signature  string // Name and argument list as written, without the trailing ';'
	Category   string // Set by the last /* <category> */ marker
	Doc        string // "// " lines directly above the declaration, joined
	Line       int
}

// Module is one header and the API it declares
type Module struct {
	Name       string
	HeaderPath string
	Symbols    []Symbol
	Categories []string
}

// SymbolNames returns the declared names in header order
func (m Module) SymbolNames() []string {
	names := make([]string, 0, len(m.Symbols))
	for _, s := range m.Symbols {
		names = append(names, s.Name)
	}
	return names
}

// HasAPI reports whether the header declared anything testable
func (m Module) HasAPI() bool {
	return len(m.Symbols) > 0
}
