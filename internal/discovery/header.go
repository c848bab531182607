package discovery

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"ftest/internal/domain"
)

// declPattern matches "<type tokens> <name>(" at the start of a line.
// '#' admits "#define NAME(" and '*' admits pointer return types.
var declPattern = regexp.MustCompile(`^((?:[0-9A-Za-z_#*]+\s+)+)\**([A-Za-z_][0-9A-Za-z_]*)\(`)

const (
	sectionMarker = "/*"
	docPrefix     = "// "
	defineToken   = "#define"
)

// scanState is the position of the scanner relative to the prototype section
type scanState int

const (
	stateBeforeMarker scanState = iota
	stateInDeclarations
)

// HeaderScanner extracts declared functions and macros from module headers
type HeaderScanner struct{}

// NewHeaderScanner creates a new HeaderScanner
func NewHeaderScanner() *HeaderScanner {
	return &HeaderScanner{}
}

// ModuleName derives a module name from a header path: "str.h" -> "str"
func ModuleName(headerPath string) string {
	name, _, _ := strings.Cut(filepath.Base(headerPath), ".")
	return name
}

// ScanFile reads one header and returns its module
func (s *HeaderScanner) ScanFile(path string) (domain.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Module{}, fmt.Errorf("error reading header %s: %w", path, err)
	}
	defer f.Close()

	module, err := s.Scan(ModuleName(path), f)
	if err != nil {
		return domain.Module{}, fmt.Errorf("error reading header %s: %w", path, err)
	}
	module.HeaderPath = path
	return module, nil
}

// Scan reads header text line by line. Nothing before the first line
// starting with "/*" is inspected; a header without that line declares nothing.
// Each name appears once in the result, at its first declaration.
func (s *HeaderScanner) Scan(moduleName string, r io.Reader) (domain.Module, error) {
	module := domain.Module{Name: moduleName}
	state := stateBeforeMarker
	category := ""
	var docs []string
	seen := make(map[string]struct{})

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")

		if strings.HasPrefix(line, sectionMarker) {
			state = stateInDeclarations
			if c := categoryOf(line); c != "" {
				category = c
				if !contains(module.Categories, c) {
					module.Categories = append(module.Categories, c)
				}
			}
			docs = nil
			continue
		}
		if state == stateBeforeMarker {
			continue
		}

		if strings.HasPrefix(line, docPrefix) {
			docs = append(docs, strings.TrimSpace(line[len(docPrefix):]))
			continue
		}

		if sym, ok := parseDeclaration(line); ok {
			// #ifdef branches may declare a name more than once; the first one wins
			if _, dup := seen[sym.Name]; dup {
				docs = nil
				continue
			}
			seen[sym.Name] = struct{}{}
			sym.Module = moduleName
			sym.Category = category
			sym.Doc = strings.Join(docs, " ")
			sym.Line = lineNo
			module.Symbols = append(module.Symbols, sym)
		}
		docs = nil
	}
	if err := sc.Err(); err != nil {
		return domain.Module{}, err
	}
	return module, nil
}

// ScanDir scans every *.h file in dir in lexical order. Unreadable headers are
// returned in errs keyed by module name and left out of the result.
func (s *HeaderScanner) ScanDir(dir string) ([]domain.Module, map[string]error, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("header path does not exist: %s", dir)
	}

	var headers []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".h") {
			headers = append(headers, e.Name())
		}
	}
	sort.Strings(headers)

	var modules []domain.Module
	errs := make(map[string]error)
	for _, h := range headers {
		module, err := s.ScanFile(filepath.Join(dir, h))
		if err != nil {
			errs[ModuleName(h)] = err
			continue
		}
		modules = append(modules, module)
	}
	return modules, errs, nil
}

// categoryOf returns the first token after "/*", e.g. "/* Optional */" -> "Optional"
func categoryOf(line string) string {
	fields := strings.Fields(strings.TrimPrefix(line, sectionMarker))
	if len(fields) == 0 || strings.HasPrefix(fields[0], "*/") {
		return ""
	}
	return fields[0]
}

func parseDeclaration(line string) (domain.Symbol, bool) {
	m := declPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return domain.Symbol{}, false
	}
	typeTokens := strings.TrimSpace(line[m[2]:m[3]])
	name := line[m[4]:m[5]]

	sym := domain.Symbol{Name: name, Kind: domain.KindFunction}
	if strings.HasPrefix(typeTokens, defineToken) {
		sym.Kind = domain.KindMacro
		sym.Signature = strings.TrimSpace(line[m[4]:])
		if i := strings.Index(sym.Signature, ")"); i >= 0 {
			sym.Signature = sym.Signature[:i+1]
		}
		return sym, true
	}

	sym.ReturnType = strings.Join(strings.Fields(typeTokens), " ")
	if stars := line[m[3]:m[4]]; stars != "" {
		sym.ReturnType += stars
	}
	sig := strings.TrimSpace(line[m[4]:])
	sig = strings.TrimSuffix(sig, ";")
	sym.Signature = strings.TrimSpace(sig)
	return sym, true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
