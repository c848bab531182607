package coverage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ftest/internal/discovery"
	"ftest/internal/domain"
)

func module(name string, symbols ...string) domain.Module {
	m := domain.Module{Name: name}
	for _, s := range symbols {
		m.Symbols = append(m.Symbols, domain.Symbol{Name: s, Module: name})
	}
	return m
}

func suite(t *testing.T, dir, module string, sources map[string]string) domain.TestSuite {
	t.Helper()
	s := domain.TestSuite{Module: module, Dir: filepath.Join(dir, module)}
	require.NoError(t, os.MkdirAll(s.Dir, 0755))
	for name, content := range sources {
		path := filepath.Join(s.Dir, name+".c")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		s.Cases = append(s.Cases, domain.TestCase{Module: module, Name: name, SourcePath: path})
	}
	return s
}

func TestCoverage_StrScenario(t *testing.T) {
	dir := t.TempDir()
	modules := []domain.Module{module("str", "str_concat", "str_trim")}
	suites := []domain.TestSuite{suite(t, dir, "str", map[string]string{
		"concat": "int main() { str s = str_concat(a, b); }",
	})}

	usage, errs := NewAnalyzer().Analyze(suites, modules)
	require.Empty(t, errs)

	coverages := NewAggregator().Aggregate(modules, usage)
	require.Len(t, coverages, 1)
	assert.Equal(t, "50.00", coverages[0].Percentage)
	assert.Equal(t, []string{"str_trim"}, coverages[0].Unused)
	assert.Equal(t, 2, coverages[0].Declared)
	assert.Equal(t, 1, coverages[0].Used)
}

func TestAnalyzer_UsedIn(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.c")
	b := filepath.Join(dir, "b.c")
	require.NoError(t, os.WriteFile(a, []byte("// str_print is mentioned in a comment\nstr_trim(s);"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("str_trim(t); puts(\"str_split\");"), 0644))

	used, err := NewAnalyzer().UsedIn([]string{a, b}, []string{"str_trim", "str_print", "str_split", "str_free", "str_trim"})
	require.NoError(t, err)
	assert.Equal(t, []string{"str_trim", "str_print", "str_split"}, used)

	t.Run("unreadable source", func(t *testing.T) {
		_, err := NewAnalyzer().UsedIn([]string{filepath.Join(dir, "missing.c")}, []string{"str_trim"})
		assert.Error(t, err)
	})
}

func TestAnalyzer_ExcludesModulesWithoutSources(t *testing.T) {
	dir := t.TempDir()
	modules := []domain.Module{module("net", "net_open"), module("str", "str_trim")}
	suites := []domain.TestSuite{
		{Module: "net", Dir: filepath.Join(dir, "net")},
		suite(t, dir, "str", map[string]string{"trim": "str_trim"}),
	}

	usage, errs := NewAnalyzer().Analyze(suites, modules)
	require.Empty(t, errs)

	_, ok := usage.Used("net")
	assert.False(t, ok)
	_, ok = usage.Used("str")
	assert.True(t, ok)

	coverages := NewAggregator().Aggregate(modules, usage)
	require.Len(t, coverages, 1)
	assert.Equal(t, "str", coverages[0].Module)
}

func TestAnalyzer_UnreadableSourceSkipsModule(t *testing.T) {
	dir := t.TempDir()
	modules := []domain.Module{module("file", "file_open"), module("str", "str_trim")}
	suites := []domain.TestSuite{
		{Module: "file", Cases: []domain.TestCase{{Name: "gone", SourcePath: filepath.Join(dir, "gone.c")}}},
		suite(t, dir, "str", map[string]string{"trim": "str_trim"}),
	}

	usage, errs := NewAnalyzer().Analyze(suites, modules)
	assert.Contains(t, errs, "file")
	_, ok := usage.Used("file")
	assert.False(t, ok)
	_, ok = usage.Used("str")
	assert.True(t, ok)
}

func TestAggregator_PerModuleSkip(t *testing.T) {
	dir := t.TempDir()
	// "file" comes first and has no tests; "str" after it must still be covered.
	modules := []domain.Module{module("file", "file_open"), module("str", "str_trim")}
	suites := []domain.TestSuite{suite(t, dir, "str", map[string]string{"trim": "str_trim(s)"})}

	usage, _ := NewAnalyzer().Analyze(suites, modules)
	coverages := NewAggregator().Aggregate(modules, usage)

	require.Len(t, coverages, 1)
	assert.Equal(t, "str", coverages[0].Module)
	assert.Equal(t, "100.00", coverages[0].Percentage)
	assert.Empty(t, coverages[0].Unused)
}

func TestAggregator_CrossModuleLeniency(t *testing.T) {
	dir := t.TempDir()
	modules := []domain.Module{
		module("file", "file_open", "file_close", "str_free"),
		module("str", "str_create", "str_free"),
	}
	// Both headers declare str_free; only the file tests call it.
	suites := []domain.TestSuite{
		suite(t, dir, "file", map[string]string{"read": "file_open(); str_free(s);"}),
		suite(t, dir, "str", map[string]string{"create": "str_create(3);"}),
	}

	usage, errs := NewAnalyzer().Analyze(suites, modules)
	require.Empty(t, errs)
	index := ByModule(NewAggregator().Aggregate(modules, usage))

	str := index["str"]
	assert.Equal(t, "50.00", str.Percentage, "percentage counts only the module's own tests")
	assert.Empty(t, str.Unused, "str_free is used by another module's tests")

	file := index["file"]
	assert.Equal(t, "66.67", file.Percentage)
	assert.Equal(t, []string{"file_close"}, file.Unused)
}

func TestAggregator_NoAPI(t *testing.T) {
	dir := t.TempDir()
	modules := []domain.Module{module("net")}
	suites := []domain.TestSuite{suite(t, dir, "net", map[string]string{"connect": "net_open();"})}

	usage, _ := NewAnalyzer().Analyze(suites, modules)
	coverages := NewAggregator().Aggregate(modules, usage)

	require.Len(t, coverages, 1)
	assert.True(t, coverages[0].NoAPI)
	assert.Empty(t, coverages[0].Percentage)
}

func TestAggregator_TestsWithoutUsedSymbols(t *testing.T) {
	dir := t.TempDir()
	modules := []domain.Module{module("optional", "Some", "None")}
	suites := []domain.TestSuite{suite(t, dir, "optional", map[string]string{"values": "int main() { return 0; }"})}

	usage, _ := NewAnalyzer().Analyze(suites, modules)
	coverages := NewAggregator().Aggregate(modules, usage)

	require.Len(t, coverages, 1)
	assert.Equal(t, "0.00", coverages[0].Percentage)
	assert.Equal(t, []string{"Some", "None"}, coverages[0].Unused)
}

func TestPercent(t *testing.T) {
	tests := []struct {
		used, declared int
		want           string
	}{
		{0, 4, "0.00"},
		{1, 3, "33.33"},
		{2, 3, "66.67"},
		{1, 2, "50.00"},
		{7, 7, "100.00"},
		{41, 41, "100.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.used, tt.declared))
	}
}

func TestCoverage_RepeatedDeclarationCountsOnce(t *testing.T) {
	dir := t.TempDir()
	header := "/* Network */\n#ifdef _WIN32\nint net_start(WSADATA* data);\n#else\nint net_start(void);\n#endif\nvoid net_stop(void);\n"
	net, err := discovery.NewHeaderScanner().Scan("net", strings.NewReader(header))
	require.NoError(t, err)

	modules := []domain.Module{net}
	suites := []domain.TestSuite{suite(t, dir, "net", map[string]string{
		"start_stop": "int main() { net_start(); net_stop(); }",
	})}

	usage, errs := NewAnalyzer().Analyze(suites, modules)
	require.Empty(t, errs)

	coverages := NewAggregator().Aggregate(modules, usage)
	require.Len(t, coverages, 1)
	assert.Equal(t, 2, coverages[0].Declared)
	assert.Equal(t, 2, coverages[0].Used)
	assert.Equal(t, "100.00", coverages[0].Percentage)
	assert.Empty(t, coverages[0].Unused)
}
