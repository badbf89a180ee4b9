package gen

import (
	"maps"
	"slices"
	"strings"
)

// ImportSet maps an import package to the set of symbols imported from it.
type ImportSet map[string]map[string]struct{}

// Add registers symbols under pkg. A package added without symbols is kept
// but not rendered.
func (s ImportSet) Add(pkg string, symbols ...string) {
	set, ok := s[pkg]
	if !ok {
		set = make(map[string]struct{}, len(symbols))
		s[pkg] = set
	}
	for _, sym := range symbols {
		set[sym] = struct{}{}
	}
}

// Merge adds every symbol of other into s.
func (s ImportSet) Merge(other ImportSet) {
	for pkg, set := range other {
		s.Add(pkg, slices.Collect(maps.Keys(set))...)
	}
}

// Has reports whether sym is imported from pkg.
func (s ImportSet) Has(pkg, sym string) bool {
	_, ok := s[pkg][sym]
	return ok
}

// Symbols returns the sorted symbols imported from pkg.
func (s ImportSet) Symbols(pkg string) []string {
	return slices.Sorted(maps.Keys(s[pkg]))
}

// Lines renders one "from <pkg> import <symbols>" statement per package.
// Packages are ordered by their dotted components, so relative imports
// precede absolute ones.
func (s ImportSet) Lines() []string {
	pkgs := slices.Collect(maps.Keys(s))
	slices.SortFunc(pkgs, func(a, b string) int {
		return slices.Compare(strings.Split(a, "."), strings.Split(b, "."))
	})
	lines := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		syms := s.Symbols(pkg)
		if len(syms) == 0 {
			continue
		}
		lines = append(lines, "from "+pkg+" import "+strings.Join(syms, ", "))
	}
	return lines
}
