package gen

import "slices"

// Location is the insertion point of a plugin fragment in a table module.
type Location uint8

const (
	// LocationClass inserts the fragment inside the class body, after the
	// generated members.
	LocationClass Location = iota + 1
	// LocationEnd inserts the fragment after the class body.
	LocationEnd
)

// String implements the fmt.Stringer interface.
func (l Location) String() string {
	switch l {
	case LocationClass:
		return "table"
	case LocationEnd:
		return "end"
	default:
		return "invalid"
	}
}

// Import is an import requirement contributed by a plugin.
type Import struct {
	Package string
	Symbols []string
}

// Fragment is a line of code contributed by a plugin.
type Fragment struct {
	Code     string
	Location Location
}

// Result is the output of a plugin, keyed by target table name.
type Result struct {
	Imports map[string][]Import
	Code    map[string][]Fragment
}

// NewResult returns an empty Result.
func NewResult() *Result {
	return &Result{
		Imports: make(map[string][]Import),
		Code:    make(map[string][]Fragment),
	}
}

// AddImport records import requirements for the module of table.
func (r *Result) AddImport(table string, imports ...Import) {
	r.Imports[table] = append(r.Imports[table], imports...)
}

// AddCode records code fragments for the module of table.
func (r *Result) AddCode(table string, loc Location, code ...string) {
	for _, c := range code {
		r.Code[table] = append(r.Code[table], Fragment{Code: c, Location: loc})
	}
}

// Plugin derives additional code from a fully computed Lab. Plugins must
// not mutate the Lab.
type Plugin func(*Lab) *Result

// Accumulator merges plugin results. Imports and fragments are merged with
// set-union semantics, so feeding the same result twice is a no-op and the
// order plugins run in does not change the generated code.
type Accumulator struct {
	imports map[string]ImportSet
	code    map[string][]Fragment
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		imports: make(map[string]ImportSet),
		code:    make(map[string][]Fragment),
	}
}

// Add merges r into the accumulator. A nil result is ignored.
func (a *Accumulator) Add(r *Result) {
	if r == nil {
		return
	}
	for table, imports := range r.Imports {
		set := a.tableImports(table)
		for _, imp := range imports {
			set.Add(imp.Package, imp.Symbols...)
		}
	}
	for table, frags := range r.Code {
		for _, f := range frags {
			a.addFragment(table, f)
		}
	}
}

func (a *Accumulator) tableImports(table string) ImportSet {
	set, ok := a.imports[table]
	if !ok {
		set = make(ImportSet)
		a.imports[table] = set
	}
	return set
}

func (a *Accumulator) addFragment(table string, f Fragment) {
	if !slices.Contains(a.code[table], f) {
		a.code[table] = append(a.code[table], f)
	}
}

// Imports returns the imports accumulated for table.
func (a *Accumulator) Imports(table string) ImportSet {
	return a.imports[table]
}

// Fragments returns the code accumulated for table at loc, sorted.
func (a *Accumulator) Fragments(table string, loc Location) []string {
	var code []string
	for _, f := range a.code[table] {
		if f.Location == loc {
			code = append(code, f.Code)
		}
	}
	slices.Sort(code)
	return code
}

// Merge returns a new accumulator holding the union of a and b. Merge is
// commutative and associative; a and b are left untouched.
func Merge(a, b *Accumulator) *Accumulator {
	m := NewAccumulator()
	for _, src := range []*Accumulator{a, b} {
		if src == nil {
			continue
		}
		for table, set := range src.imports {
			m.tableImports(table).Merge(set)
		}
		for table, frags := range src.code {
			for _, f := range frags {
				m.addFragment(table, f)
			}
		}
	}
	return m
}
