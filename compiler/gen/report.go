package gen

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"
)

// Skip records a table left out of the generated package.
type Skip struct {
	Table  string
	Reason error
}

// Report summarizes a generation run.
type Report struct {
	// RunID identifies the run in the log records it produced.
	RunID string
	// Target is the directory the package was written to.
	Target string
	// Generated lists the generated tables, in table order.
	Generated []string
	// Skipped lists the tables that could not be generated, in table order.
	Skipped []Skip
	// Files lists the written files, relative to Target.
	Files []string
}

// String returns a human readable summary of the run.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "generated %s into %s", count(len(r.Generated), "table"), r.Target)
	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, ", skipped %d:", len(r.Skipped))
		for _, s := range r.Skipped {
			fmt.Fprintf(&b, "\n  %s: %v", s.Table, s.Reason)
		}
	}
	return b.String()
}

func count(n int, noun string) string {
	if n != 1 {
		noun = inflect.Pluralize(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}
