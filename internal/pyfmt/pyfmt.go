// Package pyfmt holds the string helpers used to render Python source.
package pyfmt

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var separators = regexp.MustCompile(`[_-]+`)

// PascalCase converts a table name to a class name. Runs of underscores and
// dashes collapse into a single word boundary and every word is title-cased.
//
//	PascalCase("my-table_name") // MyTableName
func PascalCase(s string) string {
	// Casers keep state between calls and cannot be shared.
	caser := cases.Title(language.Und)
	var b strings.Builder
	for _, w := range strings.Fields(separators.ReplaceAllString(s, " ")) {
		b.WriteString(caser.String(w))
	}
	return b.String()
}

// Quote wraps s in double quotes, falling back to triple quotes when s
// contains a double quote or a newline.
func Quote(s string) string {
	if !strings.ContainsAny(s, "\"\n") {
		return `"` + s + `"`
	}
	return `"""` + s + `"""`
}

// Repr renders s the way Python's repr() renders a str.
func Repr(s string) string {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.WriteRune(q)
	for _, r := range s {
		switch {
		case r == q || r == '\\':
			b.WriteRune('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(q)
	return b.String()
}

var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// IsIdentifier reports whether s can be used as a Python attribute name.
func IsIdentifier(s string) bool {
	if s == "" || keywords[s] {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// Bool renders a Python boolean literal.
func Bool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
