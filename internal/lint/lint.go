package lint

import (
	"fmt"
	"strings"

	"ferrite/internal/diag"
)

// Category groups lints the way `ferrite lints` prints them.
type Category uint8

const (
	CategoryStyle Category = iota
	CategoryCorrectness
	CategoryComplexity
	CategoryPerf
	CategoryPedantic
)

func (c Category) String() string {
	switch c {
	case CategoryStyle:
		return "style"
	case CategoryCorrectness:
		return "correctness"
	case CategoryComplexity:
		return "complexity"
	case CategoryPerf:
		return "perf"
	case CategoryPedantic:
		return "pedantic"
	}
	return "unknown"
}

// Level is the configured reaction to a lint.
type Level uint8

const (
	Allow Level = iota
	Warn
	Deny
)

func (l Level) String() string {
	switch l {
	case Allow:
		return "allow"
	case Warn:
		return "warn"
	case Deny:
		return "deny"
	}
	return "unknown"
}

// ParseLevel accepts allow, warn and deny in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allow":
		return Allow, nil
	case "warn":
		return Warn, nil
	case "deny":
		return Deny, nil
	}
	return Allow, fmt.Errorf("unknown lint level %q (want allow, warn or deny)", s)
}

// Severity maps an enabled level to the diagnostic severity.
func (l Level) Severity() diag.Severity {
	if l == Deny {
		return diag.SevError
	}
	return diag.SevWarning
}

// Lint is the static descriptor of one rule.
type Lint struct {
	// Name is the stable snake_case identifier used in config and directives.
	Name        string
	Category    Category
	Description string
	Default     Level
	Code        diag.Code
	// Doc is Markdown shown by `ferrite explain`.
	Doc string
}

func (l *Lint) String() string {
	return l.Name
}
