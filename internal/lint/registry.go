package lint

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDuplicateLint is returned when a lint name is registered twice.
	ErrDuplicateLint = errors.New("lint already registered")
	// ErrFrozen is returned by Register after Freeze.
	ErrFrozen = errors.New("lint registry is frozen")
	// ErrUnknownLint is returned for names that no pass declares.
	ErrUnknownLint = errors.New("unknown lint")
)

// Registry maps lint names to descriptors and keeps the passes that emit them.
// It is filled once during setup and only read afterwards.
type Registry struct {
	lints  map[string]*Lint
	passes []ExprPass
	frozen bool
}

func NewRegistry() *Registry {
	return &Registry{
		lints: make(map[string]*Lint),
	}
}

// Register adds a pass and every lint it declares.
// On error nothing is registered.
func (r *Registry) Register(pass ExprPass) error {
	if r.frozen {
		return ErrFrozen
	}
	declared := pass.Lints()
	seen := make(map[string]bool, len(declared))
	for _, l := range declared {
		if l == nil || l.Name == "" {
			return errors.New("lint: cannot register lint with empty name")
		}
		if _, exists := r.lints[l.Name]; exists || seen[l.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateLint, l.Name)
		}
		seen[l.Name] = true
	}
	for _, l := range declared {
		r.lints[l.Name] = l
	}
	r.passes = append(r.passes, pass)
	return nil
}

// Freeze forbids further registration.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Lookup retrieves a lint by name.
func (r *Registry) Lookup(name string) (*Lint, bool) {
	l, ok := r.lints[name]
	return l, ok
}

// All returns every registered lint sorted by name.
func (r *Registry) All() []*Lint {
	out := make([]*Lint, 0, len(r.lints))
	for _, l := range r.lints {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Passes returns passes in registration order.
// READONLY
func (r *Registry) Passes() []ExprPass {
	return r.passes
}

func (r *Registry) Len() int {
	return len(r.lints)
}
