package lint

import (
	"fmt"
	"maps"
	"slices"
)

// Levels holds per-lint level overrides on top of each lint's default.
// The zero value means "defaults only".
type Levels struct {
	overrides map[string]Level
}

// Set overrides the level of name. Unknown names are rejected against reg.
func (l *Levels) Set(reg *Registry, name string, level Level) error {
	if _, ok := reg.Lookup(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLint, name)
	}
	if l.overrides == nil {
		l.overrides = make(map[string]Level)
	}
	l.overrides[name] = level
	return nil
}

// For returns the effective level of lint.
func (l Levels) For(lint *Lint) Level {
	if lvl, ok := l.overrides[lint.Name]; ok {
		return lvl
	}
	return lint.Default
}

// Merge returns a copy of l with every override from other applied on top.
func (l Levels) Merge(other Levels) Levels {
	out := Levels{overrides: make(map[string]Level, len(l.overrides)+len(other.overrides))}
	maps.Copy(out.overrides, l.overrides)
	maps.Copy(out.overrides, other.overrides)
	return out
}

// Digest is a stable textual form of the overrides, used in cache keys.
func (l Levels) Digest() string {
	names := slices.Sorted(maps.Keys(l.overrides))
	out := ""
	for _, name := range names {
		out += name + "=" + l.overrides[name].String() + ";"
	}
	return out
}
