// Package lints wires the builtin lint passes into a registry.
package lints

import (
	"fmt"

	"ferrite/internal/lint"
	"ferrite/internal/lints/redundantfieldnames"
)

// builtin lists every pass shipped with ferrite, in registration order.
func builtin() []lint.ExprPass {
	return []lint.ExprPass{
		redundantfieldnames.Pass{},
	}
}

// Register adds every builtin pass to reg.
func Register(reg *lint.Registry) error {
	for _, pass := range builtin() {
		if err := reg.Register(pass); err != nil {
			return fmt.Errorf("register builtin lints: %w", err)
		}
	}
	return nil
}

// NewRegistry returns a frozen registry holding the builtin lints.
func NewRegistry() (*lint.Registry, error) {
	reg := lint.NewRegistry()
	if err := Register(reg); err != nil {
		return nil, err
	}
	reg.Freeze()
	return reg, nil
}
