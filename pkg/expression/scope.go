// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"github.com/tektonc/tektonc/pkg/orderedmap"
)

// Scope is an immutable chain of variable-binding layers: the values document
// at the bottom, then one layer per enclosing loop combination, then computed
// vars. Lookups walk innermost to outermost; first match wins.
type Scope struct {
	parent   *Scope
	bindings *orderedmap.Map
}

func NewScope(bindings *orderedmap.Map) *Scope {
	return &Scope{bindings: bindings}
}

// WithLayer returns a new Scope with bindings layered over s. s itself is
// unchanged; the layer map is read live, so a caller may keep filling it to
// make later lookups see earlier additions.
func (s *Scope) WithLayer(bindings *orderedmap.Map) *Scope {
	return &Scope{parent: s, bindings: bindings}
}

func (s *Scope) Resolve(name string) (interface{}, bool) {
	for curr := s; curr != nil; curr = curr.parent {
		if val, found := curr.bindings.Get(name); found {
			return val, true
		}
	}
	return nil, false
}

func (s *Scope) IsBound(name string) bool {
	_, found := s.Resolve(name)
	return found
}
