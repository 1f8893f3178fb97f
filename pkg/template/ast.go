// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"github.com/tektonc/tektonc/pkg/expression"
	"github.com/tektonc/tektonc/pkg/filepos"
)

// Node is one element of a parsed template tree.
type Node interface {
	GetPosition() *filepos.Position

	templateNode()
}

var _ = []Node{&Literal{}, &Text{}, &Mapping{}, &Sequence{}, &Loop{}, &Deferred{}}

// Literal holds a plain value needing no further resolution: a scalar without
// expression markers, or a domain sequence pinned by the outer pass.
type Literal struct {
	Value    interface{}
	Position *filepos.Position
}

// Text is a string scalar containing at least one expression marker.
type Text struct {
	Compiled *expression.Text
	Raw      string
	Position *filepos.Position
}

type Mapping struct {
	Items    []*MappingItem
	Position *filepos.Position
}

type MappingItem struct {
	Key      string
	Value    Node
	Position *filepos.Position
}

type Sequence struct {
	Items    []Node
	Position *filepos.Position
}

// Loop is a loop node: its body is instantiated once per combination of the
// domain variables' values.
type Loop struct {
	Name     string
	Domain   []*DomainVar   // declared order; enumeration sorts by name
	Vars     []*ComputedVar // declared order; later vars may read earlier ones
	Body     []Node
	Position *filepos.Position
}

// DomainVar is one domain variable: a sequence literal or an expression
// yielding a sequence.
type DomainVar struct {
	Name     string
	Value    Node
	Position *filepos.Position
}

// ComputedVar is a per-combination derived variable.
type ComputedVar struct {
	Name     string
	Value    Node
	Position *filepos.Position
}

// Deferred is a node evaluated only during the inner pass, once loop
// variables are bound.
type Deferred struct {
	Expr     *expression.Expr
	Raw      string
	Position *filepos.Position
}

// Template is a parsed pipeline template, ready to be rendered any number of
// times.
type Template struct {
	Name            string // associated source name, used in positions
	RequiredVersion string // empty when the template declares no constraint
	Root            Node
	Position        *filepos.Position
}

func (l *Literal) GetPosition() *filepos.Position  { return l.Position }
func (t *Text) GetPosition() *filepos.Position     { return t.Position }
func (m *Mapping) GetPosition() *filepos.Position  { return m.Position }
func (s *Sequence) GetPosition() *filepos.Position { return s.Position }
func (l *Loop) GetPosition() *filepos.Position     { return l.Position }
func (d *Deferred) GetPosition() *filepos.Position { return d.Position }

func (l *Literal) templateNode()  {}
func (t *Text) templateNode()     {}
func (m *Mapping) templateNode()  {}
func (s *Sequence) templateNode() {}
func (l *Loop) templateNode()     {}
func (d *Deferred) templateNode() {}
