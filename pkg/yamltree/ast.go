// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package yamltree

import (
	"github.com/tektonc/tektonc/pkg/filepos"
)

// Node is a structural element of a parsed YAML document. Values held by a
// node are either further Nodes or plain scalars (string, int64, float64,
// bool, nil).
type Node interface {
	GetPosition() *filepos.Position
	GetValues() []interface{} // ie children
	DeepCopyAsNode() Node

	sealed() // limit the concrete types of Node to the shapes allowed in YAML
}

var _ = []Node{&Document{}, &Map{}, &Array{}}

// Document is a single YAML document. Value is nil for an empty document.
type Document struct {
	Value    interface{}
	Position *filepos.Position
}

// Map is a YAML mapping with string keys, in source order.
type Map struct {
	Items    []*MapItem
	Position *filepos.Position
}

type MapItem struct {
	Key      string
	Value    interface{}
	Position *filepos.Position
}

// Array is a YAML sequence, in source order.
type Array struct {
	Items    []*ArrayItem
	Position *filepos.Position
}

type ArrayItem struct {
	Value    interface{}
	Position *filepos.Position
}

func (d *Document) GetPosition() *filepos.Position  { return d.Position }
func (m *Map) GetPosition() *filepos.Position       { return m.Position }
func (mi *MapItem) GetPosition() *filepos.Position  { return mi.Position }
func (a *Array) GetPosition() *filepos.Position     { return a.Position }
func (ai *ArrayItem) GetPosition() *filepos.Position { return ai.Position }

func (d *Document) GetValues() []interface{} { return []interface{}{d.Value} }

func (m *Map) GetValues() []interface{} {
	var result []interface{}
	for _, item := range m.Items {
		result = append(result, item.Value)
	}
	return result
}

func (mi *MapItem) GetValues() []interface{} { return []interface{}{mi.Value} }

func (a *Array) GetValues() []interface{} {
	var result []interface{}
	for _, item := range a.Items {
		result = append(result, item.Value)
	}
	return result
}

func (ai *ArrayItem) GetValues() []interface{} { return []interface{}{ai.Value} }

func (d *Document) sealed()  {}
func (m *Map) sealed()       {}
func (mi *MapItem) sealed()  {}
func (a *Array) sealed()     {}
func (ai *ArrayItem) sealed() {}
