// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package yamltree

import (
	"fmt"
)

func (d *Document) DeepCopyAsNode() Node { return d.DeepCopy() }
func (m *Map) DeepCopyAsNode() Node      { return m.DeepCopy() }
func (mi *MapItem) DeepCopyAsNode() Node { return mi.DeepCopy() }
func (a *Array) DeepCopyAsNode() Node    { return a.DeepCopy() }
func (ai *ArrayItem) DeepCopyAsNode() Node { return ai.DeepCopy() }

func (d *Document) DeepCopy() *Document {
	return &Document{Value: deepCopyValue(d.Value), Position: d.Position.DeepCopy()}
}

func (m *Map) DeepCopy() *Map {
	result := &Map{Position: m.Position.DeepCopy()}
	for _, item := range m.Items {
		result.Items = append(result.Items, item.DeepCopy())
	}
	return result
}

func (mi *MapItem) DeepCopy() *MapItem {
	return &MapItem{Key: mi.Key, Value: deepCopyValue(mi.Value), Position: mi.Position.DeepCopy()}
}

func (a *Array) DeepCopy() *Array {
	result := &Array{Position: a.Position.DeepCopy()}
	for _, item := range a.Items {
		result.Items = append(result.Items, item.DeepCopy())
	}
	return result
}

func (ai *ArrayItem) DeepCopy() *ArrayItem {
	return &ArrayItem{Value: deepCopyValue(ai.Value), Position: ai.Position.DeepCopy()}
}

func deepCopyValue(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case nil, string, int64, float64, bool:
		return typedVal
	case Node:
		return typedVal.DeepCopyAsNode()
	default:
		panic(fmt.Sprintf("Unexpected %T in yamltree deep copy", val))
	}
}
