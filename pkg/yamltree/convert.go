// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package yamltree

import (
	"fmt"

	"github.com/tektonc/tektonc/pkg/filepos"
	"github.com/tektonc/tektonc/pkg/orderedmap"
)

// NewPlainFromTree converts an AST value into plain Go values: *orderedmap.Map
// for mappings, []interface{} for sequences, scalars as-is. Positions are
// dropped.
func NewPlainFromTree(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case *Document:
		return NewPlainFromTree(typedVal.Value)

	case *Map:
		result := orderedmap.NewMap()
		for _, item := range typedVal.Items {
			result.Set(item.Key, NewPlainFromTree(item.Value))
		}
		return result

	case *Array:
		result := make([]interface{}, 0, len(typedVal.Items))
		for _, item := range typedVal.Items {
			result = append(result, NewPlainFromTree(item.Value))
		}
		return result

	case nil, string, int64, float64, bool:
		return typedVal

	default:
		panic(fmt.Sprintf("Unexpected %T in NewPlainFromTree", val))
	}
}

// NewTreeFromPlain converts plain Go values into AST values, stamping every
// produced node with defaultPosition.
func NewTreeFromPlain(val interface{}, defaultPosition *filepos.Position) interface{} {
	switch typedVal := val.(type) {
	case *orderedmap.Map:
		result := &Map{Position: defaultPosition.DeepCopy()}
		typedVal.Iterate(func(k string, v interface{}) {
			result.Items = append(result.Items, &MapItem{
				Key:      k,
				Value:    NewTreeFromPlain(v, defaultPosition),
				Position: defaultPosition.DeepCopy(),
			})
		})
		return result

	case []interface{}:
		result := &Array{Position: defaultPosition.DeepCopy()}
		for _, item := range typedVal {
			result.Items = append(result.Items, &ArrayItem{
				Value:    NewTreeFromPlain(item, defaultPosition),
				Position: defaultPosition.DeepCopy(),
			})
		}
		return result

	case nil, string, int64, float64, bool:
		return typedVal

	case int:
		return int64(typedVal)

	default:
		panic(fmt.Sprintf("Unexpected %T in NewTreeFromPlain", val))
	}
}
