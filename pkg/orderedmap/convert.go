// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"fmt"
	"sort"
)

// Conversion translates between plain Go maps (as produced by decoders that
// do not keep key order, e.g. TOML) and *Map trees. Unordered maps are
// converted with their keys sorted so the result is deterministic.
type Conversion struct {
	Object interface{}
}

func (c Conversion) FromUnorderedMaps() (interface{}, error) {
	return c.fromUnorderedMaps(c.Object)
}

func (c Conversion) fromUnorderedMaps(object interface{}) (interface{}, error) {
	switch typedObj := object.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(typedObj))
		for key := range typedObj {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		result := NewMap()
		for _, key := range keys {
			val, err := c.fromUnorderedMaps(typedObj[key])
			if err != nil {
				return nil, err
			}
			result.Set(key, val)
		}
		return result, nil

	case map[interface{}]interface{}:
		return nil, fmt.Errorf("Expected map keys to be strings")

	case []interface{}:
		result := make([]interface{}, 0, len(typedObj))
		for _, item := range typedObj {
			newItem, err := c.fromUnorderedMaps(item)
			if err != nil {
				return nil, err
			}
			result = append(result, newItem)
		}
		return result, nil

	case []map[string]interface{}:
		result := make([]interface{}, 0, len(typedObj))
		for _, item := range typedObj {
			newItem, err := c.fromUnorderedMaps(item)
			if err != nil {
				return nil, err
			}
			result = append(result, newItem)
		}
		return result, nil

	default:
		return typedObj, nil
	}
}

// AsUnorderedMaps converts a *Map tree into plain map[string]interface{}
// values for encoders that cannot take a *Map. Key order is lost.
func (c Conversion) AsUnorderedMaps() interface{} {
	return c.asUnorderedMaps(c.Object)
}

func (c Conversion) asUnorderedMaps(object interface{}) interface{} {
	switch typedObj := object.(type) {
	case *Map:
		result := map[string]interface{}{}
		typedObj.Iterate(func(k string, v interface{}) {
			result[k] = c.asUnorderedMaps(v)
		})
		return result

	case []interface{}:
		result := make([]interface{}, 0, len(typedObj))
		for _, item := range typedObj {
			result = append(result, c.asUnorderedMaps(item))
		}
		return result

	default:
		return typedObj
	}
}

// DeepCopy returns a copy of val that shares no mutable state with it.
func DeepCopy(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case *Map:
		result := NewMap()
		typedVal.Iterate(func(k string, v interface{}) {
			result.Set(k, DeepCopy(v))
		})
		return result

	case []interface{}:
		result := make([]interface{}, 0, len(typedVal))
		for _, item := range typedVal {
			result = append(result, DeepCopy(item))
		}
		return result

	default:
		return typedVal
	}
}
