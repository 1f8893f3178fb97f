// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package values

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tektonc/tektonc/pkg/orderedmap"
	"github.com/tektonc/tektonc/pkg/yamltree"
)

// Load parses a values document into an ordered tree. Sources named *.toml
// are decoded as TOML (keys sorted, TOML mappings carry no usable order);
// anything else is YAML with source order kept.
func Load(data []byte, associatedName string) (*orderedmap.Map, error) {
	if strings.HasSuffix(associatedName, ".toml") {
		return loadTOML(data, associatedName)
	}
	return loadYAML(data, associatedName)
}

// LoadOverride is Load for an override document; a malformed override is a
// MergeConflictError since the conflict surfaces at merge time for callers.
func LoadOverride(data []byte, associatedName string) (*orderedmap.Map, error) {
	vals, err := Load(data, associatedName)
	if err != nil {
		return nil, &MergeConflictError{Source: associatedName, Err: err}
	}
	return vals, nil
}

func loadYAML(data []byte, associatedName string) (*orderedmap.Map, error) {
	doc, err := yamltree.NewParser().ParseBytes(data, associatedName)
	if err != nil {
		return nil, err
	}
	if doc.Value == nil {
		return orderedmap.NewMap(), nil
	}

	plainVal := yamltree.NewPlainFromTree(doc.Value)
	vals, ok := plainVal.(*orderedmap.Map)
	if !ok {
		return nil, fmt.Errorf("Expected values document %s to be a mapping, but was %T", associatedName, plainVal)
	}
	return vals, nil
}

func loadTOML(data []byte, associatedName string) (*orderedmap.Map, error) {
	var raw map[string]interface{}

	err := toml.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("Parsing TOML %s: %s", associatedName, err)
	}

	converted, err := orderedmap.Conversion{Object: raw}.FromUnorderedMaps()
	if err != nil {
		return nil, fmt.Errorf("Converting TOML %s: %s", associatedName, err)
	}
	return converted.(*orderedmap.Map), nil
}

// Merge deep-merges override into base and returns a new tree; neither input
// is mutated. Mappings merge key by key; any other pairing is replaced by the
// override value wholesale, regardless of type.
func Merge(base, override *orderedmap.Map) *orderedmap.Map {
	result := orderedmap.DeepCopy(base).(*orderedmap.Map)

	override.Iterate(func(k string, overrideVal interface{}) {
		baseVal, found := result.Get(k)
		if found {
			baseMap, baseIsMap := baseVal.(*orderedmap.Map)
			overrideMap, overrideIsMap := overrideVal.(*orderedmap.Map)
			if baseIsMap && overrideIsMap {
				result.Set(k, Merge(baseMap, overrideMap))
				return
			}
		}
		result.Set(k, orderedmap.DeepCopy(overrideVal))
	})

	return result
}

// MergeConflictError reports an override document that cannot participate in
// a merge (it failed to parse or is not a mapping).
type MergeConflictError struct {
	Source string
	Err    error
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("Merging values overrides from %s: %s", e.Source, e.Err)
}
