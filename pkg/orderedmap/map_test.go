// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap_test

import (
	"reflect"
	"testing"

	"github.com/tektonc/tektonc/pkg/orderedmap"
)

func TestMapKeyOrder(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("zebra", 1)
	m.Set("alpha", 2)
	m.Set("middle", 3)

	expectedKeys := []string{"zebra", "alpha", "middle"}
	if !reflect.DeepEqual(m.Keys(), expectedKeys) {
		t.Fatalf("Expected keys %v, but was %v", expectedKeys, m.Keys())
	}

	// updating a key keeps its original slot
	m.Set("alpha", 20)
	if !reflect.DeepEqual(m.Keys(), expectedKeys) {
		t.Fatalf("Expected keys %v after update, but was %v", expectedKeys, m.Keys())
	}

	val, found := m.Get("alpha")
	if !found || val != 20 {
		t.Fatalf("Expected updated value 20, but was %v (found=%t)", val, found)
	}
}

func TestMapDelete(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("a", 1)
	m.Set("b", 2)

	if !m.Delete("a") {
		t.Fatalf("Expected delete of present key to report true")
	}
	if m.Delete("a") {
		t.Fatalf("Expected delete of absent key to report false")
	}
	if m.Len() != 1 {
		t.Fatalf("Expected 1 remaining item, but was %d", m.Len())
	}
}

func TestConversionFromUnorderedMaps(t *testing.T) {
	raw := map[string]interface{}{
		"zebra": 1,
		"alpha": map[string]interface{}{"inner": "val"},
		"list":  []interface{}{map[string]interface{}{"b": 2, "a": 1}},
	}

	converted, err := orderedmap.Conversion{Object: raw}.FromUnorderedMaps()
	if err != nil {
		t.Fatalf("error: %s", err)
	}

	m, ok := converted.(*orderedmap.Map)
	if !ok {
		t.Fatalf("Expected *orderedmap.Map, but was %T", converted)
	}

	// unordered input sorts lexically so conversion is deterministic
	expectedKeys := []string{"alpha", "list", "zebra"}
	if !reflect.DeepEqual(m.Keys(), expectedKeys) {
		t.Fatalf("Expected keys %v, but was %v", expectedKeys, m.Keys())
	}

	listVal, _ := m.Get("list")
	itemMap := listVal.([]interface{})[0].(*orderedmap.Map)
	if !reflect.DeepEqual(itemMap.Keys(), []string{"a", "b"}) {
		t.Fatalf("Expected nested keys sorted, but was %v", itemMap.Keys())
	}
}

func TestConversionAsUnorderedMaps(t *testing.T) {
	inner := orderedmap.NewMap()
	inner.Set("b", 2)
	inner.Set("a", 1)

	m := orderedmap.NewMap()
	m.Set("nested", inner)
	m.Set("list", []interface{}{inner, "s"})
	m.Set("plain", int64(7))

	converted := orderedmap.Conversion{Object: m}.AsUnorderedMaps()

	expected := map[string]interface{}{
		"nested": map[string]interface{}{"b": 2, "a": 1},
		"list":   []interface{}{map[string]interface{}{"b": 2, "a": 1}, "s"},
		"plain":  int64(7),
	}
	if !reflect.DeepEqual(converted, expected) {
		t.Fatalf("Expected %#v, but was %#v", expected, converted)
	}
}

func TestDeepCopyIndependence(t *testing.T) {
	m := orderedmap.NewMap()
	inner := orderedmap.NewMap()
	inner.Set("x", 1)
	m.Set("nested", inner)
	m.Set("list", []interface{}{1, 2})

	copied := orderedmap.DeepCopy(m).(*orderedmap.Map)

	inner.Set("x", 99)
	listVal, _ := m.Get("list")
	listVal.([]interface{})[0] = 99

	copiedInnerVal, _ := copied.Get("nested")
	x, _ := copiedInnerVal.(*orderedmap.Map).Get("x")
	if x != 1 {
		t.Fatalf("Expected copied nested value to be unaffected, but was %v", x)
	}

	copiedListVal, _ := copied.Get("list")
	if copiedListVal.([]interface{})[0] != 1 {
		t.Fatalf("Expected copied list value to be unaffected, but was %v", copiedListVal.([]interface{})[0])
	}
}
