// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package values_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tektonc/tektonc/pkg/orderedmap"
	"github.com/tektonc/tektonc/pkg/values"
)

func TestLoadYAML(t *testing.T) {
	const data = `zebra: 1
alpha:
  inner: hello
`

	vals, err := values.Load([]byte(data), "values.yml")
	if err != nil {
		t.Fatalf("error: %s", err)
	}

	if !reflect.DeepEqual(vals.Keys(), []string{"zebra", "alpha"}) {
		t.Fatalf("Expected source key order kept, but was %v", vals.Keys())
	}

	alphaVal, _ := vals.Get("alpha")
	inner, _ := alphaVal.(*orderedmap.Map).Get("inner")
	if inner != "hello" {
		t.Fatalf("Expected nested value 'hello', but was %v", inner)
	}
}

func TestLoadYAMLEmpty(t *testing.T) {
	vals, err := values.Load([]byte(""), "empty.yml")
	if err != nil {
		t.Fatalf("error: %s", err)
	}
	if vals.Len() != 0 {
		t.Fatalf("Expected empty values, but had %d keys", vals.Len())
	}
}

func TestLoadYAMLNonMappingErr(t *testing.T) {
	_, err := values.Load([]byte("- 1\n- 2\n"), "seq.yml")
	if err == nil {
		t.Fatalf("Expected error")
	}
	if err.Error() != "Expected values document seq.yml to be a mapping, but was []interface {}" {
		t.Fatalf("Unexpected error: %s", err)
	}
}

func TestLoadTOML(t *testing.T) {
	const data = `zebra = 1
alpha = "hello"

[db]
port = 5432
host = "localhost"
`

	vals, err := values.Load([]byte(data), "values.toml")
	if err != nil {
		t.Fatalf("error: %s", err)
	}

	// TOML mappings carry no usable order; keys come out sorted
	if !reflect.DeepEqual(vals.Keys(), []string{"alpha", "db", "zebra"}) {
		t.Fatalf("Expected sorted keys, but was %v", vals.Keys())
	}

	dbVal, _ := vals.Get("db")
	port, _ := dbVal.(*orderedmap.Map).Get("port")
	if port != int64(5432) {
		t.Fatalf("Expected port 5432 (int64), but was %#v", port)
	}
}

func TestMergeNestedMappings(t *testing.T) {
	base := loadT(t, `db:
  host: localhost
  port: 5432
name: base
`)
	override := loadT(t, `db:
  port: 9999
`)

	merged := values.Merge(base, override)

	dbVal, _ := merged.Get("db")
	db := dbVal.(*orderedmap.Map)

	host, _ := db.Get("host")
	if host != "localhost" {
		t.Fatalf("Expected untouched sibling key to survive, but was %v", host)
	}
	port, _ := db.Get("port")
	if port != int64(9999) {
		t.Fatalf("Expected overridden port 9999, but was %v", port)
	}
	name, _ := merged.Get("name")
	if name != "base" {
		t.Fatalf("Expected base-only key to survive, but was %v", name)
	}
}

func TestMergeSequenceReplacedWholesale(t *testing.T) {
	base := loadT(t, `models:
  - alpha
  - beta
  - gamma
`)
	override := loadT(t, `models:
  - delta
`)

	merged := values.Merge(base, override)

	modelsVal, _ := merged.Get("models")
	models := modelsVal.([]interface{})
	if len(models) != 1 || models[0] != "delta" {
		t.Fatalf("Expected sequence replaced wholesale, but was %v", models)
	}
}

func TestMergeTypeMismatchReplaced(t *testing.T) {
	base := loadT(t, "val:\n  nested: 1\n")
	override := loadT(t, "val: scalar\n")

	merged := values.Merge(base, override)

	val, _ := merged.Get("val")
	if val != "scalar" {
		t.Fatalf("Expected override to replace mismatched type, but was %#v", val)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := loadT(t, "key: original\nother: kept\n")
	override := loadT(t, "key: changed\n")

	values.Merge(base, override)

	baseVal, _ := base.Get("key")
	if baseVal != "original" {
		t.Fatalf("Expected base to be unchanged, but was %v", baseVal)
	}
}

func TestLoadOverrideMalformed(t *testing.T) {
	_, err := values.LoadOverride([]byte("- not\n- a\n- mapping\n"), "override.yml")
	if err == nil {
		t.Fatalf("Expected error")
	}

	var conflictErr *values.MergeConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("Expected MergeConflictError, but was %T", err)
	}
	if conflictErr.Source != "override.yml" {
		t.Fatalf("Expected error to name the source, but was '%s'", conflictErr.Source)
	}
}

func TestLoadTOMLMalformed(t *testing.T) {
	_, err := values.Load([]byte("not valid toml ===\n"), "broken.toml")
	if err == nil {
		t.Fatalf("Expected error")
	}
}

func loadT(t *testing.T, data string) *orderedmap.Map {
	vals, err := values.Load([]byte(data), "test.yml")
	if err != nil {
		t.Fatalf("error: %s", err)
	}
	return vals
}
