// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package compile_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/k14s/difflib"
	"github.com/stretchr/testify/require"
	cmdcompile "github.com/tektonc/tektonc/pkg/cmd/compile"
	cmdcore "github.com/tektonc/tektonc/pkg/cmd/core"
	"github.com/tektonc/tektonc/pkg/explain"
	"github.com/tektonc/tektonc/pkg/expression"
	"github.com/tektonc/tektonc/pkg/values"
)

func TestCompile(t *testing.T) {
	tplData := []byte(`apiVersion: tekton.dev/v1beta1
kind: Pipeline
metadata:
  name: "{{ pipeline_name | dns }}"
spec:
  tasks:
    - loopName: per-model
      foreach:
        domain:
          model: "{{ models }}"
      vars:
        task_name: "train-{{ model.name | dns }}"
      tasks:
        - name: "{{ task_name }}"
          params:
            - name: epochs
              value: "{{ model.epochs }}"
    - name: report
      runAfter:
        - train-bert
        - train-gpt
`)

	valuesData := []byte(`pipeline_name: Demo Pipeline
models:
  - name: bert
    epochs: 10
  - name: gpt
    epochs: 20
`)

	expected := `apiVersion: tekton.dev/v1beta1
kind: Pipeline
metadata:
  name: demo-pipeline
spec:
  tasks:
    - name: train-bert
      params:
        - name: epochs
          value: 10
    - name: train-gpt
      params:
        - name: epochs
          value: 20
    - name: report
      runAfter:
        - train-bert
        - train-gpt
`

	out := runCompile(t, cmdcompile.NewOptions(), cmdcompile.CompileInput{
		Template: cmdcompile.NamedSource{Name: "tpl.yml", Data: tplData},
		Values:   &cmdcompile.NamedSource{Name: "values.yml", Data: valuesData},
	})

	require.NoError(t, out.Err)
	assertEqual(t, string(out.DocBytes), expected)

	require.Equal(t, []string{"train-bert", "train-gpt", "report"}, tableTasks(out.Table))
	require.Equal(t, []string{"train-bert", "train-gpt"}, out.Table.Rows[2].DependsOn)
}

func TestCompileWithOverrides(t *testing.T) {
	tplData := []byte(`metadata:
  name: "{{ name }}"
spec:
  params:
    - name: region
      value: "{{ deploy.region }}"
`)

	valuesData := []byte(`name: base
deploy:
  region: us-east-1
  bucket: artifacts
`)

	overrideData := []byte(`deploy:
  region: eu-west-1
`)

	expected := `metadata:
  name: base
spec:
  params:
    - name: region
      value: eu-west-1
`

	out := runCompile(t, cmdcompile.NewOptions(), cmdcompile.CompileInput{
		Template:  cmdcompile.NamedSource{Name: "tpl.yml", Data: tplData},
		Values:    &cmdcompile.NamedSource{Name: "values.yml", Data: valuesData},
		Overrides: []cmdcompile.NamedSource{{Name: "override.yml", Data: overrideData}},
	})

	require.NoError(t, out.Err)
	assertEqual(t, string(out.DocBytes), expected)
}

func TestCompileWithTOMLValues(t *testing.T) {
	tplData := []byte(`metadata:
  name: "{{ name }}"
  replicas: "{{ replicas }}"
`)

	valuesData := []byte(`name = "from-toml"
replicas = 3
`)

	expected := `metadata:
  name: from-toml
  replicas: 3
`

	out := runCompile(t, cmdcompile.NewOptions(), cmdcompile.CompileInput{
		Template: cmdcompile.NamedSource{Name: "tpl.yml", Data: tplData},
		Values:   &cmdcompile.NamedSource{Name: "values.toml", Data: valuesData},
	})

	require.NoError(t, out.Err)
	assertEqual(t, string(out.DocBytes), expected)
}

func TestCompileUnresolvedVariableErr(t *testing.T) {
	tplData := []byte(`metadata:
  name: "{{ nope }}"
`)

	out := runCompile(t, cmdcompile.NewOptions(), cmdcompile.CompileInput{
		Template: cmdcompile.NamedSource{Name: "tpl.yml", Data: tplData},
	})

	require.Error(t, out.Err)

	var unresolvedErr *expression.UnresolvedVariableError
	require.ErrorAs(t, out.Err, &unresolvedErr)
	require.Contains(t, out.Err.Error(), "Unresolved variable 'nope'")
	require.Contains(t, out.Err.Error(), "metadata.name")
}

func TestCompileMalformedOverrideErr(t *testing.T) {
	out := runCompile(t, cmdcompile.NewOptions(), cmdcompile.CompileInput{
		Template:  cmdcompile.NamedSource{Name: "tpl.yml", Data: []byte("name: x\n")},
		Overrides: []cmdcompile.NamedSource{{Name: "bad.yml", Data: []byte("- not a mapping\n")}},
	})

	require.Error(t, out.Err)

	var conflictErr *values.MergeConflictError
	require.ErrorAs(t, out.Err, &conflictErr)
}

func TestCompileValidateCycle(t *testing.T) {
	tplData := []byte(`spec:
  tasks:
    - name: a
      runAfter:
        - b
    - name: b
      runAfter:
        - a
`)

	opts := cmdcompile.NewOptions()
	opts.Validate = true

	out := runCompile(t, opts, cmdcompile.CompileInput{
		Template: cmdcompile.NamedSource{Name: "tpl.yml", Data: tplData},
	})

	require.Error(t, out.Err)

	var cycleErr *explain.CyclicDependencyError
	require.ErrorAs(t, out.Err, &cycleErr)

	// without --validate the same template compiles, cycle reported as
	// a table warning only
	out = runCompile(t, cmdcompile.NewOptions(), cmdcompile.CompileInput{
		Template: cmdcompile.NamedSource{Name: "tpl.yml", Data: tplData},
	})

	require.NoError(t, out.Err)
	require.Len(t, out.Table.Warnings, 1)
}

func runCompile(t *testing.T, opts *cmdcompile.CompileOptions, in cmdcompile.CompileInput) cmdcompile.CompileOutput {
	ui := cmdcore.NewCustomWriterUI(false, &bytes.Buffer{}, &bytes.Buffer{})
	return opts.RunWithInput(in, ui)
}

func tableTasks(table *explain.Table) []string {
	var tasks []string
	for _, row := range table.Rows {
		tasks = append(tasks, row.Task)
	}
	return tasks
}

func assertEqual(t *testing.T, actual string, expected string) {
	if actual != expected {
		t.Fatalf("Not equal; diff expected...actual:\n%v\n", difflib.PPDiff(strings.Split(expected, "\n"), strings.Split(actual, "\n")))
	}
}
