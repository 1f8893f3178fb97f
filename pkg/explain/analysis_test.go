// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package explain_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tektonc/tektonc/pkg/explain"
	"github.com/tektonc/tektonc/pkg/yamltree"
)

func TestAnalysisChain(t *testing.T) {
	const data = `spec:
  tasks:
    - name: A
      params:
        - name: src
          value: git://repo
    - name: B
      runAfter:
        - A
    - name: C
      params:
        - name: input
          value: $(tasks.B.results.artifact)
`

	analysis := explain.NewAnalysis(parseDoc(t, data))

	require.Equal(t, []string{"A", "B", "C"}, analysis.Tasks())
	require.Empty(t, analysis.Deps("A"))
	require.Equal(t, []string{"A"}, analysis.Deps("B"))
	require.Equal(t, []string{"B"}, analysis.Deps("C"))

	require.NoError(t, analysis.Validate())
}

func TestAnalysisResultRefsAndRunAfterCombined(t *testing.T) {
	const data = `spec:
  tasks:
    - name: build
    - name: test
    - name: deploy
      runAfter:
        - test
      params:
        - name: image
          value: $(tasks.build.results.image-url)
        - name: digest
          value: also $(tasks.build.results.digest) embedded
`

	analysis := explain.NewAnalysis(parseDoc(t, data))

	// deduped and sorted ascending
	require.Equal(t, []string{"build", "test"}, analysis.Deps("deploy"))
}

func TestAnalysisSelfReferenceExcluded(t *testing.T) {
	const data = `spec:
  tasks:
    - name: solo
      params:
        - name: own
          value: $(tasks.solo.results.out)
`

	analysis := explain.NewAnalysis(parseDoc(t, data))
	require.Empty(t, analysis.Deps("solo"))
}

func TestAnalysisFinallySection(t *testing.T) {
	const data = `spec:
  tasks:
    - name: main
  finally:
    - name: cleanup
      params:
        - name: report
          value: $(tasks.main.results.report)
`

	analysis := explain.NewAnalysis(parseDoc(t, data))

	require.Equal(t, []string{"main", "cleanup"}, analysis.Tasks())
	require.Equal(t, []string{"main"}, analysis.Deps("cleanup"))
}

func TestAnalysisDuplicateTaskNamesMerged(t *testing.T) {
	const data = `spec:
  tasks:
    - name: dup
      runAfter:
        - z
    - name: dup
      runAfter:
        - a
        - z
`

	analysis := explain.NewAnalysis(parseDoc(t, data))

	// two entries with the same name collapse into one; the merged dep
	// list stays sorted and deduplicated
	require.Equal(t, []string{"dup"}, analysis.Tasks())
	require.Equal(t, []string{"a", "z"}, analysis.Deps("dup"))
}

func TestAnalysisCycle(t *testing.T) {
	const data = `spec:
  tasks:
    - name: a
      runAfter:
        - b
    - name: b
      runAfter:
        - a
`

	analysis := explain.NewAnalysis(parseDoc(t, data))

	err := analysis.Validate()
	require.Error(t, err)

	var cycleErr *explain.CyclicDependencyError
	require.ErrorAs(t, err, &cycleErr)
	require.EqualError(t, err, "Cyclic dependency between tasks: a -> b -> a")
}

func TestAnalysisUnknownDependencyIgnored(t *testing.T) {
	const data = `spec:
  tasks:
    - name: only
      runAfter:
        - not-in-this-document
`

	analysis := explain.NewAnalysis(parseDoc(t, data))

	require.Equal(t, []string{"not-in-this-document"}, analysis.Deps("only"))
	require.NoError(t, analysis.Validate())
}

func TestTable(t *testing.T) {
	const data = `spec:
  tasks:
    - name: first
    - name: second
      runAfter:
        - first
`

	table := explain.NewAnalysis(parseDoc(t, data)).Table()

	require.Len(t, table.Rows, 2)
	require.Equal(t, "first", table.Rows[0].Task)
	require.Equal(t, []string{"first"}, table.Rows[1].DependsOn)
	require.Empty(t, table.Warnings)

	var buf bytes.Buffer
	table.Print(&buf)
	require.Contains(t, buf.String(), "TASK NAME")
	require.Contains(t, buf.String(), "second")
}

func TestTableCycleWarning(t *testing.T) {
	const data = `spec:
  tasks:
    - name: a
      runAfter:
        - b
    - name: b
      runAfter:
        - a
`

	table := explain.NewAnalysis(parseDoc(t, data)).Table()

	require.Len(t, table.Warnings, 1)
	require.Contains(t, table.Warnings[0], "Cyclic dependency between tasks")
}

func parseDoc(t *testing.T, data string) *yamltree.Document {
	doc, err := yamltree.NewParser().ParseBytes([]byte(data), "pipeline.yml")
	require.NoError(t, err)
	return doc
}
