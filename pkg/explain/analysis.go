// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package explain

import (
	"regexp"
	"sort"

	"github.com/tektonc/tektonc/pkg/yamltree"
)

// resultRefCheck matches the runtime's result-reference syntax,
// eg "$(tasks.train-model.results.model-uri)"
var resultRefCheck = regexp.MustCompile(`\$\(tasks\.([^.()\s]+)\.results\.[^)]+\)`)

const unnamedTask = "<unnamed>"

// Analysis is the dependency graph extracted from a compiled pipeline:
// every task under spec.tasks and spec.finally, with the direct dependencies
// implied by result references and explicit runAfter lists.
type Analysis struct {
	order []string            // first appearance order
	deps  map[string][]string // sorted, deduped direct dependencies
}

// NewAnalysis scans the compiled document. Tasks with no references end up
// with an empty dependency list; they are independently schedulable.
func NewAnalysis(doc *yamltree.Document) *Analysis {
	analysis := &Analysis{deps: map[string][]string{}}

	rootMap, ok := doc.Value.(*yamltree.Map)
	if !ok {
		return analysis
	}
	specMap, ok := mapValue(rootMap, "spec").(*yamltree.Map)
	if !ok {
		return analysis
	}

	for _, sectionKey := range []string{"tasks", "finally"} {
		taskArray, ok := mapValue(specMap, sectionKey).(*yamltree.Array)
		if !ok {
			continue
		}
		for _, item := range taskArray.Items {
			taskMap, ok := item.Value.(*yamltree.Map)
			if !ok {
				continue
			}
			analysis.addTask(taskMap)
		}
	}

	return analysis
}

func (a *Analysis) addTask(taskMap *yamltree.Map) {
	name := unnamedTask
	if nameVal, ok := mapValue(taskMap, "name").(string); ok {
		name = nameVal
	}

	depSet := map[string]struct{}{}

	if runAfter, ok := mapValue(taskMap, "runAfter").(*yamltree.Array); ok {
		for _, item := range runAfter.Items {
			if predecessor, ok := item.Value.(string); ok {
				depSet[predecessor] = struct{}{}
			}
		}
	}

	for _, str := range collectStrings(taskMap) {
		for _, match := range resultRefCheck.FindAllStringSubmatch(str, -1) {
			if match[1] != name {
				depSet[match[1]] = struct{}{}
			}
		}
	}

	// duplicate task names fold into one entry; the dep list stays a
	// sorted, deduplicated set
	if existing, seen := a.deps[name]; seen {
		for _, dep := range existing {
			depSet[dep] = struct{}{}
		}
	} else {
		a.order = append(a.order, name)
	}

	deps := make([]string, 0, len(depSet))
	for dep := range depSet {
		deps = append(deps, dep)
	}
	sort.Strings(deps)

	a.deps[name] = deps
}

// Deps returns the direct dependencies of a task, sorted ascending.
func (a *Analysis) Deps(task string) []string { return a.deps[task] }

// Tasks returns task names in first-appearance order.
func (a *Analysis) Tasks() []string { return a.order }

func mapValue(m *yamltree.Map, key string) interface{} {
	for _, item := range m.Items {
		if item.Key == key {
			return item.Value
		}
	}
	return nil
}

type stringCollector struct {
	strings *[]string
}

func (c stringCollector) Visit(n yamltree.Node) error {
	switch typedNode := n.(type) {
	case *yamltree.MapItem:
		if str, ok := typedNode.Value.(string); ok {
			*c.strings = append(*c.strings, str)
		}
	case *yamltree.ArrayItem:
		if str, ok := typedNode.Value.(string); ok {
			*c.strings = append(*c.strings, str)
		}
	}
	return nil
}

func collectStrings(n yamltree.Node) []string {
	var result []string
	yamltree.Walk(n, stringCollector{&result}) //nolint:errcheck // collector never errors
	return result
}
