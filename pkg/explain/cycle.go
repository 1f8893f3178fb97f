// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package explain

import (
	"fmt"
	"strings"
)

// Validate runs a depth-first cycle check over the dependency graph with an
// explicit recursion stack, and fails on the first cycle found.
func (a *Analysis) Validate() error {
	visited := map[string]bool{}
	onStack := map[string]bool{}
	var stack []string

	var visit func(task string) *CyclicDependencyError
	visit = func(task string) *CyclicDependencyError {
		visited[task] = true
		onStack[task] = true
		stack = append(stack, task)

		for _, dep := range a.deps[task] {
			if _, known := a.deps[dep]; !known {
				// reference to a task outside the document; not orderable here
				continue
			}
			if onStack[dep] {
				return newCyclicDependencyError(stack, dep)
			}
			if !visited[dep] {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		onStack[task] = false
		stack = stack[:len(stack)-1]
		return nil
	}

	for _, task := range a.order {
		if !visited[task] {
			if err := visit(task); err != nil {
				return err
			}
		}
	}
	return nil
}

// CyclicDependencyError names the task sequence forming a cycle, ending with
// the task that closes it.
type CyclicDependencyError struct {
	Tasks []string
}

func newCyclicDependencyError(stack []string, repeated string) *CyclicDependencyError {
	start := 0
	for i, task := range stack {
		if task == repeated {
			start = i
			break
		}
	}
	cycle := append([]string{}, stack[start:]...)
	cycle = append(cycle, repeated)
	return &CyclicDependencyError{Tasks: cycle}
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("Cyclic dependency between tasks: %s", strings.Join(e.Tasks, " -> "))
}
