// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package explain

import (
	"fmt"
	"io"
	"strings"
)

// Table is the ordered task/dependency report: one row per task in first
// appearance order, each listing its direct dependencies sorted ascending.
type Table struct {
	Rows     []Row
	Warnings []string
}

type Row struct {
	Task      string
	DependsOn []string
}

// Table builds the explain-mode report. A cycle does not abort here; it is
// reported as a warning annotation since ordering enforcement belongs to the
// downstream executor.
func (a *Analysis) Table() *Table {
	table := &Table{}
	for _, task := range a.order {
		table.Rows = append(table.Rows, Row{Task: task, DependsOn: a.deps[task]})
	}

	err := a.Validate()
	if err != nil {
		table.Warnings = append(table.Warnings, err.Error())
	}
	return table
}

func (t *Table) Print(w io.Writer) {
	fmt.Fprintf(w, "%-50s  %s\n", "TASK NAME", "DEPENDS ON")
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 80))
	for _, row := range t.Rows {
		fmt.Fprintf(w, "%-50s  %s\n", row.Task, strings.Join(row.DependsOn, ", "))
	}
	for _, warning := range t.Warnings {
		fmt.Fprintf(w, "\nWarning: %s\n", warning)
	}
}
