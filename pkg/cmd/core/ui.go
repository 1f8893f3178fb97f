// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"io"
	"os"
)

// PlainUI writes results to stdout and diagnostics to stderr. Debug output
// is dropped unless enabled.
type PlainUI struct {
	debug  bool
	stdout io.Writer
	stderr io.Writer
}

func NewPlainUI(debug bool) PlainUI {
	return PlainUI{debug, os.Stdout, os.Stderr}
}

// NewCustomWriterUI is used by tests to capture output.
func NewCustomWriterUI(debug bool, stdout, stderr io.Writer) PlainUI {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return PlainUI{debug, stdout, stderr}
}

func (ui PlainUI) Printf(str string, args ...interface{}) {
	fmt.Fprintf(ui.stdout, str, args...)
}

func (ui PlainUI) Debugf(str string, args ...interface{}) {
	if ui.debug {
		fmt.Fprintf(ui.stderr, str, args...)
	}
}

