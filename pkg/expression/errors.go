// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"fmt"

	"github.com/tektonc/tektonc/pkg/filepos"
)

// UnresolvedVariableError reports a strict-mode lookup failure. NodePath,
// Position and LoopName are filled in by the renderer as the error
// propagates, since only the renderer knows where in the document the
// expression sits.
type UnresolvedVariableError struct {
	Path     string
	LoopName string
	NodePath string
	Position *filepos.Position
}

func (e *UnresolvedVariableError) Error() string {
	msg := fmt.Sprintf("Unresolved variable '%s'", e.Path)
	if len(e.LoopName) > 0 {
		msg += fmt.Sprintf(" within loop '%s'", e.LoopName)
	}
	return msg + errLocation(e.NodePath, e.Position)
}

// UnknownFilterError reports a filter name that is not registered.
type UnknownFilterError struct {
	Name     string
	NodePath string
	Position *filepos.Position
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("Unknown filter '%s'", e.Name) + errLocation(e.NodePath, e.Position)
}

func errLocation(nodePath string, pos *filepos.Position) string {
	msg := ""
	if len(nodePath) > 0 {
		msg += fmt.Sprintf(" at %s", nodePath)
	}
	if pos.IsKnown() {
		msg += fmt.Sprintf(" (%s)", pos.AsCompactString())
	}
	return msg
}
