// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"errors"
	"fmt"

	"github.com/tektonc/tektonc/pkg/expression"
	"github.com/tektonc/tektonc/pkg/filepos"
)

// ParseError reports malformed template structure: bad expression syntax, a
// loop node missing a required key, or an unrecognized reserved key.
type ParseError struct {
	Msg      string
	Hint     string
	NodePath string
	Position *filepos.Position
}

func (e *ParseError) Error() string {
	msg := e.Msg + errLocation(e.NodePath, e.Position)
	if len(e.Hint) > 0 {
		msg += fmt.Sprintf(" (hint: %s)", e.Hint)
	}
	return msg
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

// annotateErr fills location details into evaluator errors as they cross the
// renderer, which is the first layer that knows the node path and enclosing
// loop. Other errors are wrapped with the node path.
func annotateErr(err error, nodePath string, pos *filepos.Position, loopName string) error {
	var unresolvedErr *expression.UnresolvedVariableError
	if errors.As(err, &unresolvedErr) {
		if len(unresolvedErr.NodePath) == 0 {
			unresolvedErr.NodePath = nodePath
			unresolvedErr.Position = pos
		}
		if len(unresolvedErr.LoopName) == 0 {
			unresolvedErr.LoopName = loopName
		}
		return err
	}

	var unknownFilterErr *expression.UnknownFilterError
	if errors.As(err, &unknownFilterErr) {
		if len(unknownFilterErr.NodePath) == 0 {
			unknownFilterErr.NodePath = nodePath
			unknownFilterErr.Position = pos
		}
		return err
	}

	return fmt.Errorf("%s%s", err, errLocation(nodePath, pos))
}

func joinPathKey(path, key string) string {
	if len(path) == 0 {
		return key
	}
	return path + "." + key
}

func joinPathIdx(path string, idx int) string {
	return fmt.Sprintf("%s[%d]", path, idx)
}
