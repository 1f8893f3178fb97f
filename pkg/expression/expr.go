// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"fmt"
	"regexp"
	"strings"
)

var identCheck = regexp.MustCompile(`\A[A-Za-z0-9_-]+\z`)

// Expr is a parsed expression: a dotted variable path followed by zero or
// more filters, e.g. "model.name | dns".
type Expr struct {
	Path    []string
	Filters []string

	source string
}

// ParseExpr parses the text between expression markers.
func ParseExpr(source string) (*Expr, error) {
	pieces := strings.Split(source, "|")

	pathStr := strings.TrimSpace(pieces[0])
	if len(pathStr) == 0 {
		return nil, fmt.Errorf("Expected expression to begin with a variable path, but found none")
	}

	expr := &Expr{source: source}

	for _, seg := range strings.Split(pathStr, ".") {
		if !identCheck.MatchString(seg) {
			return nil, fmt.Errorf("Expected path segment '%s' in expression '%s' to contain only letters, digits, '_' or '-'", seg, strings.TrimSpace(source))
		}
		expr.Path = append(expr.Path, seg)
	}

	for _, filterName := range pieces[1:] {
		filterName = strings.TrimSpace(filterName)
		if !identCheck.MatchString(filterName) {
			return nil, fmt.Errorf("Expected filter name '%s' in expression '%s' to contain only letters, digits, '_' or '-'", filterName, strings.TrimSpace(source))
		}
		expr.Filters = append(expr.Filters, filterName)
	}

	return expr, nil
}

// RootName is the first path segment; its binding decides whether the
// expression can resolve at all.
func (e *Expr) RootName() string { return e.Path[0] }

// PathString is the dotted path without filters, used in error messages.
func (e *Expr) PathString() string { return strings.Join(e.Path, ".") }
