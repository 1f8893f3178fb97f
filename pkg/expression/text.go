// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"fmt"
	"strings"
)

const (
	markerOpen  = "{{"
	markerClose = "}}"
)

// Text is a string scalar split into literal and expression segments, e.g.
// "run-{{ model | dns }}-train" has three segments.
type Text struct {
	Segments []interface{} // *TextSegment or *ExprSegment
}

type TextSegment struct {
	Content string
}

type ExprSegment struct {
	Expr *Expr
	Raw  string // original marker text, preserved verbatim when deferred
}

// ContainsMarkers is a cheap pre-check used to skip plain strings without
// building a Text for them.
func ContainsMarkers(s string) bool {
	return strings.Contains(s, markerOpen) || strings.Contains(s, markerClose)
}

// ParseText splits s on expression markers, parsing each marker's contents.
func ParseText(s string) (*Text, error) {
	text := &Text{}
	rest := s

	for {
		openIdx := strings.Index(rest, markerOpen)
		if openIdx < 0 {
			if strings.Contains(rest, markerClose) {
				return nil, fmt.Errorf("Unexpected expression closing '%s' without matching '%s'", markerClose, markerOpen)
			}
			if len(rest) > 0 {
				text.Segments = append(text.Segments, &TextSegment{Content: rest})
			}
			return text, nil
		}

		lead := rest[:openIdx]
		if strings.Contains(lead, markerClose) {
			return nil, fmt.Errorf("Unexpected expression closing '%s' without matching '%s'", markerClose, markerOpen)
		}
		if len(lead) > 0 {
			text.Segments = append(text.Segments, &TextSegment{Content: lead})
		}

		rest = rest[openIdx+len(markerOpen):]

		closeIdx := strings.Index(rest, markerClose)
		if closeIdx < 0 {
			return nil, fmt.Errorf("Missing expression closing '%s'", markerClose)
		}
		inner := rest[:closeIdx]
		if strings.Contains(inner, markerOpen) {
			return nil, fmt.Errorf("Unexpected expression opening '%s' inside another expression", markerOpen)
		}

		expr, err := ParseExpr(inner)
		if err != nil {
			return nil, err
		}

		text.Segments = append(text.Segments, &ExprSegment{
			Expr: expr,
			Raw:  markerOpen + inner + markerClose,
		})

		rest = rest[closeIdx+len(markerClose):]
	}
}

// IsSingleExpr reports whether the whole string is exactly one expression,
// in which case evaluation preserves the referenced value's type.
func (t *Text) IsSingleExpr() bool {
	if len(t.Segments) != 1 {
		return false
	}
	_, ok := t.Segments[0].(*ExprSegment)
	return ok
}
