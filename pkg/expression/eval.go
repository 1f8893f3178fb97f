// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"fmt"
	"strconv"

	"github.com/tektonc/tektonc/pkg/orderedmap"
)

type Mode int

const (
	// ModeLenient leaves an expression unresolved (original marker text kept
	// verbatim) when its root name is not bound but the Deferrable predicate
	// accepts it. Used by the outer render pass.
	ModeLenient Mode = iota

	// ModeStrict fails on any unresolved name. Used by the inner pass, loop
	// expansion, and deferred blocks.
	ModeStrict
)

// Evaluator resolves expressions against a Scope. It holds no state between
// calls; distinct renders may share one.
type Evaluator struct {
	Filters *Registry
	Mode    Mode

	// Deferrable decides, in lenient mode, whether an unbound root name may be
	// left for the inner pass. Typically it answers "is this name declared by
	// a loop whose body lexically encloses the expression".
	Deferrable func(rootName string) bool
}

// EvalText evaluates every expression segment of text. The second return
// value reports whether all segments resolved; when false, the returned value
// is a string still holding the deferred markers verbatim.
func (e Evaluator) EvalText(text *Text, scope *Scope) (interface{}, bool, error) {
	if text.IsSingleExpr() {
		seg := text.Segments[0].(*ExprSegment)
		if e.canDefer(seg.Expr, scope) {
			return seg.Raw, false, nil
		}
		val, err := e.EvalExpr(seg.Expr, scope)
		if err != nil {
			return nil, false, err
		}
		return val, true, nil
	}

	result := ""
	resolved := true

	for _, segment := range text.Segments {
		switch typedSeg := segment.(type) {
		case *TextSegment:
			result += typedSeg.Content

		case *ExprSegment:
			if e.canDefer(typedSeg.Expr, scope) {
				result += typedSeg.Raw
				resolved = false
				continue
			}
			val, err := e.EvalExpr(typedSeg.Expr, scope)
			if err != nil {
				return nil, false, err
			}
			str, err := StringValue(val)
			if err != nil {
				return nil, false, fmt.Errorf("Interpolating expression '%s': %s", typedSeg.Expr.PathString(), err)
			}
			result += str

		default:
			panic(fmt.Sprintf("Unexpected text segment %T", segment))
		}
	}

	return result, resolved, nil
}

// FoldText partially evaluates text: segments that resolve now are folded
// into plain text segments, deferred segments keep their original markers.
// A later strict evaluation of the result re-resolves only what was actually
// deferred, so bindings introduced between the two evaluations cannot
// retroactively change segments that already resolved.
func (e Evaluator) FoldText(text *Text, scope *Scope) (*Text, error) {
	result := &Text{}

	for _, segment := range text.Segments {
		switch typedSeg := segment.(type) {
		case *TextSegment:
			result.Segments = append(result.Segments, typedSeg)

		case *ExprSegment:
			if e.canDefer(typedSeg.Expr, scope) {
				result.Segments = append(result.Segments, typedSeg)
				continue
			}
			val, err := e.EvalExpr(typedSeg.Expr, scope)
			if err != nil {
				return nil, err
			}
			str, err := StringValue(val)
			if err != nil {
				return nil, fmt.Errorf("Interpolating expression '%s': %s", typedSeg.Expr.PathString(), err)
			}
			result.Segments = append(result.Segments, &TextSegment{Content: str})

		default:
			panic(fmt.Sprintf("Unexpected text segment %T", segment))
		}
	}

	return result, nil
}

// EvalExpr resolves the expression's dotted path in scope and applies its
// filters left to right.
func (e Evaluator) EvalExpr(expr *Expr, scope *Scope) (interface{}, error) {
	val, err := e.resolvePath(expr, scope)
	if err != nil {
		return nil, err
	}

	for _, filterName := range expr.Filters {
		filter, found := e.Filters.Lookup(filterName)
		if !found {
			return nil, &UnknownFilterError{Name: filterName}
		}
		val, err = filter(val)
		if err != nil {
			return nil, fmt.Errorf("Applying filter '%s' to '%s': %s", filterName, expr.PathString(), err)
		}
	}

	return val, nil
}

func (e Evaluator) canDefer(expr *Expr, scope *Scope) bool {
	if e.Mode != ModeLenient || e.Deferrable == nil {
		return false
	}
	return !scope.IsBound(expr.RootName()) && e.Deferrable(expr.RootName())
}

func (e Evaluator) resolvePath(expr *Expr, scope *Scope) (interface{}, error) {
	val, found := scope.Resolve(expr.RootName())
	if !found {
		return nil, &UnresolvedVariableError{Path: expr.PathString()}
	}

	for _, seg := range expr.Path[1:] {
		switch typedVal := val.(type) {
		case *orderedmap.Map:
			child, childFound := typedVal.Get(seg)
			if !childFound {
				return nil, &UnresolvedVariableError{Path: expr.PathString()}
			}
			val = child

		case []interface{}:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(typedVal) {
				return nil, &UnresolvedVariableError{Path: expr.PathString()}
			}
			val = typedVal[idx]

		default:
			return nil, &UnresolvedVariableError{Path: expr.PathString()}
		}
	}

	return val, nil
}

// StringValue renders a scalar for interpolation into surrounding text.
func StringValue(val interface{}) (string, error) {
	switch typedVal := val.(type) {
	case string:
		return typedVal, nil
	case int64:
		return strconv.FormatInt(typedVal, 10), nil
	case int:
		return strconv.Itoa(typedVal), nil
	case float64:
		return strconv.FormatFloat(typedVal, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(typedVal), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("Expected a scalar value, but was %T", val)
	}
}
