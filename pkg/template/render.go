// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
	"github.com/tektonc/tektonc/pkg/expression"
	"github.com/tektonc/tektonc/pkg/orderedmap"
	"github.com/tektonc/tektonc/pkg/version"
	"github.com/tektonc/tektonc/pkg/yamltree"
)

// UI receives render diagnostics. Rendering never writes anywhere else.
type UI interface {
	Debugf(msg string, args ...interface{})
}

// Renderer resolves a Template against a values tree in two passes: a
// lenient outer pass that substitutes values-level expressions and pins loop
// domains, and a strict inner pass that expands loops and resolves whatever
// remains. Renderer holds no per-render state; one instance may serve
// concurrent renders.
type Renderer struct {
	Filters *expression.Registry
	UI      UI
}

func NewRenderer(ui UI) *Renderer {
	return &Renderer{Filters: expression.NewRegistry(), UI: ui}
}

// Render produces the fully resolved document, or the first error
// encountered. No partial output is ever returned.
func (r *Renderer) Render(tpl *Template, vals *orderedmap.Map) (*yamltree.Document, error) {
	err := r.checkRequiredVersion(tpl)
	if err != nil {
		return nil, err
	}

	scope := expression.NewScope(vals)

	r.debugf("### outer pass\n")
	intermediate, err := r.outerPass(tpl.Root, scope, map[string]struct{}{}, "")
	if err != nil {
		return nil, err
	}

	r.debugf("### inner pass\n")
	resolved, err := r.renderNode(intermediate, scope, "", "")
	if err != nil {
		return nil, err
	}

	return &yamltree.Document{
		Value:    yamltree.NewTreeFromPlain(resolved, tpl.Position),
		Position: tpl.Position.DeepCopy(),
	}, nil
}

func (r *Renderer) checkRequiredVersion(tpl *Template) error {
	if len(tpl.RequiredVersion) == 0 {
		return nil
	}

	constraints, err := goversion.NewConstraint(tpl.RequiredVersion)
	if err != nil {
		return &ParseError{
			Msg:      fmt.Sprintf("Parsing '%s' constraint '%s': %s", requiredVersionKey, tpl.RequiredVersion, err),
			NodePath: requiredVersionKey,
		}
	}

	currVersion, err := goversion.NewVersion(version.Version)
	if err != nil {
		return fmt.Errorf("Parsing tektonc version '%s': %s", version.Version, err)
	}

	if !constraints.Check(currVersion) {
		return fmt.Errorf("tektonc version %s does not satisfy template version constraint '%s'",
			version.Version, tpl.RequiredVersion)
	}
	return nil
}

// outerPass walks the template leniently: expressions that resolve against
// the values tree become literals, expressions rooted at an enclosing loop's
// variables stay untouched for the inner pass, loop domains are pinned where
// they resolve, and deferred nodes pass through unevaluated. Loops are not
// expanded here.
func (r *Renderer) outerPass(n Node, scope *expression.Scope, deferrable map[string]struct{}, path string) (Node, error) {
	switch typedNode := n.(type) {
	case *Literal:
		return typedNode, nil

	case *Text:
		eval := r.lenientEvaluator(deferrable)
		val, resolved, err := eval.EvalText(typedNode.Compiled, scope)
		if err != nil {
			return nil, annotateErr(err, path, typedNode.Position, "")
		}
		if !resolved {
			// fold segments that resolved now into literal text; only the
			// deferred markers are left for the strict pass
			folded, err := eval.FoldText(typedNode.Compiled, scope)
			if err != nil {
				return nil, annotateErr(err, path, typedNode.Position, "")
			}
			return &Text{Compiled: folded, Raw: typedNode.Raw, Position: typedNode.Position}, nil
		}
		return &Literal{Value: val, Position: typedNode.Position}, nil

	case *Mapping:
		result := &Mapping{Position: typedNode.Position}
		for _, item := range typedNode.Items {
			newVal, err := r.outerPass(item.Value, scope, deferrable, joinPathKey(path, item.Key))
			if err != nil {
				return nil, err
			}
			result.Items = append(result.Items, &MappingItem{Key: item.Key, Value: newVal, Position: item.Position})
		}
		return result, nil

	case *Sequence:
		result := &Sequence{Position: typedNode.Position}
		for i, item := range typedNode.Items {
			newItem, err := r.outerPass(item, scope, deferrable, joinPathIdx(path, i))
			if err != nil {
				return nil, err
			}
			result.Items = append(result.Items, newItem)
		}
		return result, nil

	case *Deferred:
		return typedNode, nil

	case *Loop:
		return r.outerPassLoop(typedNode, scope, deferrable, path)

	default:
		panic(fmt.Sprintf("Unexpected template node %T in outer pass", n))
	}
}

func (r *Renderer) outerPassLoop(loop *Loop, scope *expression.Scope, deferrable map[string]struct{}, path string) (Node, error) {
	result := &Loop{Name: loop.Name, Vars: loop.Vars, Position: loop.Position}
	loopPath := fmt.Sprintf("%s(loop '%s')", path, loop.Name)

	// domain resolution is never lenient: a domain expression may reference
	// the values tree or an enclosing loop's variables, nothing else
	for _, domainVar := range loop.Domain {
		varPath := joinPathKey(joinPathKey(joinPathKey(loopPath, foreachKey), domainKey), domainVar.Name)
		newVal, err := r.outerPass(domainVar.Value, scope, deferrable, varPath)
		if err != nil {
			return nil, err
		}
		result.Domain = append(result.Domain, &DomainVar{
			Name:     domainVar.Name,
			Value:    newVal,
			Position: domainVar.Position,
		})
	}

	bodyDeferrable := map[string]struct{}{}
	for name := range deferrable {
		bodyDeferrable[name] = struct{}{}
	}
	for _, domainVar := range loop.Domain {
		bodyDeferrable[domainVar.Name] = struct{}{}
	}
	for _, computedVar := range loop.Vars {
		bodyDeferrable[computedVar.Name] = struct{}{}
	}

	for i, bodyNode := range loop.Body {
		newBodyNode, err := r.outerPass(bodyNode, scope, bodyDeferrable, joinPathIdx(joinPathKey(loopPath, tasksKey), i))
		if err != nil {
			return nil, err
		}
		result.Body = append(result.Body, newBodyNode)
	}

	return result, nil
}

func (r *Renderer) lenientEvaluator(deferrable map[string]struct{}) expression.Evaluator {
	return expression.Evaluator{
		Filters: r.Filters,
		Mode:    expression.ModeLenient,
		Deferrable: func(rootName string) bool {
			_, found := deferrable[rootName]
			return found
		},
	}
}

func (r *Renderer) strictEvaluator() expression.Evaluator {
	return expression.Evaluator{Filters: r.Filters, Mode: expression.ModeStrict}
}

// renderNode is the strict inner pass: it produces plain values, expanding
// loops and evaluating deferred nodes and any expressions the outer pass left
// behind. loopName names the innermost enclosing loop for error reporting.
func (r *Renderer) renderNode(n Node, scope *expression.Scope, loopName, path string) (interface{}, error) {
	switch typedNode := n.(type) {
	case *Literal:
		return orderedmap.DeepCopy(typedNode.Value), nil

	case *Text:
		val, _, err := r.strictEvaluator().EvalText(typedNode.Compiled, scope)
		if err != nil {
			return nil, annotateErr(err, path, typedNode.Position, loopName)
		}
		return orderedmap.DeepCopy(val), nil

	case *Deferred:
		val, err := r.strictEvaluator().EvalExpr(typedNode.Expr, scope)
		if err != nil {
			return nil, annotateErr(err, path, typedNode.Position, loopName)
		}
		return orderedmap.DeepCopy(val), nil

	case *Mapping:
		result := orderedmap.NewMap()
		for _, item := range typedNode.Items {
			val, err := r.renderNode(item.Value, scope, loopName, joinPathKey(path, item.Key))
			if err != nil {
				return nil, err
			}
			result.Set(item.Key, val)
		}
		return result, nil

	case *Sequence:
		result := []interface{}{}
		for i, item := range typedNode.Items {
			if loop, ok := item.(*Loop); ok {
				instances, err := r.expandLoop(loop, scope, joinPathIdx(path, i))
				if err != nil {
					return nil, err
				}
				result = append(result, instances...)
				continue
			}
			val, err := r.renderNode(item, scope, loopName, joinPathIdx(path, i))
			if err != nil {
				return nil, err
			}
			result = append(result, val)
		}
		return result, nil

	case *Loop:
		// a loop outside a sequence becomes the sequence of its instances
		instances, err := r.expandLoop(typedNode, scope, path)
		if err != nil {
			return nil, err
		}
		return instances, nil

	default:
		panic(fmt.Sprintf("Unexpected template node %T in inner pass", n))
	}
}

func (r *Renderer) debugf(msg string, args ...interface{}) {
	if r.UI != nil {
		r.UI.Debugf(msg, args...)
	}
}
