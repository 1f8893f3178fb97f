// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"sort"

	"github.com/tektonc/tektonc/pkg/expression"
	"github.com/tektonc/tektonc/pkg/orderedmap"
)

// expandLoop renders the loop body once per combination of the domain
// variables and returns the concatenated instances, in combination order.
func (r *Renderer) expandLoop(loop *Loop, scope *expression.Scope, path string) ([]interface{}, error) {
	loopPath := fmt.Sprintf("%s(loop '%s')", path, loop.Name)

	domains, err := r.resolveDomains(loop, scope, loopPath)
	if err != nil {
		return nil, err
	}

	combinations := enumerateCombinations(domains)
	if len(combinations) == 0 {
		r.debugf("loop '%s' expanded to 0 instances (empty domain)\n", loop.Name)
		return []interface{}{}, nil
	}

	result := []interface{}{}

	for _, combination := range combinations {
		combinationScope := scope.WithLayer(combination)

		// computed vars are layered over the combination; the layer is
		// filled in declared order so later vars see earlier ones
		computed := orderedmap.NewMap()
		bodyScope := combinationScope.WithLayer(computed)

		for _, computedVar := range loop.Vars {
			val, err := r.renderNode(computedVar.Value, bodyScope, loop.Name,
				joinPathKey(joinPathKey(loopPath, varsKey), computedVar.Name))
			if err != nil {
				return nil, err
			}
			computed.Set(computedVar.Name, val)
		}

		for i, bodyNode := range loop.Body {
			bodyPath := joinPathIdx(joinPathKey(loopPath, tasksKey), i)
			if nested, ok := bodyNode.(*Loop); ok {
				instances, err := r.expandLoop(nested, bodyScope, bodyPath)
				if err != nil {
					return nil, err
				}
				result = append(result, instances...)
				continue
			}
			val, err := r.renderNode(bodyNode, bodyScope, loop.Name, bodyPath)
			if err != nil {
				return nil, err
			}
			result = append(result, val)
		}
	}

	return result, nil
}

type resolvedDomain struct {
	Name   string
	Values []interface{}
}

// resolveDomains resolves every domain variable to its concrete sequence.
// Domains resolve strictly; by the time a loop expands, its scope holds the
// values tree and any enclosing loops' bindings, which is all a domain may
// reference.
func (r *Renderer) resolveDomains(loop *Loop, scope *expression.Scope, loopPath string) ([]resolvedDomain, error) {
	var result []resolvedDomain

	for _, domainVar := range loop.Domain {
		varPath := joinPathKey(joinPathKey(joinPathKey(loopPath, foreachKey), domainKey), domainVar.Name)

		val, err := r.renderNode(domainVar.Value, scope, loop.Name, varPath)
		if err != nil {
			return nil, err
		}

		seq, ok := val.([]interface{})
		if !ok {
			return nil, &ParseError{
				Msg:      fmt.Sprintf("Expected domain variable '%s' of loop '%s' to be a sequence, but was %T", domainVar.Name, loop.Name, val),
				NodePath: varPath,
				Position: domainVar.Position,
			}
		}

		result = append(result, resolvedDomain{Name: domainVar.Name, Values: seq})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// enumerateCombinations yields every simultaneous assignment of the domain
// variables, as nested loops over the name-sorted domains: the first name is
// the outermost (slowest varying) and the last the innermost. Any empty
// domain sequence yields zero combinations.
func enumerateCombinations(domains []resolvedDomain) []*orderedmap.Map {
	for _, domain := range domains {
		if len(domain.Values) == 0 {
			return nil
		}
	}

	combinations := []*orderedmap.Map{orderedmap.NewMap()}

	for _, domain := range domains {
		var extended []*orderedmap.Map
		for _, combination := range combinations {
			for _, val := range domain.Values {
				next := orderedmap.NewMap()
				combination.Iterate(func(k string, v interface{}) {
					next.Set(k, v)
				})
				next.Set(domain.Name, val)
				extended = append(extended, next)
			}
		}
		combinations = extended
	}

	return combinations
}
