// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"strings"

	"github.com/tektonc/tektonc/pkg/expression"
	"github.com/tektonc/tektonc/pkg/filepos"
	"github.com/tektonc/tektonc/pkg/yamltree"
)

const (
	loopNameKey = "loopName"
	foreachKey  = "foreach"
	domainKey   = "domain"
	varsKey     = "vars"
	tasksKey    = "tasks"

	deferKey = "__defer__"

	requiredVersionKey = "requiredVersion"

	reservedKeyPrefix = "__"
)

// Parser turns a parsed YAML document into a Template, recognizing loop
// nodes, deferred nodes, embedded expressions, and the requiredVersion gate.
type Parser struct {
	associatedName string
	loopNames      map[string]struct{}
}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(doc *yamltree.Document, associatedName string) (*Template, error) {
	p.associatedName = associatedName
	p.loopNames = map[string]struct{}{}

	tpl := &Template{Name: associatedName, Position: doc.Position.DeepCopy()}

	docVal := doc.Value
	if rootMap, ok := docVal.(*yamltree.Map); ok {
		requiredVersion, remaining, err := p.extractRequiredVersion(rootMap)
		if err != nil {
			return nil, err
		}
		tpl.RequiredVersion = requiredVersion
		docVal = remaining
	}

	root, err := p.parseNode(docVal, doc.Position.DeepCopy(), "")
	if err != nil {
		return nil, err
	}

	tpl.Root = root
	return tpl, nil
}

func (p *Parser) extractRequiredVersion(rootMap *yamltree.Map) (string, *yamltree.Map, error) {
	for i, item := range rootMap.Items {
		if item.Key != requiredVersionKey {
			continue
		}
		constraint, ok := item.Value.(string)
		if !ok || expression.ContainsMarkers(constraint) {
			return "", nil, &ParseError{
				Msg:      fmt.Sprintf("Expected '%s' to be a plain string constraint", requiredVersionKey),
				NodePath: requiredVersionKey,
				Position: item.Position,
			}
		}
		remaining := &yamltree.Map{Position: rootMap.Position}
		remaining.Items = append(remaining.Items, rootMap.Items[:i]...)
		remaining.Items = append(remaining.Items, rootMap.Items[i+1:]...)
		return constraint, remaining, nil
	}
	return "", rootMap, nil
}

func (p *Parser) parseNode(val interface{}, pos *filepos.Position, path string) (Node, error) {
	switch typedVal := val.(type) {
	case *yamltree.Map:
		if hasKey(typedVal, loopNameKey) {
			return p.parseLoop(typedVal, path)
		}
		if hasKey(typedVal, deferKey) {
			return p.parseDeferred(typedVal, path)
		}
		return p.parseMapping(typedVal, path)

	case *yamltree.Array:
		result := &Sequence{Position: typedVal.Position.DeepCopy()}
		for i, item := range typedVal.Items {
			node, err := p.parseNode(item.Value, item.Position, joinPathIdx(path, i))
			if err != nil {
				return nil, err
			}
			result.Items = append(result.Items, node)
		}
		return result, nil

	case string:
		if expression.ContainsMarkers(typedVal) {
			compiled, err := expression.ParseText(typedVal)
			if err != nil {
				return nil, &ParseError{Msg: err.Error(), NodePath: path, Position: pos.DeepCopy()}
			}
			return &Text{Compiled: compiled, Raw: typedVal, Position: pos.DeepCopy()}, nil
		}
		return &Literal{Value: typedVal, Position: pos.DeepCopy()}, nil

	default:
		return &Literal{Value: typedVal, Position: pos.DeepCopy()}, nil
	}
}

func (p *Parser) parseMapping(m *yamltree.Map, path string) (Node, error) {
	result := &Mapping{Position: m.Position.DeepCopy()}
	for _, item := range m.Items {
		if strings.HasPrefix(item.Key, reservedKeyPrefix) {
			return nil, &ParseError{
				Msg:      fmt.Sprintf("Unrecognized reserved key '%s'", item.Key),
				NodePath: joinPathKey(path, item.Key),
				Position: item.Position,
			}
		}
		node, err := p.parseNode(item.Value, item.Position, joinPathKey(path, item.Key))
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, &MappingItem{
			Key:      item.Key,
			Value:    node,
			Position: item.Position.DeepCopy(),
		})
	}
	return result, nil
}

func (p *Parser) parseDeferred(m *yamltree.Map, path string) (Node, error) {
	if len(m.Items) != 1 {
		return nil, &ParseError{
			Msg:      fmt.Sprintf("Expected '%s' to be the only key of its mapping", deferKey),
			NodePath: joinPathKey(path, deferKey),
			Position: m.Position,
		}
	}

	item := m.Items[0]
	exprText, ok := item.Value.(string)
	if !ok {
		return nil, &ParseError{
			Msg:      fmt.Sprintf("Expected '%s' value to be expression text", deferKey),
			NodePath: joinPathKey(path, deferKey),
			Position: item.Position,
		}
	}

	expr, err := expression.ParseExpr(strings.TrimSpace(trimMarkers(exprText)))
	if err != nil {
		return nil, &ParseError{Msg: err.Error(), NodePath: joinPathKey(path, deferKey), Position: item.Position}
	}

	return &Deferred{Expr: expr, Raw: exprText, Position: item.Position.DeepCopy()}, nil
}

func (p *Parser) parseLoop(m *yamltree.Map, path string) (Node, error) {
	loop := &Loop{Position: m.Position.DeepCopy()}
	loopPath := path

	var foreachVal, varsVal, tasksVal *yamltree.MapItem

	for _, item := range m.Items {
		switch item.Key {
		case loopNameKey:
			name, ok := item.Value.(string)
			if !ok || len(name) == 0 {
				return nil, &ParseError{
					Msg:      fmt.Sprintf("Expected '%s' to be a non-empty string", loopNameKey),
					NodePath: joinPathKey(path, loopNameKey),
					Position: item.Position,
				}
			}
			loop.Name = name
			loopPath = fmt.Sprintf("%s(loop '%s')", path, name)
		case foreachKey:
			foreachVal = item
		case varsKey:
			varsVal = item
		case tasksKey:
			tasksVal = item
		default:
			return nil, &ParseError{
				Msg:      fmt.Sprintf("Unrecognized key '%s' in loop node", item.Key),
				NodePath: joinPathKey(path, item.Key),
				Position: item.Position,
			}
		}
	}

	if _, found := p.loopNames[loop.Name]; found {
		return nil, &ParseError{
			Msg:      fmt.Sprintf("Expected loop name '%s' to be unique within the template", loop.Name),
			NodePath: joinPathKey(path, loopNameKey),
			Position: loop.Position,
		}
	}
	p.loopNames[loop.Name] = struct{}{}

	err := p.parseLoopDomain(loop, foreachVal, path, loopPath)
	if err != nil {
		return nil, err
	}

	err = p.parseLoopVars(loop, varsVal, loopPath)
	if err != nil {
		return nil, err
	}

	err = p.parseLoopBody(loop, tasksVal, path, loopPath)
	if err != nil {
		return nil, err
	}

	return loop, nil
}

func (p *Parser) parseLoopDomain(loop *Loop, foreachVal *yamltree.MapItem, path, loopPath string) error {
	if foreachVal == nil {
		return &ParseError{
			Msg:      fmt.Sprintf("Loop node is missing required key '%s'", foreachKey),
			NodePath: loopPath,
			Position: loop.Position,
		}
	}

	foreachMap, ok := foreachVal.Value.(*yamltree.Map)
	if !ok {
		return &ParseError{
			Msg:      fmt.Sprintf("Expected '%s' to be a mapping holding '%s'", foreachKey, domainKey),
			NodePath: joinPathKey(loopPath, foreachKey),
			Position: foreachVal.Position,
		}
	}

	var domainMap *yamltree.Map
	for _, item := range foreachMap.Items {
		if item.Key != domainKey {
			return &ParseError{
				Msg:      fmt.Sprintf("Unrecognized key '%s' in '%s'", item.Key, foreachKey),
				NodePath: joinPathKey(joinPathKey(loopPath, foreachKey), item.Key),
				Position: item.Position,
			}
		}
		domainMap, ok = item.Value.(*yamltree.Map)
		if !ok {
			return &ParseError{
				Msg:      fmt.Sprintf("Expected '%s' to be a mapping of variable name to sequence", domainKey),
				NodePath: joinPathKey(joinPathKey(loopPath, foreachKey), domainKey),
				Position: item.Position,
			}
		}
	}
	if domainMap == nil {
		return &ParseError{
			Msg:      fmt.Sprintf("Expected '%s' to hold a '%s' mapping", foreachKey, domainKey),
			NodePath: joinPathKey(loopPath, foreachKey),
			Position: foreachVal.Position,
		}
	}

	for _, item := range domainMap.Items {
		varPath := joinPathKey(joinPathKey(joinPathKey(loopPath, foreachKey), domainKey), item.Key)
		node, err := p.parseNode(item.Value, item.Position, varPath)
		if err != nil {
			return err
		}
		loop.Domain = append(loop.Domain, &DomainVar{
			Name:     item.Key,
			Value:    node,
			Position: item.Position.DeepCopy(),
		})
	}
	return nil
}

func (p *Parser) parseLoopVars(loop *Loop, varsVal *yamltree.MapItem, loopPath string) error {
	if varsVal == nil {
		return nil
	}

	varsMap, ok := varsVal.Value.(*yamltree.Map)
	if !ok {
		return &ParseError{
			Msg:      fmt.Sprintf("Expected '%s' to be a mapping of variable name to expression", varsKey),
			NodePath: joinPathKey(loopPath, varsKey),
			Position: varsVal.Position,
		}
	}

	for _, item := range varsMap.Items {
		node, err := p.parseNode(item.Value, item.Position, joinPathKey(joinPathKey(loopPath, varsKey), item.Key))
		if err != nil {
			return err
		}
		loop.Vars = append(loop.Vars, &ComputedVar{
			Name:     item.Key,
			Value:    node,
			Position: item.Position.DeepCopy(),
		})
	}
	return nil
}

func (p *Parser) parseLoopBody(loop *Loop, tasksVal *yamltree.MapItem, path, loopPath string) error {
	if tasksVal == nil {
		return &ParseError{
			Msg:      fmt.Sprintf("Loop node is missing required key '%s'", tasksKey),
			NodePath: loopPath,
			Position: loop.Position,
		}
	}

	tasksArray, ok := tasksVal.Value.(*yamltree.Array)
	if !ok {
		return &ParseError{
			Msg:      fmt.Sprintf("Expected '%s' of loop node to be a sequence", tasksKey),
			Hint:     "child tasks must be indented under the loop's 'tasks:' key",
			NodePath: joinPathKey(loopPath, tasksKey),
			Position: tasksVal.Position,
		}
	}

	for i, item := range tasksArray.Items {
		node, err := p.parseNode(item.Value, item.Position, joinPathIdx(joinPathKey(loopPath, tasksKey), i))
		if err != nil {
			return err
		}
		loop.Body = append(loop.Body, node)
	}
	return nil
}

func hasKey(m *yamltree.Map, key string) bool {
	for _, item := range m.Items {
		if item.Key == key {
			return true
		}
	}
	return false
}

func trimMarkers(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{{")
	s = strings.TrimSuffix(s, "}}")
	return s
}
