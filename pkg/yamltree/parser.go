// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package yamltree

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tektonc/tektonc/pkg/filepos"
	"gopkg.in/yaml.v3"
)

// Parser builds a yamltree AST out of raw YAML, keeping mapping key order and
// recording the source position of every node.
type Parser struct {
	associatedName string
	srcLines       []string
}

func NewParser() *Parser {
	return &Parser{}
}

// ParseBytes parses data into a single Document. Multiple YAML documents in
// one input are rejected; both templates and values documents are single
// documents by contract.
func (p *Parser) ParseBytes(data []byte, associatedName string) (*Document, error) {
	p.associatedName = associatedName
	p.srcLines = strings.Split(string(data), "\n")

	dec := yaml.NewDecoder(bytes.NewReader(data))

	var root yaml.Node
	err := dec.Decode(&root)
	if err != nil {
		if err == io.EOF {
			return &Document{Value: nil, Position: filepos.NewUnknownPosition()}, nil
		}
		return nil, fmt.Errorf("Parsing YAML %s: %s", associatedName, err)
	}

	var next yaml.Node
	if dec.Decode(&next) != io.EOF {
		return nil, fmt.Errorf("Parsing YAML %s: Expected to find exactly one YAML document", associatedName)
	}

	val, err := p.parse(&root)
	if err != nil {
		return nil, err
	}

	return &Document{Value: val, Position: p.newPosition(root.Line)}, nil
}

func (p *Parser) parse(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return p.parse(node.Content[0])

	case yaml.MappingNode:
		result := &Map{Position: p.newPosition(node.Line)}
		for i := 0; i < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			key, err := p.parseKey(keyNode)
			if err != nil {
				return nil, err
			}
			val, err := p.parse(valNode)
			if err != nil {
				return nil, err
			}
			result.Items = append(result.Items, &MapItem{
				Key:      key,
				Value:    val,
				Position: p.newPosition(keyNode.Line),
			})
		}
		return result, nil

	case yaml.SequenceNode:
		result := &Array{Position: p.newPosition(node.Line)}
		for _, itemNode := range node.Content {
			val, err := p.parse(itemNode)
			if err != nil {
				return nil, err
			}
			result.Items = append(result.Items, &ArrayItem{
				Value:    val,
				Position: p.newPosition(itemNode.Line),
			})
		}
		return result, nil

	case yaml.ScalarNode:
		return p.parseScalar(node)

	case yaml.AliasNode:
		// aliases are resolved in place; anchored structure is copied
		return p.parse(node.Alias)

	default:
		return nil, fmt.Errorf("Parsing YAML %s: Unexpected node kind %d at line %d",
			p.associatedName, node.Kind, node.Line)
	}
}

func (p *Parser) parseKey(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("Parsing YAML %s: Expected mapping key at line %d to be a scalar string",
			p.associatedName, node.Line)
	}
	var key string
	err := node.Decode(&key)
	if err != nil {
		return "", fmt.Errorf("Parsing YAML %s: Expected mapping key at line %d to be a string: %s",
			p.associatedName, node.Line, err)
	}
	return key, nil
}

func (p *Parser) parseScalar(node *yaml.Node) (interface{}, error) {
	var val interface{}
	err := node.Decode(&val)
	if err != nil {
		return nil, fmt.Errorf("Parsing YAML %s: Decoding scalar at line %d: %s",
			p.associatedName, node.Line, err)
	}
	switch typedVal := val.(type) {
	case int:
		return int64(typedVal), nil
	default:
		return val, nil
	}
}

func (p *Parser) newPosition(line int) *filepos.Position {
	if line <= 0 {
		return filepos.NewUnknownPosition()
	}
	pos := filepos.NewPosition(line, p.associatedName)
	if line-1 < len(p.srcLines) {
		pos.SetSourceLine(p.srcLines[line-1])
	}
	return pos
}
