// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlfmt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tektonc/tektonc/pkg/yamltree"
	"gopkg.in/yaml.v3"
)

// Printer serializes a compiled document back to YAML. Key order is emitted
// exactly as held in the tree, and scalar quoting is left to the YAML encoder
// so strings are escaped only as much as the format requires.
type Printer struct {
	writer io.Writer
}

func NewPrinter(writer io.Writer) *Printer {
	return &Printer{writer}
}

func (p *Printer) Print(doc *yamltree.Document) error {
	bs, err := p.Bytes(doc)
	if err != nil {
		return err
	}
	_, err = p.writer.Write(bs)
	return err
}

func (p *Printer) Bytes(doc *yamltree.Document) ([]byte, error) {
	if doc.Value == nil {
		return []byte{}, nil
	}

	lowNode, err := lowYAMLNode(doc.Value)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)

	err = enc.Encode(lowNode)
	if err != nil {
		return nil, fmt.Errorf("Marshaling compiled document: %s", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("Marshaling compiled document: %s", err)
	}

	return buf.Bytes(), nil
}

func (p *Printer) PrintStr(doc *yamltree.Document) string {
	bs, err := p.Bytes(doc)
	if err != nil {
		panic(fmt.Sprintf("Unexpected printer error: %s", err))
	}
	return string(bs)
}

// lowYAMLNode rebuilds the tree as yaml.Node values since that is the only
// input the YAML encoder accepts without reordering mapping keys.
func lowYAMLNode(val interface{}) (*yaml.Node, error) {
	switch typedVal := val.(type) {
	case *yamltree.Map:
		result := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, item := range typedVal.Items {
			keyNode := &yaml.Node{}
			err := keyNode.Encode(item.Key)
			if err != nil {
				return nil, err
			}
			valNode, err := lowYAMLNode(item.Value)
			if err != nil {
				return nil, err
			}
			result.Content = append(result.Content, keyNode, valNode)
		}
		return result, nil

	case *yamltree.Array:
		result := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range typedVal.Items {
			valNode, err := lowYAMLNode(item.Value)
			if err != nil {
				return nil, err
			}
			result.Content = append(result.Content, valNode)
		}
		return result, nil

	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil

	case string, int64, float64, bool:
		result := &yaml.Node{}
		err := result.Encode(typedVal)
		if err != nil {
			return nil, err
		}
		return result, nil

	default:
		return nil, fmt.Errorf("Marshaling compiled document: Unexpected value type %T", val)
	}
}
