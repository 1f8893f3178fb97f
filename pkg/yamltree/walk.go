// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package yamltree

// Visitor performs an operation on the given Node while traversing the AST.
type Visitor interface {
	Visit(Node) error
}

// Walk traverses the tree starting at `n`, recursively, depth-first, invoking
// `v` on each node. If `v` returns a non-nil error, the traversal is aborted.
func Walk(n Node, v Visitor) error {
	err := v.Visit(n)
	if err != nil {
		return err
	}

	for _, c := range children(n) {
		err := Walk(c, v)
		if err != nil {
			return err
		}
	}
	return nil
}

func children(n Node) []Node {
	var result []Node
	switch typedNode := n.(type) {
	case *Map:
		for _, item := range typedNode.Items {
			result = append(result, item)
		}
	case *Array:
		for _, item := range typedNode.Items {
			result = append(result, item)
		}
	default:
		for _, val := range n.GetValues() {
			if childNode, ok := val.(Node); ok {
				result = append(result, childNode)
			}
		}
	}
	return result
}
