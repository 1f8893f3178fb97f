// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package yamltree parses YAML into an order-preserving AST whose nodes carry
their source positions. Templates, values documents, and compiled pipelines
are all held in this representation.
*/
package yamltree
