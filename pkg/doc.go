// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of
tektonc.

The codebase is organized into well-defined layers; packages depend on each
other only to the degree absolutely required.

# Entry Point

tektonc is built into a single command-line tool:

	./cmd/tektonc

# Commands

The "compile" command carries almost all of the behavior; "version" is the
only other command.

	pkg/cmd
	pkg/cmd/compile
	pkg/cmd/core

# Templating

The heart of tektonc is two-pass template expansion. A parsed YAML tree is
compiled into a template AST (literals, text with embedded expressions, loop
nodes, deferred nodes), then rendered against a values tree: a lenient outer
pass substitutes values-level expressions and pins loop domains, and a strict
inner pass expands loops and resolves whatever remains.

	pkg/template
	pkg/expression

# Values

Values documents are loaded from YAML or TOML and merged with override
layers.

	pkg/values

# Dependency Analysis

The expanded pipeline is scanned for task ordering implied by result
references and runAfter lists; the result backs the --explain table and the
--validate cycle check.

	pkg/explain

# YAML Structures

tektonc delegates YAML parsing to the de facto standard YAML library, then
converts its output into a composite tree of yamltree.Node structures that
keep mapping key order and per-node source positions. Serialization goes the
other way, through pkg/yamlfmt, without ever reordering keys.

	pkg/yamltree
	pkg/yamlfmt

# Utilities

The remainder are domain-agnostic utilities:

	pkg/filepos
	pkg/orderedmap
	pkg/version
*/
package pkg
