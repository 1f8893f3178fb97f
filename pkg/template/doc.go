// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package template parses pipeline templates and renders them against a values
tree. A template is plain YAML carrying three authoring constructs: embedded
expressions ("{{ model.name | dns }}"), loop nodes (instantiated once per
combination of their domain variables), and deferred nodes (evaluated only
once loop variables are bound).

Rendering happens in two passes. The outer pass substitutes every expression
that resolves against the values tree alone, leaving expressions rooted at
loop variables for later, and pins each loop's domain sequences. The inner
pass expands loops depth-first and strictly resolves everything that remains;
any leftover unresolved name fails the render as a whole.
*/
package template
