// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package expression implements the template expression language: a dotted
variable path with an optional filter pipeline, embedded in string scalars
between "{{" and "}}" markers. Expressions resolve against a layered Scope in
either lenient (outer pass) or strict (inner pass) mode.
*/
package expression
