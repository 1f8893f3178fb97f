// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package explain reports task ordering for a compiled pipeline. Dependencies
are inferred from result references embedded in parameter values and from
explicit runAfter lists; the graph is built by a dedicated pass over the
compiled document, never during rendering.
*/
package explain
