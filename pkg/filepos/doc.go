// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

// Package filepos carries source positions through parsed trees so that
// errors can point at the offending line of the template or values document.
package filepos
