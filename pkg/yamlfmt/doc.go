// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

// Package yamlfmt writes compiled documents back out as YAML with stable key
// ordering.
package yamlfmt
