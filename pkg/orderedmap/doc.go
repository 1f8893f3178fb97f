// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

// Package orderedmap provides a map that maintains the order of its keys.
package orderedmap
