// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

// Package values loads variable definitions from YAML or TOML files and
// merges override layers over them. Merging is recursive for mappings and
// wholesale replacement for everything else, including sequences.
package values
