// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package version

// Version is the current tektonc version. Overridden via ldflags at release time.
var Version = "0.4.0"
