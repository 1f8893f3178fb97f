// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	uierrs "github.com/cppforlife/go-cli-ui/errors"
	"github.com/tektonc/tektonc/pkg/cmd"
)

func main() {
	command := cmd.NewDefaultTektoncCmd()

	err := command.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tektonc: Error: %s\n", uierrs.NewMultiLineError(err))
		os.Exit(1)
	}
}
