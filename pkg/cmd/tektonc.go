// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
	cmdcompile "github.com/tektonc/tektonc/pkg/cmd/compile"
	"github.com/tektonc/tektonc/pkg/version"
)

type TektoncOptions struct{}

func NewDefaultTektoncOptions() *TektoncOptions {
	return &TektoncOptions{}
}

func NewDefaultTektoncCmd() *cobra.Command {
	return NewTektoncCmd(NewDefaultTektoncOptions())
}

func NewTektoncCmd(o *TektoncOptions) *cobra.Command {
	cmd := cmdcompile.NewCmd(cmdcompile.NewOptions())

	cmd.Use = "tektonc"
	cmd.Aliases = nil
	cmd.Version = version.Version
	cmd.Short = "tektonc expands pipeline templates into concrete Tekton pipelines"
	cmd.Long = `tektonc expands pipeline templates into concrete Tekton pipelines.

Templates declare variables, loops and deferred expressions; tektonc resolves
them against one or more values files and emits plain pipeline YAML.`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(cmdcompile.NewCmd(cmdcompile.NewOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
