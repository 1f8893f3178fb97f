// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package compile

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/spf13/cobra"
	cmdcore "github.com/tektonc/tektonc/pkg/cmd/core"
	"github.com/tektonc/tektonc/pkg/explain"
	"github.com/tektonc/tektonc/pkg/filepos"
	"github.com/tektonc/tektonc/pkg/orderedmap"
	"github.com/tektonc/tektonc/pkg/template"
	"github.com/tektonc/tektonc/pkg/values"
	"github.com/tektonc/tektonc/pkg/yamlfmt"
	"github.com/tektonc/tektonc/pkg/yamltree"
)

type CompileOptions struct {
	Debug    bool
	Explain  bool
	Validate bool

	TemplateFile  string
	ValuesFile    string
	OverrideFiles []string
	OutputFile    string
}

// NamedSource is raw file content paired with the name used in error
// messages and position reporting.
type NamedSource struct {
	Name string
	Data []byte
}

type CompileInput struct {
	Template  NamedSource
	Values    *NamedSource
	Overrides []NamedSource
}

type CompileOutput struct {
	DocBytes []byte
	Table    *explain.Table
	Err      error
}

func NewOptions() *CompileOptions {
	return &CompileOptions{}
}

func NewCmd(o *CompileOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "compile",
		Aliases: []string{"c"},
		Short:   "Expand a pipeline template into a concrete pipeline",
		RunE:    func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVarP(&o.TemplateFile, "template", "t", "",
		"Template file to expand (use '-' for stdin)")
	cmd.Flags().StringVarP(&o.ValuesFile, "values", "f", "",
		"Values file (YAML, or TOML by .toml extension)")
	cmd.Flags().StringArrayVar(&o.OverrideFiles, "data-values-file", nil,
		"Override values file, merged over --values (can be specified multiple times)")
	cmd.Flags().StringVarP(&o.OutputFile, "output", "o", "",
		"Write expanded pipeline to file instead of stdout")
	cmd.Flags().BoolVar(&o.Explain, "explain", false,
		"Print task dependency table instead of the expanded pipeline")
	cmd.Flags().BoolVar(&o.Validate, "validate", false,
		"Fail on cyclic task dependencies in the expanded pipeline")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	return cmd
}

func (o *CompileOptions) Run() error {
	ui := cmdcore.NewPlainUI(o.Debug)
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Now().Sub(t1))
	}()

	in, err := o.readInput()
	if err != nil {
		return err
	}

	out := o.RunWithInput(in, ui)
	if out.Err != nil {
		return out.Err
	}

	if o.Explain {
		var buf bytes.Buffer
		out.Table.Print(&buf)
		ui.Printf("%s", buf.String())
		return nil
	}

	if o.OutputFile != "" {
		return ioutil.WriteFile(o.OutputFile, out.DocBytes, 0600)
	}

	ui.Printf("%s", out.DocBytes)
	return nil
}

func (o *CompileOptions) RunWithInput(in CompileInput, ui cmdcore.PlainUI) CompileOutput {
	vals, err := o.loadValues(in)
	if err != nil {
		return CompileOutput{Err: err}
	}

	if o.Debug {
		valsDoc := &yamltree.Document{
			Value:    yamltree.NewTreeFromPlain(vals, filepos.NewUnknownPosition()),
			Position: filepos.NewUnknownPosition(),
		}
		ui.Debugf("### merged values\n%s", yamlfmt.NewPrinter(nil).PrintStr(valsDoc))
	}

	templateDoc, err := yamltree.NewParser().ParseBytes(in.Template.Data, in.Template.Name)
	if err != nil {
		return CompileOutput{Err: err}
	}

	tpl, err := template.NewParser().Parse(templateDoc, in.Template.Name)
	if err != nil {
		return CompileOutput{Err: err}
	}

	doc, err := template.NewRenderer(ui).Render(tpl, vals)
	if err != nil {
		return CompileOutput{Err: err}
	}

	analysis := explain.NewAnalysis(doc)

	if o.Validate {
		err := analysis.Validate()
		if err != nil {
			return CompileOutput{Err: err}
		}
	}

	docBytes, err := yamlfmt.NewPrinter(nil).Bytes(doc)
	if err != nil {
		return CompileOutput{Err: err}
	}

	return CompileOutput{DocBytes: docBytes, Table: analysis.Table()}
}

func (o *CompileOptions) loadValues(in CompileInput) (*orderedmap.Map, error) {
	vals := orderedmap.NewMap()

	if in.Values != nil {
		var err error
		vals, err = values.Load(in.Values.Data, in.Values.Name)
		if err != nil {
			return nil, err
		}
	}

	for _, src := range in.Overrides {
		override, err := values.LoadOverride(src.Data, src.Name)
		if err != nil {
			return nil, err
		}
		vals = values.Merge(vals, override)
	}

	return vals, nil
}

func (o *CompileOptions) readInput() (CompileInput, error) {
	if o.TemplateFile == "" {
		return CompileInput{}, fmt.Errorf("Expected template file to be specified (via --template)")
	}

	tplData, err := o.readFile(o.TemplateFile)
	if err != nil {
		return CompileInput{}, fmt.Errorf("Reading template: %s", err)
	}

	in := CompileInput{Template: NamedSource{Name: o.TemplateFile, Data: tplData}}

	if o.ValuesFile != "" {
		valsData, err := o.readFile(o.ValuesFile)
		if err != nil {
			return CompileInput{}, fmt.Errorf("Reading values: %s", err)
		}
		in.Values = &NamedSource{Name: o.ValuesFile, Data: valsData}
	}

	for _, path := range o.OverrideFiles {
		data, err := o.readFile(path)
		if err != nil {
			return CompileInput{}, fmt.Errorf("Reading override values: %s", err)
		}
		in.Overrides = append(in.Overrides, NamedSource{Name: path, Data: data})
	}

	return in, nil
}

func (o *CompileOptions) readFile(path string) ([]byte, error) {
	if path == "-" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(path)
}
