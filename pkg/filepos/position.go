// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package filepos

import (
	"fmt"
)

// Position locates a node within a source document. Line numbers are 1 based;
// a zero line means the position is unknown.
type Position struct {
	line int
	file string
	src  string // raw source line, kept for error display
}

func NewPosition(line int, file string) *Position {
	if line <= 0 {
		panic("Lines are 1 based")
	}
	return &Position{line: line, file: file}
}

func NewUnknownPosition() *Position {
	return &Position{}
}

func (p *Position) IsKnown() bool { return p != nil && p.line > 0 }

func (p *Position) Line() int {
	if !p.IsKnown() {
		panic("Position is unknown")
	}
	return p.line
}

func (p *Position) File() string {
	if p == nil {
		return ""
	}
	return p.file
}

func (p *Position) SetSourceLine(src string) { p.src = src }

func (p *Position) SourceLine() string {
	if p == nil {
		return ""
	}
	return p.src
}

// AsCompactString renders as "file:line", "file:?" or "line" depending on
// what is known.
func (p *Position) AsCompactString() string {
	filePrefix := p.File()
	if len(filePrefix) > 0 {
		filePrefix += ":"
	}
	if p.IsKnown() {
		return fmt.Sprintf("%s%d", filePrefix, p.line)
	}
	return filePrefix + "?"
}

func (p *Position) AsString() string {
	return "line " + p.AsCompactString()
}

func (p *Position) DeepCopy() *Position {
	if p == nil {
		return nil
	}
	return &Position{line: p.line, file: p.file, src: p.src}
}
