// Copyright 2023 The JSON++ Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package token defines positions within JSON++ source text.
package token

import "fmt"

// Pos is a position within a source file. The zero value (NoPos) reports
// no position information.
type Pos struct {
	// Filename is the name of the input, or "-" for stdin.
	Filename string

	// Line and Column are 1-based. Column counts bytes, not runes.
	Line   int
	Column int
}

// NoPos is the zero position. It is used for values that were not read
// from source, such as nodes synthesized during evaluation.
var NoPos = Pos{}

// IsValid reports whether the position carries source information.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	s := p.Filename
	if s == "" {
		s = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", s, p.Line, p.Column)
}
