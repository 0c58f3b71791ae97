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

package adt

import (
	"sort"
	"strconv"
	"strings"

	"jsonpp.org/go/jsonpp/token"
)

// Null represents the null literal.
type Null struct {
	Src token.Pos
}

func (x *Null) Kind() Kind     { return NullKind }
func (x *Null) Pos() token.Pos { return x.Src }

// Undefined represents the undefined literal. It may occur in any container
// during evaluation and is elided from containers at projection.
type Undefined struct {
	Src token.Pos
}

func (x *Undefined) Kind() Kind     { return UndefinedKind }
func (x *Undefined) Pos() token.Pos { return x.Src }

// Bool is a boolean value.
type Bool struct {
	Src token.Pos
	B   bool
}

func (x *Bool) Kind() Kind     { return BoolKind }
func (x *Bool) Pos() token.Pos { return x.Src }

// Int is a 64-bit signed integer value.
type Int struct {
	Src token.Pos
	I   int64
}

func (x *Int) Kind() Kind     { return IntKind }
func (x *Int) Pos() token.Pos { return x.Src }

// Float is a 64-bit IEEE-754 value.
type Float struct {
	Src token.Pos
	F   float64
}

func (x *Float) Kind() Kind     { return FloatKind }
func (x *Float) Pos() token.Pos { return x.Src }

// String is a UTF-8 text value.
type String struct {
	Src token.Pos
	Str string
}

func (x *String) Kind() Kind     { return StringKind }
func (x *String) Pos() token.Pos { return x.Src }

// List is an ordered sequence of values.
type List struct {
	Src   token.Pos
	Elems []Value
}

func (x *List) Kind() Kind     { return ListKind }
func (x *List) Pos() token.Pos { return x.Src }

// Struct is a mapping from unique string keys to values. Key order is not
// observable in outputs.
type Struct struct {
	Src    token.Pos
	Fields map[string]Value
}

func (x *Struct) Kind() Kind     { return StructKind }
func (x *Struct) Pos() token.Pos { return x.Src }

// SortedKeys returns the field names in lexical order.
func (x *Struct) SortedKeys() []string {
	keys := make([]string, 0, len(x.Fields))
	for k := range x.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Ident is a bare word from the source. Identifiers are only meaningful as
// the head of a dynamic or as definition parameters.
type Ident struct {
	Src  token.Pos
	Name string
}

func (x *Ident) Kind() Kind     { return IdentKind }
func (x *Ident) Pos() token.Pos { return x.Src }

// Definition is a first-class template built by def. It is invocable as the
// head of a dynamic. Vars holds distinct parameter names.
type Definition struct {
	Src      token.Pos
	Vars     []string
	Template Value
}

func (x *Definition) Kind() Kind     { return DefinitionKind }
func (x *Definition) Pos() token.Pos { return x.Src }

// Dynamic is an unevaluated parenthesised expression. Args[0] is the
// operator; the remaining args are operands.
//
// Path and Deps are assigned during preprocessing: Path is the dynamic's
// location in the tree and Deps lists paths, relative or absolute, whose
// resolution the dynamic requires.
type Dynamic struct {
	Src  token.Pos
	Args []Value

	Path Path
	Deps []Path
}

func (x *Dynamic) Kind() Kind     { return DynamicKind }
func (x *Dynamic) Pos() token.Pos { return x.Src }

// IsFunc reports whether the dynamic's operator is the named identifier.
func (x *Dynamic) IsFunc(name string) bool {
	if len(x.Args) == 0 {
		return false
	}
	id, ok := x.Args[0].(*Ident)
	return ok && id.Name == name
}

// DebugStr returns a compact single-line rendering of v for diagnostics.
// It is not strict JSON.
func DebugStr(v Value) string {
	var b strings.Builder
	debugStr(&b, v)
	return b.String()
}

func debugStr(b *strings.Builder, v Value) {
	switch x := v.(type) {
	case *Null:
		b.WriteString("null")
	case *Undefined:
		b.WriteString("undefined")
	case *Bool:
		b.WriteString(strconv.FormatBool(x.B))
	case *Int:
		b.WriteString(strconv.FormatInt(x.I, 10))
	case *Float:
		b.WriteString(strconv.FormatFloat(x.F, 'g', -1, 64))
	case *String:
		b.WriteString(strconv.Quote(x.Str))
	case *List:
		b.WriteString("[")
		for i, e := range x.Elems {
			if i > 0 {
				b.WriteString(" ")
			}
			debugStr(b, e)
		}
		b.WriteString("]")
	case *Struct:
		b.WriteString("{")
		for i, k := range x.SortedKeys() {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(strconv.Quote(k))
			b.WriteString(": ")
			debugStr(b, x.Fields[k])
		}
		b.WriteString("}")
	case *Ident:
		b.WriteString(x.Name)
	case *Definition:
		b.WriteString("(def")
		for _, v := range x.Vars {
			b.WriteString(" ")
			b.WriteString(v)
		}
		b.WriteString(" ")
		debugStr(b, x.Template)
		b.WriteString(")")
	case *Dynamic:
		b.WriteString("(")
		for i, e := range x.Args {
			if i > 0 {
				b.WriteString(" ")
			}
			debugStr(b, e)
		}
		b.WriteString(")")
	}
}
