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

// Package adt defines the value tree on which the jsonpp evaluator operates.
//
// A document is a single Value. Containers own their children; there are no
// back-edges and no shared mutable sub-trees. Dependencies between dynamics
// are expressed as paths into the tree, never as direct references.
package adt

import (
	"jsonpp.org/go/jsonpp/token"
)

// Value is a node in a JSON++ document tree.
type Value interface {
	// Kind reports the variant of the value.
	Kind() Kind

	// Pos reports the source position the value was parsed from, or
	// token.NoPos for synthesized values.
	Pos() token.Pos
}

// Truthy reports the truthiness of v: null, undefined, false, numeric zero,
// and empty containers are false; everything else is true. It reports false
// for the second return if v has no defined truthiness (identifiers,
// definitions, unresolved dynamics).
func Truthy(v Value) (truth, ok bool) {
	switch x := v.(type) {
	case *Null:
		return false, true
	case *Undefined:
		return false, true
	case *Bool:
		return x.B, true
	case *Int:
		return x.I != 0, true
	case *Float:
		return x.F != 0, true
	case *String:
		return x.Str != "", true
	case *List:
		return len(x.Elems) > 0, true
	case *Struct:
		return len(x.Fields) > 0, true
	}
	return false, false
}

// Equal reports structural equality of two values. Values of different
// kinds are never equal; in particular an Int is never equal to a Float.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Undefined:
		_, ok := b.(*Undefined)
		return ok
	case *Bool:
		y, ok := b.(*Bool)
		return ok && x.B == y.B
	case *Int:
		y, ok := b.(*Int)
		return ok && x.I == y.I
	case *Float:
		y, ok := b.(*Float)
		return ok && x.F == y.F
	case *String:
		y, ok := b.(*String)
		return ok && x.Str == y.Str
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i, e := range x.Elems {
			if !Equal(e, y.Elems[i]) {
				return false
			}
		}
		return true
	case *Struct:
		y, ok := b.(*Struct)
		if !ok || len(x.Fields) != len(y.Fields) {
			return false
		}
		for k, v := range x.Fields {
			w, ok := y.Fields[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	case *Ident:
		y, ok := b.(*Ident)
		return ok && x.Name == y.Name
	case *Definition:
		y, ok := b.(*Definition)
		if !ok || len(x.Vars) != len(y.Vars) {
			return false
		}
		for i, v := range x.Vars {
			if v != y.Vars[i] {
				return false
			}
		}
		return Equal(x.Template, y.Template)
	case *Dynamic:
		y, ok := b.(*Dynamic)
		if !ok || len(x.Args) != len(y.Args) {
			return false
		}
		for i, e := range x.Args {
			if !Equal(e, y.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// ContainsDynamics reports whether v transitively contains an unresolved
// dynamic. Definition bodies never count: they are inert until invoked.
func ContainsDynamics(v Value) bool {
	switch x := v.(type) {
	case *Dynamic:
		return true
	case *List:
		for _, e := range x.Elems {
			if ContainsDynamics(e) {
				return true
			}
		}
	case *Struct:
		for _, e := range x.Fields {
			if ContainsDynamics(e) {
				return true
			}
		}
	}
	return false
}

// Copy returns a deep copy of v. Dynamics copy their args only; path and
// dependency annotations are reassigned when the copy is preprocessed at
// its new location.
func Copy(v Value) Value {
	switch x := v.(type) {
	case *List:
		elems := make([]Value, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = Copy(e)
		}
		return &List{Src: x.Src, Elems: elems}
	case *Struct:
		fields := make(map[string]Value, len(x.Fields))
		for k, e := range x.Fields {
			fields[k] = Copy(e)
		}
		return &Struct{Src: x.Src, Fields: fields}
	case *Dynamic:
		args := make([]Value, len(x.Args))
		for i, e := range x.Args {
			args[i] = Copy(e)
		}
		return &Dynamic{Src: x.Src, Args: args}
	case *Definition:
		vars := make([]string, len(x.Vars))
		copy(vars, x.Vars)
		return &Definition{Src: x.Src, Vars: vars, Template: Copy(x.Template)}
	case *Null:
		c := *x
		return &c
	case *Undefined:
		c := *x
		return &c
	case *Bool:
		c := *x
		return &c
	case *Int:
		c := *x
		return &c
	case *Float:
		c := *x
		return &c
	case *String:
		c := *x
		return &c
	case *Ident:
		c := *x
		return &c
	}
	panic("adt: copy of unknown value")
}
