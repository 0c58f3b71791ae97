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

package eval

import (
	"jsonpp.org/go/internal/core/adt"
	"jsonpp.org/go/jsonpp/errors"
)

// Substitute instantiates a definition with concrete arguments: every
// identifier in the template whose name is a parameter is replaced by the
// corresponding argument. Substitution is purely by name and does not
// evaluate the result; the caller preprocesses the returned sub-tree in
// place.
func Substitute(def *adt.Definition, args []adt.Value) (adt.Value, error) {
	if len(def.Vars) != len(args) {
		return nil, errors.Newf(errors.ArityMismatch, def.Pos(),
			"definition takes %d arguments, got %d", len(def.Vars), len(args))
	}
	table := make(map[string]adt.Value, len(def.Vars))
	for i, name := range def.Vars {
		table[name] = args[i]
	}
	return substitute(def.Template, table), nil
}

// substitute returns a fresh tree; it never aliases template nodes, so a
// definition can be invoked any number of times.
func substitute(v adt.Value, table map[string]adt.Value) adt.Value {
	switch x := v.(type) {
	case *adt.Ident:
		if arg, ok := table[x.Name]; ok {
			return adt.Copy(arg)
		}
		return adt.Copy(v)
	case *adt.List:
		elems := make([]adt.Value, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = substitute(e, table)
		}
		return &adt.List{Src: x.Src, Elems: elems}
	case *adt.Struct:
		fields := make(map[string]adt.Value, len(x.Fields))
		for k, e := range x.Fields {
			fields[k] = substitute(e, table)
		}
		return &adt.Struct{Src: x.Src, Fields: fields}
	case *adt.Dynamic:
		args := make([]adt.Value, len(x.Args))
		for i, a := range x.Args {
			args[i] = substitute(a, table)
		}
		return &adt.Dynamic{Src: x.Src, Args: args}
	case *adt.Definition:
		// No hygiene: parameters of a nested definition do not shadow.
		vars := make([]string, len(x.Vars))
		copy(vars, x.Vars)
		return &adt.Definition{Src: x.Src, Vars: vars, Template: substitute(x.Template, table)}
	}
	return adt.Copy(v)
}
