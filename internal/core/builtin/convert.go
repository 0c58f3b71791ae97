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

package builtin

import (
	"math"
	"strconv"
	"strings"

	"jsonpp.org/go/internal/core/adt"
	"jsonpp.org/go/jsonpp/errors"
)

func init() {
	register(&Builtin{
		Name: "len", MinArgs: 1, MaxArgs: 1,
		Func: func(c *CallCtxt) (adt.Value, error) {
			var n int
			switch x := c.Args[0].(type) {
			case *adt.String:
				n = len(x.Str)
			case *adt.List:
				n = len(x.Elems)
			case *adt.Struct:
				n = len(x.Fields)
			default:
				return nil, c.errf(errors.TypeMismatch,
					"len of %s value %s", x.Kind(), adt.DebugStr(x))
			}
			return &adt.Int{Src: c.Src, I: int64(n)}, nil
		},
	})
	register(&Builtin{
		Name: "str", MinArgs: 1, MaxArgs: 1,
		Func: func(c *CallCtxt) (adt.Value, error) {
			s, err := humanStr(c, c.Args[0])
			if err != nil {
				return nil, err
			}
			return &adt.String{Src: c.Src, Str: s}, nil
		},
	})
	register(&Builtin{
		Name: "int", MinArgs: 1, MaxArgs: 1,
		Func: func(c *CallCtxt) (adt.Value, error) {
			var i int64
			switch x := c.Args[0].(type) {
			case *adt.Int:
				i = x.I
			case *adt.Null:
				i = 0
			case *adt.Bool:
				if x.B {
					i = 1
				}
			case *adt.Float:
				i = int64(math.Round(x.F))
			case *adt.String:
				var err error
				i, err = strconv.ParseInt(x.Str, 10, 64)
				if err != nil {
					return nil, c.errf(errors.TypeMismatch,
						"cannot parse %q as int", x.Str)
				}
			default:
				return nil, c.errf(errors.TypeMismatch,
					"cannot convert %s to int", adt.DebugStr(x))
			}
			return &adt.Int{Src: c.Src, I: i}, nil
		},
	})
	register(&Builtin{
		Name: "float", MinArgs: 1, MaxArgs: 1,
		Func: func(c *CallCtxt) (adt.Value, error) {
			var f float64
			switch x := c.Args[0].(type) {
			case *adt.Float:
				f = x.F
			case *adt.Null:
				f = 0
			case *adt.Bool:
				if x.B {
					f = 1
				}
			case *adt.Int:
				f = float64(x.I)
			case *adt.String:
				var err error
				f, err = strconv.ParseFloat(x.Str, 64)
				if err != nil {
					return nil, c.errf(errors.TypeMismatch,
						"cannot parse %q as float", x.Str)
				}
			default:
				return nil, c.errf(errors.TypeMismatch,
					"cannot convert %s to float", adt.DebugStr(x))
			}
			return &adt.Float{Src: c.Src, F: f}, nil
		},
	})
	register(&Builtin{
		Name: "range", MinArgs: 2, MaxArgs: 2,
		Func: func(c *CallCtxt) (adt.Value, error) {
			start, ok := c.Args[0].(*adt.Int)
			if !ok {
				return nil, c.errf(errors.TypeMismatch,
					"range start is not an int: %s", adt.DebugStr(c.Args[0]))
			}
			end, ok := c.Args[1].(*adt.Int)
			if !ok {
				return nil, c.errf(errors.TypeMismatch,
					"range end is not an int: %s", adt.DebugStr(c.Args[1]))
			}
			var elems []adt.Value
			for i := start.I; i < end.I; i++ {
				elems = append(elems, &adt.Int{Src: c.Src, I: i})
			}
			return &adt.List{Src: c.Src, Elems: elems}, nil
		},
	})
	register(&Builtin{
		Name: "merge", MinArgs: 1, MaxArgs: -1,
		Func: mergeImpl,
	})
	register(&Builtin{
		Name: "keys", MinArgs: 1, MaxArgs: 1,
		Func: func(c *CallCtxt) (adt.Value, error) {
			obj, ok := c.Args[0].(*adt.Struct)
			if !ok {
				return nil, c.errf(errors.TypeMismatch,
					"keys of non-object %s", adt.DebugStr(c.Args[0]))
			}
			var elems []adt.Value
			for _, k := range obj.SortedKeys() {
				elems = append(elems, &adt.String{Src: c.Src, Str: k})
			}
			return &adt.List{Src: c.Src, Elems: elems}, nil
		},
	})
	register(&Builtin{
		Name: "values", MinArgs: 1, MaxArgs: 1,
		Func: func(c *CallCtxt) (adt.Value, error) {
			obj, ok := c.Args[0].(*adt.Struct)
			if !ok {
				return nil, c.errf(errors.TypeMismatch,
					"values of non-object %s", adt.DebugStr(c.Args[0]))
			}
			var elems []adt.Value
			for _, k := range obj.SortedKeys() {
				elems = append(elems, obj.Fields[k])
			}
			return &adt.List{Src: c.Src, Elems: elems}, nil
		},
	})
}

// humanStr renders a value the way str does: a human-readable form that is
// not strict JSON. Object keys are emitted in lexical order.
func humanStr(c *CallCtxt, v adt.Value) (string, error) {
	switch x := v.(type) {
	case *adt.String:
		return x.Str, nil
	case *adt.Null:
		return "null", nil
	case *adt.Bool:
		return strconv.FormatBool(x.B), nil
	case *adt.Int:
		return strconv.FormatInt(x.I, 10), nil
	case *adt.Float:
		return strconv.FormatFloat(x.F, 'g', -1, 64), nil
	case *adt.List:
		parts := make([]string, len(x.Elems))
		for i, e := range x.Elems {
			s, err := humanStr(c, e)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case *adt.Struct:
		keys := x.SortedKeys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			s, err := humanStr(c, x.Fields[k])
			if err != nil {
				return "", err
			}
			parts[i] = "\"" + k + "\": " + s
		}
		return "{" + strings.Join(parts, ", ") + "}", nil
	}
	return "", c.errf(errors.TypeMismatch,
		"cannot convert %s to string", adt.DebugStr(v))
}

func mergeImpl(c *CallCtxt) (adt.Value, error) {
	kind := c.Args[0].Kind()
	if kind&adt.ContainerKind == 0 {
		return nil, c.errf(errors.TypeMismatch,
			"cannot merge %s value %s", kind, adt.DebugStr(c.Args[0]))
	}
	for _, a := range c.Args[1:] {
		if a.Kind() != kind {
			return nil, c.errf(errors.TypeMismatch,
				"mismatched operands to merge: %s and %s", kind, a.Kind())
		}
	}
	switch kind {
	case adt.StringKind:
		var b strings.Builder
		for _, a := range c.Args {
			b.WriteString(a.(*adt.String).Str)
		}
		return &adt.String{Src: c.Src, Str: b.String()}, nil
	case adt.ListKind:
		var elems []adt.Value
		for _, a := range c.Args {
			elems = append(elems, a.(*adt.List).Elems...)
		}
		return &adt.List{Src: c.Src, Elems: elems}, nil
	default:
		fields := map[string]adt.Value{}
		for _, a := range c.Args {
			for k, v := range a.(*adt.Struct).Fields {
				// Later operands win.
				fields[k] = v
			}
		}
		return &adt.Struct{Src: c.Src, Fields: fields}, nil
	}
}
