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
	"jsonpp.org/go/internal/core/adt"
	"jsonpp.org/go/jsonpp/errors"
)

// The higher-order builtins rewrite their collection into fresh dynamics.
// The rewrites carry no path or dependency annotations: the evaluator
// re-preprocesses the result in place, which assigns both.

func init() {
	register(&Builtin{
		Name: "if", MinArgs: 3, MaxArgs: 3,
		Func: func(c *CallCtxt) (adt.Value, error) {
			truth, ok := adt.Truthy(c.Args[0])
			if !ok {
				return nil, c.errf(errors.TypeMismatch,
					"cannot evaluate truthiness of %s", adt.DebugStr(c.Args[0]))
			}
			if truth {
				return c.Args[1], nil
			}
			return c.Args[2], nil
		},
	})
	register(&Builtin{
		Name: "ref", MinArgs: 1, MaxArgs: 1,
		Func: func(c *CallCtxt) (adt.Value, error) {
			target, ok := c.Args[0].(*adt.String)
			if !ok {
				return nil, c.errf(errors.TypeMismatch,
					"non-string reference: %s", adt.DebugStr(c.Args[0]))
			}
			chain, err := adt.RefChain(target.Str)
			if err != nil {
				return nil, err
			}
			abs := adt.MakeAbsolute(c.Path, chain)
			v, ok := adt.Fetch(c.Root, abs)
			if !ok {
				return nil, c.errf(errors.DanglingReference,
					"reference %q does not resolve to a value", target.Str)
			}
			return adt.Copy(v), nil
		},
	})
	register(&Builtin{
		Name: "def", MinArgs: 2, MaxArgs: -1,
		Func: func(c *CallCtxt) (adt.Value, error) {
			vars := make([]string, len(c.Args)-1)
			seen := map[string]bool{}
			for i, a := range c.Args[:len(c.Args)-1] {
				id, ok := a.(*adt.Ident)
				if !ok {
					return nil, c.errf(errors.TypeMismatch,
						"definition parameters must be identifiers, got %s", adt.DebugStr(a))
				}
				if seen[id.Name] {
					return nil, c.errf(errors.TypeMismatch,
						"duplicate definition parameter %q", id.Name)
				}
				seen[id.Name] = true
				vars[i] = id.Name
			}
			return &adt.Definition{
				Src:      c.Src,
				Vars:     vars,
				Template: c.Args[len(c.Args)-1],
			}, nil
		},
	})
	register(&Builtin{
		Name: "map", MinArgs: 2, MaxArgs: 2,
		Func: func(c *CallCtxt) (adt.Value, error) {
			fn := c.Args[0]
			switch coll := c.Args[1].(type) {
			case *adt.List:
				elems := make([]adt.Value, len(coll.Elems))
				for i, e := range coll.Elems {
					elems[i] = apply(c, fn, e)
				}
				return &adt.List{Src: c.Src, Elems: elems}, nil
			case *adt.Struct:
				fields := make(map[string]adt.Value, len(coll.Fields))
				for k, e := range coll.Fields {
					fields[k] = apply(c, fn, e)
				}
				return &adt.Struct{Src: c.Src, Fields: fields}, nil
			}
			return nil, c.errf(errors.TypeMismatch,
				"cannot map over %s", adt.DebugStr(c.Args[1]))
		},
	})
	register(&Builtin{
		Name: "filter", MinArgs: 2, MaxArgs: 2,
		Func: func(c *CallCtxt) (adt.Value, error) {
			fn := c.Args[0]
			switch coll := c.Args[1].(type) {
			case *adt.List:
				elems := make([]adt.Value, len(coll.Elems))
				for i, e := range coll.Elems {
					elems[i] = keepIf(c, fn, e)
				}
				return &adt.List{Src: c.Src, Elems: elems}, nil
			case *adt.Struct:
				fields := make(map[string]adt.Value, len(coll.Fields))
				for k, e := range coll.Fields {
					fields[k] = keepIf(c, fn, e)
				}
				return &adt.Struct{Src: c.Src, Fields: fields}, nil
			}
			return nil, c.errf(errors.TypeMismatch,
				"cannot filter over %s", adt.DebugStr(c.Args[1]))
		},
	})
	register(&Builtin{
		Name: "reduce", MinArgs: 2, MaxArgs: 2,
		Func: func(c *CallCtxt) (adt.Value, error) {
			fn := c.Args[0]
			coll, ok := c.Args[1].(*adt.List)
			if !ok {
				return nil, c.errf(errors.TypeMismatch,
					"cannot reduce over %s", adt.DebugStr(c.Args[1]))
			}
			if len(coll.Elems) == 0 {
				return &adt.Undefined{Src: c.Src}, nil
			}
			acc := coll.Elems[0]
			for _, e := range coll.Elems[1:] {
				acc = &adt.Dynamic{
					Src:  c.Src,
					Args: []adt.Value{adt.Copy(fn), acc, e},
				}
			}
			return acc, nil
		},
	})
}

// apply builds the unresolved call (fn e).
func apply(c *CallCtxt, fn, e adt.Value) adt.Value {
	return &adt.Dynamic{
		Src:  c.Src,
		Args: []adt.Value{adt.Copy(fn), e},
	}
}

// keepIf builds (if (fn e) e undefined); the undefined arm vanishes at
// projection, which is what makes filter work with if's eager branches.
func keepIf(c *CallCtxt, fn, e adt.Value) adt.Value {
	cond := &adt.Dynamic{
		Src:  c.Src,
		Args: []adt.Value{adt.Copy(fn), adt.Copy(e)},
	}
	return &adt.Dynamic{
		Src: c.Src,
		Args: []adt.Value{
			&adt.Ident{Src: c.Src, Name: "if"},
			cond,
			e,
			&adt.Undefined{Src: c.Src},
		},
	}
}
