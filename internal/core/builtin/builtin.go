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

// Package builtin implements the named operations callable from a dynamic.
//
// Builtins are pure functions of their operands, except for ref, which
// reads the document tree, and include/import, which read the filesystem.
package builtin

import (
	"jsonpp.org/go/internal/core/adt"
	"jsonpp.org/go/jsonpp/errors"
	"jsonpp.org/go/jsonpp/token"
)

// A CallCtxt carries one builtin invocation. Args holds the operands (the
// operator itself excluded); the evaluator passes cloned sub-trees, so a
// builtin may capture operands into its result without copying them first.
type CallCtxt struct {
	// Fun is the name the builtin was invoked under.
	Fun string

	// Src is the source position of the calling dynamic.
	Src token.Pos

	Args []adt.Value

	// Path is the calling dynamic's location; Root the document root.
	// Both are used by ref only. Root must not be mutated.
	Path adt.Path
	Root adt.Value
}

func (c *CallCtxt) errf(code errors.Code, format string, args ...interface{}) error {
	return errors.Newf(code, c.Src, format, args...)
}

// A Builtin is a named operation with an arity contract.
type Builtin struct {
	Name string

	// MinArgs and MaxArgs bound the operand count; MaxArgs -1 means
	// unbounded.
	MinArgs int
	MaxArgs int

	Func func(c *CallCtxt) (adt.Value, error)
}

// Call checks arity and invokes the builtin.
func (b *Builtin) Call(c *CallCtxt) (adt.Value, error) {
	if len(c.Args) < b.MinArgs {
		return nil, errors.Newf(errors.ArityMismatch, c.Src,
			"%s requires at least %d operands, got %d", b.Name, b.MinArgs, len(c.Args))
	}
	if b.MaxArgs >= 0 && len(c.Args) > b.MaxArgs {
		return nil, errors.Newf(errors.ArityMismatch, c.Src,
			"%s takes at most %d operands, got %d", b.Name, b.MaxArgs, len(c.Args))
	}
	return b.Func(c)
}

// Lookup returns the builtin registered under name, or nil.
func Lookup(name string) *Builtin {
	return registry[name]
}

var registry = map[string]*Builtin{}

func register(b *Builtin) {
	if _, ok := registry[b.Name]; ok {
		panic("builtin: duplicate registration of " + b.Name)
	}
	registry[b.Name] = b
}
