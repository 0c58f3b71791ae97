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
	"strconv"
	"strings"

	"jsonpp.org/go/jsonpp/errors"
	"jsonpp.org/go/jsonpp/token"
)

// ChunkKind discriminates the variants of a PathChunk.
type ChunkKind int

const (
	// ParentChunk moves one step toward the root. It occurs only in
	// unresolved relative paths.
	ParentChunk ChunkKind = iota

	// KeyChunk descends into an object field.
	KeyChunk

	// IndexChunk descends into an array element.
	IndexChunk

	// ArgumentChunk descends into a dynamic's operand.
	ArgumentChunk
)

// A PathChunk is one step of a Path. Chunks are comparable with ==.
type PathChunk struct {
	Kind  ChunkKind
	Key   string // KeyChunk only
	Index int    // IndexChunk and ArgumentChunk only
}

// Parent returns a chunk stepping toward the root.
func Parent() PathChunk { return PathChunk{Kind: ParentChunk} }

// Key returns a chunk descending into the field named s.
func Key(s string) PathChunk { return PathChunk{Kind: KeyChunk, Key: s} }

// Index returns a chunk descending into array element i.
func Index(i int) PathChunk { return PathChunk{Kind: IndexChunk, Index: i} }

// Arg returns a chunk descending into dynamic operand i.
func Arg(i int) PathChunk { return PathChunk{Kind: ArgumentChunk, Index: i} }

func (c PathChunk) String() string {
	switch c.Kind {
	case ParentChunk:
		return ""
	case KeyChunk:
		return c.Key
	case IndexChunk:
		return "[" + strconv.Itoa(c.Index) + "]"
	case ArgumentChunk:
		return "(" + strconv.Itoa(c.Index) + ")"
	}
	return "?"
}

// A Path addresses a position in a document tree as a sequence of
// container-descent chunks. The empty Path addresses the root.
type Path []PathChunk

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.String()
	}
	return strings.Join(parts, ".")
}

// Strings renders each chunk separately, for error reporting.
func (p Path) Strings() []string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.String()
	}
	return parts
}

// Append returns a new path extending p with chunk c. The result does not
// share its backing array with p.
func (p Path) Append(c PathChunk) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, c)
}

// HasPrefix reports whether p starts with the chunks of prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i, c := range prefix {
		if p[i] != c {
			return false
		}
	}
	return true
}

// IsRelative reports whether the path starts with a Parent chunk.
func (p Path) IsRelative() bool {
	return len(p) > 0 && p[0].Kind == ParentChunk
}

// MakeAbsolute resolves target against self. An absolute target is
// returned as is.
//
// A relative target (leading Parent) is anchored at self's value slot:
// trailing Argument chunks are stripped first, so a reference written
// inside a dynamic's operand list is rooted at the position the dynamic
// occupies. Each Parent then pops one chunk and other chunks append. A
// single leading dot therefore addresses siblings: in {"a": 10, "b":
// (ref ".a")} the target ".a" resolves to the path of "a".
func MakeAbsolute(self, target Path) Path {
	if !target.IsRelative() {
		return target
	}
	base := self
	for len(base) > 0 && base[len(base)-1].Kind == ArgumentChunk {
		base = base[:len(base)-1]
	}
	out := make(Path, len(base), len(base)+len(target))
	copy(out, base)
	for _, c := range target {
		if c.Kind == ParentChunk {
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		} else {
			out = append(out, c)
		}
	}
	return out
}

// RefChain parses a dotted reference string into a Path. Each "."-separated
// piece becomes Parent if empty, Index(n) for "[n]", Argument(n) for "(n)",
// and Key(piece) otherwise. The bracket interiors are the characters
// strictly between the brackets.
func RefChain(s string) (Path, error) {
	parts := strings.Split(s, ".")
	p := make(Path, 0, len(parts))
	for _, chunk := range parts {
		switch {
		case chunk == "":
			p = append(p, Parent())
		case strings.HasPrefix(chunk, "[") && strings.HasSuffix(chunk, "]"):
			n, err := strconv.Atoi(chunk[1 : len(chunk)-1])
			if err != nil {
				return nil, errors.Newf(errors.ParseError, token.NoPos,
					"invalid index %q in reference %q", chunk, s)
			}
			p = append(p, Index(n))
		case strings.HasPrefix(chunk, "(") && strings.HasSuffix(chunk, ")"):
			n, err := strconv.Atoi(chunk[1 : len(chunk)-1])
			if err != nil {
				return nil, errors.Newf(errors.ParseError, token.NoPos,
					"invalid argument %q in reference %q", chunk, s)
			}
			p = append(p, Arg(n))
		default:
			p = append(p, Key(chunk))
		}
	}
	return p, nil
}

// Fetch looks up the value at an absolute path. It reports false if any
// step's container kind mismatches or a key or index is missing. Passing a
// path containing Parent chunks is a bug in the caller.
func Fetch(root Value, p Path) (Value, bool) {
	if len(p) == 0 {
		return root, true
	}
	switch c := p[0]; c.Kind {
	case ParentChunk:
		panic("adt: fetch with a relative path")
	case KeyChunk:
		obj, ok := root.(*Struct)
		if !ok {
			return nil, false
		}
		v, ok := obj.Fields[c.Key]
		if !ok {
			return nil, false
		}
		return Fetch(v, p[1:])
	case IndexChunk:
		arr, ok := root.(*List)
		if !ok || c.Index < 0 || c.Index >= len(arr.Elems) {
			return nil, false
		}
		return Fetch(arr.Elems[c.Index], p[1:])
	case ArgumentChunk:
		dyn, ok := root.(*Dynamic)
		if !ok || c.Index < 0 || c.Index >= len(dyn.Args) {
			return nil, false
		}
		return Fetch(dyn.Args[c.Index], p[1:])
	}
	return nil, false
}

// Insert writes v at the absolute path p and returns the resulting root.
// All intermediate containers must exist; a mismatch is a bug in the
// caller, as is a Parent chunk. Only the value at p is replaced; no other
// position in the tree is touched.
func Insert(root Value, p Path, v Value) Value {
	if len(p) == 0 {
		return v
	}
	switch c := p[0]; c.Kind {
	case ParentChunk:
		panic("adt: insert with a relative path")
	case KeyChunk:
		obj, ok := root.(*Struct)
		if !ok {
			panic("adt: insert key into " + root.Kind().String())
		}
		child, ok := obj.Fields[c.Key]
		if !ok {
			panic("adt: insert into missing key " + c.Key)
		}
		obj.Fields[c.Key] = Insert(child, p[1:], v)
	case IndexChunk:
		arr, ok := root.(*List)
		if !ok {
			panic("adt: insert index into " + root.Kind().String())
		}
		arr.Elems[c.Index] = Insert(arr.Elems[c.Index], p[1:], v)
	case ArgumentChunk:
		dyn, ok := root.(*Dynamic)
		if !ok {
			panic("adt: insert argument into " + root.Kind().String())
		}
		dyn.Args[c.Index] = Insert(dyn.Args[c.Index], p[1:], v)
	}
	return root
}
