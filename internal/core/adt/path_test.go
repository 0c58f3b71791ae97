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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMakeAbsolute(t *testing.T) {
	testCases := []struct {
		name   string
		self   Path
		target Path
		want   Path
	}{{
		name:   "sibling",
		self:   Path{Key("Foo"), Key("Baz")},
		target: Path{Parent(), Key("Bar")},
		want:   Path{Key("Foo"), Key("Bar")},
	}, {
		name:   "base path ignored for absolute paths",
		self:   Path{Key("Foo"), Key("Baz")},
		target: Path{Key("Bar")},
		want:   Path{Key("Bar")},
	}, {
		name:   "top level sibling",
		self:   Path{Key("b")},
		target: Path{Parent(), Key("a")},
		want:   Path{Key("a")},
	}, {
		name:   "argument chunks anchor at the value slot",
		self:   Path{Key("sq"), Arg(1)},
		target: Path{Parent(), Key("d")},
		want:   Path{Key("d")},
	}, {
		name:   "double parent",
		self:   Path{Key("a"), Key("b"), Key("c")},
		target: Path{Parent(), Parent(), Key("d")},
		want:   Path{Key("a"), Key("d")},
	}, {
		name:   "descends into indices",
		self:   Path{Key("x")},
		target: Path{Parent(), Key("arr"), Index(2)},
		want:   Path{Key("arr"), Index(2)},
	}, {
		// Operand dependencies are recorded absolute by the evaluator;
		// absolutisation must not touch them, and in particular must
		// not pop the dynamic's own slot.
		name:   "argument dependency paths pass through",
		self:   Path{Key("sum")},
		target: Path{Key("sum"), Arg(1)},
		want:   Path{Key("sum"), Arg(1)},
	}, {
		name:   "parent beyond the root stops at the root",
		self:   Path{Key("x")},
		target: Path{Parent(), Parent(), Parent(), Key("y")},
		want:   Path{Key("y")},
	}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MakeAbsolute(tc.self, tc.target)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("MakeAbsolute: (-want +got)\n%s", diff)
			}
		})
	}
}

func TestRefChain(t *testing.T) {
	testCases := []struct {
		in      string
		want    Path
		wantErr bool
	}{
		{in: "a.b", want: Path{Key("a"), Key("b")}},
		{in: ".a", want: Path{Parent(), Key("a")}},
		{in: "..a", want: Path{Parent(), Parent(), Key("a")}},
		{in: "arr.[3]", want: Path{Key("arr"), Index(3)}},
		{in: "dyn.(2)", want: Path{Key("dyn"), Arg(2)}},
		{in: ".x.[0].(1)", want: Path{Parent(), Key("x"), Index(0), Arg(1)}},
		{in: "a.[x]", wantErr: true},
		{in: "a.(x)", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := RefChain(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("RefChain(%q) = %v, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("RefChain(%q): (-want +got)\n%s", tc.in, diff)
			}
		})
	}
}

func TestPathString(t *testing.T) {
	p := Path{Key("a"), Index(2), Arg(1)}
	if got, want := p.String(), "a.[2].(1)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFetchInsert(t *testing.T) {
	root := &Struct{Fields: map[string]Value{
		"a": &Int{I: 10},
		"arr": &List{Elems: []Value{
			&String{Str: "x"},
			&Dynamic{Args: []Value{
				&Ident{Name: "sum"},
				&Int{I: 1},
				&Int{I: 2},
			}},
		}},
	}}

	v, ok := Fetch(root, Path{Key("a")})
	if !ok || v.(*Int).I != 10 {
		t.Fatalf("Fetch a = %v, %v", v, ok)
	}
	v, ok = Fetch(root, Path{Key("arr"), Index(1), Arg(2)})
	if !ok || v.(*Int).I != 2 {
		t.Fatalf("Fetch arr.[1].(2) = %v, %v", v, ok)
	}

	if _, ok := Fetch(root, Path{Key("missing")}); ok {
		t.Error("Fetch of a missing key succeeded")
	}
	if _, ok := Fetch(root, Path{Key("a"), Index(0)}); ok {
		t.Error("Fetch index of a non-array succeeded")
	}
	if _, ok := Fetch(root, Path{Key("arr"), Index(5)}); ok {
		t.Error("Fetch of an out of range index succeeded")
	}

	got := Insert(root, Path{Key("arr"), Index(1)}, &Int{I: 3})
	if got != Value(root) {
		t.Fatal("Insert below the root returned a different root")
	}
	v, _ = Fetch(root, Path{Key("arr"), Index(1)})
	if v.(*Int).I != 3 {
		t.Fatalf("after Insert: %v", DebugStr(v))
	}

	// An empty path replaces the root itself.
	if got := Insert(root, nil, &Null{}); got.Kind() != NullKind {
		t.Fatalf("Insert at the root = %v", DebugStr(got))
	}
}
