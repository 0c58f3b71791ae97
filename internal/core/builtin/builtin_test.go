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
	"testing"

	"jsonpp.org/go/internal/core/adt"
	"jsonpp.org/go/jsonpp/errors"
)

func call(t *testing.T, name string, args ...adt.Value) (adt.Value, error) {
	t.Helper()
	b := Lookup(name)
	if b == nil {
		t.Fatalf("no builtin %q", name)
	}
	return b.Call(&CallCtxt{Fun: name, Args: args})
}

func mustCall(t *testing.T, name string, args ...adt.Value) adt.Value {
	t.Helper()
	v, err := call(t, name, args...)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return v
}

func wantCode(t *testing.T, err error, code errors.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	e, ok := err.(errors.Error)
	if !ok {
		t.Fatalf("error %v does not implement errors.Error", err)
	}
	if e.Code() != code {
		t.Fatalf("error code = %v, want %v (%v)", e.Code(), code, err)
	}
}

func num(i int64) adt.Value     { return &adt.Int{I: i} }
func fnum(f float64) adt.Value  { return &adt.Float{F: f} }
func str(s string) adt.Value    { return &adt.String{Str: s} }
func list(e ...adt.Value) *adt.List {
	return &adt.List{Elems: e}
}

func TestArithmetic(t *testing.T) {
	testCases := []struct {
		name string
		args []adt.Value
		want adt.Value
	}{
		{"sum", []adt.Value{num(1), num(2), num(3)}, num(6)},
		{"sum", []adt.Value{num(1)}, num(1)},
		{"sum", []adt.Value{num(1), fnum(0.5)}, fnum(1.5)},
		{"mul", []adt.Value{num(2), num(3), num(4)}, num(24)},
		{"sub", []adt.Value{num(10), num(4)}, num(6)},
		{"div", []adt.Value{num(10), num(4)}, num(2)},
		{"div", []adt.Value{fnum(10), num(4)}, fnum(2.5)},
		{"mod", []adt.Value{num(10), num(3)}, num(1)},
		{"pow", []adt.Value{num(2), num(10)}, num(1024)},
		{"pow", []adt.Value{num(2), num(0)}, num(1)},
		{"pow", []adt.Value{num(2), num(-1)}, num(1)}, // rounds 0.5 up
		{"pow", []adt.Value{fnum(4), fnum(0.5)}, fnum(2)},
		{"log", []adt.Value{num(2), num(8)}, num(3)},
		{"log", []adt.Value{num(2), num(9)}, num(3)}, // floor
		{"min", []adt.Value{num(3), num(1), num(2)}, num(1)},
		{"max", []adt.Value{num(3), fnum(4.5), num(2)}, fnum(4.5)},
	}
	for _, tc := range testCases {
		got := mustCall(t, tc.name, tc.args...)
		if !adt.Equal(tc.want, got) {
			t.Errorf("%s(%s) = %s, want %s", tc.name,
				adt.DebugStr(list(tc.args...)), adt.DebugStr(got), adt.DebugStr(tc.want))
		}
	}
}

func TestArithmeticErrors(t *testing.T) {
	_, err := call(t, "div", num(1), num(0))
	wantCode(t, err, errors.DivisionByZero)

	_, err = call(t, "div", num(1), fnum(0))
	wantCode(t, err, errors.DivisionByZero)

	_, err = call(t, "mod", num(1), num(0))
	wantCode(t, err, errors.DivisionByZero)

	_, err = call(t, "sum", str("a"), num(1))
	wantCode(t, err, errors.TypeMismatch)

	_, err = call(t, "div", num(1))
	wantCode(t, err, errors.ArityMismatch)

	_, err = call(t, "sum")
	wantCode(t, err, errors.ArityMismatch)

	_, err = call(t, "log", fnum(1), fnum(10))
	wantCode(t, err, errors.TypeMismatch)
}

func TestComparisons(t *testing.T) {
	testCases := []struct {
		name string
		a, b adt.Value
		want bool
	}{
		{"gt", num(2), num(1), true},
		{"gt", num(1), num(2), false},
		{"lt", fnum(1.5), num(2), true},
		{"gte", num(2), num(2), true},
		{"lte", num(3), fnum(2.5), false},
		{"eq", num(1), num(1), true},
		{"eq", num(1), fnum(1), false},
		{"eq", str("x"), str("x"), true},
		{"eq", list(num(1)), list(num(1)), true},
	}
	for _, tc := range testCases {
		got := mustCall(t, tc.name, tc.a, tc.b)
		if got.(*adt.Bool).B != tc.want {
			t.Errorf("%s(%s, %s) = %v, want %v", tc.name,
				adt.DebugStr(tc.a), adt.DebugStr(tc.b), got.(*adt.Bool).B, tc.want)
		}
	}

	_, err := call(t, "gt", str("a"), num(1))
	wantCode(t, err, errors.TypeMismatch)
}

func TestConversions(t *testing.T) {
	if got := mustCall(t, "str", num(42)); got.(*adt.String).Str != "42" {
		t.Errorf("str(42) = %s", adt.DebugStr(got))
	}
	if got := mustCall(t, "str", list(num(1), str("a"))); got.(*adt.String).Str != "[1, a]" {
		t.Errorf("str([1 a]) = %s", adt.DebugStr(got))
	}
	obj := &adt.Struct{Fields: map[string]adt.Value{"b": num(2), "a": num(1)}}
	if got := mustCall(t, "str", obj); got.(*adt.String).Str != `{"a": 1, "b": 2}` {
		t.Errorf("str(obj) = %s", adt.DebugStr(got))
	}

	if got := mustCall(t, "int", fnum(2.5)); got.(*adt.Int).I != 3 {
		t.Errorf("int(2.5) = %s", adt.DebugStr(got))
	}
	if got := mustCall(t, "int", str("-7")); got.(*adt.Int).I != -7 {
		t.Errorf("int(\"-7\") = %s", adt.DebugStr(got))
	}
	if got := mustCall(t, "int", &adt.Bool{B: true}); got.(*adt.Int).I != 1 {
		t.Errorf("int(true) = %s", adt.DebugStr(got))
	}
	if got := mustCall(t, "float", num(2)); got.(*adt.Float).F != 2.0 {
		t.Errorf("float(2) = %s", adt.DebugStr(got))
	}

	_, err := call(t, "int", str("xyz"))
	wantCode(t, err, errors.TypeMismatch)

	_, err = call(t, "len", num(1))
	wantCode(t, err, errors.TypeMismatch)

	if got := mustCall(t, "len", str("héllo")); got.(*adt.Int).I != 6 {
		t.Errorf("len counts bytes: got %s", adt.DebugStr(got))
	}
	if got := mustCall(t, "len", list(num(1), num(2))); got.(*adt.Int).I != 2 {
		t.Errorf("len of array: %s", adt.DebugStr(got))
	}
}

func TestRange(t *testing.T) {
	got := mustCall(t, "range", num(2), num(5))
	want := list(num(2), num(3), num(4))
	if !adt.Equal(want, got) {
		t.Errorf("range(2, 5) = %s", adt.DebugStr(got))
	}
	if got := mustCall(t, "range", num(3), num(3)); len(got.(*adt.List).Elems) != 0 {
		t.Errorf("range(3, 3) = %s", adt.DebugStr(got))
	}
	_, err := call(t, "range", fnum(1), num(3))
	wantCode(t, err, errors.TypeMismatch)
}

func TestMerge(t *testing.T) {
	got := mustCall(t, "merge", str("foo"), str("bar"))
	if got.(*adt.String).Str != "foobar" {
		t.Errorf("merge strings = %s", adt.DebugStr(got))
	}

	got = mustCall(t, "merge", list(num(1)), list(num(2), num(3)))
	if !adt.Equal(list(num(1), num(2), num(3)), got) {
		t.Errorf("merge arrays = %s", adt.DebugStr(got))
	}

	a := &adt.Struct{Fields: map[string]adt.Value{"x": num(1), "y": num(1)}}
	b := &adt.Struct{Fields: map[string]adt.Value{"y": num(2)}}
	got = mustCall(t, "merge", a, b)
	want := &adt.Struct{Fields: map[string]adt.Value{"x": num(1), "y": num(2)}}
	if !adt.Equal(want, got) {
		t.Errorf("merge objects = %s", adt.DebugStr(got))
	}

	_, err := call(t, "merge", str("a"), list(num(1)))
	wantCode(t, err, errors.TypeMismatch)

	_, err = call(t, "merge", num(1), num(2))
	wantCode(t, err, errors.TypeMismatch)
}

func TestKeysValues(t *testing.T) {
	obj := &adt.Struct{Fields: map[string]adt.Value{"b": num(2), "a": num(1)}}
	if got := mustCall(t, "keys", obj); !adt.Equal(list(str("a"), str("b")), got) {
		t.Errorf("keys = %s", adt.DebugStr(got))
	}
	if got := mustCall(t, "values", obj); !adt.Equal(list(num(1), num(2)), got) {
		t.Errorf("values = %s", adt.DebugStr(got))
	}
}

func TestIf(t *testing.T) {
	if got := mustCall(t, "if", &adt.Bool{B: true}, num(1), num(2)); got.(*adt.Int).I != 1 {
		t.Errorf("if true = %s", adt.DebugStr(got))
	}
	if got := mustCall(t, "if", num(0), num(1), num(2)); got.(*adt.Int).I != 2 {
		t.Errorf("if 0 = %s", adt.DebugStr(got))
	}
	if got := mustCall(t, "if", &adt.Undefined{}, num(1), num(2)); got.(*adt.Int).I != 2 {
		t.Errorf("if undefined = %s", adt.DebugStr(got))
	}

	_, err := call(t, "if", &adt.Bool{B: true}, num(1))
	wantCode(t, err, errors.ArityMismatch)
}

func TestDef(t *testing.T) {
	got := mustCall(t, "def",
		&adt.Ident{Name: "x"},
		&adt.Ident{Name: "y"},
		list(&adt.Ident{Name: "x"}, &adt.Ident{Name: "y"}))
	def := got.(*adt.Definition)
	if len(def.Vars) != 2 || def.Vars[0] != "x" || def.Vars[1] != "y" {
		t.Fatalf("def vars = %v", def.Vars)
	}

	_, err := call(t, "def", num(1), num(2))
	wantCode(t, err, errors.TypeMismatch)

	_, err = call(t, "def",
		&adt.Ident{Name: "x"}, &adt.Ident{Name: "x"}, num(1))
	wantCode(t, err, errors.TypeMismatch)
}

func TestMapRewrite(t *testing.T) {
	fn := &adt.Ident{Name: "f"} // stands in for any callable
	got := mustCall(t, "map", fn, list(num(1), num(2)))
	elems := got.(*adt.List).Elems
	if len(elems) != 2 {
		t.Fatalf("map result: %s", adt.DebugStr(got))
	}
	for _, e := range elems {
		dyn, ok := e.(*adt.Dynamic)
		if !ok || len(dyn.Args) != 2 {
			t.Fatalf("map element is not a call: %s", adt.DebugStr(e))
		}
	}

	_, err := call(t, "map", fn, num(1))
	wantCode(t, err, errors.TypeMismatch)
}

func TestFilterRewrite(t *testing.T) {
	fn := &adt.Ident{Name: "f"}
	got := mustCall(t, "filter", fn, list(num(1)))
	dyn := got.(*adt.List).Elems[0].(*adt.Dynamic)
	if !dyn.IsFunc("if") || len(dyn.Args) != 4 {
		t.Fatalf("filter element = %s", adt.DebugStr(dyn))
	}
	if _, ok := dyn.Args[3].(*adt.Undefined); !ok {
		t.Fatalf("filter else-arm = %s", adt.DebugStr(dyn.Args[3]))
	}
}

func TestReduceRewrite(t *testing.T) {
	fn := &adt.Ident{Name: "f"}

	got := mustCall(t, "reduce", fn, list())
	if _, ok := got.(*adt.Undefined); !ok {
		t.Fatalf("reduce of empty array = %s", adt.DebugStr(got))
	}

	got = mustCall(t, "reduce", fn, list(num(7)))
	if !adt.Equal(num(7), got) {
		t.Fatalf("reduce of one element = %s", adt.DebugStr(got))
	}

	got = mustCall(t, "reduce", fn, list(num(1), num(2), num(3)))
	outer := got.(*adt.Dynamic)
	if len(outer.Args) != 3 {
		t.Fatalf("reduce result = %s", adt.DebugStr(got))
	}
	if _, ok := outer.Args[1].(*adt.Dynamic); !ok {
		t.Fatalf("reduce does not left-fold: %s", adt.DebugStr(got))
	}
}

func TestUnknownLookup(t *testing.T) {
	if Lookup("frobnicate") != nil {
		t.Error("Lookup of an unknown name succeeded")
	}
}
