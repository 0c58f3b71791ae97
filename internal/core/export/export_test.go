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

package export

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jsonpp.org/go/internal/core/adt"
	"jsonpp.org/go/jsonpp/errors"
)

func TestToInterface(t *testing.T) {
	v := &adt.Struct{Fields: map[string]adt.Value{
		"null":  &adt.Null{},
		"bool":  &adt.Bool{B: true},
		"int":   &adt.Int{I: 42},
		"float": &adt.Float{F: 2.5},
		"str":   &adt.String{Str: "s"},
		"arr": &adt.List{Elems: []adt.Value{
			&adt.Int{I: 1},
			&adt.Undefined{},
			&adt.Int{I: 2},
		}},
		"gone": &adt.Undefined{},
		"tmpl": &adt.Definition{Vars: []string{"x"}, Template: &adt.Ident{Name: "x"}},
	}}
	got, err := ToInterface(v)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]interface{}{
		"null":  nil,
		"bool":  true,
		"int":   int64(42),
		"float": 2.5,
		"str":   "s",
		"arr":   []interface{}{int64(1), int64(2)},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("(-want +got)\n%s", d)
	}
}

func TestResidualValues(t *testing.T) {
	residuals := []adt.Value{
		&adt.Ident{Name: "x"},
		&adt.Dynamic{Args: []adt.Value{&adt.Ident{Name: "sum"}}},
		&adt.List{Elems: []adt.Value{&adt.Ident{Name: "x"}}},
		&adt.Struct{Fields: map[string]adt.Value{
			"k": &adt.Dynamic{Args: []adt.Value{&adt.Ident{Name: "sum"}}},
		}},
		// Undefined and definitions vanish inside containers but cannot
		// be the whole output.
		&adt.Undefined{},
		&adt.Definition{Template: &adt.Null{}},
	}
	for _, v := range residuals {
		_, err := ToInterface(v)
		if err == nil {
			t.Errorf("projecting %s succeeded", adt.DebugStr(v))
			continue
		}
		if e, ok := err.(errors.Error); !ok || e.Code() != errors.ResidualValue {
			t.Errorf("projecting %s: got %v, want a residual value error", adt.DebugStr(v), err)
		}
	}
}

func TestJSONSortsKeys(t *testing.T) {
	v := &adt.Struct{Fields: map[string]adt.Value{
		"b": &adt.Int{I: 2},
		"a": &adt.Int{I: 1},
		"c": &adt.Int{I: 3},
	}}
	b, err := JSON(v)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	if !(strings.Index(s, `"a"`) < strings.Index(s, `"b"`) &&
		strings.Index(s, `"b"`) < strings.Index(s, `"c"`)) {
		t.Errorf("keys are not sorted:\n%s", s)
	}
	if !strings.HasSuffix(s, "\n") {
		t.Error("output does not end in a newline")
	}
}

func TestYAML(t *testing.T) {
	v := &adt.Struct{Fields: map[string]adt.Value{
		"a": &adt.Int{I: 1},
		"l": &adt.List{Elems: []adt.Value{&adt.String{Str: "x"}}},
	}}
	b, err := YAML(v)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	if !strings.Contains(s, "a: 1") || !strings.Contains(s, "- x") {
		t.Errorf("unexpected YAML:\n%s", s)
	}
}
