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

// Package export projects an evaluated tree to strict output formats.
//
// Projection elides Undefined and Definition children from containers and
// rejects any remaining Identifier or Dynamic: those are residue of a
// failed resolution and must not reach output.
package export

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"jsonpp.org/go/internal/core/adt"
	"jsonpp.org/go/jsonpp/errors"
)

// ToInterface projects v onto plain Go values: nil, bool, int64, float64,
// string, []interface{} and map[string]interface{}.
func ToInterface(v adt.Value) (interface{}, error) {
	switch x := v.(type) {
	case *adt.Null:
		return nil, nil
	case *adt.Bool:
		return x.B, nil
	case *adt.Int:
		return x.I, nil
	case *adt.Float:
		return x.F, nil
	case *adt.String:
		return x.Str, nil
	case *adt.List:
		elems := make([]interface{}, 0, len(x.Elems))
		for _, e := range x.Elems {
			if elided(e) {
				continue
			}
			c, err := ToInterface(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, c)
		}
		return elems, nil
	case *adt.Struct:
		fields := make(map[string]interface{}, len(x.Fields))
		for k, e := range x.Fields {
			if elided(e) {
				continue
			}
			c, err := ToInterface(e)
			if err != nil {
				return nil, err
			}
			fields[k] = c
		}
		return fields, nil
	}
	return nil, errors.Newf(errors.ResidualValue, v.Pos(),
		"cannot convert %s value %s to output", v.Kind(), adt.DebugStr(v))
}

// elided reports whether a container child disappears from output.
func elided(v adt.Value) bool {
	switch v.(type) {
	case *adt.Undefined, *adt.Definition:
		return true
	}
	return false
}

// JSON renders v as pretty-printed strict JSON. Object keys are sorted, so
// the output is deterministic.
func JSON(v adt.Value) ([]byte, error) {
	iface, err := ToInterface(v)
	if err != nil {
		return nil, err
	}
	b, err := json.MarshalIndent(iface, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, errors.ResidualValue, v.Pos(),
			"cannot encode output: %v", err)
	}
	return append(b, '\n'), nil
}

// YAML renders v as YAML.
func YAML(v adt.Value) ([]byte, error) {
	iface, err := ToInterface(v)
	if err != nil {
		return nil, err
	}
	b, err := yaml.Marshal(iface)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ResidualValue, v.Pos(),
			"cannot encode output: %v", err)
	}
	return b, nil
}
