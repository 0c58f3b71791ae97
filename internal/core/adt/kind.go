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

// Kind identifies the variant of a Value. Kinds are bits so that sets of
// kinds can be expressed as masks.
type Kind uint16

const (
	NullKind Kind = 1 << iota
	BoolKind
	IntKind
	FloatKind
	StringKind
	ListKind
	StructKind
	UndefinedKind
	IdentKind
	DefinitionKind
	DynamicKind

	// NumKind matches both integer and floating point numbers.
	NumKind = IntKind | FloatKind

	// ContainerKind matches the kinds merge concatenates.
	ContainerKind = StringKind | ListKind | StructKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	case ListKind:
		return "array"
	case StructKind:
		return "object"
	case UndefinedKind:
		return "undefined"
	case IdentKind:
		return "identifier"
	case DefinitionKind:
		return "definition"
	case DynamicKind:
		return "dynamic"
	case NumKind:
		return "number"
	}
	return "(multiple kinds)"
}
