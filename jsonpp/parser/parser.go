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

// Package parser builds jsonpp value trees from JSON++ source text.
package parser

import (
	"jsonpp.org/go/internal/core/adt"
	"jsonpp.org/go/jsonpp/errors"
	"jsonpp.org/go/jsonpp/literal"
	"jsonpp.org/go/jsonpp/scanner"
)

// ParseBytes parses a complete JSON++ document. The input must contain
// exactly one top-level value.
func ParseBytes(filename string, src []byte) (adt.Value, error) {
	p := &parser{s: scanner.New(filename, src)}
	if err := p.next(); err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != scanner.EOF {
		return nil, errors.Newf(errors.ParseError, p.tok.Pos,
			"expected end of input, found %s", p.tok.Kind)
	}
	return v, nil
}

type parser struct {
	s   *scanner.Scanner
	tok scanner.Token
}

func (p *parser) next() error {
	t, err := p.s.Next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) parseValue() (adt.Value, error) {
	switch t := p.tok; t.Kind {
	case scanner.LeftBracket:
		return p.parseList()
	case scanner.LeftBrace:
		return p.parseStruct()
	case scanner.LeftParen:
		return p.parseDynamic()
	case scanner.String:
		if err := p.next(); err != nil {
			return nil, err
		}
		return &adt.String{Src: t.Pos, Str: t.Text}, nil
	case scanner.Word:
		if err := p.next(); err != nil {
			return nil, err
		}
		return p.classifyWord(t)
	case scanner.EOF:
		return nil, errors.Newf(errors.ParseError, t.Pos,
			"unexpected end of input")
	default:
		return nil, errors.Newf(errors.ParseError, t.Pos,
			"unexpected %s", t.Kind)
	}
}

// classifyWord turns a bare word into a keyword literal, a number, or an
// identifier.
func (p *parser) classifyWord(t scanner.Token) (adt.Value, error) {
	switch t.Text {
	case "true":
		return &adt.Bool{Src: t.Pos, B: true}, nil
	case "false":
		return &adt.Bool{Src: t.Pos, B: false}, nil
	case "null":
		return &adt.Null{Src: t.Pos}, nil
	case "undefined":
		return &adt.Undefined{Src: t.Pos}, nil
	}
	info, isNum, err := literal.ParseNum(t.Text)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ParseError, t.Pos,
			"invalid number %q", t.Text)
	}
	if isNum {
		if info.IsInt {
			return &adt.Int{Src: t.Pos, I: info.Int}, nil
		}
		return &adt.Float{Src: t.Pos, F: info.Float}, nil
	}
	return &adt.Ident{Src: t.Pos, Name: t.Text}, nil
}

func (p *parser) parseList() (adt.Value, error) {
	pos := p.tok.Pos
	if err := p.next(); err != nil { // consume '['
		return nil, err
	}
	var elems []adt.Value
	for p.tok.Kind != scanner.RightBracket {
		if p.tok.Kind == scanner.EOF {
			return nil, errors.Newf(errors.ParseError, pos,
				"array not terminated")
		}
		e, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if err := p.next(); err != nil { // consume ']'
		return nil, err
	}
	return &adt.List{Src: pos, Elems: elems}, nil
}

func (p *parser) parseStruct() (adt.Value, error) {
	pos := p.tok.Pos
	if err := p.next(); err != nil { // consume '{'
		return nil, err
	}
	fields := map[string]adt.Value{}
	for p.tok.Kind != scanner.RightBrace {
		if p.tok.Kind == scanner.EOF {
			return nil, errors.Newf(errors.ParseError, pos,
				"object not terminated")
		}
		if p.tok.Kind != scanner.String {
			return nil, errors.Newf(errors.ParseError, p.tok.Pos,
				"expected object key, found %s", p.tok.Kind)
		}
		key := p.tok.Text
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Kind != scanner.Colon {
			return nil, errors.Newf(errors.ParseError, p.tok.Pos,
				"expected ':' after object key %q", key)
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		// Duplicate keys: later wins.
		fields[key] = v
	}
	if err := p.next(); err != nil { // consume '}'
		return nil, err
	}
	return &adt.Struct{Src: pos, Fields: fields}, nil
}

func (p *parser) parseDynamic() (adt.Value, error) {
	pos := p.tok.Pos
	if err := p.next(); err != nil { // consume '('
		return nil, err
	}
	var args []adt.Value
	for p.tok.Kind != scanner.RightParen {
		if p.tok.Kind == scanner.EOF {
			return nil, errors.Newf(errors.ParseError, pos,
				"dynamic not terminated")
		}
		a, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	if err := p.next(); err != nil { // consume ')'
		return nil, err
	}
	if len(args) == 0 {
		return nil, errors.Newf(errors.ParseError, pos,
			"dynamic without an operator")
	}
	return &adt.Dynamic{Src: pos, Args: args}, nil
}
