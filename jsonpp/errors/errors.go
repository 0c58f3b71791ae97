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

// Package errors defines the error type shared by all jsonpp packages.
//
// All jsonpp errors are fatal to the run. An Error carries a message, an
// error code classifying the failure, an optional source position, and an
// optional document path naming the offending value.
package errors

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/xerrors"

	"jsonpp.org/go/jsonpp/token"
)

// Code indicates the category of an error. The code may influence how the
// error is reported, but carries no recovery semantics: every code is fatal.
type Code int

const (
	// ParseError indicates invalid JSON++ source text, including malformed
	// reference strings.
	ParseError Code = iota

	// TypeMismatch indicates a builtin operand of an unsupported kind.
	TypeMismatch

	// ArityMismatch indicates a wrong number of operands to a builtin or
	// definition.
	ArityMismatch

	// DivisionByZero indicates div or mod with a zero divisor.
	DivisionByZero

	// DanglingReference indicates a ref whose target does not exist and can
	// never come to exist.
	DanglingReference

	// ReferenceCycle indicates that the resolution loop cannot make progress.
	ReferenceCycle

	// UnknownFunction indicates a dynamic whose head names no builtin.
	UnknownFunction

	// IOError indicates a failed include or import read.
	IOError

	// ResidualValue indicates an identifier or dynamic surviving to
	// projection.
	ResidualValue
)

func (c Code) String() string {
	switch c {
	case ParseError:
		return "parse error"
	case TypeMismatch:
		return "type mismatch"
	case ArityMismatch:
		return "arity mismatch"
	case DivisionByZero:
		return "division by zero"
	case DanglingReference:
		return "dangling reference"
	case ReferenceCycle:
		return "reference cycle"
	case UnknownFunction:
		return "unknown function"
	case IOError:
		return "io error"
	case ResidualValue:
		return "residual value"
	}
	return "unknown"
}

// Error is the common error interface of the jsonpp packages.
type Error interface {
	error

	// Code reports the error category.
	Code() Code

	// Position reports the source position of the offending node, or
	// token.NoPos if the node was synthesized.
	Position() token.Pos

	// Path reports the document path of the offending value, one element
	// per path chunk, or nil if not applicable.
	Path() []string

	// Msg returns the unformatted message and its arguments.
	Msg() (format string, args []interface{})
}

// A Message implements the error message part of an Error.
type Message struct {
	format string
	args   []interface{}
}

// NewMessage creates a message from a format string and its arguments.
// The arguments are not interpreted until the message is printed.
func NewMessage(format string, args []interface{}) Message {
	return Message{format: format, args: args}
}

// Msg returns the unformatted message and its arguments.
func (m *Message) Msg() (string, []interface{}) { return m.format, m.args }

func (m *Message) Error() string {
	return fmt.Sprintf(m.format, m.args...)
}

var _ Error = &posError{}

type posError struct {
	code Code
	pos  token.Pos
	path []string

	Message

	// err is the underlying cause, if any.
	err error
}

func (e *posError) Code() Code          { return e.code }
func (e *posError) Position() token.Pos { return e.pos }
func (e *posError) Path() []string      { return e.path }
func (e *posError) Unwrap() error       { return e.err }

func (e *posError) Error() string { return String(e) }

// Newf creates an Error with the given code and position.
func Newf(c Code, p token.Pos, format string, args ...interface{}) Error {
	return &posError{
		code:    c,
		pos:     p,
		Message: NewMessage(format, args),
	}
}

// Wrapf creates an Error around an underlying cause. The cause is
// reachable through xerrors.Unwrap.
func Wrapf(err error, c Code, p token.Pos, format string, args ...interface{}) Error {
	return &posError{
		code:    c,
		pos:     p,
		Message: NewMessage(format, args),
		err:     err,
	}
}

// AtPath returns a copy of err located at the given document path. If err
// is not an Error it is promoted first.
func AtPath(err error, path []string) Error {
	e := Promote(err, "error")
	if pe, ok := e.(*posError); ok {
		c := *pe
		c.path = path
		return &c
	}
	return &posError{
		code:    e.Code(),
		pos:     e.Position(),
		path:    path,
		Message: NewMessage("%s", []interface{}{e.Error()}),
		err:     err,
	}
}

// Promote converts a regular Go error to an Error. If err is already an
// Error it is returned as is. The message prefixes the original error.
func Promote(err error, msg string) Error {
	switch x := err.(type) {
	case Error:
		return x
	default:
		format := "%v"
		args := []interface{}{err}
		if msg != "" {
			format = msg + ": %v"
		}
		return &posError{
			code:    IOError,
			Message: NewMessage(format, args),
			err:     err,
		}
	}
}

// Is reports whether any error in err's chain matches target. It is a
// convenience re-export so callers need not import x/xerrors themselves.
func Is(err, target error) bool { return xerrors.Is(err, target) }

// Append combines two errors into a list, dropping nils. It is associative
// and never nests lists.
func Append(a, b Error) Error {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	la, ok := a.(list)
	if !ok {
		la = list{a}
	}
	lb, ok := b.(list)
	if !ok {
		lb = list{b}
	}
	out := make(list, 0, len(la)+len(lb))
	out = append(out, la...)
	return append(out, lb...)
}

// Errors flattens err into its component errors. A nil error yields nil.
func Errors(err error) []Error {
	if err == nil {
		return nil
	}
	if l, ok := err.(list); ok {
		return l
	}
	return []Error{Promote(err, "")}
}

type list []Error

func (l list) Code() Code {
	if len(l) == 0 {
		return ParseError
	}
	return l[0].Code()
}

func (l list) Position() token.Pos {
	if len(l) == 0 {
		return token.NoPos
	}
	return l[0].Position()
}

func (l list) Path() []string {
	if len(l) == 0 {
		return nil
	}
	return l[0].Path()
}

func (l list) Msg() (string, []interface{}) {
	if len(l) == 0 {
		return "", nil
	}
	return l[0].Msg()
}

func (l list) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}

// sanitize orders a list by position and drops duplicates.
func (l list) sanitize() list {
	out := make(list, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Position(), out[j].Position()
		if pi.Filename != pj.Filename {
			return pi.Filename < pj.Filename
		}
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Column < pj.Column
	})
	w := 0
	for i, e := range out {
		if i > 0 && e.Error() == out[i-1].Error() {
			continue
		}
		out[w] = e
		w++
	}
	return out[:w]
}

// String formats a single error as "position: path: message". Lists format
// their first element.
func String(err Error) string {
	var b strings.Builder
	if p := err.Position(); p.IsValid() {
		b.WriteString(p.String())
		b.WriteString(": ")
	}
	if path := err.Path(); len(path) > 0 {
		b.WriteString(strings.Join(path, "."))
		b.WriteString(": ")
	}
	format, args := err.Msg()
	fmt.Fprintf(&b, format, args...)
	return b.String()
}

// Print writes err to w, one line per component error.
func Print(w io.Writer, err error) {
	errs := Errors(err)
	if l, ok := err.(list); ok {
		errs = l.sanitize()
	}
	for _, e := range errs {
		fmt.Fprintln(w, String(e))
	}
}
