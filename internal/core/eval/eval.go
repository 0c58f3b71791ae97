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

// Package eval resolves the dynamics of a parsed JSON++ tree to a fixed
// point.
//
// Evaluation is two-phased. Preprocessing walks the tree once, annotating
// every dynamic with its path and its dependencies and collecting the
// pending set. The resolve loop then repeatedly resolves dynamics whose
// dependencies no longer contain dynamics, splicing each result back in
// place and re-preprocessing it there. An iteration that resolves nothing
// while the pending set is non-empty is a reference cycle.
package eval

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"jsonpp.org/go/internal/core/adt"
	"jsonpp.org/go/internal/core/builtin"
	"jsonpp.org/go/jsonpp/errors"
	"jsonpp.org/go/jsonpp/token"
)

// Evaluate resolves every dynamic in root and returns the resulting tree.
// The result may still contain Undefined and Definition values; projection
// removes those.
func Evaluate(root adt.Value) (adt.Value, error) {
	e := &evaluator{
		root:    root,
		pending: map[string]adt.Path{},
	}
	v, err := e.preprocess(nil, root)
	if err != nil {
		return nil, err
	}
	e.root = v
	if err := e.run(); err != nil {
		return nil, err
	}
	return e.root, nil
}

type evaluator struct {
	// root is the single mutable tree. All mutations are in-place
	// replacements at fixed paths, so every pending path stays valid
	// within an iteration.
	root adt.Value

	// pending maps the canonical string form of each path whose value is
	// still a dynamic to that path.
	pending map[string]adt.Path
}

// preprocess annotates v, located at path, and registers its dynamics in
// the pending set. It returns the value to store at path, which differs
// from v only when a def resolves on the spot.
func (e *evaluator) preprocess(path adt.Path, v adt.Value) (adt.Value, error) {
	switch x := v.(type) {
	case *adt.Dynamic:
		return e.preprocessDynamic(path, x)
	case *adt.List:
		for i, elem := range x.Elems {
			inner, err := e.preprocess(path.Append(adt.Index(i)), elem)
			if err != nil {
				return nil, err
			}
			x.Elems[i] = inner
		}
		return x, nil
	case *adt.Struct:
		for k, elem := range x.Fields {
			inner, err := e.preprocess(path.Append(adt.Key(k)), elem)
			if err != nil {
				return nil, err
			}
			x.Fields[k] = inner
		}
		return x, nil
	}
	return v, nil
}

func (e *evaluator) preprocessDynamic(path adt.Path, x *adt.Dynamic) (adt.Value, error) {
	x.Path = path
	x.Deps = nil
	e.pending[path.String()] = path

	for i, arg := range x.Args {
		inner, err := e.preprocess(path.Append(adt.Arg(i)), arg)
		if err != nil {
			return nil, err
		}
		x.Args[i] = inner
		if _, ok := inner.(*adt.Dynamic); ok {
			// Operand dependencies are recorded absolute. Only user ref
			// chains use the relative form, whose leading Parent pops
			// the caller's own slot; an operand path must keep it.
			x.Deps = append(x.Deps, path.Append(adt.Arg(i)))
		}
	}

	switch {
	case x.IsFunc("ref"):
		if len(x.Args) != 2 {
			return nil, errors.AtPath(errors.Newf(errors.ArityMismatch, x.Src,
				"ref requires exactly 1 operand, got %d", len(x.Args)-1), path.Strings())
		}
		switch target := x.Args[1].(type) {
		case *adt.String:
			// A literal target is a dependency right away. It may be
			// relative or absolute; absoluteness is resolved when the
			// dependency is consulted.
			chain, err := adt.RefChain(target.Str)
			if err != nil {
				return nil, errors.AtPath(err, path.Strings())
			}
			x.Deps = append(x.Deps, chain)
		case *adt.Dynamic:
			// The target is computed; the argument dependency recorded
			// above covers it.
		default:
			return nil, errors.AtPath(errors.Newf(errors.TypeMismatch, x.Src,
				"trying to call ref on %s", adt.DebugStr(target)), path.Strings())
		}

	case x.IsFunc("def"):
		// Constructing a definition requires no dependencies: resolve it
		// on the spot. Nothing under this path stays pending.
		for k, p := range e.pending {
			if p.HasPrefix(path) {
				delete(e.pending, k)
			}
		}
		return e.call(path, x)
	}

	return x, nil
}

// run is the resolve loop.
func (e *evaluator) run() error {
	for len(e.pending) > 0 {
		progress := false

		// Resolution order is data-driven, not textual; iterating a
		// sorted snapshot only makes error reporting deterministic.
		keys := make([]string, 0, len(e.pending))
		for k := range e.pending {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			path, ok := e.pending[k]
			if !ok {
				// Removed by an earlier resolution in this sweep.
				continue
			}
			v, ok := adt.Fetch(e.root, path)
			if !ok {
				// The surrounding dynamic resolved and relocated this
				// sub-tree; its copy was re-registered at the new
				// location when the result was preprocessed.
				delete(e.pending, k)
				continue
			}
			dyn, ok := v.(*adt.Dynamic)
			if !ok {
				delete(e.pending, k)
				continue
			}

			live, err := e.liveDeps(dyn)
			if err != nil {
				return err
			}
			if live > 0 {
				continue
			}

			logrus.Debugf("resolving %s", k)
			progress = true
			if err := e.resolve(path, dyn); err != nil {
				return err
			}
		}

		if !progress && len(e.pending) > 0 {
			return e.cycleError()
		}
	}
	return nil
}

// liveDeps counts the dependencies of dyn whose target sub-tree still
// contains a dynamic.
func (e *evaluator) liveDeps(dyn *adt.Dynamic) (int, error) {
	live := 0
	for _, dep := range dyn.Deps {
		abs := adt.MakeAbsolute(dyn.Path, dep)
		if target, ok := adt.Fetch(e.root, abs); ok {
			if adt.ContainsDynamics(target) {
				live++
			}
			continue
		}

		// Operand dependencies always exist; only a ref target can be
		// missing.
		if !dyn.IsFunc("ref") {
			return 0, errors.AtPath(errors.Newf(errors.DanglingReference, dyn.Src,
				"dependency %q of %s does not exist", abs.String(),
				adt.DebugStr(dyn)), dyn.Path.Strings())
		}
		isLive, err := e.missingTargetLive(dyn, abs)
		if err != nil {
			return 0, err
		}
		if isLive {
			live++
		}
	}
	return live, nil
}

// missingTargetLive decides the fate of a dependency whose target cannot
// be fetched. If the nearest existing ancestor of the target is a dynamic,
// the target may come to exist once that ancestor resolves and the
// dependency stays live. Otherwise the reference dangles.
func (e *evaluator) missingTargetLive(dyn *adt.Dynamic, abs adt.Path) (bool, error) {
	for prefix := abs[:len(abs)-1]; len(prefix) > 0; prefix = prefix[:len(prefix)-1] {
		ancestor, ok := adt.Fetch(e.root, prefix)
		if !ok {
			continue
		}
		if _, isDyn := ancestor.(*adt.Dynamic); isDyn {
			return true, nil
		}
		break
	}
	return false, errors.AtPath(errors.Newf(errors.DanglingReference, dyn.Src,
		"reference %q does not resolve to a value", abs.String()),
		dyn.Path.Strings())
}

// resolve evaluates a dependency-free dynamic at path and splices the
// result into the tree, preprocessing it in place. A result that is itself
// a dynamic stays pending.
func (e *evaluator) resolve(path adt.Path, dyn *adt.Dynamic) error {
	result, err := e.call(path, dyn)
	if err != nil {
		return err
	}
	processed, err := e.preprocess(path, result)
	if err != nil {
		return err
	}
	if _, stillDyn := processed.(*adt.Dynamic); !stillDyn {
		delete(e.pending, path.String())
	}
	e.root = adt.Insert(e.root, path, processed)
	return nil
}

// call dispatches on the operator head: a builtin by name, or template
// substitution for a definition head.
func (e *evaluator) call(path adt.Path, dyn *adt.Dynamic) (adt.Value, error) {
	args := make([]adt.Value, len(dyn.Args)-1)
	for i, a := range dyn.Args[1:] {
		args[i] = adt.Copy(a)
	}

	switch head := dyn.Args[0].(type) {
	case *adt.Ident:
		b := builtin.Lookup(head.Name)
		if b == nil {
			return nil, errors.AtPath(errors.Newf(errors.UnknownFunction, dyn.Src,
				"unrecognized function %q", head.Name), path.Strings())
		}
		v, err := b.Call(&builtin.CallCtxt{
			Fun:  head.Name,
			Src:  dyn.Src,
			Args: args,
			Path: path,
			Root: e.root,
		})
		if err != nil {
			return nil, errors.AtPath(err, path.Strings())
		}
		return v, nil
	case *adt.Definition:
		v, err := Substitute(head, args)
		if err != nil {
			return nil, errors.AtPath(err, path.Strings())
		}
		return v, nil
	default:
		return nil, errors.AtPath(errors.Newf(errors.TypeMismatch, dyn.Src,
			"cannot call %s", adt.DebugStr(head)), path.Strings())
	}
}

func (e *evaluator) cycleError() error {
	paths := make([]string, 0, len(e.pending))
	for k := range e.pending {
		paths = append(paths, k)
	}
	sort.Strings(paths)
	logrus.Debugf("pending at cycle: %s", strings.Join(paths, ", "))
	return errors.Newf(errors.ReferenceCycle, token.NoPos,
		"reference cycle among %s", strings.Join(paths, ", "))
}
