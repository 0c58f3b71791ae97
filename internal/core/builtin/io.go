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
	"io/ioutil"
	"strings"

	"github.com/sirupsen/logrus"

	"jsonpp.org/go/internal/core/adt"
	"jsonpp.org/go/jsonpp/errors"
	"jsonpp.org/go/jsonpp/parser"
)

func init() {
	register(&Builtin{
		Name: "include", MinArgs: 1, MaxArgs: 1,
		Func: func(c *CallCtxt) (adt.Value, error) {
			path, ok := c.Args[0].(*adt.String)
			if !ok {
				return nil, c.errf(errors.TypeMismatch,
					"include path is not a string: %s", adt.DebugStr(c.Args[0]))
			}
			logrus.Debugf("including %s", path.Str)
			data, err := ioutil.ReadFile(path.Str)
			if err != nil {
				return nil, errors.Wrapf(err, errors.IOError, c.Src,
					"include %q: %v", path.Str, err)
			}
			return &adt.String{Src: c.Src, Str: strings.TrimSpace(string(data))}, nil
		},
	})
	register(&Builtin{
		Name: "import", MinArgs: 1, MaxArgs: 1,
		Func: func(c *CallCtxt) (adt.Value, error) {
			path, ok := c.Args[0].(*adt.String)
			if !ok {
				return nil, c.errf(errors.TypeMismatch,
					"import path is not a string: %s", adt.DebugStr(c.Args[0]))
			}
			logrus.Debugf("importing %s", path.Str)
			data, err := ioutil.ReadFile(path.Str)
			if err != nil {
				return nil, errors.Wrapf(err, errors.IOError, c.Src,
					"import %q: %v", path.Str, err)
			}
			// The imported tree may itself contain dynamics; the caller
			// preprocesses it in place and resolves them in the outer
			// scheduler.
			return parser.ParseBytes(path.Str, data)
		},
	})
}
