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

// Package cmd implements the jsonpp command line tool.
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jsonpp.org/go/internal/core/eval"
	"jsonpp.org/go/internal/core/export"
	"jsonpp.org/go/jsonpp/errors"
	"jsonpp.org/go/jsonpp/parser"
)

// logEnvVar selects the log level, e.g. JSONPP_LOG=debug.
const logEnvVar = "JSONPP_LOG"

// newRootCmd creates the base command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsonpp [input]",
		Short: "jsonpp preprocesses JSON++ files into strict JSON",
		Long: `jsonpp evaluates a JSON++ file, an extension of JSON with comments,
optional commas, and dynamic expressions, and emits the result as strict
JSON.

The input is a file path, or - to read standard input:

	jsonpp config.json++
	cat config.json++ | jsonpp -

By default the result is printed to standard output. With --output it is
written to a file instead; an existing file is not overwritten unless
--force is given.`,

		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE:          runPreprocess,
	}

	cmd.Flags().StringP(string(flagOutput), "o", "",
		"write the result to this file instead of stdout")
	cmd.Flags().BoolP(string(flagForce), "f", false,
		"overwrite an existing output file")
	cmd.Flags().String(string(flagOut), "json",
		"output format (json or yaml)")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	input := args[0]

	var data []byte
	var err error
	if input == "-" {
		logrus.Debug("reading stdin")
		data, err = ioutil.ReadAll(cmd.InOrStdin())
	} else {
		logrus.Debugf("reading %s", input)
		data, err = ioutil.ReadFile(input)
	}
	if err != nil {
		return errors.Promote(err, "read input")
	}
	logrus.Debugf("read %d bytes", len(data))

	tree, err := parser.ParseBytes(input, data)
	if err != nil {
		return err
	}
	logrus.Info("parsed input, evaluating")

	resolved, err := eval.Evaluate(tree)
	if err != nil {
		return err
	}
	logrus.Info("evaluated input")

	var out []byte
	switch format := flagOut.String(cmd); format {
	case "json":
		out, err = export.JSON(resolved)
	case "yaml":
		out, err = export.YAML(resolved)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}

	if path := flagOutput.String(cmd); path != "" {
		return writeFile(path, out, flagForce.Bool(cmd))
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// writeFile refuses to overwrite an existing file unless forced.
func writeFile(path string, data []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0666)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%s already exists; use --force to overwrite", path)
		}
		return errors.Promote(err, "write output")
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return errors.Promote(err, "write output")
	}
	return nil
}

// Main runs the jsonpp tool and returns the code for passing to os.Exit.
func Main() int {
	if level := os.Getenv(logEnvVar); level != "" {
		l, err := logrus.ParseLevel(level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid %s value %q\n", logEnvVar, level)
		} else {
			logrus.SetLevel(l)
		}
	}
	logrus.SetOutput(os.Stderr)

	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		errors.Print(os.Stderr, err)
		return 1
	}
	return 0
}
