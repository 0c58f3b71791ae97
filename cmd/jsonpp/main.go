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

// jsonpp is a command line tool that preprocesses JSON++ into strict JSON.
package main

import (
	"os"

	"jsonpp.org/go/cmd/jsonpp/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
