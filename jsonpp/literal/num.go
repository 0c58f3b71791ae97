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

// Package literal parses the literal forms of JSON++ source text.
package literal

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v2"
)

// NumInfo is the result of parsing a numeric literal.
type NumInfo struct {
	// IsInt reports whether the literal is a pure integer. Any literal
	// containing '.' or an exponent is a float, even when its value is
	// integral.
	IsInt bool

	Int   int64
	Float float64
}

// ParseNum parses a numeric literal: an optional leading minus, decimal
// digits, an optional fraction, and an optional exponent whose own value
// may be fractional ("1.2e1.2"). A fractional exponent composes as
// mantissa * 10**exponent.
//
// The second return reports whether s has the shape of a number at all; a
// word like "sum" is simply not a number. A word that looks numeric but
// does not parse ("1.2.3") returns an error.
func ParseNum(s string) (NumInfo, bool, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NumInfo{IsInt: true, Int: i}, true, nil
	}

	lower := strings.ToLower(s)
	hasDigit := false
	for _, r := range lower {
		if r >= '0' && r <= '9' {
			hasDigit = true
			continue
		}
		if !strings.ContainsRune("-+.e", r) {
			return NumInfo{}, false, nil
		}
	}
	if !hasDigit {
		return NumInfo{}, false, nil
	}

	mant := lower
	exp := "0"
	if i := strings.IndexByte(lower, 'e'); i >= 0 {
		mant, exp = lower[:i], lower[i+1:]
	}

	// The mantissa is parsed as an exact decimal before conversion to
	// float64 so that forms like "1.20" and "1.2" agree.
	d, _, err := apd.NewFromString(mant)
	if err != nil {
		return NumInfo{}, true, &strconv.NumError{Func: "ParseNum", Num: s, Err: strconv.ErrSyntax}
	}
	mf, err := d.Float64()
	if err != nil {
		return NumInfo{}, true, &strconv.NumError{Func: "ParseNum", Num: s, Err: strconv.ErrRange}
	}

	ef, err := strconv.ParseFloat(exp, 64)
	if err != nil {
		return NumInfo{}, true, &strconv.NumError{Func: "ParseNum", Num: s, Err: strconv.ErrSyntax}
	}

	return NumInfo{Float: mf * math.Pow(10, ef)}, true, nil
}
