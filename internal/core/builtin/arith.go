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
	"math"

	"jsonpp.org/go/internal/core/adt"
	"jsonpp.org/go/jsonpp/errors"
	"jsonpp.org/go/jsonpp/token"
)

// Numeric operations left-fold their operands pairwise. Two Ints stay
// integral; any Float promotes the fold to floats.

type intOp func(a, b int64) (int64, error)
type floatOp func(a, b float64) (float64, error)

func numFold(c *CallCtxt, intF intOp, floatF floatOp) (adt.Value, error) {
	acc := c.Args[0]
	if acc.Kind()&adt.NumKind == 0 {
		return nil, c.errf(errors.TypeMismatch,
			"invalid operand to %s: %s", c.Fun, adt.DebugStr(acc))
	}
	for _, next := range c.Args[1:] {
		var err error
		acc, err = numPairOp(c, intF, floatF, acc, next)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func numPairOp(c *CallCtxt, intF intOp, floatF floatOp, a, b adt.Value) (adt.Value, error) {
	switch x := a.(type) {
	case *adt.Int:
		switch y := b.(type) {
		case *adt.Int:
			r, err := intF(x.I, y.I)
			if err != nil {
				return nil, err
			}
			return &adt.Int{Src: c.Src, I: r}, nil
		case *adt.Float:
			r, err := floatF(float64(x.I), y.F)
			if err != nil {
				return nil, err
			}
			return &adt.Float{Src: c.Src, F: r}, nil
		}
	case *adt.Float:
		switch y := b.(type) {
		case *adt.Int:
			r, err := floatF(x.F, float64(y.I))
			if err != nil {
				return nil, err
			}
			return &adt.Float{Src: c.Src, F: r}, nil
		case *adt.Float:
			r, err := floatF(x.F, y.F)
			if err != nil {
				return nil, err
			}
			return &adt.Float{Src: c.Src, F: r}, nil
		}
	}
	return nil, c.errf(errors.TypeMismatch,
		"invalid operands to %s: %s and %s", c.Fun, adt.DebugStr(a), adt.DebugStr(b))
}

func numCmp(c *CallCtxt, intF func(a, b int64) bool, floatF func(a, b float64) bool) (adt.Value, error) {
	a, b := c.Args[0], c.Args[1]
	switch x := a.(type) {
	case *adt.Int:
		switch y := b.(type) {
		case *adt.Int:
			return &adt.Bool{Src: c.Src, B: intF(x.I, y.I)}, nil
		case *adt.Float:
			return &adt.Bool{Src: c.Src, B: floatF(float64(x.I), y.F)}, nil
		}
	case *adt.Float:
		switch y := b.(type) {
		case *adt.Int:
			return &adt.Bool{Src: c.Src, B: floatF(x.F, float64(y.I))}, nil
		case *adt.Float:
			return &adt.Bool{Src: c.Src, B: floatF(x.F, y.F)}, nil
		}
	}
	return nil, c.errf(errors.TypeMismatch,
		"invalid operands to %s: %s and %s", c.Fun, adt.DebugStr(a), adt.DebugStr(b))
}

func noErrInt(f func(a, b int64) int64) intOp {
	return func(a, b int64) (int64, error) { return f(a, b), nil }
}

func noErrFloat(f func(a, b float64) float64) floatOp {
	return func(a, b float64) (float64, error) { return f(a, b), nil }
}

// intPow computes a**b for b > 0 by repeated multiplication.
func intPow(a, b int64) int64 {
	r := int64(1)
	for ; b > 0; b-- {
		r *= a
	}
	return r
}

// intLog computes floor(log_base(v)) on integers.
func intLog(base, v int64) (int64, error) {
	if base < 2 {
		return 0, errors.Newf(errors.TypeMismatch, token.NoPos,
			"integer logarithm requires a base of at least 2, got %d", base)
	}
	if v <= 0 {
		return 0, errors.Newf(errors.TypeMismatch, token.NoPos,
			"integer logarithm of non-positive value %d", v)
	}
	var k int64
	for v >= base {
		v /= base
		k++
	}
	return k, nil
}

func init() {
	register(&Builtin{
		Name: "sum", MinArgs: 1, MaxArgs: -1,
		Func: func(c *CallCtxt) (adt.Value, error) {
			return numFold(c,
				noErrInt(func(a, b int64) int64 { return a + b }),
				noErrFloat(func(a, b float64) float64 { return a + b }))
		},
	})
	register(&Builtin{
		Name: "mul", MinArgs: 1, MaxArgs: -1,
		Func: func(c *CallCtxt) (adt.Value, error) {
			return numFold(c,
				noErrInt(func(a, b int64) int64 { return a * b }),
				noErrFloat(func(a, b float64) float64 { return a * b }))
		},
	})
	register(&Builtin{
		Name: "sub", MinArgs: 2, MaxArgs: 2,
		Func: func(c *CallCtxt) (adt.Value, error) {
			return numFold(c,
				noErrInt(func(a, b int64) int64 { return a - b }),
				noErrFloat(func(a, b float64) float64 { return a - b }))
		},
	})
	register(&Builtin{
		Name: "div", MinArgs: 2, MaxArgs: 2,
		Func: func(c *CallCtxt) (adt.Value, error) {
			if isZero(c.Args[1]) {
				return nil, c.errf(errors.DivisionByZero, "division by zero")
			}
			return numFold(c,
				noErrInt(func(a, b int64) int64 { return a / b }),
				noErrFloat(func(a, b float64) float64 { return a / b }))
		},
	})
	register(&Builtin{
		Name: "mod", MinArgs: 2, MaxArgs: 2,
		Func: func(c *CallCtxt) (adt.Value, error) {
			if isZero(c.Args[1]) {
				return nil, c.errf(errors.DivisionByZero, "modulo by zero")
			}
			return numFold(c,
				noErrInt(func(a, b int64) int64 { return a % b }),
				noErrFloat(math.Mod))
		},
	})
	register(&Builtin{
		Name: "pow", MinArgs: 2, MaxArgs: 2,
		Func: func(c *CallCtxt) (adt.Value, error) {
			return numFold(c,
				noErrInt(func(a, b int64) int64 {
					if b > 0 {
						return intPow(a, b)
					}
					return int64(math.Round(math.Pow(float64(a), float64(b))))
				}),
				noErrFloat(math.Pow))
		},
	})
	register(&Builtin{
		Name: "log", MinArgs: 2, MaxArgs: 2,
		Func: func(c *CallCtxt) (adt.Value, error) {
			return numFold(c,
				intLog,
				func(base, v float64) (float64, error) {
					if base == 1 {
						return 0, c.errf(errors.TypeMismatch,
							"there is no base 1 logarithm")
					}
					return math.Log(v) / math.Log(base), nil
				})
		},
	})
	register(&Builtin{
		Name: "min", MinArgs: 1, MaxArgs: -1,
		Func: func(c *CallCtxt) (adt.Value, error) {
			return numFold(c,
				noErrInt(func(a, b int64) int64 {
					if a < b {
						return a
					}
					return b
				}),
				noErrFloat(math.Min))
		},
	})
	register(&Builtin{
		Name: "max", MinArgs: 1, MaxArgs: -1,
		Func: func(c *CallCtxt) (adt.Value, error) {
			return numFold(c,
				noErrInt(func(a, b int64) int64 {
					if a > b {
						return a
					}
					return b
				}),
				noErrFloat(math.Max))
		},
	})
	register(&Builtin{
		Name: "eq", MinArgs: 2, MaxArgs: 2,
		Func: func(c *CallCtxt) (adt.Value, error) {
			return &adt.Bool{Src: c.Src, B: adt.Equal(c.Args[0], c.Args[1])}, nil
		},
	})
	register(&Builtin{
		Name: "gt", MinArgs: 2, MaxArgs: 2,
		Func: func(c *CallCtxt) (adt.Value, error) {
			return numCmp(c,
				func(a, b int64) bool { return a > b },
				func(a, b float64) bool { return a > b })
		},
	})
	register(&Builtin{
		Name: "lt", MinArgs: 2, MaxArgs: 2,
		Func: func(c *CallCtxt) (adt.Value, error) {
			return numCmp(c,
				func(a, b int64) bool { return a < b },
				func(a, b float64) bool { return a < b })
		},
	})
	register(&Builtin{
		Name: "gte", MinArgs: 2, MaxArgs: 2,
		Func: func(c *CallCtxt) (adt.Value, error) {
			return numCmp(c,
				func(a, b int64) bool { return a >= b },
				func(a, b float64) bool { return a >= b })
		},
	})
	register(&Builtin{
		Name: "lte", MinArgs: 2, MaxArgs: 2,
		Func: func(c *CallCtxt) (adt.Value, error) {
			return numCmp(c,
				func(a, b int64) bool { return a <= b },
				func(a, b float64) bool { return a <= b })
		},
	})
}

func isZero(v adt.Value) bool {
	switch x := v.(type) {
	case *adt.Int:
		return x.I == 0
	case *adt.Float:
		return x.F == 0
	}
	return false
}
