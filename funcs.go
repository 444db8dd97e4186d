package mathparser

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a unary function which may be applied to a bracketed expression.
type Func int8

const (
	funcNone Func = iota
	FuncLog2
	FuncLog10
	// FuncLog is the natural logarithm, the same as FuncLn.
	FuncLog
	FuncLn
	FuncSqrt
	FuncExp
	FuncCosh
	FuncSinh
	FuncCos
	FuncTanh
	FuncTan
	FuncSin
	FuncFloor
	FuncCeil
)

var funcNames = [...]string{
	funcNone:  "None",
	FuncLog2:  "Log2",
	FuncLog10: "Log10",
	FuncLog:   "Log",
	FuncLn:    "Ln",
	FuncSqrt:  "Sqrt",
	FuncExp:   "Exp",
	FuncCosh:  "Cosh",
	FuncSinh:  "Sinh",
	FuncCos:   "Cos",
	FuncTanh:  "Tanh",
	FuncTan:   "Tan",
	FuncSin:   "Sin",
	FuncFloor: "Floor",
	FuncCeil:  "Ceil",
}

func (f Func) String() string {
	if f < 0 || int(f) >= len(funcNames) {
		return "Func(" + strconv.Itoa(int(f)) + ")"
	}
	return funcNames[f]
}

var floatfuncs = [...]func(float64) float64{
	FuncLog2:  math.Log2,
	FuncLog10: math.Log10,
	FuncLog:   math.Log,
	FuncLn:    math.Log,
	FuncSqrt:  math.Sqrt,
	FuncExp:   math.Exp,
	FuncCosh:  math.Cosh,
	FuncSinh:  math.Sinh,
	FuncCos:   math.Cos,
	FuncTanh:  math.Tanh,
	FuncTan:   math.Tan,
	FuncSin:   math.Sin,
	FuncFloor: math.Floor,
	FuncCeil:  math.Ceil,
}

// Float64 applies the function to x.
func (f Func) Float64(x float64) float64 {
	if f <= funcNone || int(f) >= len(floatfuncs) {
		panic("mathparser: invalid function " + f.String())
	}
	return floatfuncs[f](x)
}

// bigfuncs implement each Func at arbitrary precision. Each sets out to its
// result at out's precision. Arguments outside the function's domain panic
// with an error wrapping big.ErrNaN.
var bigfuncs = [...]func(out, in *big.Float) *big.Float{
	FuncLog2:  func(out, in *big.Float) *big.Float { return logb(out, in, 2) },
	FuncLog10: func(out, in *big.Float) *big.Float { return logb(out, in, 10) },
	FuncLog:   ln,
	FuncLn:    ln,
	FuncSqrt: func(out, in *big.Float) *big.Float {
		if in.Sign() < 0 {
			panic(nanError("square root of negative operand"))
		}
		if in.IsInf() || in.Sign() == 0 {
			return out.Set(in)
		}
		return out.Sqrt(in)
	},
	FuncExp: exp,
	FuncCosh: func(out, in *big.Float) *big.Float {
		a, b := expPair(out.Prec(), in)
		out.Add(a, b)
		return out.Quo(out, big.NewFloat(2))
	},
	FuncSinh: func(out, in *big.Float) *big.Float {
		a, b := expPair(out.Prec(), in)
		out.Sub(a, b)
		return out.Quo(out, big.NewFloat(2))
	},
	FuncTanh: func(out, in *big.Float) *big.Float {
		if in.IsInf() {
			return out.SetInt64(int64(in.Sign()))
		}
		// tanh x = (e^2x - 1) / (e^2x + 1)
		t := new(big.Float).SetPrec(out.Prec()).Add(in, in)
		t = exp(new(big.Float).SetPrec(out.Prec()), t)
		if t.IsInf() {
			return out.SetInt64(1)
		}
		one := big.NewFloat(1)
		d := new(big.Float).SetPrec(out.Prec()).Add(t, one)
		out.Sub(t, one)
		return out.Quo(out, d)
	},
	FuncCos:   float64fn(math.Cos),
	FuncTan:   float64fn(math.Tan),
	FuncSin:   float64fn(math.Sin),
	FuncFloor: func(out, in *big.Float) *big.Float { return round(out, in, big.Above, -1) },
	FuncCeil:  func(out, in *big.Float) *big.Float { return round(out, in, big.Below, 1) },
}

// Big applies the function to x, storing the result in z at z's precision.
// It panics with an error wrapping big.ErrNaN if x is outside the function's domain.
func (f Func) Big(z, x *big.Float) *big.Float {
	if f <= funcNone || int(f) >= len(bigfuncs) {
		panic("mathparser: invalid function " + f.String())
	}
	return bigfuncs[f](z, x)
}

// maxExp bounds the binary exponent of results computed with bigfloat.
// Results estimated beyond it are taken as overflowed or underflowed.
const maxExp = 1 << 26

// expRange reports whether 2**e overflows (1), underflows (-1), or is within
// maxExp (0). NaN is in range.
func expRange(e float64) int {
	switch {
	case e > maxExp:
		return 1
	case e < -maxExp:
		return -1
	}
	return 0
}

func exp(out, in *big.Float) *big.Float {
	x, _ := in.Float64()
	switch expRange(x * math.Log2E) {
	case 1:
		return out.SetInf(false)
	case -1:
		return out.SetInt64(0)
	}
	return bigfloat.Exp(out, in)
}

// expPair computes e^x and e^-x.
func expPair(prec uint, x *big.Float) (*big.Float, *big.Float) {
	a := exp(new(big.Float).SetPrec(prec), x)
	n := new(big.Float).SetPrec(prec).Neg(x)
	return a, exp(new(big.Float).SetPrec(prec), n)
}

func ln(out, in *big.Float) *big.Float {
	switch {
	case in.Sign() < 0:
		panic(nanError("logarithm of negative operand"))
	case in.Sign() == 0:
		return out.SetInf(true)
	case in.IsInf():
		return out.SetInf(false)
	}
	return bigfloat.Log(out, in)
}

func logb(out, in *big.Float, base int64) *big.Float {
	ln(out, in)
	if out.IsInf() {
		return out
	}
	b := new(big.Float).SetPrec(out.Prec()).SetInt64(base)
	bigfloat.Log(b, b)
	return out.Quo(out, b)
}

// round rounds in toward an integer. If truncation leaves the result with
// accuracy away, the result is adjusted by step.
func round(out, in *big.Float, away big.Accuracy, step int64) *big.Float {
	if in.IsInf() {
		return out.Set(in)
	}
	i, acc := in.Int(nil)
	if acc == away {
		i.Add(i, big.NewInt(step))
	}
	return out.SetInt(i)
}

// float64fn evaluates a function without an arbitrary-precision
// implementation at float64 precision.
func float64fn(f func(float64) float64) func(out, in *big.Float) *big.Float {
	return func(out, in *big.Float) *big.Float {
		x, _ := in.Float64()
		// SetFloat64 panics with big.ErrNaN for NaN results.
		return out.SetFloat64(f(x))
	}
}
