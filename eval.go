package mathparser

import (
	"errors"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// bigs is arbitrary-precision arithmetic. Operations whose results would be
// NaN return *DomainError.
type bigs struct {
	prec uint
}

func (b bigs) new() *big.Float {
	return new(big.Float).SetPrec(b.prec)
}

func (b bigs) number(tok Token) (*big.Float, error) {
	switch tok.Text {
	case "π", "pi", "PI":
		return bigfloat.Pi(b.new()), nil
	case "e":
		return bigfloat.Exp(b.new(), big.NewFloat(1)), nil
	}
	r, _, err := b.new().Parse(tok.Text, 10)
	if err != nil {
		// The lexer only produces decimal literals, so this is unreachable
		// for tokens from Tokenize.
		return nil, &Error{Kind: InvalidToken, Value: tok.Text, Col: tok.Col}
	}
	return r, nil
}

func (b bigs) binary(tok Token, x, y *big.Float) (r *big.Float, err error) {
	defer catchNaN(tok, x, &err)
	r = b.new()
	switch tok.Op {
	case OpAdd:
		return r.Add(x, y), nil
	case OpSubtract:
		return r.Sub(x, y), nil
	case OpMultiply:
		return r.Mul(x, y), nil
	case OpDivide:
		return r.Quo(x, y), nil
	case OpModulo:
		return b.mod(r, x, y), nil
	case OpPower:
		return b.pow(tok, r, x, y)
	default:
		panic("mathparser: invalid operator " + tok.String())
	}
}

// mod sets r to x - y*trunc(x/y), which has the sign of x.
func (b bigs) mod(r, x, y *big.Float) *big.Float {
	switch {
	case x.IsInf():
		panic(nanError("modulo of infinite operand"))
	case y.IsInf():
		return r.Set(x)
	}
	q := b.new().Quo(x, y)
	i, _ := q.Int(nil)
	q.SetInt(i)
	q.Mul(q, y)
	return r.Sub(x, q)
}

func (b bigs) pow(tok Token, r, x, y *big.Float) (*big.Float, error) {
	if x.IsInf() || y.IsInf() {
		// bigfloat only handles finite values.
		xf, _ := x.Float64()
		yf, _ := y.Float64()
		return r.SetFloat64(math.Pow(xf, yf)), nil
	}
	switch {
	case y.Sign() == 0:
		return r.SetInt64(1), nil
	case x.Sign() == 0:
		if y.Sign() < 0 {
			return r.SetInf(false), nil
		}
		return r.SetInt64(0), nil
	case x.Sign() < 0 && !y.IsInt():
		return nil, &DomainError{X: x, Func: tok.Text, Col: tok.Col, Reason: "negative base with fractional exponent"}
	}
	// For a negative base with integer exponent, compute |x|**y, then fix
	// the sign.
	a, neg := x, false
	if x.Sign() < 0 {
		a = b.new().Abs(x)
		i, _ := y.Int(nil)
		neg = i.Bit(0) == 1
	}
	switch powRange(a, y) {
	case 1:
		r.SetInf(false)
	case -1:
		r.SetInt64(0)
	default:
		r = bigfloat.Pow(r, a, y)
		r.SetPrec(b.prec)
	}
	if neg {
		r.Neg(r)
	}
	return r, nil
}

// powRange estimates the binary exponent of a**y for finite positive a and
// reports it as for expRange.
func powRange(a, y *big.Float) int {
	var mant big.Float
	e := a.MantExp(&mant)
	m, _ := mant.Float64()
	yf, _ := y.Float64()
	return expRange(yf * (float64(e) + math.Log2(m)))
}

func (b bigs) call(tok Token, x *big.Float) (r *big.Float, err error) {
	defer catchNaN(tok, x, &err)
	return tok.Func.Big(b.new(), x), nil
}

func (b bigs) negate(x *big.Float) *big.Float {
	return b.new().Neg(x)
}

func (b bigs) isZero(x *big.Float) bool {
	return x.Sign() == 0
}

// catchNaN recovers a panic with an error unwrapping to big.ErrNaN into a
// *DomainError for the operator or function of tok. Other panics are
// propagated.
func catchNaN(tok Token, x *big.Float, err *error) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(error)
	var nan big.ErrNaN
	if !ok || !errors.As(e, &nan) {
		panic(r)
	}
	*err = &DomainError{X: x, Func: tok.Text, Col: tok.Col, Reason: e.Error(), NaN: nan}
}

// ParseBig evaluates an expression with arbitrary precision. The precision is
// 64 bits unless set with the Prec option. Constants, exp, logarithms,
// hyperbolic functions, and powers are computed to the full precision; sin,
// cos, and tan are computed at float64 precision.
//
// ParseBig reports the same errors as Parse for the same input. Additionally,
// where Parse would produce NaN, ParseBig returns a *DomainError.
func ParseBig(expression string, opts ...Option) (*big.Float, error) {
	cfg := configure(opts)
	toks, end, err := tokenize(expression, cfg)
	if err != nil {
		return nil, err
	}
	prec := cfg.prec
	if prec == 0 {
		prec = defaultPrec
	}
	return evaluate[*big.Float](toks, end, bigs{prec: prec})
}
