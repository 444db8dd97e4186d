package mathparser

import "math"

// Expr := Low
// Low := High { ('+' | '-') High }
// High := Top { ('*' | '/') Top }
// Top := Unary { ('%' | '**') Unary }
// Unary := funcname '(' Expr ')' | Bracketed
// Bracketed := '(' Expr ')' | Signed
// Signed := ('+' | '-') Bracketed | num
//
// Every binary operator is left-associative, including **.

// arith is the arithmetic the parser evaluates with.
type arith[T any] interface {
	// number returns the value of a number token.
	number(tok Token) (T, error)
	// binary applies the operator of tok to x and y.
	binary(tok Token, x, y T) (T, error)
	// call applies the function of tok to x.
	call(tok Token, x T) (T, error)
	// negate returns -x.
	negate(x T) T
	// isZero reports whether x is exactly zero.
	isZero(x T) bool
}

// tiers lists the binary operator token kinds from least to most binding.
var tiers = [...]TokenKind{TokenBinaryOpLow, TokenBinaryOpHigh, TokenBinaryOpTop}

type parser[T any] struct {
	toks []Token
	// pos is the index of the next token to consume.
	pos int
	// end is the column just past the end of the input.
	end int
	ar  arith[T]
}

// evaluate parses and evaluates a complete token sequence.
func evaluate[T any](toks []Token, end int, ar arith[T]) (T, error) {
	p := parser[T]{toks: toks, end: end, ar: ar}
	x, err := p.expr()
	if err != nil {
		var zero T
		return zero, err
	}
	if tok, ok := p.peek(); ok {
		var zero T
		return zero, &Error{Kind: ExtraToken, Value: tok.Text, Col: tok.Col}
	}
	return x, nil
}

// peek returns the next token without consuming it. The second result is false
// at the end of the tokens.
func (p *parser[T]) peek() (Token, bool) {
	if p.pos >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.pos], true
}

// eof returns an error for an operand missing at the end of the input.
func (p *parser[T]) eof() error {
	return &Error{Kind: ExtraToken, Col: p.end}
}

func (p *parser[T]) expr() (T, error) {
	return p.binary(0)
}

// binary parses a sequence of operands separated by operators of tier level,
// folding them from left to right.
func (p *parser[T]) binary(level int) (T, error) {
	if level >= len(tiers) {
		return p.unary()
	}
	x, err := p.binary(level + 1)
	if err != nil {
		return x, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != tiers[level] {
			return x, nil
		}
		p.pos++
		y, err := p.binary(level + 1)
		if err != nil {
			return x, err
		}
		if (tok.Op == OpDivide || tok.Op == OpModulo) && p.ar.isZero(y) {
			return x, &Error{Kind: ZeroDivision, Value: tok.Text, Col: tok.Col}
		}
		x, err = p.ar.binary(tok, x, y)
		if err != nil {
			return x, err
		}
	}
}

func (p *parser[T]) unary() (T, error) {
	tok, ok := p.peek()
	if !ok {
		var zero T
		return zero, p.eof()
	}
	if tok.Kind != TokenUnaryOp {
		return p.bracketed()
	}
	p.pos++
	if open, ok := p.peek(); !ok || open.Kind != TokenOpenBracket {
		var zero T
		return zero, &Error{Kind: MissingBracket, Value: tok.Text, Col: tok.Col}
	}
	x, err := p.bracketed()
	if err != nil {
		return x, err
	}
	return p.ar.call(tok, x)
}

func (p *parser[T]) bracketed() (T, error) {
	tok, ok := p.peek()
	if !ok {
		var zero T
		return zero, p.eof()
	}
	if tok.Kind != TokenOpenBracket {
		return p.signed()
	}
	p.pos++
	x, err := p.expr()
	if err != nil {
		return x, err
	}
	if end, ok := p.peek(); !ok || end.Kind != TokenCloseBracket {
		return x, &Error{Kind: UnclosedBracket, Value: tok.Text, Col: tok.Col}
	}
	p.pos++
	return x, nil
}

func (p *parser[T]) signed() (T, error) {
	var zero T
	tok, ok := p.peek()
	if !ok {
		return zero, p.eof()
	}
	switch tok.Kind {
	case TokenNumber:
		p.pos++
		return p.ar.number(tok)
	case TokenBinaryOpLow:
		p.pos++
		x, err := p.bracketed()
		if err != nil {
			return x, err
		}
		if tok.Op == OpSubtract {
			x = p.ar.negate(x)
		}
		return x, nil
	default:
		return zero, &Error{Kind: InvalidToken, Value: tok.Text, Col: tok.Col}
	}
}

// floats is float64 arithmetic.
type floats struct{}

func (floats) number(tok Token) (float64, error) {
	return tok.Value, nil
}

func (floats) binary(tok Token, x, y float64) (float64, error) {
	switch tok.Op {
	case OpAdd:
		return x + y, nil
	case OpSubtract:
		return x - y, nil
	case OpMultiply:
		return x * y, nil
	case OpDivide:
		return x / y, nil
	case OpModulo:
		return math.Mod(x, y), nil
	case OpPower:
		return math.Pow(x, y), nil
	default:
		panic("mathparser: invalid operator " + tok.String())
	}
}

func (floats) call(tok Token, x float64) (float64, error) {
	return tok.Func.Float64(x), nil
}

func (floats) negate(x float64) float64 {
	return -x
}

func (floats) isZero(x float64) bool {
	return x == 0
}

// Parse evaluates an expression. The result may be infinite or NaN, e.g. for
// sqrt(-1), but division and modulo by zero are errors. Every error from Parse
// is an *Error.
func Parse(expression string, opts ...Option) (float64, error) {
	toks, end, err := tokenize(expression, configure(opts))
	if err != nil {
		return 0, err
	}
	return evaluate[float64](toks, end, floats{})
}
