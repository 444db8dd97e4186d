package mathparser

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a lexical unit of an expression.
type Token struct {
	// Kind is the token's class.
	Kind TokenKind
	// Op is the operator of a binary operator token.
	Op Op
	// Func is the function of a unary operator token.
	Func Func
	// Value is the value of a number token.
	Value float64
	// Text is the source text of the token.
	Text string
	// Col is the 1-based rune position of the token in the source.
	Col int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Col)
}

// TokenKind is the class of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNumber is a decimal literal or a named constant.
	TokenNumber
	// TokenBinaryOpLow is + or -.
	TokenBinaryOpLow
	// TokenBinaryOpHigh is * or /.
	TokenBinaryOpHigh
	// TokenBinaryOpTop is % or **.
	TokenBinaryOpTop
	// TokenUnaryOp is a function name.
	TokenUnaryOp
	// TokenOpenBracket is (.
	TokenOpenBracket
	// TokenCloseBracket is ).
	TokenCloseBracket
)

var tokenKindNames = [...]string{
	tokenNone:         "None",
	TokenNumber:       "Number",
	TokenBinaryOpLow:  "BinaryOpLow",
	TokenBinaryOpHigh: "BinaryOpHigh",
	TokenBinaryOpTop:  "BinaryOpTop",
	TokenUnaryOp:      "UnaryOp",
	TokenOpenBracket:  "OpenBracket",
	TokenCloseBracket: "CloseBracket",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Op is a binary operator.
type Op int8

const (
	opNone Op = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpPower
)

var opNames = [...]string{
	opNone:     "None",
	OpAdd:      "Add",
	OpSubtract: "Subtract",
	OpMultiply: "Multiply",
	OpDivide:   "Divide",
	OpModulo:   "Modulo",
	OpPower:    "Power",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
	return opNames[op]
}

// word is a named token: a constant or a function.
type word struct {
	text string
	tok  Token
}

// words lists every name the lexer recognizes, longest in bytes first so that
// e.g. log10 is not scanned as log followed by 10, nor exp as e followed by xp.
var words = []word{
	{"log10", Token{Kind: TokenUnaryOp, Func: FuncLog10}},
	{"floor", Token{Kind: TokenUnaryOp, Func: FuncFloor}},
	{"log2", Token{Kind: TokenUnaryOp, Func: FuncLog2}},
	{"sqrt", Token{Kind: TokenUnaryOp, Func: FuncSqrt}},
	{"cosh", Token{Kind: TokenUnaryOp, Func: FuncCosh}},
	{"sinh", Token{Kind: TokenUnaryOp, Func: FuncSinh}},
	{"tanh", Token{Kind: TokenUnaryOp, Func: FuncTanh}},
	{"ceil", Token{Kind: TokenUnaryOp, Func: FuncCeil}},
	{"log", Token{Kind: TokenUnaryOp, Func: FuncLog}},
	{"exp", Token{Kind: TokenUnaryOp, Func: FuncExp}},
	{"cos", Token{Kind: TokenUnaryOp, Func: FuncCos}},
	{"tan", Token{Kind: TokenUnaryOp, Func: FuncTan}},
	{"sin", Token{Kind: TokenUnaryOp, Func: FuncSin}},
	{"√", Token{Kind: TokenUnaryOp, Func: FuncSqrt}},
	{"ln", Token{Kind: TokenUnaryOp, Func: FuncLn}},
	{"pi", Token{Kind: TokenNumber, Value: math.Pi}},
	{"PI", Token{Kind: TokenNumber, Value: math.Pi}},
	{"π", Token{Kind: TokenNumber, Value: math.Pi}},
	{"e", Token{Kind: TokenNumber, Value: math.E}},
}

type lexer struct {
	src string
	// off is the byte offset of the next rune to scan.
	off int
	// col is the rune position of the next rune to scan, starting from 1.
	col int
	// n is the number of tokens scanned so far.
	n int
	// last is the most recently scanned token, and lastEnd is the byte
	// offset just past it.
	last    Token
	lastEnd int
}

func lex(src string) *lexer {
	return &lexer{src: src, col: 1}
}

// advance moves the scan position forward by sz bytes comprising k runes.
func (l *lexer) advance(sz, k int) {
	l.off += sz
	l.col += k
}

// next scans the next token from the input. At the end of the input, the
// result is io.EOF.
func (l *lexer) next() (Token, error) {
	for l.off < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.off:])
		if unicode.IsSpace(r) {
			l.advance(sz, 1)
			continue
		}
		tok, err := l.scan(r, sz)
		if err != nil {
			return Token{}, err
		}
		l.n++
		l.last = tok
		l.lastEnd = l.off
		return tok, nil
	}
	return Token{}, io.EOF
}

// scan scans a single non-space token starting with r, which is sz bytes.
func (l *lexer) scan(r rune, sz int) (Token, error) {
	tok := Token{Col: l.col}
	if '0' <= r && r <= '9' || r == '.' {
		if text := l.scanNum(); text != "" {
			v, err := strconv.ParseFloat(text, 64)
			if err != nil || math.IsInf(v, 0) {
				// Literals are digits only, so this can only be overflow.
				return tok, &Error{Kind: InvalidToken, Value: text, Col: tok.Col}
			}
			tok.Kind = TokenNumber
			tok.Value = v
			tok.Text = text
			return tok, nil
		}
		// A lone . is not a number; it's an invalid character.
		return tok, l.error(r)
	}
	rest := l.src[l.off:]
	for _, w := range words {
		if strings.HasPrefix(rest, w.text) {
			tok.Kind, tok.Op, tok.Func, tok.Value = w.tok.Kind, w.tok.Op, w.tok.Func, w.tok.Value
			tok.Text = w.text
			l.advance(len(w.text), utf8.RuneCountInString(w.text))
			return tok, nil
		}
	}
	switch r {
	case '+':
		tok.Kind, tok.Op = TokenBinaryOpLow, OpAdd
	case '-':
		tok.Kind, tok.Op = TokenBinaryOpLow, OpSubtract
	case '*':
		if strings.HasPrefix(rest, "**") {
			tok.Kind, tok.Op, tok.Text = TokenBinaryOpTop, OpPower, "**"
			l.advance(2, 2)
			return tok, nil
		}
		tok.Kind, tok.Op = TokenBinaryOpHigh, OpMultiply
	case '/':
		tok.Kind, tok.Op = TokenBinaryOpHigh, OpDivide
	case '%':
		tok.Kind, tok.Op = TokenBinaryOpTop, OpModulo
	case '(':
		tok.Kind = TokenOpenBracket
	case ')':
		tok.Kind = TokenCloseBracket
	default:
		return tok, l.error(r)
	}
	tok.Text = string(r)
	l.advance(sz, 1)
	return tok, nil
}

// scanNum scans a decimal literal: digits, optionally followed by a point and
// at least one more digit. The result is empty if no literal starts here.
func (l *lexer) scanNum() string {
	start := l.off
	digits := func() {
		for l.off < len(l.src) && '0' <= l.src[l.off] && l.src[l.off] <= '9' {
			l.advance(1, 1)
		}
	}
	digits()
	if l.off+1 < len(l.src) && l.src[l.off] == '.' && '0' <= l.src[l.off+1] && l.src[l.off+1] <= '9' {
		l.advance(1, 1)
		digits()
	}
	return l.src[start:l.off]
}

// error creates an error for an unrecognized rune r at the current position.
func (l *lexer) error(r rune) error {
	if l.n == 1 && l.last.Kind == TokenNumber && l.lastEnd == l.off {
		// A literal with something stuck to it and nothing before it, e.g.
		// 8x or 2^2. There is a complete operand, but no way to use the rest.
		// With anything else before it, as in 3*4x, (8x, or 8 x, the
		// character is invalid instead.
		return &Error{Kind: ExtraToken, Value: l.src[l.off:], Col: l.col}
	}
	return &Error{Kind: InvalidToken, Value: string(r), Col: l.col}
}

// Tokenize scans an expression into its tokens. An empty or blank expression
// produces no tokens and no error.
func Tokenize(expression string, opts ...Option) ([]Token, error) {
	toks, _, err := tokenize(expression, configure(opts))
	return toks, err
}

// tokenize scans all tokens in src. The second result is the column just past
// the end of the input.
func tokenize(src string, cfg config) ([]Token, int, error) {
	if cfg.fold {
		src = foldWidth(src)
	}
	l := lex(src)
	var toks []Token
	for {
		tok, err := l.next()
		if err == io.EOF {
			return toks, l.col, nil
		}
		if err != nil {
			return nil, 0, err
		}
		toks = append(toks, tok)
	}
}
