package mathparser_test

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/zephyrtronium/mathparser"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "1", 1},
		{"real", "2.5", 2.5},
		{"spaces", " 1 +\t2 ", 3},
		{"add", "1+2", 3},
		{"sub", "3-4", -1},
		{"add-assoc", "4+5+6", 4 + 5 + 6},
		{"sub-assoc", "4-5-6", 4 - 5 - 6},
		{"mul-assoc", "4*5*6", 4 * 5 * 6},
		{"div-assoc", "4/5/6", 4.0 / 5.0 / 6.0},
		{"mod-assoc", "100%7%4", 2},
		{"pow", "2**2", 4},
		{"pow-assoc", "2**3**2", 64},
		{"high-over-low", "1+2*3", 7},
		{"high-over-low-left", "2*3+1", 7},
		{"top-over-high", "2*3**2", 18},
		{"top-over-high-left", "3**2*2", 18},
		{"mod-over-mul", "3*(4+2)%2", 0},
		{"mod-over-div", "7/5%3", 3.5},
		{"brackets", "(1+2)*3", 9},
		{"nested", "((2))", 2},
		{"neg", "-3", -3},
		{"plus", "+3", 3},
		{"neg-neg", "--3", 3},
		{"neg-bracket", "-(1+2)", -3},
		{"neg-rhs", "2*-3", -6},
		{"neg-pow", "-2**2", 4},
		{"pow-neg", "2**-1", 0.5},
		{"sub-neg", "1--1", 2},
		{"mod-sign", "-7%3", -1},
		{"pi", "π", math.Pi},
		{"pi-ascii", "pi+PI", 2 * math.Pi},
		{"e", "e", math.E},
		{"log2", "log2(8)", 3},
		{"log10", "log10(1000)", 3},
		{"log", "log(e)", 1},
		{"ln", "ln(e**2)", 2},
		{"sqrt", "sqrt(16)", 4},
		{"√", "√(16)", 4},
		{"exp", "exp(0)", 1},
		{"cosh", "cosh(0)", 1},
		{"sinh", "sinh(0)", 0},
		{"cos", "cos(π)", -1},
		{"tanh", "tanh(0)", 0},
		{"tan", "tan(0)", 0},
		{"sin", "sin(0)", 0},
		{"floor", "floor(2.5)", 2},
		{"floor-neg", "floor(-2.5)", -3},
		{"ceil", "ceil(π)", 4},
		{"func-expr", "sqrt(9+16)", 5},
		{"func-nested", "floor(sqrt(log2(256)*2))", 4},
		{"func-pow", "sqrt(4)**3", 8},
		{"mul-zero", "3*0", 0},
		{"pow-zero", "3**0", 1},
		{"zero-pow", "0**3", 0},
		{"full", "3*(4+2)% 2+ceil(π)", 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := mathparser.Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if math.Abs(r-c.r) > 1e-12 {
				t.Errorf("%q: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestParseNonFinite(t *testing.T) {
	cases := []struct {
		name string
		src  string
		inf  int
	}{
		{"sqrt-neg", "sqrt(-1)", 2},
		{"log-zero", "ln(0)", -1},
		{"log-neg", "log(-1)", 2},
		{"overflow", "10**400", 1},
		{"neg-overflow", "-(10**400)", -1},
		{"pow-nan", "(-8)**(1/3)", 2},
		{"zero-neg-pow", "0**-1", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := mathparser.Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			switch c.inf {
			case 2:
				if !math.IsNaN(r) {
					t.Errorf("%q: want NaN, got %g", c.src, r)
				}
			default:
				if !math.IsInf(r, c.inf) {
					t.Errorf("%q: want %d inf, got %g", c.src, c.inf, r)
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  mathparser.Error
	}{
		{"empty", "", mathparser.Error{Kind: mathparser.ExtraToken, Col: 1}},
		{"blank", "   ", mathparser.Error{Kind: mathparser.ExtraToken, Col: 4}},
		{"invalid", "3*4x", mathparser.Error{Kind: mathparser.InvalidToken, Value: "x", Col: 4}},
		{"literal-junk", "8x", mathparser.Error{Kind: mathparser.ExtraToken, Value: "x", Col: 2}},
		{"missing-bracket", "3*√4+2", mathparser.Error{Kind: mathparser.MissingBracket, Value: "√", Col: 3}},
		{"missing-bracket-end", "1+sin", mathparser.Error{Kind: mathparser.MissingBracket, Value: "sin", Col: 3}},
		{"func-func", "sqrt sqrt(4)", mathparser.Error{Kind: mathparser.MissingBracket, Value: "sqrt", Col: 1}},
		{"unclosed", "3*(4+2", mathparser.Error{Kind: mathparser.UnclosedBracket, Value: "(", Col: 3}},
		{"unclosed-nested", "((1)", mathparser.Error{Kind: mathparser.UnclosedBracket, Value: "(", Col: 1}},
		{"unclosed-juxtaposed", "(1 2)", mathparser.Error{Kind: mathparser.UnclosedBracket, Value: "(", Col: 1}},
		{"unclosed-func", "sqrt(4", mathparser.Error{Kind: mathparser.UnclosedBracket, Value: "(", Col: 5}},
		{"trailing-op", "3+4-", mathparser.Error{Kind: mathparser.ExtraToken, Col: 5}},
		{"trailing-sign", "3*-", mathparser.Error{Kind: mathparser.ExtraToken, Col: 4}},
		{"open-only", "(", mathparser.Error{Kind: mathparser.ExtraToken, Col: 2}},
		{"extra-number", "1 2", mathparser.Error{Kind: mathparser.ExtraToken, Value: "2", Col: 3}},
		{"extra-close", "1)", mathparser.Error{Kind: mathparser.ExtraToken, Value: ")", Col: 2}},
		{"extra-func", "2 sin(1)", mathparser.Error{Kind: mathparser.ExtraToken, Value: "sin", Col: 3}},
		{"leading-op", "*2", mathparser.Error{Kind: mathparser.InvalidToken, Value: "*", Col: 1}},
		{"double-op", "2*/3", mathparser.Error{Kind: mathparser.InvalidToken, Value: "/", Col: 3}},
		{"empty-brackets", "()", mathparser.Error{Kind: mathparser.InvalidToken, Value: ")", Col: 2}},
		{"close-first", ")", mathparser.Error{Kind: mathparser.InvalidToken, Value: ")", Col: 1}},
		{"sign-func", "-sqrt(4)", mathparser.Error{Kind: mathparser.InvalidToken, Value: "sqrt", Col: 2}},
		{"div-zero", "3/0", mathparser.Error{Kind: mathparser.ZeroDivision, Value: "/", Col: 2}},
		{"mod-zero", "3%0", mathparser.Error{Kind: mathparser.ZeroDivision, Value: "%", Col: 2}},
		{"div-zero-expr", "1/(2-2)", mathparser.Error{Kind: mathparser.ZeroDivision, Value: "/", Col: 2}},
		{"div-neg-zero", "1/-0", mathparser.Error{Kind: mathparser.ZeroDivision, Value: "/", Col: 2}},
		{"mod-zero-func", "5%sin(0)", mathparser.Error{Kind: mathparser.ZeroDivision, Value: "%", Col: 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := mathparser.Parse(c.src)
			if err == nil {
				t.Fatalf("%q: no error; got %g", c.src, r)
			}
			var e *mathparser.Error
			if !errors.As(err, &e) {
				t.Fatalf("%q: wrong error type %T: %v", c.src, err, err)
			}
			if *e != c.err {
				t.Errorf("%q: want %+v, got %+v", c.src, c.err, *e)
			}
			if r != 0 {
				t.Errorf("%q: nonzero result %g with error", c.src, r)
			}
		})
	}
}

func TestParseErrorSentinels(t *testing.T) {
	cases := []struct {
		src string
		err error
	}{
		{"3*4x", mathparser.ErrInvalidToken},
		{"3*4x", &mathparser.Error{Kind: mathparser.InvalidToken, Value: "x"}},
		{"3+4-", mathparser.ErrExtraToken},
		{"3*(4+2", mathparser.ErrUnclosedBracket},
		{"3*√4+2", mathparser.ErrMissingBracket},
		{"3/0", mathparser.ErrZeroDivision},
		{"3%0", mathparser.ErrZeroDivision},
	}
	for _, c := range cases {
		_, err := mathparser.Parse(c.src)
		if !errors.Is(err, c.err) {
			t.Errorf("%q: want %v, got %v", c.src, c.err, err)
		}
	}
	_, err := mathparser.Parse("3*4y")
	if errors.Is(err, &mathparser.Error{Kind: mathparser.InvalidToken, Value: "x"}) {
		t.Errorf("%v matched a different value", err)
	}
	if errors.Is(err, mathparser.ErrExtraToken) {
		t.Errorf("%v matched a different kind", err)
	}
}

func TestParseConcurrent(t *testing.T) {
	srcs := []string{"3*(4+2)% 2+ceil(π)", "2**3**2", "sqrt(16)/4", "1-2-3"}
	want := []float64{4, 64, 1, -4}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				j := k % len(srcs)
				r, err := mathparser.Parse(srcs[j])
				if err != nil || r != want[j] {
					t.Errorf("%q: want %g, got %g, %v", srcs[j], want[j], r, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestParseDeepNesting(t *testing.T) {
	const depth = 10000
	b := make([]byte, 0, 2*depth+1)
	for i := 0; i < depth; i++ {
		b = append(b, '(')
	}
	b = append(b, '7')
	for i := 0; i < depth; i++ {
		b = append(b, ')')
	}
	r, err := mathparser.Parse(string(b))
	if err != nil {
		t.Fatal(err)
	}
	if r != 7 {
		t.Errorf("want 7, got %g", r)
	}
}

func TestParseWide(t *testing.T) {
	r, err := mathparser.Parse("３＊（４＋２）", mathparser.FoldWidth())
	if err != nil {
		t.Fatal(err)
	}
	if r != 18 {
		t.Errorf("want 18, got %g", r)
	}
}
