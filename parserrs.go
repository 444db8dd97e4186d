package mathparser

import (
	"math/big"
	"strconv"
)

// ErrorKind classifies an error in an expression.
type ErrorKind int8

const (
	kindNone ErrorKind = iota
	// InvalidToken is an unrecognized character in the input or a token in a
	// position where an operand is required that cannot start one.
	InvalidToken
	// ExtraToken is input left over after a complete expression, or the end
	// of the input where an operand is required.
	ExtraToken
	// UnclosedBracket is an open bracket without a matching close bracket.
	UnclosedBracket
	// MissingBracket is a function name not immediately followed by an open
	// bracket.
	MissingBracket
	// ZeroDivision is a division or modulo by zero.
	ZeroDivision
)

var errorKindNames = [...]string{
	kindNone:        "None",
	InvalidToken:    "InvalidToken",
	ExtraToken:      "ExtraToken",
	UnclosedBracket: "UnclosedBracket",
	MissingBracket:  "MissingBracket",
	ZeroDivision:    "ZeroDivision",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
	return errorKindNames[k]
}

// Error is an error in an expression. It implements InputError.
type Error struct {
	// Kind is the class of the error.
	Kind ErrorKind
	// Value is the text involved in the error. For InvalidToken, it is the
	// offending character or token. For ExtraToken, it is the unused input,
	// or empty if the input ended early. For MissingBracket, it is the
	// function name. For ZeroDivision, it is the operator.
	Value string
	// Col is the rune position of the error, starting from 1.
	Col int
}

// Sentinel errors for each error kind, for use with errors.Is.
var (
	ErrInvalidToken    = &Error{Kind: InvalidToken}
	ErrExtraToken      = &Error{Kind: ExtraToken}
	ErrUnclosedBracket = &Error{Kind: UnclosedBracket}
	ErrMissingBracket  = &Error{Kind: MissingBracket}
	ErrZeroDivision    = &Error{Kind: ZeroDivision}
)

func (err *Error) Error() string {
	switch err.Kind {
	case InvalidToken:
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Value))
	case ExtraToken:
		if err.Value == "" {
			return errpos(err.Col, "unexpected end of expression")
		}
		return errpos(err.Col, "extra input "+strconv.Quote(err.Value))
	case UnclosedBracket:
		return errpos(err.Col, "open bracket with no close bracket")
	case MissingBracket:
		return errpos(err.Col, "function "+err.Value+" must be followed by an open bracket")
	case ZeroDivision:
		if err.Value == "%" {
			return errpos(err.Col, "modulo by zero")
		}
		return errpos(err.Col, "division by zero")
	default:
		return errpos(err.Col, err.Kind.String()+" "+strconv.Quote(err.Value))
	}
}

func (err *Error) Pos() int {
	return err.Col
}

// Is reports whether target is an *Error of the same kind. If target has a
// non-empty Value, the values must also match. Positions are not compared, so
// the sentinel errors match any error of their kind.
func (err *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == err.Kind && (t.Value == "" || t.Value == err.Value)
}

// DomainError is an error returned from arbitrary-precision evaluation when an
// operation's result is not a number, e.g. the square root of a negative
// number. DomainError unwraps to big.ErrNaN. It implements InputError.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Func is the operator or function name.
	Func string
	// Col is the position of the operator or function.
	Col int
	// Reason describes the failure, if known.
	Reason string
	// NaN is the underlying error from package big.
	NaN big.ErrNaN
}

func (err *DomainError) Error() string {
	r := "outside domain of " + err.Func
	if err.X != nil {
		r = err.X.String() + " " + r
	}
	if err.Reason != "" {
		r += " (" + err.Reason + ")"
	}
	return errpos(err.Col, r)
}

func (err *DomainError) Pos() int {
	return err.Col
}

func (err *DomainError) Unwrap() error {
	return err.NaN
}

// nanError is a panic value for an argument outside a function's domain. It
// unwraps to big.ErrNaN.
type nanError string

func (err nanError) Error() string {
	return string(err)
}

func (err nanError) Unwrap() error {
	return big.ErrNaN{}
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*Error)(nil)
	_ InputError = (*DomainError)(nil)
)
