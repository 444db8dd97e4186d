// Package mathparser evaluates arithmetic expressions like
// "3*(4+2) % 2 + ceil(π)".
//
// Expressions contain decimal numbers, the constants π (also pi or PI) and e,
// the binary operators + - * / % and **, and parentheses. The functions log2,
// log10, log, ln, sqrt (also √), exp, cosh, sinh, cos, tanh, tan, sin, floor,
// and ceil apply to a parenthesized argument, as in "sqrt(2)". log and ln are
// both the natural logarithm.
//
// Operators bind in three tiers: % and ** most tightly, then * and /, then
// + and -. Within a tier, operators group left to right, so "2**3**2" is 64.
// A leading + or - on an operand is a sign: "2*-3" is -6.
//
// Parse evaluates with float64 arithmetic. ParseBig evaluates with
// arbitrary-precision floats. Neither retains anything between calls, and
// both are safe to use concurrently.
package mathparser
