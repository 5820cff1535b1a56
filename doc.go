// Package linecalc implements a one-line floating-point calculator.
//
// The syntax is ordinary infix arithmetic on decimal numbers: "1 + 2*3" is
// seven, "(1+2)*3" is nine, and "1-2-3" is negative four. Only the four
// operators + - * / are recognized, multiplication and division bind tighter
// than addition and subtraction, and operators of equal precedence group to
// the left. A number may carry a leading minus sign, as in "1--2", but there
// are no other unary operators.
//
// Parse a line once to get an Operand tree, then evaluate it with Eval for
// float64 arithmetic or EvalPrec for arbitrary precision.
package linecalc
