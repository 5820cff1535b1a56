package linecalc

import (
	"math"
	"math/big"
	"strconv"
)

// Eval evaluates the operand with float64 arithmetic. Operations fold their
// operands from left to right. Division by zero is not an error; it gives
// an infinity with the sign of the quotient, or NaN for 0/0.
func (o *Operand) Eval() float64 {
	if o.op == OpNone {
		return o.val
	}
	r := o.args[0].Eval()
	for _, a := range o.args[1:] {
		r = o.op.apply(r, a.Eval())
	}
	return r
}

// EvalPrec evaluates the operand with arbitrary-precision arithmetic at prec
// bits of mantissa. If prec is 0, the precision is 64. Leaves produced by
// Parse are read from their decimal text and rounded to prec bits, so "0.1"
// is closer to a tenth than any float64. Leaves made by Float are rounded
// from their float64 values, which is exact when prec is at least 53.
//
// Results that big.Float cannot represent, i.e. NaN from 0/0, Inf/Inf,
// Inf-Inf, or 0*Inf, are reported as *DomainError. The result is nil if
// there is an error.
func (o *Operand) EvalPrec(prec uint) (*big.Float, error) {
	if prec == 0 {
		prec = 64
	}
	r := new(big.Float).SetPrec(prec)
	if err := o.evalbig(r); err != nil {
		return nil, err
	}
	return r, nil
}

// evalbig sets r to the value of o. r's precision is used for all
// intermediate results.
func (o *Operand) evalbig(r *big.Float) error {
	if o.op == OpNone {
		if math.IsNaN(o.val) {
			return &DomainError{Op: OpNone, X: o.val}
		}
		if o.lit != "" {
			if _, _, err := r.Parse(o.lit, 10); err != nil {
				// The literal pattern admits only valid syntax.
				panic("linecalc: bad literal " + strconv.Quote(o.lit) + ": " + err.Error())
			}
			return nil
		}
		r.SetFloat64(o.val)
		return nil
	}
	if err := o.args[0].evalbig(r); err != nil {
		return err
	}
	t := new(big.Float).SetPrec(r.Prec())
	for _, a := range o.args[1:] {
		if err := a.evalbig(t); err != nil {
			return err
		}
		// Guard against operations with NaN results, which big.Float
		// signals by panicking.
		switch o.op {
		case OpAdd:
			if r.IsInf() && t.IsInf() && r.Signbit() != t.Signbit() {
				return domain(o.op, r, t)
			}
			r.Add(r, t)
		case OpSub:
			if r.IsInf() && t.IsInf() && r.Signbit() == t.Signbit() {
				return domain(o.op, r, t)
			}
			r.Sub(r, t)
		case OpMul:
			if r.IsInf() && t.Sign() == 0 || r.Sign() == 0 && t.IsInf() {
				return domain(o.op, r, t)
			}
			r.Mul(r, t)
		case OpDiv:
			if r.Sign() == 0 && t.Sign() == 0 || r.IsInf() && t.IsInf() {
				return domain(o.op, r, t)
			}
			r.Quo(r, t)
		default:
			panic("linecalc: invalid operator " + o.op.String())
		}
	}
	return nil
}

func domain(op Operator, x, y *big.Float) error {
	fx, _ := x.Float64()
	fy, _ := y.Float64()
	return &DomainError{Op: op, X: fx, Y: fy}
}

// Eval is a shortcut to parse a line and evaluate it with float64
// arithmetic.
func Eval(line string, opts ...ParseOption) (float64, error) {
	a, err := Parse(line, opts...)
	if err != nil {
		return 0, err
	}
	return a.Eval(), nil
}

// FormatResult formats a result for display. Infinities are "inf" and
// "-inf", NaN is "NaN", and finite values are written in decimal without an
// exponent using the fewest digits that represent v exactly.
func FormatResult(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "NaN"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// DomainError is an error indicating an arbitrary-precision operation whose
// result is not a number.
type DomainError struct {
	// Op is the operator that failed, or OpNone if a leaf was NaN.
	Op Operator
	// X and Y are the operands, rounded to float64. For a NaN leaf, X is the
	// leaf value.
	X, Y float64
}

func (err *DomainError) Error() string {
	if err.Op == OpNone {
		return "operand is not a number"
	}
	return FormatResult(err.X) + " " + err.Op.String() + " " + FormatResult(err.Y) + " is not a number"
}
