package linecalc

import (
	"math"
	"strconv"
	"strings"
)

// Operator is a binary arithmetic operator.
type Operator int8

const (
	// OpNone is the operator of a leaf operand.
	OpNone Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

// Operators contains the runes which are parsed as operators.
const Operators = "+-*/"

// OperatorFor gets the operator spelled by r. If there is no such operator,
// the result is OpNone.
func OperatorFor(r rune) Operator {
	switch r {
	case '+':
		return OpAdd
	case '-':
		return OpSub
	case '*':
		return OpMul
	case '/':
		return OpDiv
	default:
		return OpNone
	}
}

// Precedence returns the operator's precedence rank. Lower ranks bind more
// tightly. OpNone has rank 0.
func (op Operator) Precedence() int {
	switch op {
	case OpMul, OpDiv:
		return 1
	case OpAdd, OpSub:
		return 2
	default:
		return 0
	}
}

func (op Operator) String() string {
	switch op {
	case OpNone:
		return "none"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
}

// apply computes a op b.
func (op Operator) apply(a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	default:
		panic("linecalc: apply with invalid operator " + op.String())
	}
}

// Operand is a node in the syntax tree of an expression. It is either a leaf
// holding a number or an operator applied to two or more operands, folded
// left to right. Operands are immutable once created.
type Operand struct {
	// op is the operator applied to args, or OpNone for a leaf.
	op Operator
	// val is the value of a leaf.
	val float64
	// lit is the text a parsed leaf was read from, or empty for leaves made
	// by Float.
	lit string
	// args holds at least two operands when op is not OpNone.
	args []*Operand
}

// Float creates a leaf operand.
func Float(v float64) *Operand {
	return &Operand{val: v}
}

// literal creates a leaf from a number read from input.
func literal(v float64, text string) *Operand {
	return &Operand{val: v, lit: text}
}

// Node creates an operand applying op to args. Panics if op is not one of
// OpAdd, OpSub, OpMul, or OpDiv, if there are fewer than two args, or if any
// arg is nil.
func Node(op Operator, args ...*Operand) *Operand {
	if op.Precedence() == 0 {
		panic("linecalc: Node with invalid operator " + op.String())
	}
	if len(args) < 2 {
		panic("linecalc: Node with " + strconv.Itoa(len(args)) + " operands")
	}
	for _, a := range args {
		if a == nil {
			panic("linecalc: Node with nil operand")
		}
	}
	return &Operand{op: op, args: append([]*Operand(nil), args...)}
}

// IsLeaf returns whether o is a number rather than an operation.
func (o *Operand) IsLeaf() bool {
	return o.op == OpNone
}

// Value returns the number held by a leaf. It is 0 for operations.
func (o *Operand) Value() float64 {
	return o.val
}

// Operator returns the operator of an operation, or OpNone for a leaf.
func (o *Operand) Operator() Operator {
	return o.op
}

// Operands returns a copy of the children of an operation. The result is nil
// for a leaf.
func (o *Operand) Operands() []*Operand {
	if o.args == nil {
		return nil
	}
	return append([]*Operand(nil), o.args...)
}

// Equal reports whether o and p are structurally identical. Leaves compare
// their values bitwise, so -0 differs from 0 and NaN equals NaN.
func (o *Operand) Equal(p *Operand) bool {
	if o == nil || p == nil {
		return o == p
	}
	if o.op != p.op {
		return false
	}
	if o.op == OpNone {
		return math.Float64bits(o.val) == math.Float64bits(p.val)
	}
	if len(o.args) != len(p.args) {
		return false
	}
	for i, a := range o.args {
		if !a.Equal(p.args[i]) {
			return false
		}
	}
	return true
}

// Flatten returns a tree with the same value in which each left-nested
// chain of one operator is collapsed into a single operation, so that
// ((1 - 2) - 3) becomes (1 - 2 - 3). The receiver is not modified.
func (o *Operand) Flatten() *Operand {
	if o.op == OpNone {
		return o
	}
	args := make([]*Operand, 0, len(o.args))
	first := o.args[0].Flatten()
	if first.op == o.op {
		// The first operand is the running left fold, so its operands can
		// take its place without changing the order of evaluation.
		args = append(args, first.args...)
	} else {
		args = append(args, first)
	}
	for _, a := range o.args[1:] {
		args = append(args, a.Flatten())
	}
	return &Operand{op: o.op, args: args}
}

// String creates a fully parenthesized representation of the operand. When
// all leaves are finite, Parse accepts the result. If additionally every
// operation has exactly two operands, the parsed tree is Equal to o.
func (o *Operand) String() string {
	var b strings.Builder
	o.fmt(&b)
	return b.String()
}

func (o *Operand) fmt(b *strings.Builder) {
	if o.op == OpNone {
		b.WriteString(formatNum(o.val))
		return
	}
	b.WriteByte('(')
	defer b.WriteByte(')')
	for i, a := range o.args {
		if i > 0 {
			b.WriteByte(' ')
			b.WriteString(o.op.String())
			b.WriteByte(' ')
		}
		a.fmt(b)
	}
}

// formatNum formats a leaf value in a way that the number pattern accepts.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
