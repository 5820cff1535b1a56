package linecalc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Expr = num | Add | Sub | Mul | Div | '(' Expr ')'
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// num = '-'? digit+ ('.' digit+)?

// DefaultMaxDepth is the parenthesis nesting limit used when no MaxDepth
// option is given.
const DefaultMaxDepth = 1000

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// maxdepth is the parenthesis nesting limit, or non-positive for none.
	maxdepth int
	// depth is the current parenthesis nesting.
	depth int
}

func defaultctx() parsectx {
	return parsectx{maxdepth: DefaultMaxDepth}
}

type depthopt int

// MaxDepth limits the nesting depth of parentheses. Deeper input is rejected
// with a *DepthError. With n <= 0, nesting is unlimited, which allows long
// enough input to exhaust the stack.
func MaxDepth(n int) ParseOption {
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	return p
}

// ParsingPreset combines parsing options so they can be reused for many calls
// to Parse. A preset panics when it would change any option from the default,
// but it is safe to apply other options after a preset.
func ParsingPreset(opts ...ParseOption) ParseOption {
	p := defaultctx()
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if p != defaultctx() {
		panic("linecalc: preset applied to non-default parse config")
	}
	p.maxdepth = o.maxdepth
	return p
}

// exprprec is the precedence bound for parsing an entire subexpression. It is
// looser than that of every operator.
const exprprec = 100

// Parse parses a single line of input. The line should not contain its
// terminating newline. Every error Parse returns implements InputError.
func Parse(line string, opts ...ParseOption) (*Operand, error) {
	p := defaultctx()
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, c, err := parseexpr(newCursor(line), &p, exprprec)
	if err != nil {
		return nil, err
	}
	c = c.spaces()
	if !c.eof() {
		return nil, leftover(c)
	}
	return n, nil
}

// parseexpr parses a sequence of terms joined by operators, consuming only
// operators with precedence strictly below maxprec. Operators of equal
// precedence are attached at the same level, which makes them group to the
// left.
func parseexpr(c cursor, p *parsectx, maxprec int) (*Operand, cursor, error) {
	a, c, err := parseterm(c, p)
	if err != nil {
		return nil, c, err
	}
	for {
		c = c.spaces()
		r, ok := c.peek()
		if !ok {
			return a, c, nil
		}
		op := OperatorFor(r)
		if op == OpNone || op.Precedence() >= maxprec {
			// Either the end of this expression or an operator belonging to
			// an enclosing one. Leave it for the caller.
			return a, c, nil
		}
		c, _ = c.consume(r)
		b, rest, err := parseexpr(c.spaces(), p, op.Precedence())
		if err != nil {
			return nil, rest, err
		}
		a, c = Node(op, a, b), rest
	}
}

// parseterm parses a number or a parenthesized expression.
func parseterm(c cursor, p *parsectx) (*Operand, cursor, error) {
	c = c.spaces()
	if in, ok := c.consume('('); ok {
		if p.maxdepth > 0 && p.depth >= p.maxdepth {
			return nil, c, &DepthError{Col: c.col, Max: p.maxdepth}
		}
		p.depth++
		n, end, err := parseexpr(in, p, exprprec)
		p.depth--
		if err != nil {
			return nil, end, err
		}
		end = end.spaces()
		out, ok := end.consume(')')
		if !ok {
			return nil, end, unclosed(c, end)
		}
		return n, out, nil
	}
	if f, rest, ok := c.float(); ok {
		return literal(f, c.rest[:len(c.rest)-len(rest.rest)]), rest, nil
	}
	return nil, c, &TermError{Col: c.col, Rest: c.rest}
}

// unclosed returns an error appropriate for a parenthesized expression
// beginning at open whose contents ended at end without a close bracket.
func unclosed(open, end cursor) error {
	r, ok := end.peek()
	switch {
	case !ok:
		return &BracketError{Col: open.col, Left: "("}
	case operatorlike(r):
		return &OperatorError{Col: end.col, Operator: string(r)}
	default:
		return &TermError{Col: open.col, Rest: open.rest}
	}
}

// leftover returns an error appropriate for non-empty input remaining after a
// complete expression.
func leftover(c cursor) error {
	r, _ := c.peek()
	switch {
	case r == ')':
		return &BracketError{Col: c.col, Right: ")"}
	case operatorlike(r):
		return &OperatorError{Col: c.col, Operator: string(r)}
	default:
		return &SuffixError{Col: c.col, Rest: c.rest}
	}
}

// operatorlike returns whether r looks like an operator in a position where
// an operator is expected. Recognized operators are operatorlike. Invalid
// UTF-8 is not.
func operatorlike(r rune) bool {
	if r == utf8.RuneError {
		return false
	}
	return unicode.IsSymbol(r) || strings.ContainsRune(Operators+`%!&|#@\`, r)
}
