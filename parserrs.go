package linecalc

import "strconv"

// TermError is an error indicating that a number or parenthesized expression
// was expected but not found. It implements InputError.
type TermError struct {
	// Col is the position where the term was expected.
	Col int
	// Rest is the input remaining from that position.
	Rest string
}

func (err *TermError) Error() string {
	return "invalid term: " + strconv.Quote(err.Rest)
}

func (err *TermError) Pos() int {
	return err.Col
}

// OperatorError is an error indicating an operator-like symbol which is not
// one of the recognized operators. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the symbol that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return "unsupported operator " + strconv.Quote(err.Operator)
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// SuffixError is an error indicating input left over after a complete
// expression. It implements InputError.
type SuffixError struct {
	// Col is the position of the first unconsumed rune.
	Col int
	// Rest is the unconsumed input.
	Rest string
}

func (err *SuffixError) Error() string {
	return "could not parse the end of the input: " + strconv.Quote(err.Rest)
}

func (err *SuffixError) Pos() int {
	return err.Col
}

// BracketError is an error indicating an unbalanced parenthesis. It
// implements InputError.
type BracketError struct {
	// Col is the position of the unbalanced bracket.
	Col int
	// Left is the open bracket with no close bracket, or empty.
	Left string
	// Right is the close bracket with no open bracket, or empty.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return "close bracket " + err.Right + " with no open bracket"
	}
	return "open bracket " + err.Left + " with no close bracket"
}

func (err *BracketError) Pos() int {
	return err.Col
}

// DepthError is an error indicating an expression nested more deeply than
// the parser allows. It implements InputError.
type DepthError struct {
	// Col is the position at which the limit was exceeded.
	Col int
	// Max is the nesting limit.
	Max int
}

func (err *DepthError) Error() string {
	return "expression nested deeper than " + strconv.Itoa(err.Max) + " levels"
}

func (err *DepthError) Pos() int {
	return err.Col
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune column at which the error was detected.
	Pos() int
}

var (
	_ InputError = (*TermError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*SuffixError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*DepthError)(nil)
)
