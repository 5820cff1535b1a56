package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/go-logr/logr"
	"github.com/peterh/liner"
	"github.com/pkg/errors"

	"github.com/zephyrtronium/linecalc"
)

// prompt is shown before each line of interactive input.
const prompt = "> "

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }

// session evaluates lines and writes their results.
type session struct {
	out io.Writer
	log logr.Logger

	// color enables ANSI colors: green for results, red for errors.
	color bool
	// echo prints each parse tree before its result.
	echo bool
	// dump prints the structure of each parse tree.
	dump bool
	// flat flattens parse trees before they are printed.
	flat bool
	// prec selects arbitrary-precision evaluation when non-zero.
	prec uint
	// opts are the options for parsing each line.
	opts []linecalc.ParseOption
}

// Run reads and evaluates lines until the end of input or until ctx is
// done. The end of input is not an error.
func (s *session) Run(ctx context.Context, in LineReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := in.Prompt(prompt)
		switch {
		case err == nil: // do nothing
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			// Ctrl-C discards the line but keeps the session.
			continue
		default:
			return errors.Wrap(err, "reading input")
		}
		s.Line(line)
		if h, ok := in.(historian); ok && strings.TrimSpace(line) != "" {
			h.AppendHistory(line)
		}
	}
}

// Line evaluates one line and writes its result or error. Blank lines are
// skipped. The result reports whether the line was evaluated successfully.
func (s *session) Line(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	a, err := linecalc.Parse(line, s.opts...)
	if err != nil {
		kv := []interface{}{"line", line}
		if ie, ok := err.(linecalc.InputError); ok {
			kv = append(kv, "col", ie.Pos())
		}
		s.log.V(1).Info("parse failed", append(kv, "error", err.Error())...)
		s.fail(err)
		return false
	}
	if s.flat {
		a = a.Flatten()
	}
	if s.dump {
		fmt.Fprintln(s.out, repr.String(dumpTree(a), repr.Indent("  "), repr.OmitEmpty(true)))
	}
	if s.echo {
		fmt.Fprintf(s.out, "%v : ", a)
	}
	var r string
	if s.prec != 0 {
		v, err := a.EvalPrec(s.prec)
		if err != nil {
			s.log.V(1).Info("evaluation failed", "line", line, "tree", a.String(), "prec", s.prec, "error", err.Error())
			s.fail(err)
			return false
		}
		r = formatBig(v)
	} else {
		r = linecalc.FormatResult(a.Eval())
	}
	s.log.V(1).Info("evaluated", "line", line, "tree", a.String(), "result", r)
	s.ok(r)
	return true
}

func (s *session) ok(r string) {
	if s.color {
		r = green(r)
	}
	fmt.Fprintln(s.out, r)
}

func (s *session) fail(err error) {
	msg := err.Error()
	if s.color {
		msg = red(msg)
	}
	fmt.Fprintln(s.out, msg)
}

// formatBig formats an arbitrary-precision result the way FormatResult
// formats a float64.
func formatBig(v *big.Float) string {
	if v.IsInf() {
		if v.Signbit() {
			return "-inf"
		}
		return "inf"
	}
	return v.Text('f', -1)
}

// dumpNode mirrors an operand with exported fields for printing with repr.
type dumpNode struct {
	Op    string
	Value float64
	Args  []dumpNode
}

func dumpTree(o *linecalc.Operand) dumpNode {
	if o.IsLeaf() {
		return dumpNode{Value: o.Value()}
	}
	d := dumpNode{Op: o.Operator().String()}
	for _, a := range o.Operands() {
		d.Args = append(d.Args, dumpTree(a))
	}
	return d
}
