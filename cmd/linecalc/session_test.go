package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/linecalc"
)

const (
	reset   = "\x1b[0m"
	fgRed   = "\x1b[31m"
	fgGreen = "\x1b[32m"
)

func newTestSession(out io.Writer) *session {
	return &session{out: out, log: logr.Discard(), color: true}
}

func runLines(t *testing.T, s *session, input string) string {
	t.Helper()
	var out bytes.Buffer
	s.out = &out
	err := s.Run(context.Background(), newPromptReader(strings.NewReader(input), &out))
	require.NoError(t, err)
	return out.String()
}

func TestSessionOutput(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "success",
			input: "1 + 2",
			want:  []string{"> ", fgGreen + "3" + reset + "\n", "> "},
		},
		{
			name:  "syntax-error",
			input: "1 + *",
			want:  []string{"> ", fgRed + `invalid term: "*"` + reset + "\n", "> "},
		},
		{
			name:  "div-zero",
			input: "1 / 0",
			want:  []string{"> ", fgGreen + "inf" + reset + "\n", "> "},
		},
		{
			name:  "multiple-prompts",
			input: "1 + 2\n3 * 4",
			want: []string{
				"> ", fgGreen + "3" + reset + "\n",
				"> ", fgGreen + "12" + reset + "\n",
				"> ",
			},
		},
		{
			name:  "trailing-newline",
			input: "1 + 2\n",
			want:  []string{"> ", fgGreen + "3" + reset + "\n", "> "},
		},
		{
			name:  "crlf",
			input: "2*3\r\n1-2-3\r\n",
			want: []string{
				"> ", fgGreen + "6" + reset + "\n",
				"> ", fgGreen + "-4" + reset + "\n",
				"> ",
			},
		},
		{
			name:  "blank-lines",
			input: "\n   \n5",
			want:  []string{"> ", "> ", "> ", fgGreen + "5" + reset + "\n", "> "},
		},
		{
			name:  "nan",
			input: "0/0",
			want:  []string{"> ", fgGreen + "NaN" + reset + "\n", "> "},
		},
		{
			name:  "empty",
			input: "",
			want:  []string{"> "},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := runLines(t, newTestSession(nil), c.input)
			assert.Equal(t, strings.Join(c.want, ""), got)
		})
	}
}

func TestSessionNoColor(t *testing.T) {
	s := newTestSession(nil)
	s.color = false
	got := runLines(t, s, "1 + 2\n(1\n2^2")
	want := "> 3\n> open bracket ( with no close bracket\n> unsupported operator \"^\"\n> "
	assert.Equal(t, want, got)
}

func TestSessionLine(t *testing.T) {
	cases := []struct {
		name string
		s    session
		line string
		ok   bool
		want []string
	}{
		{"plain", session{}, "1+2*3", true, []string{"7\n"}},
		{"error", session{}, "1+", false, []string{`invalid term: ""` + "\n"}},
		{"blank", session{}, "  ", true, nil},
		{"echo", session{echo: true}, "1-2-3", true, []string{"((1 - 2) - 3) : -4\n"}},
		{"echo-flat", session{echo: true, flat: true}, "1-2-3", true, []string{"(1 - 2 - 3) : -4\n"}},
		{"dump", session{dump: true}, "1+2", true, []string{"dumpNode{", `Op: "+"`, "3\n"}},
		{"prec", session{prec: 128}, "1/3", true, []string{"0.33333333333333333333333333333333333333"}},
		{"prec-inf", session{prec: 64}, "-1/0", true, []string{"-inf\n"}},
		{"prec-nan", session{prec: 64}, "0/0", false, []string{"0 / 0 is not a number\n"}},
		{"depth", session{opts: []linecalc.ParseOption{linecalc.MaxDepth(1)}}, "((1))", false, []string{"nested deeper than 1"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out bytes.Buffer
			s := c.s
			s.out = &out
			s.log = logr.Discard()
			assert.Equal(t, c.ok, s.Line(c.line))
			if c.want == nil {
				assert.Empty(t, out.String())
			}
			for _, w := range c.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}

// scriptReader is a LineReader that returns canned lines and errors.
type scriptReader struct {
	lines   []string
	errs    []error
	history []string
}

func (r *scriptReader) Prompt(string) (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line, err := r.lines[0], r.errs[0]
	r.lines, r.errs = r.lines[1:], r.errs[1:]
	return line, err
}

func (r *scriptReader) AppendHistory(item string) {
	r.history = append(r.history, item)
}

func TestSessionAbortAndHistory(t *testing.T) {
	in := &scriptReader{
		lines: []string{"1+1", "", "partial", "  ", "2*2"},
		errs:  []error{nil, nil, liner.ErrPromptAborted, nil, nil},
	}
	var out bytes.Buffer
	s := &session{out: &out, log: logr.Discard()}
	require.NoError(t, s.Run(context.Background(), in))
	assert.Equal(t, "2\n4\n", out.String())
	assert.Equal(t, []string{"1+1", "2*2"}, in.history)
}

func TestSessionReadError(t *testing.T) {
	boom := errors.New("boom")
	in := &scriptReader{lines: []string{""}, errs: []error{boom}}
	s := &session{out: io.Discard, log: logr.Discard()}
	err := s.Run(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, boom, errors.Cause(err))
	assert.Contains(t, err.Error(), "reading input")
}

func TestSessionCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := &scriptReader{lines: []string{"1"}, errs: []error{nil}}
	var out bytes.Buffer
	s := &session{out: &out, log: logr.Discard()}
	err := s.Run(ctx, in)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
	assert.Len(t, in.lines, 1, "canceled session read input")
}

func TestPromptReaderWriteError(t *testing.T) {
	p := newPromptReader(strings.NewReader("1\n"), failWriter{})
	_, err := p.Prompt(prompt)
	assert.Error(t, err)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestUseColor(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, useColor("always", f))
	assert.False(t, useColor("never", f))
	assert.False(t, useColor("auto", f), "regular file is not a terminal")
	t.Setenv("NO_COLOR", "1")
	assert.False(t, useColor("auto", f))
	assert.True(t, useColor("always", f))
}

func TestHistoryRoundTrip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "history")
	ln := liner.NewLiner()
	defer ln.Close()
	ln.AppendHistory("1 + 2")
	ln.AppendHistory("3 * 4")
	require.NoError(t, writeHistory(ln, name))

	b, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "1 + 2\n3 * 4\n", string(b))

	ln2 := liner.NewLiner()
	defer ln2.Close()
	require.NoError(t, readHistory(ln2, name))
	assert.Error(t, readHistory(ln2, filepath.Join(t.TempDir(), "missing")))
}

func TestLinerReleaseOnce(t *testing.T) {
	name := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(name, []byte("1 + 2\n"), 0o600))
	ln, release := openLiner(name, logr.Discard())
	ln.AppendHistory("3 * 4")
	release()
	b, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "1 + 2\n3 * 4\n", string(b))

	require.NoError(t, os.Remove(name))
	release()
	_, err = os.Stat(name)
	assert.True(t, os.IsNotExist(err), "second release wrote history again")
}

func TestNewLogger(t *testing.T) {
	log, flush, err := newLogger(false)
	require.NoError(t, err)
	assert.False(t, log.Enabled())
	flush()

	log, flush, err = newLogger(true)
	require.NoError(t, err)
	assert.True(t, log.V(1).Enabled())
	flush()
}
