package main

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
)

// LineReader reads lines of input after showing a prompt. *liner.State is a
// LineReader.
type LineReader interface {
	// Prompt shows prompt and reads one line without its line terminator. At
	// the end of input, the error is io.EOF.
	Prompt(prompt string) (string, error)
}

// historian is a LineReader that keeps a history of entered lines.
type historian interface {
	AppendHistory(item string)
}

var _ LineReader = (*liner.State)(nil)

// promptReader is a LineReader for input that is not a terminal. It writes
// the prompt itself and reads lines with no editing.
type promptReader struct {
	r *bufio.Reader
	w io.Writer
}

func newPromptReader(r io.Reader, w io.Writer) *promptReader {
	return &promptReader{r: bufio.NewReader(r), w: w}
}

func (p *promptReader) Prompt(prompt string) (string, error) {
	if _, err := io.WriteString(p.w, prompt); err != nil {
		return "", err
	}
	if f, ok := p.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return "", err
		}
	}
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			// Last line with no newline.
			return strings.TrimSuffix(line, "\r"), nil
		}
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// isTerminal reports whether f is a character device.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// openInput creates the LineReader for an interactive session. When stdin is
// a terminal, lines are read with liner, and history is loaded from and saved
// to histfile if it is not empty. The returned function releases the reader
// and must be called before exiting. Calls after the first do nothing.
func openInput(histfile string, log logr.Logger) (LineReader, func()) {
	if !liner.TerminalSupported() || !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		log.V(1).Info("reading plain input")
		return newPromptReader(os.Stdin, os.Stdout), func() {}
	}
	return openLiner(histfile, log)
}

// openLiner creates a liner line editor with history kept in histfile.
func openLiner(histfile string, log logr.Logger) (*liner.State, func()) {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	if histfile != "" {
		if err := readHistory(ln, histfile); err != nil {
			log.V(1).Info("no history loaded", "error", err.Error())
		}
	}
	return ln, sync.OnceFunc(func() {
		if histfile != "" {
			if err := writeHistory(ln, histfile); err != nil {
				log.Error(err, "saving history", "file", histfile)
			}
		}
		ln.Close()
	})
}

func readHistory(ln *liner.State, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "opening history")
	}
	defer f.Close()
	if _, err := ln.ReadHistory(f); err != nil {
		return errors.Wrapf(err, "reading history from %s", name)
	}
	return nil
}

func writeHistory(ln *liner.State, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "creating history")
	}
	if _, err := ln.WriteHistory(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing history to %s", name)
	}
	return errors.Wrap(f.Close(), "closing history")
}
