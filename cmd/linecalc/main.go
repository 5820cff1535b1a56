package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/zephyrtronium/linecalc"
)

var cli struct {
	Color    string   `enum:"auto,always,never" default:"auto" help:"Colorize results: auto, always, or never."`
	Echo     bool     `short:"e" help:"Print the parse tree before each result."`
	Dump     bool     `help:"Print the structure of each parse tree."`
	Flat     bool     `help:"Merge chains of one operator in printed parse trees."`
	Prec     uint     `short:"p" help:"Evaluate with this many bits of precision instead of float64."`
	MaxDepth int      `default:"${maxdepth}" help:"Parenthesis nesting limit, or 0 for none."`
	History  string   `type:"path" env:"LINECALC_HISTORY" help:"File to keep interactive history in."`
	Verbose  bool     `short:"v" help:"Log parsing and evaluation to stderr."`
	Exprs    []string `arg:"" optional:"" name:"expr" help:"Expressions to evaluate instead of reading input."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("linecalc"),
		kong.Description("Evaluate arithmetic one line at a time. With no expressions given, read lines from stdin until EOF."),
		kong.UsageOnError(),
		kong.Vars{"maxdepth": strconv.Itoa(linecalc.DefaultMaxDepth)},
	)
	log, flush, err := newLogger(cli.Verbose)
	kctx.FatalIfErrorf(err)
	defer flush()

	s := &session{
		out:   os.Stdout,
		log:   log.WithName("session"),
		color: useColor(cli.Color, os.Stdout),
		echo:  cli.Echo,
		dump:  cli.Dump,
		flat:  cli.Flat,
		prec:  cli.Prec,
		opts:  []linecalc.ParseOption{linecalc.MaxDepth(cli.MaxDepth)},
	}

	if len(cli.Exprs) > 0 {
		ok := true
		for _, e := range cli.Exprs {
			ok = s.Line(e) && ok
		}
		if !ok {
			flush()
			os.Exit(1)
		}
		return
	}

	// release may run on both the signal path and the normal exit path.
	in, release := openInput(cli.History, log.WithName("input"))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// A terminal prompt blocks until a line is entered, so a signal
		// can't wait for Run to notice it.
		select {
		case <-ctx.Done():
			release()
			flush()
			os.Exit(130)
		case <-done:
		}
	}()
	err = s.Run(ctx, in)
	close(done)
	wg.Wait()
	release()
	kctx.FatalIfErrorf(err)
}

// useColor decides whether to colorize output to f.
func useColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		return isTerminal(f)
	}
}
