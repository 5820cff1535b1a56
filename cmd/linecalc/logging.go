package main

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// newLogger creates the command's logger. Without verbose, everything is
// discarded. The returned function flushes buffered entries.
func newLogger(verbose bool) (logr.Logger, func(), error) {
	if !verbose {
		return logr.Discard(), func() {}, nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), func() {}, errors.Wrap(err, "creating logger")
	}
	return zapr.NewLogger(zl), func() { _ = zl.Sync() }, nil
}
