// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New creates the application logger. Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           lvl,
		Prefix:          "arc-bookshelf",
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
