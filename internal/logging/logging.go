// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging builds the structured logger shared by the CLI and the TUI.
// The command-line commands log to stderr. The interactive browser owns the
// terminal, so it logs to a file when one is configured and discards
// everything otherwise.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options selects where and how much to log.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// Debug forces the debug level.
	Debug bool

	// File, when set, receives logfmt output instead of Stderr.
	File string

	// Interactive discards logs unless File is set.
	Interactive bool

	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

// New returns a logger writing human-readable lines to w.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "ado-dashboard",
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// Initialize creates the logger described by opts. The returned close
// function releases the log file, if one was opened.
func Initialize(opts Options) (*log.Logger, func() error, error) {
	noop := func() error { return nil }

	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, noop, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	if opts.Debug {
		level = log.DebugLevel
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, noop, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open log file: %w", err)
		}
		logger := log.NewWithOptions(f, log.Options{
			Level:           level,
			ReportTimestamp: true,
			Formatter:       log.LogfmtFormatter,
		})
		return logger, f.Close, nil
	}

	if opts.Interactive {
		return Discard(), noop, nil
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	return New(stderr, level), noop, nil
}
