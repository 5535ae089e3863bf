// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/H0llyW00dzZ/certtrust/src/internal/helper/gc"
)

// Logger defines the interface for logging operations.
// It provides methods for different log levels and formatted output.
//
// This interface supports both CLI and server modes, allowing seamless
// switching between human-readable output and structured logging.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// Debugf formats and prints a message only when debug output is enabled.
	Debugf(format string, v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct {
	logger  *log.Logger
	verbose atomic.Bool
}

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// SetVerbose enables or disables Debugf output.
func (c *CLILogger) SetVerbose(verbose bool) { c.verbose.Store(verbose) }

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// Debugf prints a "debug: " prefixed message when verbose output is enabled.
func (c *CLILogger) Debugf(format string, v ...any) {
	if !c.verbose.Load() {
		return
	}
	c.logger.Printf("debug: "+format, v...)
}

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// JSONLogger implements Logger with one JSON object per line.
// It suppresses output when silent, which keeps the MCP stdio channel clean,
// and drops debug entries unless debug output is enabled.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
	debug  atomic.Bool
}

type entry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NewJSONLogger creates a new structured logger writing to writer.
// A nil writer discards output.
func NewJSONLogger(writer io.Writer, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		writer: writer,
		silent: silent,
	}
}

// Discard returns a Logger that drops everything.
func Discard() Logger { return NewJSONLogger(nil, true) }

// SetDebug enables or disables debug entries.
func (j *JSONLogger) SetDebug(debug bool) { j.debug.Store(debug) }

// Printf formats and logs an info entry.
func (j *JSONLogger) Printf(format string, v ...any) { j.write("info", fmt.Sprintf(format, v...)) }

// Println logs an info entry.
func (j *JSONLogger) Println(v ...any) { j.write("info", fmt.Sprint(v...)) }

// Debugf formats and logs a debug entry when debug output is enabled.
func (j *JSONLogger) Debugf(format string, v ...any) {
	if !j.debug.Load() {
		return
	}
	j.write("debug", fmt.Sprintf(format, v...))
}

// SetOutput sets the output destination. A nil writer discards output.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w == nil {
		j.writer = io.Discard
	} else {
		j.writer = w
	}
}

func (j *JSONLogger) write(level, msg string) {
	if j.silent {
		return
	}

	data, err := json.Marshal(entry{Level: level, Message: msg})
	if err != nil {
		return
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()
	buf.Write(data)
	buf.WriteByte('\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	buf.WriteTo(j.writer)
}
