package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger creates the logger for the command. Logs go to stderr unless
// `logFile` is set, in which case they're appended to that file and rotated
// once it reaches 10 MiB.
func newLogger(level string, logFile string) (*slog.Logger, io.Closer, error) {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, nil, err
	}

	var output io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if logFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
		}
		output = rotator
		closer = rotator
	}

	handler := slog.NewTextHandler(output, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
