// Package logging configures the process-wide logrus logger.
//
// The interactive TUI owns the terminal (alt screen), so logs only ever go to a file.
// Without a log file everything is discarded.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

type Options struct {
	// File is the log destination. Empty disables logging.
	File string
	// Level is a logrus level name (trace|debug|info|warn|error). Empty means info.
	Level string
}

// Setup points logrus at opts.File and returns a closer for the file handle.
func Setup(opts Options) (io.Closer, error) {
	level := logrus.InfoLevel
	if v := strings.TrimSpace(opts.Level); v != "" {
		l, err := logrus.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	path := strings.TrimSpace(opts.File)
	if path == "" {
		logrus.SetOutput(io.Discard)
		return nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)
	return fileCloser{f}, nil
}

// fileCloser detaches logrus from the file before closing it, so late log calls are dropped
// instead of failing on a closed descriptor.
type fileCloser struct {
	f *os.File
}

func (c fileCloser) Close() error {
	logrus.SetOutput(io.Discard)
	return c.f.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
