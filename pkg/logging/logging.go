package logging

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultLevel     = "info"
	DefaultMaxSizeMB = 10
	DefaultBackups   = 3
)

// Options describe where log lines go. The terminal belongs to the game, so
// an empty Path discards everything unless Fallback is set.
type Options struct {
	Path     string
	Fallback io.Writer

	Level  string
	Prefix string
	JSON   bool

	MaxSizeMB int
	Backups   int
}

// New returns a logger writing to a rotated file. Prefix becomes the
// component field on every entry.
func New(opts Options) (*logrus.Entry, error) {
	if opts.Level == "" {
		opts.Level = DefaultLevel
	}
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	l := logrus.New()
	l.SetLevel(level)
	l.SetOutput(output(opts))

	if opts.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	entry := logrus.NewEntry(l)
	if opts.Prefix != "" {
		entry = entry.WithField("component", opts.Prefix)
	}

	return entry, nil
}

func output(opts Options) io.Writer {
	if opts.Path == "" {
		if opts.Fallback != nil {
			return opts.Fallback
		}
		return ioutil.Discard
	}

	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = DefaultMaxSizeMB
	}
	backups := opts.Backups
	if backups <= 0 {
		backups = DefaultBackups
	}

	return &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    maxSize,
		MaxBackups: backups,
	}
}

// Close releases the log file behind l, if any
func Close(l *logrus.Entry) error {
	if f, ok := l.Logger.Out.(*lumberjack.Logger); ok {
		return f.Close()
	}
	return nil
}
