// log/log.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog.Logger so that each record carries the call stack of
// the code that logged it. A nil *Logger may be used: debug and info
// records are then discarded while warnings and errors go to slog's
// default logger.
type Logger struct {
	*slog.Logger
	level   *slog.LevelVar
	LogFile string
	LogDir  string
	Start   time.Time
}

// New returns a Logger that writes JSON records to a rotating file in
// dir. If dir is empty, the user's config directory is used.
func New(level string, dir string) *Logger {
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to find user config dir: %v", err)
			dir = "."
		}
		dir = filepath.Join(dir, "lnav")
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "lnav.slog"),
		MaxSize:    32, // MB
		MaxBackups: 1,
	}
	if level == "debug" {
		// Phase by phase guidance logs add up quickly.
		w.MaxSize = 512
	}

	l := NewWriter(w, level)
	l.LogFile = w.Filename
	l.LogDir = dir

	l.Info("Hello logging", slog.Time("start", l.Start))
	l.Info("System information",
		slog.String("GOARCH", runtime.GOARCH),
		slog.String("GOOS", runtime.GOOS),
		slog.Int("NumCPUs", runtime.NumCPU()))
	if bi, ok := debug.ReadBuildInfo(); ok {
		var deps []any
		for _, dep := range bi.Deps {
			deps = append(deps, slog.String(dep.Path, dep.Version))
		}
		l.Info("Build",
			slog.String("Go version", bi.GoVersion),
			slog.String("Path", bi.Path),
			slog.Group("Dependencies", deps...))
	}

	return l
}

// NewWriter returns a Logger that writes JSON records to w; it does not
// rotate or emit the startup records that New does.
func NewWriter(w io.Writer, level string) *Logger {
	lv := &slog.LevelVar{}
	lv.Set(parseLevel(level))
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lv})
	return &Logger{
		Logger: slog.New(h),
		level:  lv,
		Start:  time.Now(),
	}
}

func parseLevel(level string) slog.Level {
	var lv slog.Level
	if level == "" {
		return slog.LevelInfo
	}
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		fmt.Fprintf(os.Stderr, "%s: invalid log level\n", level)
		return slog.LevelInfo
	}
	return lv
}

// SetLevel changes the minimum level of records that are written.
func (l *Logger) SetLevel(level string) {
	if l != nil && l.level != nil {
		l.level.Set(parseLevel(level))
	}
}

// log emits a record at the given level with the call stack of the code
// that called the exported logging method.
func (l *Logger) log(level slog.Level, msg string, args []any) {
	stack := slog.Any("callstack", callers(4, nil))
	args = append([]any{stack}, args...)

	if l == nil {
		if level >= slog.LevelWarn {
			slog.Log(context.Background(), level, msg, args...)
		}
		return
	}
	if level >= slog.LevelError {
		// Errors also go to the default logger so that they are seen on
		// the console.
		slog.Log(context.Background(), level, msg, args...)
	}
	l.Logger.Log(context.Background(), level, msg, args...)
}

func (l *Logger) enabled(level slog.Level) bool {
	if l == nil {
		return level >= slog.LevelWarn
	}
	return l.Logger.Enabled(context.Background(), level)
}

func (l *Logger) Debug(msg string, args ...any) {
	if l.enabled(slog.LevelDebug) {
		l.log(slog.LevelDebug, msg, args)
	}
}

// Debugf is a convenience wrapper that logs just a message and allows
// printf-style formatting of the provided args.
func (l *Logger) Debugf(msg string, args ...any) {
	if l.enabled(slog.LevelDebug) {
		l.log(slog.LevelDebug, fmt.Sprintf(msg, args...), nil)
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l.enabled(slog.LevelInfo) {
		l.log(slog.LevelInfo, msg, args)
	}
}

func (l *Logger) Infof(msg string, args ...any) {
	if l.enabled(slog.LevelInfo) {
		l.log(slog.LevelInfo, fmt.Sprintf(msg, args...), nil)
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args)
}

func (l *Logger) Warnf(msg string, args ...any) {
	l.log(slog.LevelWarn, fmt.Sprintf(msg, args...), nil)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args)
}

func (l *Logger) Errorf(msg string, args ...any) {
	l.log(slog.LevelError, fmt.Sprintf(msg, args...), nil)
}

// With returns a Logger that includes the given attributes in each
// record; it is safe to call with a nil receiver, which returns nil.
func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		Logger:  l.Logger.With(args...),
		level:   l.level,
		LogFile: l.LogFile,
		LogDir:  l.LogDir,
		Start:   l.Start,
	}
}
