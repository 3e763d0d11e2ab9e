// log/stack.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

const modulePrefix = "github.com/fmgs/lnav/"

// maxFrames bounds the call stack recorded with each log record.
const maxFrames = 8

type StackFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

// Callstack returns the stack of the caller's caller, which is the
// function that called into the logger when Callstack is called from a
// logging method. fr is reused if it has enough capacity.
func Callstack(fr []StackFrame) []StackFrame {
	return callers(4, fr)
}

// callers is Callstack with an explicit skip count for runtime.Callers.
func callers(skip int, fr []StackFrame) []StackFrame {
	var pcs [maxFrames]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	fr = fr[:0]
	for {
		frame, more := frames.Next()
		fn := strings.TrimPrefix(strings.TrimPrefix(frame.Function, modulePrefix), "main.")
		fr = append(fr, StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: fn,
		})

		// Stop before the runtime and test harness frames.
		if !more || frame.Function == "main.main" || strings.HasPrefix(frame.Function, "testing.") {
			return fr
		}
	}
}

func (f StackFrame) String() string {
	return f.File + ":" + strconv.Itoa(f.Line) + ":" + f.Function
}

func (f StackFrame) LogValue() slog.Value {
	return slog.StringValue(f.String())
}
