// util/error.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fmgs/lnav/log"
)

// ValidationError is a single problem found while validating a
// configuration or scenario. Context is the path to the item with the
// problem, as given to ErrorLogger.Push.
type ValidationError struct {
	Context []string
	Message string
}

func (v ValidationError) Error() string {
	if len(v.Context) == 0 {
		return v.Message
	}
	return strings.Join(v.Context, " / ") + ": " + v.Message
}

// ErrorLogger accumulates validation errors so that all of the problems
// in a file can be reported at once rather than stopping at the first.
type ErrorLogger struct {
	context []string
	errs    []ValidationError
}

func (e *ErrorLogger) Push(s string) {
	e.context = append(e.context, s)
}

func (e *ErrorLogger) Pop() {
	e.context = e.context[:len(e.context)-1]
}

func (e *ErrorLogger) ErrorString(s string, args ...any) {
	e.add(fmt.Sprintf(s, args...))
}

func (e *ErrorLogger) Error(err error) {
	e.add(err.Error())
}

func (e *ErrorLogger) add(msg string) {
	e.errs = append(e.errs, ValidationError{
		Context: append([]string(nil), e.context...),
		Message: msg,
	})
}

func (e *ErrorLogger) HaveErrors() bool {
	return len(e.errs) > 0
}

// Errors returns the errors found so far, each prefixed with its context.
func (e *ErrorLogger) Errors() []string {
	var s []string
	for _, err := range e.errs {
		s = append(s, err.Error())
	}
	return s
}

// Err returns all of the errors joined together, or nil if there were
// none.
func (e *ErrorLogger) Err() error {
	var errs []error
	for _, err := range e.errs {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (e *ErrorLogger) PrintErrors(lg *log.Logger) {
	for _, err := range e.errs {
		lg.Error(err.Message, slog.String("context", strings.Join(err.Context, " / ")))
	}
}

func (e *ErrorLogger) String() string {
	return strings.Join(e.Errors(), "\n")
}

// CheckDepth panics if the Push/Pop calls made since depth d was recorded
// are unbalanced; use as defer e.CheckDepth(e.CurrentDepth()).
func (e *ErrorLogger) CheckDepth(d int) {
	if e == nil || e.CurrentDepth() == d {
		return
	}
	if r := recover(); r != nil {
		panic(r)
	}
	panic(fmt.Sprintf("ErrorLogger: initial depth %d, final %d", d, e.CurrentDepth()))
}

func (e *ErrorLogger) CurrentDepth() int {
	if e == nil {
		return 0
	}
	return len(e.context)
}
