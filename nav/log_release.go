//go:build !navlog

// nav/log_release.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import "io"

// Without the navlog build tag, tracing compiles down to nothing.

func InitNavLog(enabled bool, categories string, ident string) {}

func SetNavLogOutput(w io.Writer) {}

func NavLog(ident string, category string, format string, args ...any) {}

func NavLogEnabled(category string) bool { return false }
