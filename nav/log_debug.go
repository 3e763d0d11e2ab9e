//go:build navlog

// nav/log_debug.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Category trace output is only compiled in with -tags navlog; it is too
// verbose for the regular log.
var navlog struct {
	mu         sync.Mutex
	enabled    bool
	categories map[string]bool
	ident      string // only log this fix if set
	w          io.Writer
}

// InitNavLog enables tracing of the given comma-separated categories
// ("all" or "" for every category), optionally for a single fix.
func InitNavLog(enabled bool, categories string, ident string) {
	navlog.mu.Lock()
	defer navlog.mu.Unlock()

	navlog.enabled = enabled
	navlog.categories = make(map[string]bool)
	navlog.ident = strings.TrimSpace(ident)
	if navlog.w == nil {
		navlog.w = os.Stdout
	}

	if categories == "" || categories == "all" {
		for _, cat := range navLogCategories {
			navlog.categories[cat] = true
		}
	} else {
		for cat := range strings.SplitSeq(categories, ",") {
			navlog.categories[strings.TrimSpace(cat)] = true
		}
	}
}

// SetNavLogOutput redirects trace output, which goes to stdout by default.
func SetNavLogOutput(w io.Writer) {
	navlog.mu.Lock()
	navlog.w = w
	navlog.mu.Unlock()
}

// NavLog writes a trace line of the form "[ident] [category] message".
func NavLog(ident string, category string, format string, args ...any) {
	navlog.mu.Lock()
	defer navlog.mu.Unlock()

	if !navlog.enabled || !navlog.categories[category] {
		return
	}
	if navlog.ident != "" && navlog.ident != ident {
		return
	}
	fmt.Fprintf(navlog.w, "[%s] [%s] %s\n", ident, category, fmt.Sprintf(format, args...))
}

func NavLogEnabled(category string) bool {
	navlog.mu.Lock()
	defer navlog.mu.Unlock()
	return navlog.enabled && navlog.categories[category]
}
