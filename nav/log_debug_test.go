//go:build navlog

// nav/log_debug_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestNavLogFilters(t *testing.T) {
	var buf bytes.Buffer
	SetNavLogOutput(&buf)
	defer SetNavLogOutput(os.Stdout)
	defer InitNavLog(false, "", "")

	InitNavLog(true, "phase, sequence", "ABC")
	NavLog("ABC", NavLogPhase, "%s -> %s", HoldPhaseInbound, HoldPhaseArc1)
	NavLog("ABC", NavLogGeometry, "not enabled")
	NavLog("DEF", NavLogPhase, "other fix")

	if got := strings.TrimSpace(buf.String()); got != "[ABC] [phase] Inbound -> Arc1" {
		t.Errorf("got %q, expected a single phase line", got)
	}
	if !NavLogEnabled(NavLogSequence) || NavLogEnabled(NavLogHold) {
		t.Errorf("unexpected enabled categories")
	}

	InitNavLog(true, "all", "")
	for _, cat := range navLogCategories {
		if !NavLogEnabled(cat) {
			t.Errorf("%s: not enabled with \"all\"", cat)
		}
	}
}
