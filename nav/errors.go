// nav/errors.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import "errors"

var (
	ErrImmediateExitUnsupported = errors.New("Leg does not support immediate exit")
	ErrInvalidHoldPhase         = errors.New("Invalid hold phase")
	ErrNoActiveLeg              = errors.New("No active leg")
	ErrUnknownHoldKind          = errors.New("Unknown hold kind")
)
