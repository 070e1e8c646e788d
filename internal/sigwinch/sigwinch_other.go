// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/sigwinch/sigwinch_other.go
// Summary: Stub for platforms without SIGWINCH.

//go:build !unix

package sigwinch

func (h *handler) start() error { return ErrUnsupported }

func (h *handler) halt() {}
