// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/indicators.go
// Summary: Scroll indicator rendering for scrollable widgets.
// Provides reusable scroll indicator glyphs (▲/▼) that show when content overflows.

package scroll

import (
	"github.com/framegrace/texeldbg/texelui/core"
	"github.com/framegrace/texeldbg/texelui/grapheme"
)

// IndicatorPosition specifies where scroll indicators are rendered.
type IndicatorPosition int

const (
	// IndicatorRight places indicators at the right edge of the viewport (default).
	IndicatorRight IndicatorPosition = iota
	// IndicatorLeft places indicators at the left edge of the viewport.
	IndicatorLeft
)

// Default indicator glyphs.
const (
	DefaultUpGlyph   = '▲'
	DefaultDownGlyph = '▼'
)

// IndicatorConfig configures the appearance of scroll indicators.
type IndicatorConfig struct {
	// Position specifies where indicators are drawn (left or right edge).
	Position IndicatorPosition

	// Attr is the attribute for indicator glyphs.
	Attr core.TextAttribute

	// UpGlyph is the character shown when content is above the viewport.
	UpGlyph rune

	// DownGlyph is the character shown when content is below the viewport.
	DownGlyph rune
}

// DefaultIndicatorConfig returns a default configuration with standard glyphs.
func DefaultIndicatorConfig(attr core.TextAttribute) IndicatorConfig {
	return IndicatorConfig{
		Position:  IndicatorRight,
		Attr:      attr,
		UpGlyph:   DefaultUpGlyph,
		DownGlyph: DefaultDownGlyph,
	}
}

// DrawIndicators renders scroll indicators on a window.
// Shows an up indicator if up is set and a down indicator if down is set.
func DrawIndicators(win core.Window, up, down bool, config IndicatorConfig) {
	w, h := win.Size()
	if w <= 0 || h <= 0 {
		return
	}

	x := w - 1
	if config.Position == IndicatorLeft {
		x = 0
	}

	if up {
		glyph := config.UpGlyph
		if glyph == 0 {
			glyph = DefaultUpGlyph
		}
		win.SetCell(x, 0, grapheme.FromRune(glyph), config.Attr)
	}

	if down {
		glyph := config.DownGlyph
		if glyph == 0 {
			glyph = DefaultDownGlyph
		}
		win.SetCell(x, h-1, grapheme.FromRune(glyph), config.Attr)
	}
}

// DrawStateIndicators draws indicators for a scroll state.
func DrawStateIndicators(win core.Window, state State, config IndicatorConfig) {
	DrawIndicators(win, state.CanScrollUp(), state.CanScrollDown(), config)
}
