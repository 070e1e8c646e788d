// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/pager.go
// Summary: Source pager with syntax highlighting, a current-line marker and
// toggleable line marks.
// Usage: SetSource loads content; the language is detected with go-enry from
// the file name and content, then tokenised with Chroma.

package widgets

import (
	"fmt"
	"log"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"

	"github.com/framegrace/texeldbg/texelui/core"
	"github.com/framegrace/texeldbg/texelui/scroll"
)

// DefaultPagerStyle is the Chroma style used when none is configured.
const DefaultPagerStyle = "catppuccin-mocha"

type span struct {
	text string
	attr core.TextAttribute
}

// Pager displays highlighted source lines.
type Pager struct {
	name     string
	language string
	lines    [][]span
	current  int
	marks    map[int]bool
	state    scroll.State

	StyleName   string
	LineNumbers bool
	MarkerAttr  core.TextAttribute
	CurrentAttr core.TextAttribute
	Indicators  scroll.IndicatorConfig
}

// NewPager returns an empty pager with line numbers enabled.
func NewPager() *Pager {
	return &Pager{
		marks:       make(map[int]bool),
		StyleName:   DefaultPagerStyle,
		LineNumbers: true,
		MarkerAttr:  core.Foreground(tcell.ColorRed),
		CurrentAttr: core.WithFlags(core.Bold),
		Indicators:  scroll.DefaultIndicatorConfig(core.WithFlags(core.Bold)),
	}
}

// Name returns the name given to SetSource.
func (p *Pager) Name() string { return p.name }

// Language returns the detected language, or "" for plain text.
func (p *Pager) Language() string { return p.language }

// NumLines returns the number of loaded lines.
func (p *Pager) NumLines() int { return len(p.lines) }

// CurrentLine returns the index of the highlighted line.
func (p *Pager) CurrentLine() int { return p.current }

// SetCurrentLine moves the highlight, clamped to the content.
func (p *Pager) SetCurrentLine(i int) {
	p.current = min(max(i, 0), max(len(p.lines)-1, 0))
	p.state = p.state.ScrollTo(p.current)
}

// Marks returns the marked line indexes in ascending order.
func (p *Pager) Marks() []int {
	var out []int
	for i := range p.lines {
		if p.marks[i] {
			out = append(out, i)
		}
	}
	return out
}

// SetSource replaces the content. name is used for language detection and
// may be a path.
func (p *Pager) SetSource(name string, content []byte) error {
	p.name = name
	p.language = enry.GetLanguage(name, content)
	p.marks = make(map[int]bool)
	p.current = 0

	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	lines, err := p.highlight(text)
	if err != nil {
		return fmt.Errorf("highlight %s: %w", name, err)
	}
	p.lines = lines
	log.Printf("[PAGER] loaded %s: %d lines, language %q", name, len(lines), p.language)
	p.state = scroll.NewState(len(lines), p.state.ViewportHeight)
	return nil
}

func (p *Pager) lexer(text string) chroma.Lexer {
	if p.language != "" {
		if l := lexers.Get(p.language); l != nil {
			return l
		}
	}
	if l := lexers.Match(p.name); l != nil {
		return l
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

func (p *Pager) highlight(text string) ([][]span, error) {
	lexer := chroma.Coalesce(p.lexer(text))
	style := styles.Get(p.StyleName)
	if style == nil {
		style = styles.Fallback
	}
	iter, err := lexer.Tokenise(nil, text)
	if err != nil {
		return nil, err
	}
	base := style.Get(chroma.Text).Colour

	lines := [][]span{nil}
	for tok := iter(); tok != chroma.EOF; tok = iter() {
		attr := tokenAttribute(style.Get(tok.Type), base)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], span{text: part, attr: attr})
			}
		}
	}
	// Lexers may append a final newline; keep exactly the lines of text.
	want := 0
	if text != "" {
		want = strings.Count(text, "\n") + 1
		if strings.HasSuffix(text, "\n") {
			want--
		}
	}
	for len(lines) < want {
		lines = append(lines, nil)
	}
	return lines[:want], nil
}

func tokenAttribute(entry chroma.StyleEntry, base chroma.Colour) core.TextAttribute {
	var attr core.TextAttribute
	if entry.Bold == chroma.Yes {
		attr.Flags |= core.Bold
	}
	if entry.Italic == chroma.Yes {
		attr.Flags |= core.Italic
	}
	if entry.Underline == chroma.Yes {
		attr.Flags |= core.Underline
	}
	if entry.Colour.IsSet() && entry.Colour != base {
		attr.FG = tcell.NewRGBColor(int32(entry.Colour.Red()), int32(entry.Colour.Green()), int32(entry.Colour.Blue()))
	}
	return attr
}

// ScrollBackwards moves one page up.
func (p *Pager) ScrollBackwards() bool {
	return p.moveTo(p.current - max(p.state.ViewportHeight-1, 1))
}

// ScrollForwards moves one page down.
func (p *Pager) ScrollForwards() bool {
	return p.moveTo(p.current + max(p.state.ViewportHeight-1, 1))
}

func (p *Pager) ScrollToBeginning() bool { return p.moveTo(0) }
func (p *Pager) ScrollToEnd() bool       { return p.moveTo(len(p.lines) - 1) }

func (p *Pager) MoveUp() bool   { return p.moveTo(p.current - 1) }
func (p *Pager) MoveDown() bool { return p.moveTo(p.current + 1) }

// Toggle flips the mark on the current line.
func (p *Pager) Toggle() bool {
	if len(p.lines) == 0 {
		return false
	}
	p.marks[p.current] = !p.marks[p.current]
	if !p.marks[p.current] {
		delete(p.marks, p.current)
	}
	return true
}

func (p *Pager) moveTo(i int) bool {
	if len(p.lines) == 0 {
		return false
	}
	i = min(max(i, 0), len(p.lines)-1)
	if i == p.current {
		return false
	}
	p.SetCurrentLine(i)
	return true
}

func (p *Pager) Demand() core.Demand2D {
	return core.Demand2D{Width: core.AtLeast(1), Height: core.AtLeast(1)}
}

func (p *Pager) gutterWidth() int {
	if !p.LineNumbers {
		return 2
	}
	return len(fmt.Sprint(max(len(p.lines), 1))) + 3
}

// Draw renders the gutter (mark, current-line arrow, line number) and the
// highlighted text for the visible lines.
func (p *Pager) Draw(win core.Window, hints core.RenderingHints) {
	w, h := win.Size()
	if w <= 0 || h <= 0 {
		return
	}
	p.state = p.state.WithContentHeight(len(p.lines)).WithViewportHeight(h).ScrollTo(p.current)
	gutter, body := win.SplitH(p.gutterWidth())

	for row := 0; row < h; row++ {
		i := p.state.Offset + row
		if i >= len(p.lines) {
			break
		}
		g := core.NewCursor(gutter)
		g.MoveTo(0, row)
		if p.marks[i] {
			g.WithAttribute(p.MarkerAttr, func() { g.Write("●") })
		} else {
			g.Write(" ")
		}
		if i == p.current {
			g.WithAttribute(p.CurrentAttr, func() { g.Write("▶") })
		} else {
			g.Write(" ")
		}
		if p.LineNumbers {
			g.Write(fmt.Sprintf("%*d ", gutter.Width()-3, i+1))
		}

		c := core.NewCursor(body)
		c.MoveTo(0, row)
		var lineAttr core.TextAttribute
		if i == p.current && hints.Active {
			lineAttr = p.CurrentAttr
		}
		for _, s := range p.lines[i] {
			c.SetAttribute(s.attr.Or(lineAttr))
			c.Write(s.text)
			if c.RemainingWidth() == 0 {
				break
			}
		}
	}
	scroll.DrawStateIndicators(body, p.state, p.Indicators)
}
