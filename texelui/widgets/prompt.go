// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/prompt.go
// Summary: Command prompt with an editable line and submission history.
// Usage: Scroll backwards/forwards to browse history; FinishLine submits.
//
// While browsing, the text typed before browsing started is kept aside and
// restored once the user scrolls past the newest entry. Editing a recalled
// entry ends browsing and keeps the edited text.

package widgets

import (
	"github.com/framegrace/texeldbg/texelui/core"
	"github.com/framegrace/texeldbg/texelui/grapheme"
)

type historyBrowse struct {
	snapshot string
	pos      int
}

// PromptLine is a label followed by a LineEdit with history.
type PromptLine struct {
	Prompt *LineLabel
	Edit   *LineEdit
	// MaxHistory bounds the history length; zero or less keeps everything.
	MaxHistory int

	history []string
	browse  *historyBrowse
}

// NewPromptLine creates a prompt showing prompt before the editor.
func NewPromptLine(prompt string) *PromptLine {
	return &PromptLine{Prompt: NewLineLabel(prompt), Edit: NewLineEdit()}
}

// Text returns what is currently in the editor.
func (p *PromptLine) Text() string { return p.Edit.Text() }

// History returns the submitted lines, oldest first.
func (p *PromptLine) History() []string { return p.history }

// SetHistory replaces the history, for example with a restored session.
func (p *PromptLine) SetHistory(lines []string) {
	p.history = append([]string(nil), lines...)
	p.trim()
	p.browse = nil
}

// Browsing reports whether a history entry is being shown.
func (p *PromptLine) Browsing() bool { return p.browse != nil }

// FinishLine submits the current text: it is appended to history unless it
// repeats the newest entry, the editor is cleared and the text returned.
func (p *PromptLine) FinishLine() string {
	line := p.Edit.Text()
	if n := len(p.history); n == 0 || p.history[n-1] != line {
		p.history = append(p.history, line)
		p.trim()
	}
	p.browse = nil
	p.Edit.Clear()
	return line
}

func (p *PromptLine) trim() {
	if p.MaxHistory > 0 && len(p.history) > p.MaxHistory {
		p.history = p.history[len(p.history)-p.MaxHistory:]
	}
}

func (p *PromptLine) show(pos int) {
	p.browse.pos = pos
	p.Edit.SetText(p.history[pos])
}

func (p *PromptLine) leaveBrowse(restore bool) {
	if p.browse == nil {
		return
	}
	if restore {
		p.Edit.SetText(p.browse.snapshot)
	}
	p.browse = nil
}

// ScrollBackwards recalls the previous history entry.
func (p *PromptLine) ScrollBackwards() bool {
	if p.browse == nil {
		if len(p.history) == 0 {
			return false
		}
		p.browse = &historyBrowse{snapshot: p.Edit.Text()}
		p.show(len(p.history) - 1)
		return true
	}
	if p.browse.pos == 0 {
		return false
	}
	p.show(p.browse.pos - 1)
	return true
}

// ScrollForwards moves towards the present, restoring the in-progress text
// after the newest entry.
func (p *PromptLine) ScrollForwards() bool {
	if p.browse == nil {
		return false
	}
	if p.browse.pos+1 < len(p.history) {
		p.show(p.browse.pos + 1)
		return true
	}
	p.leaveBrowse(true)
	return true
}

// ScrollToBeginning recalls the oldest entry.
func (p *PromptLine) ScrollToBeginning() bool {
	if len(p.history) == 0 || (p.browse != nil && p.browse.pos == 0) {
		return false
	}
	if p.browse == nil {
		p.browse = &historyBrowse{snapshot: p.Edit.Text()}
	}
	p.show(0)
	return true
}

// ScrollToEnd stops browsing and restores the in-progress text.
func (p *PromptLine) ScrollToEnd() bool {
	if p.browse == nil {
		return false
	}
	p.leaveBrowse(true)
	return true
}

func (p *PromptLine) MoveLeft() bool    { return p.Edit.MoveLeft() }
func (p *PromptLine) MoveRight() bool   { return p.Edit.MoveRight() }
func (p *PromptLine) MoveToStart() bool { return p.Edit.MoveToStart() }
func (p *PromptLine) MoveToEnd() bool   { return p.Edit.MoveToEnd() }

func (p *PromptLine) Insert(s string) {
	p.leaveBrowse(false)
	p.Edit.Insert(s)
}

func (p *PromptLine) DeleteForward() bool {
	p.leaveBrowse(false)
	return p.Edit.DeleteForward()
}

func (p *PromptLine) DeleteBackward() bool {
	p.leaveBrowse(false)
	return p.Edit.DeleteBackward()
}

func (p *PromptLine) Clear() bool {
	p.leaveBrowse(false)
	return p.Edit.Clear()
}

func (p *PromptLine) Demand() core.Demand2D {
	return p.Prompt.Demand().StackHorizontal(p.Edit.Demand())
}

func (p *PromptLine) Draw(win core.Window, hints core.RenderingHints) {
	label, edit := win.SplitH(grapheme.Width(p.Prompt.Text))
	p.Prompt.Draw(label, hints)
	p.Edit.Draw(edit, hints)
}
