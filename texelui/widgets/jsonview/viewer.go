// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/jsonview/viewer.go
// Summary: Navigable, collapsible tree view of a JSON value.
// Usage: Drive with core.NavigateBehavior (up/down/toggle); Replace swaps in
// a fresh value while keeping the active element and expansion where possible.
//
// Elements are addressed two ways. A Path is the list of child indexes from
// the root and is what navigation works on. A key path (".a[2].b") names
// the same element by member keys and array indexes; expansion state is
// stored by key path so it survives Replace.

package jsonview

import (
	"fmt"
	"strings"

	"github.com/framegrace/texeldbg/texelui/core"
	"github.com/framegrace/texeldbg/texelui/scroll"
)

// Path is a sequence of child indexes from the root. The empty path is the
// root itself.
type Path []int

func (p Path) clone() Path { return append(Path(nil), p...) }

func (p Path) equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

type row struct {
	path  Path
	node  *Node
	key   string
	depth int
}

// Viewer renders a Node tree and tracks the active element.
type Viewer struct {
	root     *Node
	expanded map[string]bool
	active   Path
	state    scroll.State

	Indent     int
	Attr       core.TextAttribute
	KeyAttr    core.TextAttribute
	ActiveAttr core.TextAttribute
	ScalarAttr core.TextAttribute
	Indicators scroll.IndicatorConfig
}

// New returns a viewer showing root with the root expanded.
func New(root *Node) *Viewer {
	return &Viewer{
		root:       root,
		expanded:   map[string]bool{"": true},
		Indent:     2,
		KeyAttr:    core.WithFlags(core.Bold),
		ActiveAttr: core.WithFlags(core.Invert),
		Indicators: scroll.DefaultIndicatorConfig(core.WithFlags(core.Bold)),
	}
}

// Root returns the displayed value.
func (v *Viewer) Root() *Node { return v.root }

// Active returns a copy of the active path.
func (v *Viewer) Active() Path { return v.active.clone() }

// ActiveNode returns the active element, or nil for an empty viewer.
func (v *Viewer) ActiveNode() *Node { return v.resolve(v.active) }

// ActiveKeyPath returns the key path of the active element.
func (v *Viewer) ActiveKeyPath() string { return v.keyPath(v.active) }

// SetActive moves to p if it names a visible element.
func (v *Viewer) SetActive(p Path) bool {
	for _, r := range v.rows() {
		if r.path.equal(p) {
			v.active = p.clone()
			return true
		}
	}
	return false
}

// IsExpanded reports whether the container at p shows its children.
func (v *Viewer) IsExpanded(p Path) bool { return v.expanded[v.keyPath(p)] }

func (v *Viewer) resolve(p Path) *Node {
	n := v.root
	for _, i := range p {
		if n == nil || i < 0 || i >= len(n.Children) {
			return nil
		}
		n = n.Children[i]
	}
	return n
}

func segment(parent *Node, i int) string {
	if parent.Kind == Object {
		return "." + parent.Children[i].Key
	}
	return fmt.Sprintf("[%d]", i)
}

func (v *Viewer) keyPath(p Path) string {
	var sb strings.Builder
	n := v.root
	for _, i := range p {
		if n == nil || i < 0 || i >= len(n.Children) {
			break
		}
		sb.WriteString(segment(n, i))
		n = n.Children[i]
	}
	return sb.String()
}

// rows flattens the visible elements in depth-first order.
func (v *Viewer) rows() []row {
	if v.root == nil {
		return nil
	}
	var out []row
	var walk func(n *Node, p Path, kp, key string, depth int)
	walk = func(n *Node, p Path, kp, key string, depth int) {
		out = append(out, row{path: p, node: n, key: key, depth: depth})
		if !n.IsContainer() || !v.expanded[kp] {
			return
		}
		for i, c := range n.Children {
			label := c.Key
			if n.Kind == Array {
				label = fmt.Sprintf("%d", i)
			}
			cp := append(p.clone(), i)
			walk(c, cp, kp+segment(n, i), label, depth+1)
		}
	}
	walk(v.root, Path{}, "", "", 0)
	return out
}

func (v *Viewer) activeIndex(rows []row) int {
	for i, r := range rows {
		if r.path.equal(v.active) {
			return i
		}
	}
	return 0
}

// MoveDown activates the next visible element.
func (v *Viewer) MoveDown() bool {
	rows := v.rows()
	i := v.activeIndex(rows)
	if i+1 >= len(rows) {
		return false
	}
	v.active = rows[i+1].path.clone()
	return true
}

// MoveUp activates the previous visible element.
func (v *Viewer) MoveUp() bool {
	rows := v.rows()
	i := v.activeIndex(rows)
	if i == 0 || len(rows) == 0 {
		return false
	}
	v.active = rows[i-1].path.clone()
	return true
}

// Toggle expands or collapses the active container.
func (v *Viewer) Toggle() bool {
	n := v.ActiveNode()
	if n == nil || !n.IsContainer() {
		return false
	}
	kp := v.keyPath(v.active)
	if v.expanded[kp] {
		delete(v.expanded, kp)
	} else {
		v.expanded[kp] = true
	}
	return true
}

// Replace swaps in a new value. The active element keeps the longest prefix
// of its key path that still exists in the new value and is not hidden by
// a collapsed ancestor; with nothing left it falls back to the root.
// Expansion state is kept by key path.
func (v *Viewer) Replace(root *Node) {
	var segs []string
	n := v.root
	for _, i := range v.active {
		if n == nil || i >= len(n.Children) {
			break
		}
		segs = append(segs, segment(n, i))
		n = n.Children[i]
	}

	v.root = root
	v.active = nil
	if root == nil {
		return
	}
	n = root
	kp := ""
	for _, s := range segs {
		if !n.IsContainer() || !v.expanded[kp] {
			break
		}
		i := childBySegment(n, s)
		if i < 0 {
			break
		}
		v.active = append(v.active, i)
		kp += s
		n = n.Children[i]
	}
}

// ReplaceJSON parses data and replaces the value with it.
func (v *Viewer) ReplaceJSON(data []byte) error {
	root, err := Parse(data)
	if err != nil {
		return err
	}
	v.Replace(root)
	return nil
}

func childBySegment(n *Node, s string) int {
	for i := range n.Children {
		if segment(n, i) == s {
			return i
		}
	}
	return -1
}

func (v *Viewer) Demand() core.Demand2D {
	return core.Demand2D{
		Width:  core.AtLeast(1),
		Height: core.Between(1, max(len(v.rows()), 1)),
	}
}

// Draw lists the visible elements with their keys, indented by depth.
// Containers show an expand marker and, when collapsed, their size.
func (v *Viewer) Draw(win core.Window, hints core.RenderingHints) {
	w, h := win.Size()
	if w <= 0 || h <= 0 {
		return
	}
	rows := v.rows()
	active := v.activeIndex(rows)
	v.state = v.state.WithContentHeight(len(rows)).WithViewportHeight(h).ScrollTo(active)

	for y := 0; y < h; y++ {
		i := v.state.Offset + y
		if i >= len(rows) {
			break
		}
		r := rows[i]
		c := core.NewCursor(win)
		c.MoveTo(r.depth*v.Indent, y)
		base := v.Attr
		if i == active && hints.Active {
			base = base.Or(v.ActiveAttr)
		}
		c.SetAttribute(base)
		if r.node.IsContainer() {
			if v.expanded[v.keyPath(r.path)] {
				c.Write("▾ ")
			} else {
				c.Write("▸ ")
			}
		}
		if r.depth > 0 {
			c.WithAttribute(base.Or(v.KeyAttr), func() { c.Write(r.key) })
			c.Write(": ")
		}
		switch {
		case !r.node.IsContainer():
			c.WithAttribute(base.Or(v.ScalarAttr), func() { c.Write(r.node.Summary()) })
		case v.expanded[v.keyPath(r.path)]:
			c.Write(openBrace(r.node))
		default:
			c.Write(r.node.Summary())
		}
	}
	scroll.DrawStateIndicators(win, v.state, v.Indicators)
}

func openBrace(n *Node) string {
	if n.Kind == Object {
		return "{"
	}
	return "["
}
