// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/demand.go
// Summary: Size demands exchanged between widgets and layouts.

package core

// Demand is the acceptable size range along one axis. When Unbounded is set
// the widget will use any amount of extra space and Max is ignored.
type Demand struct {
	Min       int
	Max       int
	Unbounded bool
}

// Exact demands exactly n cells.
func Exact(n int) Demand {
	n = clampNonNegative(n)
	return Demand{Min: n, Max: n}
}

// AtLeast demands n cells and accepts any more.
func AtLeast(n int) Demand {
	return Demand{Min: clampNonNegative(n), Unbounded: true}
}

// Between demands between min and max cells. An inverted range is widened
// so that Max is never below Min.
func Between(min, max int) Demand {
	min = clampNonNegative(min)
	if max < min {
		max = min
	}
	return Demand{Min: min, Max: max}
}

// Add stacks two demands along the same axis.
func (d Demand) Add(o Demand) Demand {
	out := Demand{Min: d.Min + o.Min}
	if d.Unbounded || o.Unbounded {
		out.Unbounded = true
		return out
	}
	out.Max = d.Max + o.Max
	return out
}

// MaxWith returns the pairwise maximum, used along a layout's cross axis.
func (d Demand) MaxWith(o Demand) Demand {
	out := Demand{Min: max(d.Min, o.Min)}
	if d.Unbounded || o.Unbounded {
		out.Unbounded = true
		return out
	}
	out.Max = max(d.Max, o.Max)
	return out
}

// Clamp limits n to the demanded range.
func (d Demand) Clamp(n int) int {
	if n < d.Min {
		return d.Min
	}
	if !d.Unbounded && n > d.Max {
		return d.Max
	}
	return n
}

// Demand2D pairs the demands along both axes.
type Demand2D struct {
	Width  Demand
	Height Demand
}

// StackVertical returns the demand of d placed above o.
func (d Demand2D) StackVertical(o Demand2D) Demand2D {
	return Demand2D{Width: d.Width.MaxWith(o.Width), Height: d.Height.Add(o.Height)}
}

// StackHorizontal returns the demand of d placed left of o.
func (d Demand2D) StackHorizontal(o Demand2D) Demand2D {
	return Demand2D{Width: d.Width.Add(o.Width), Height: d.Height.MaxWith(o.Height)}
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
