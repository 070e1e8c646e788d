// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/layout/distribute.go
// Summary: Splits an allocated length among children according to their demands.

package layout

import "github.com/framegrace/texeldbg/texelui/core"

// Distribute assigns sizes along one axis.
//
// Minimums are satisfied first, in child order; when they do not fit, later
// children are cut short and may get nothing. Remaining slack goes entirely
// to unbounded children, split equally with the remainder handed out one cell
// at a time from the first of them. Without unbounded children the slack is
// shared equally among bounded children still below their maximum, again
// remainder-first, until all are full. Anything left after that stays unused.
func Distribute(demands []core.Demand, available int) []int {
	sizes := make([]int, len(demands))
	remaining := max(available, 0)
	for i, d := range demands {
		n := min(max(d.Min, 0), remaining)
		sizes[i] = n
		remaining -= n
	}
	if remaining == 0 {
		return sizes
	}

	var unbounded []int
	for i, d := range demands {
		if d.Unbounded {
			unbounded = append(unbounded, i)
		}
	}
	if len(unbounded) > 0 {
		share, extra := remaining/len(unbounded), remaining%len(unbounded)
		for k, i := range unbounded {
			sizes[i] += share
			if k < extra {
				sizes[i]++
			}
		}
		return sizes
	}

	for remaining > 0 {
		candidates := belowMax(demands, sizes)
		if len(candidates) == 0 {
			break
		}
		share := remaining / len(candidates)
		if share == 0 {
			for _, i := range candidates[:remaining] {
				sizes[i]++
			}
			break
		}
		for _, i := range candidates {
			give := min(share, demands[i].Max-sizes[i])
			sizes[i] += give
			remaining -= give
		}
	}
	return sizes
}

func belowMax(demands []core.Demand, sizes []int) []int {
	var out []int
	for i, d := range demands {
		if sizes[i] < d.Max {
			out = append(out, i)
		}
	}
	return out
}
