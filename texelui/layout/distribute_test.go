// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/layout/distribute_test.go
// Summary: Tests for the size distribution rule.

package layout

import (
	"reflect"
	"testing"

	"github.com/framegrace/texeldbg/texelui/core"
)

func TestDistribute(t *testing.T) {
	cases := []struct {
		name      string
		demands   []core.Demand
		available int
		want      []int
	}{
		{"none", nil, 10, []int{}},
		{"unbounded takes slack", []core.Demand{core.Exact(1), core.AtLeast(2), core.Between(1, 3)}, 10, []int{1, 8, 1}},
		{"mins truncated in order", []core.Demand{core.Exact(3), core.Exact(3), core.Exact(3)}, 7, []int{3, 3, 1}},
		{"later child starved", []core.Demand{core.Exact(5), core.AtLeast(1)}, 5, []int{5, 0}},
		{"equal unbounded split", []core.Demand{core.AtLeast(0), core.AtLeast(0), core.AtLeast(0)}, 10, []int{4, 3, 3}},
		{"bounded water fill", []core.Demand{core.Between(0, 2), core.Between(0, 10)}, 8, []int{2, 6}},
		{"bounded remainder first", []core.Demand{core.Between(0, 5), core.Between(0, 5)}, 3, []int{2, 1}},
		{"bounded leaves blank", []core.Demand{core.Exact(2), core.Between(1, 3)}, 10, []int{2, 3}},
		{"negative space", []core.Demand{core.AtLeast(1)}, -4, []int{0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Distribute(tc.demands, tc.available)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Distribute = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDistributeNeverExceedsAvailable(t *testing.T) {
	demands := []core.Demand{core.Between(1, 4), core.AtLeast(3), core.Exact(2), core.Between(0, 7)}
	for avail := 0; avail < 30; avail++ {
		sum := 0
		for i, n := range Distribute(demands, avail) {
			if n < 0 {
				t.Fatalf("avail %d: child %d got %d", avail, i, n)
			}
			sum += n
		}
		if sum > avail {
			t.Fatalf("avail %d: allocated %d", avail, sum)
		}
	}
}
