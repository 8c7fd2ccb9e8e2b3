// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nbody

// ShellState holds everything the resolver and the interaction evaluator
// need for one recursion depth (spec.md §3).
//
//	N       -- number of bodies assigned to this shell
//	NActive -- number of those that are active; Map[0:NActive) are active,
//	           Map[NActive:N) are passive
//	Map     -- body indices assigned to this shell, active-first
//	Dcrit   -- per-body critical radius at this depth, indexed by GLOBAL
//	           body index (not by position in Map); length == total body count
type ShellState struct {
	N       int
	NActive int
	Map     []int
	Dcrit   []float64
}

// resize grows Map/Dcrit to accommodate n bodies total, preserving existing
// Dcrit values (lifecycle: shell-0 arrays are reallocated whenever the body
// count grows, spec.md §3 Lifecycle).
func (s *ShellState) resize(n int) {
	if cap(s.Map) < n {
		s.Map = make([]int, n)
	}
	s.Map = s.Map[:n]
	if len(s.Dcrit) < n {
		grown := make([]float64, n)
		copy(grown, s.Dcrit)
		s.Dcrit = grown
	}
}

// buildNextShell resolves shell s+1 from shell s over the signed drift
// interval dt, and marks inshell[i]=1 for every body currently in shell s
// (spec.md §4.4). It reports whether shell s+1 ended up non-empty.
//
// whSplitting bypasses the O(N^2) encounter search at depth 0: every body in
// map[0] is copied unconditionally into map[1], isolating the dominant
// central-body Keplerian drift in the inner shell (spec.md §4.4 special
// case).
func buildNextShell(shells []ShellState, s int, dt float64, bodies []Body, inshell []int, whSplitting bool) bool {
	curr := &shells[s]
	for _, i := range curr.Map[:curr.N] {
		inshell[i] = 1
	}
	if s+1 >= len(shells) {
		return false
	}
	next := &shells[s+1]
	next.resize(len(bodies))

	if whSplitting && s == 0 {
		copy(next.Map, curr.Map[:curr.N])
		next.N = curr.N
		next.NActive = curr.NActive
		for _, i := range curr.Map[:curr.N] {
			inshell[i] = 0
		}
		return next.N > 0
	}

	next.N = 0
	next.NActive = 0

	// first pass: active x all
	for _, i := range curr.Map[:curr.NActive] {
		for _, j := range curr.Map[:curr.N] {
			if j == i {
				continue
			}
			rcrit := next.Dcrit[i] + next.Dcrit[j]
			if ClosestApproachSq(&bodies[i], &bodies[j], dt) < rcrit*rcrit {
				next.Map[next.N] = i
				next.N++
				inshell[i] = 0
				break
			}
		}
	}
	next.NActive = next.N

	// second pass: passive x active
	for _, i := range curr.Map[curr.NActive:curr.N] {
		for _, j := range curr.Map[:curr.NActive] {
			rcrit := next.Dcrit[i] + next.Dcrit[j]
			if ClosestApproachSq(&bodies[i], &bodies[j], dt) < rcrit*rcrit {
				next.Map[next.N] = i
				next.N++
				inshell[i] = 0
				break
			}
		}
	}
	return next.N > 0
}
