// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nbody

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// pairLsum returns Lsum and dLsum/dd for the pair (i,j) at distance d within
// shell s (spec.md §4.5): Lsum = [-L(d;dcCurr,dcOuter) if s>0, unless the
// pair is WH-split at this depth] + [L(d;dcInner,dcCurr) if shell s+1 is
// structurally available, else 1].
//
// Under WH-splitting, shell 0 is a pure router for any pair touching the
// central body (spec.md §6): every body is unconditionally promoted to
// shell 1 at s==0 (shell.go's buildNextShell bypass), so the central pair's
// force is applied entirely from shell 1 inward. Without the s==0 exemption
// below, the pair would collect both the s==0 outer-band weight and the
// full shell-1..sMax-1 telescoping sum (which already totals 1 on its own),
// double-counting the force and breaking the Lsum partition invariant.
func pairLsum(shells []ShellState, s, sMax, i, j int, d float64, L SwitchFunc, whSplitting bool, centralBodyIndex int) (Lsum, dLsum float64) {
	central := whSplitting && (i == centralBodyIndex || j == centralBodyIndex)
	if central && s == 0 {
		return 0, 0
	}

	cur := &shells[s]
	dcCurr := cur.Dcrit[i] + cur.Dcrit[j]

	if s+1 < sMax {
		inner := &shells[s+1]
		dcInner := inner.Dcrit[i] + inner.Dcrit[j]
		Lsum = L.L(d, dcInner, dcCurr)
		dLsum = L.Deriv(d, dcInner, dcCurr)
	} else {
		Lsum = 1
	}

	skipOuter := central && s == 1
	if s > 0 && !skipOuter {
		outer := &shells[s-1]
		dcOuter := outer.Dcrit[i] + outer.Dcrit[j]
		Lsum -= L.L(d, dcCurr, dcOuter)
		dLsum -= L.Deriv(d, dcCurr, dcOuter)
	}
	return
}

// Evaluate computes accelerations (and, when wantJerk is set, jerks) for
// every body assigned to shell s, weighted by Lsum so that each pair
// contributes only in the shell band its current separation falls into
// (spec.md §4.5). bodies[i].Acc is overwritten (not accumulated) for every i
// in shells[s].Map; jerk[i] likewise, indexed by the same global body index
// as Acc rather than by position within the shell (a simplification over
// the spec's "array the size of the current shell" that changes no
// observable behaviour, since entries outside shells[s].Map are never read).
//
// The jerk pass runs after every pairwise acceleration in the shell has been
// accumulated, because the jerk formula's Δa = a_j - a_i (spec.md §4.5)
// refers to each body's total acceleration, not a single pair's contribution.
//
// sMax is the configured hard recursion bound (Config.SMax), used to decide
// whether shell s+1 is structurally available at all (vs. merely empty for
// this particular drift) -- spec.md §4.5 "undefined at innermost shell".
//
// interrupt, if non-nil, is polled between outer-loop iterations (i.e.
// between distinct active bodies i) and aborts the evaluation early when it
// reports true, the cooperative cancellation point named in spec.md §5.
// On early return, accelerations hold partial sums: only the pairs whose
// first member precedes the interrupted position in the map have been
// accumulated, and the jerk pass is skipped.
func Evaluate(bodies []Body, shells []ShellState, s, sMax int, g float64, L SwitchFunc, wantJerk, whSplitting bool, centralBodyIndex int, jerk [][]float64, interrupt func() bool) {
	cur := &shells[s]
	for _, i := range cur.Map[:cur.N] {
		bodies[i].Acc = [3]float64{}
		if wantJerk {
			la.VecFill(jerk[i], 0)
		}
	}

	for p := 0; p < cur.NActive; p++ {
		if interrupt != nil && interrupt() {
			return
		}
		i := cur.Map[p]
		for q := p + 1; q < cur.N; q++ {
			j := cur.Map[q]
			jActive := q < cur.NActive

			dx := [3]float64{
				bodies[j].Pos[0] - bodies[i].Pos[0],
				bodies[j].Pos[1] - bodies[i].Pos[1],
				bodies[j].Pos[2] - bodies[i].Pos[2],
			}
			d2 := dx[0]*dx[0] + dx[1]*dx[1] + dx[2]*dx[2]
			d := math.Sqrt(d2)
			d3 := d2 * d

			Lsum, _ := pairLsum(shells, s, sMax, i, j, d, L, whSplitting, centralBodyIndex)

			pre := g * Lsum / d3
			mi, mj := bodies[i].Mass, bodies[j].Mass

			if jActive || bodies[j].Symmetric {
				bodies[i].Acc[0] += pre * mj * dx[0]
				bodies[i].Acc[1] += pre * mj * dx[1]
				bodies[i].Acc[2] += pre * mj * dx[2]
			}
			bodies[j].Acc[0] -= pre * mi * dx[0]
			bodies[j].Acc[1] -= pre * mi * dx[1]
			bodies[j].Acc[2] -= pre * mi * dx[2]
		}
	}

	if !wantJerk {
		return
	}

	for p := 0; p < cur.NActive; p++ {
		i := cur.Map[p]
		for q := p + 1; q < cur.N; q++ {
			j := cur.Map[q]
			jActive := q < cur.NActive

			dx := [3]float64{
				bodies[j].Pos[0] - bodies[i].Pos[0],
				bodies[j].Pos[1] - bodies[i].Pos[1],
				bodies[j].Pos[2] - bodies[i].Pos[2],
			}
			d2 := dx[0]*dx[0] + dx[1]*dx[1] + dx[2]*dx[2]
			d := math.Sqrt(d2)
			d3 := d2 * d
			d4 := d2 * d2

			Lsum, dLsum := pairLsum(shells, s, sMax, i, j, d, L, whSplitting, centralBodyIndex)
			mi, mj := bodies[i].Mass, bodies[j].Mass

			da := [3]float64{
				bodies[j].Acc[0] - bodies[i].Acc[0],
				bodies[j].Acc[1] - bodies[i].Acc[1],
				bodies[j].Acc[2] - bodies[i].Acc[2],
			}
			dr := [3]float64{-dx[0], -dx[1], -dx[2]} // Δr = pos_i - pos_j, matching predict.go's convention
			alpha := da[0]*dr[0] + da[1]*dr[1] + da[2]*dr[2]

			scalarA := 2 * g * Lsum / d3
			scalarB := 2 * g * alpha * (3*Lsum/d - dLsum*d) / d4

			if jActive || bodies[j].Symmetric {
				jerk[i][0] += scalarA*mj*da[0] - scalarB*mj*dr[0]
				jerk[i][1] += scalarA*mj*da[1] - scalarB*mj*dr[1]
				jerk[i][2] += scalarA*mj*da[2] - scalarB*mj*dr[2]
			}

			// mi here, not mj: j's term scales with the mass of the body
			// pulling on it (i), mirroring the acceleration pass above
			// (bodies[j].Acc -= pre*mi*dx).
			jerk[j][0] += -scalarA*mi*da[0] + scalarB*mi*dr[0]
			jerk[j][1] += -scalarA*mi*da[1] + scalarB*mi*dr[1]
			jerk[j][2] += -scalarA*mi*da[2] + scalarB*mi*dr[2]
		}
	}
}
