// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nbody

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// TestLsumPartition is testable property 5: summed across every shell the
// pair could occupy, Lsum accounts for exactly the full 1/d^3 force.
func TestLsumPartition(tst *testing.T) {
	chk.PrintTitle("LsumPartition. Lsum(s) summed over all shells equals 1")

	sMax := 4
	shells := make([]ShellState, sMax)
	for s := range shells {
		shells[s].resize(2)
		// tighter dcrit with depth, as required by the shell-nesting invariant
		shells[s].Dcrit[0] = 1.0 / float64(s+1)
		shells[s].Dcrit[1] = 1.0 / float64(s+1)
	}

	d := 0.9 // somewhere in the middle of the nested bands
	var total float64
	for s := 0; s < sMax; s++ {
		Lsum, _ := pairLsum(shells, s, sMax, 0, 1, d, DefaultSwitch, false, 0)
		total += Lsum
	}
	chk.Scalar(tst, "sum of Lsum across shells", 1e-12, total, 1)
}

// TestLsumPartitionWHSplitting is testable property 5 again, this time for
// the central pair under WH-splitting: shell 0 must contribute nothing (it
// is a pure router), so the telescoping sum over shells 1..sMax-1 alone
// must still equal 1, not 1 + the spurious s==0 term.
func TestLsumPartitionWHSplitting(tst *testing.T) {
	chk.PrintTitle("LsumPartitionWHSplitting. central pair's Lsum still sums to 1 under WH-splitting")

	sMax := 4
	shells := make([]ShellState, sMax)
	for s := range shells {
		shells[s].resize(2)
		shells[s].Dcrit[0] = 1.0 / float64(s+1)
		shells[s].Dcrit[1] = 1.0 / float64(s+1)
	}

	d := 0.9
	var total float64
	for s := 0; s < sMax; s++ {
		Lsum, _ := pairLsum(shells, s, sMax, 0, 1, d, DefaultSwitch, true, 0)
		total += Lsum
	}
	chk.Scalar(tst, "sum of Lsum across shells (WH, central pair)", 1e-12, total, 1)
}

// TestEvaluateNewtonThirdLaw checks that active-active pairwise accelerations
// are antisymmetric (Newton's third law) in the absence of any band
// weighting (single-shell, sMax=1, so Lsum==1 identically).
func TestEvaluateNewtonThirdLaw(tst *testing.T) {
	chk.PrintTitle("EvaluateNewtonThirdLaw. m_i*a_i = -m_j*a_j for an active pair")

	bodies := []Body{
		{Mass: 2, Pos: [3]float64{0, 0, 0}},
		{Mass: 3, Pos: [3]float64{1, 0, 0}},
	}
	shells := make([]ShellState, 1)
	shells[0].resize(2)
	shells[0].Map[0], shells[0].Map[1] = 0, 1
	shells[0].N, shells[0].NActive = 2, 2

	Evaluate(bodies, shells, 0, 1, 1.0, DefaultSwitch, false, false, 0, nil, nil)

	fi := [3]float64{bodies[0].Mass * bodies[0].Acc[0], bodies[0].Mass * bodies[0].Acc[1], bodies[0].Mass * bodies[0].Acc[2]}
	fj := [3]float64{bodies[1].Mass * bodies[1].Acc[0], bodies[1].Mass * bodies[1].Acc[1], bodies[1].Mass * bodies[1].Acc[2]}
	chk.Vector(tst, "m_i*a_i", 1e-12, fi[:], []float64{-fj[0], -fj[1], -fj[2]})
}

// TestEvaluatePassiveDoesNotExertForce checks that a passive (non-symmetric)
// body does not perturb an active body's acceleration, while still feeling
// the active body's pull itself.
func TestEvaluatePassiveDoesNotExertForce(tst *testing.T) {
	chk.PrintTitle("EvaluatePassiveDoesNotExertForce. a plain test particle exerts no back-reaction")

	bodies := []Body{
		{Mass: 1, Pos: [3]float64{0, 0, 0}},
		{Mass: 0, Pos: [3]float64{1, 0, 0}}, // passive, Symmetric=false
	}
	shells := make([]ShellState, 1)
	shells[0].resize(2)
	shells[0].Map[0], shells[0].Map[1] = 0, 1
	shells[0].N, shells[0].NActive = 2, 1

	Evaluate(bodies, shells, 0, 1, 1.0, DefaultSwitch, false, false, 0, nil, nil)

	chk.Vector(tst, "active body acc", 1e-15, bodies[0].Acc[:], []float64{0, 0, 0})
	if bodies[1].Acc[0] >= 0 {
		tst.Errorf("expected the passive body to be pulled toward the active one (negative x accel), got %v", bodies[1].Acc[0])
	}
}
