// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nbody

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestClosestApproachHeadOn(tst *testing.T) {
	chk.PrintTitle("ClosestApproachHeadOn. two bodies closing along x reach separation 0")

	p1 := &Body{Pos: [3]float64{-1, 0, 0}, Vel: [3]float64{1, 0, 0}}
	p2 := &Body{Pos: [3]float64{1, 0, 0}, Vel: [3]float64{-1, 0, 0}}
	rminSq := ClosestApproachSq(p1, p2, 2.0)
	chk.Scalar(tst, "rmin^2", 1e-12, rminSq, 0)
}

func TestClosestApproachReversedSign(tst *testing.T) {
	chk.PrintTitle("ClosestApproachReversedSign. negative dt mirrors the forward prediction")

	p1 := &Body{Pos: [3]float64{0, 0, 0}, Vel: [3]float64{1, 0, 0}}
	p2 := &Body{Pos: [3]float64{0, 1, 0}, Vel: [3]float64{0, 0, 0}}
	fwd := ClosestApproachSq(p1, p2, 1.0)
	bwd := ClosestApproachSq(p1, p2, -1.0)
	chk.Scalar(tst, "fwd==bwd", 1e-12, fwd, bwd)
}

func TestClosestApproachStationaryPair(tst *testing.T) {
	chk.PrintTitle("ClosestApproachStationaryPair. zero relative velocity returns the current separation")

	p1 := &Body{Pos: [3]float64{0, 0, 0}}
	p2 := &Body{Pos: [3]float64{3, 4, 0}}
	rminSq := ClosestApproachSq(p1, p2, 5.0)
	chk.Scalar(tst, "rmin^2", 1e-12, rminSq, 25)
}
