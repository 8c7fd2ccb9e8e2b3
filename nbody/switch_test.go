// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nbody

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestSwitchEndpoints(tst *testing.T) {
	chk.PrintTitle("SwitchEndpoints. L saturates to 0 and 1 outside (rIn,rOut)")

	rIn, rOut := 1.0, 2.0
	if L := DefaultSwitch.L(0.5, rIn, rOut); L != 0 {
		tst.Errorf("L(d<=rIn) should be exactly 0, got %v", L)
	}
	if L := DefaultSwitch.L(3.0, rIn, rOut); L != 1 {
		tst.Errorf("L(d>=rOut) should be exactly 1, got %v", L)
	}
	if d := DefaultSwitch.Deriv(0.5, rIn, rOut); d != 0 {
		tst.Errorf("Deriv(d<=rIn) should be exactly 0, got %v", d)
	}
	if d := DefaultSwitch.Deriv(3.0, rIn, rOut); d != 0 {
		tst.Errorf("Deriv(d>=rOut) should be exactly 0, got %v", d)
	}
}

func TestSwitchMonotone(tst *testing.T) {
	chk.PrintTitle("SwitchMonotone. L is non-decreasing across the band")

	rIn, rOut := 1.0, 2.0
	prev := -1.0
	for d := rIn - 0.1; d <= rOut+0.1; d += 0.01 {
		L := DefaultSwitch.L(d, rIn, rOut)
		if L < prev-1e-15 {
			tst.Errorf("L not monotone at d=%v: %v < %v", d, L, prev)
		}
		prev = L
	}
}

func TestSwitchDeriv(tst *testing.T) {
	chk.PrintTitle("SwitchDeriv. dL/dd matches a centered finite difference")

	rIn, rOut := 1.0, 2.0
	for _, d := range []float64{1.1, 1.3, 1.5, 1.7, 1.9} {
		dana := DefaultSwitch.Deriv(d, rIn, rOut)
		chk.DerivScaSca(tst, "dL/dd", 1e-7, dana, d, 1e-3, chk.Verbose, func(x float64) (float64, error) {
			return DefaultSwitch.L(x, rIn, rOut), nil
		})
	}
}
