// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nbody

import "github.com/cpmech/gosl/utl"

// ClosestApproachSq returns the squared minimum separation the pair (p1,p2)
// attains over the interval dt, assuming straight-line motion at the current
// velocities (spec.md §4.3). dt may be negative, as it is for the reversed
// sub-steps a processed schedule's postprocessor issues.
func ClosestApproachSq(p1, p2 *Body, dt float64) float64 {
	sign := 1.0
	if dt < 0 {
		sign = -1.0
	}
	absDt := dt * sign

	dr := [3]float64{
		p1.Pos[0] - p2.Pos[0],
		p1.Pos[1] - p2.Pos[1],
		p1.Pos[2] - p2.Pos[2],
	}
	dv := [3]float64{
		sign * (p1.Vel[0] - p2.Vel[0]),
		sign * (p1.Vel[1] - p2.Vel[1]),
		sign * (p1.Vel[2] - p2.Vel[2]),
	}

	r1sq := utl.Dot3d(dr[:], dr[:])

	rEnd := [3]float64{
		dr[0] + absDt*dv[0],
		dr[1] + absDt*dv[1],
		dr[2] + absDt*dv[2],
	}
	r2sq := utl.Dot3d(rEnd[:], rEnd[:])

	rminSq := utl.Min(r1sq, r2sq)

	dvSq := utl.Dot3d(dv[:], dv[:])
	if dvSq == 0 {
		return rminSq
	}
	tStar := -utl.Dot3d(dr[:], dv[:]) / dvSq

	if absDt > 0 {
		frac := tStar / absDt
		if frac >= 0 && frac <= 1 {
			rMid := [3]float64{
				dr[0] + tStar*dv[0],
				dr[1] + tStar*dv[1],
				dr[2] + tStar*dv[2],
			}
			r3sq := utl.Dot3d(rMid[:], rMid[:])
			rminSq = utl.Min(rminSq, r3sq)
		}
	}
	return rminSq
}
