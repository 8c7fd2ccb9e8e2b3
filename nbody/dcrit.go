// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nbody

import "math"

// longestDriftCoef is the coefficient of the longest drift sub-step used to
// size dcrit at every shell depth (spec.md §4.2, §9 first Open Question).
// A strict port treats this as 0.5 at every depth regardless of which
// schedule is installed; see DESIGN.md for why no 6th-order outer schedule
// is wired to override it.
const longestDriftCoef = 0.5

// Cbrt returns the real cube root of a, computed with a fixed number of
// Newton iterations (x <- x - (x - a/x^2)/3) rather than a platform pow, so
// that results are reproducible across platforms (spec.md §4.2, testable
// property §8.7).
func Cbrt(a float64) float64 {
	if a == 0 {
		return 0
	}
	neg := a < 0
	if neg {
		a = -a
	}
	// seed from the exponent so Newton converges in a handful of steps
	// across the full a in [1e-30, 1e30] range required by §8.7.
	x := math.Ldexp(1, int(math.Ilogb(a))/3)
	for i := 0; i < 24; i++ {
		x -= (x - a/(x*x)) / 3
	}
	if neg {
		return -x
	}
	return x
}

// CalcDcrit fills dcrit[i] = cbrt(T^2 * G * m_i) for every body i, where
// T = dtShell / (dtFrac * 2*pi) (spec.md §4.2).
func CalcDcrit(dcrit []float64, bodies []Body, g, dtShell, dtFrac float64) {
	T := dtShell / (dtFrac * 2 * math.Pi)
	T2G := T * T * g
	for i := range bodies {
		dcrit[i] = Cbrt(T2G * bodies[i].Mass)
	}
}

// shellDt returns the drift time covered at shell depth s, given the outer
// (user-supplied) macro time step dt0 and the inner subdivision factor n:
//
//	dt_0     = dt0
//	dt_{s+1} = dt_s * longestDriftCoef / n
func shellDt(dt0 float64, n int, s int) float64 {
	dt := dt0
	for i := 0; i < s; i++ {
		dt *= longestDriftCoef / float64(n)
	}
	return dt
}
