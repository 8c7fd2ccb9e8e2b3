// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nbody

import "math"

// SwitchFunc is a C^infinity, monotone non-decreasing bump used to hand a
// pairwise interaction off between two neighbouring shells. L goes from 0 at
// d <= rIn to 1 at d >= rOut; Deriv returns dL/dd.
//
// Implementations may be supplied in place of the default (spec.md §4.1,
// §9 "global switching-function pointer is a design wart") by setting
// Config.Switch; the zero value of Config falls back to DefaultSwitch.
type SwitchFunc interface {
	L(d, rIn, rOut float64) float64
	Deriv(d, rIn, rOut float64) float64
}

// defaultSwitch is the reference C^infinity bump:
//
//	y = (d-rIn)/(rOut-rIn)
//	L(d) = 0                      y <= 0
//	     = 1                      y >= 1
//	     = f(y)/(f(y)+f(1-y))     otherwise, f(y) = exp(-1/y) for y>0, else 0
type defaultSwitch struct{}

// DefaultSwitch is the package-supplied C^infinity switching function.
var DefaultSwitch SwitchFunc = defaultSwitch{}

// bumpF implements f(y) = exp(-1/y) for y>0, 0 otherwise.
func bumpF(y float64) float64 {
	if y <= 0 {
		return 0
	}
	return math.Exp(-1 / y)
}

// bumpFderiv implements f'(y) = f(y)/y^2 for y>0, 0 otherwise.
func bumpFderiv(y float64) float64 {
	if y <= 0 {
		return 0
	}
	return bumpF(y) / (y * y)
}

func (defaultSwitch) L(d, rIn, rOut float64) float64 {
	if rOut <= rIn {
		if d >= rOut {
			return 1
		}
		return 0
	}
	y := (d - rIn) / (rOut - rIn)
	if y <= 0 {
		return 0
	}
	if y >= 1 {
		return 1
	}
	fy := bumpF(y)
	f1y := bumpF(1 - y)
	return fy / (fy + f1y)
}

// Deriv returns dL/dd via the chain rule, dy/dd = 1/(rOut-rIn). Outside
// (0,1) the derivative is exactly zero; this also protects against
// overflow for y arbitrarily close to either endpoint.
func (defaultSwitch) Deriv(d, rIn, rOut float64) float64 {
	if rOut <= rIn {
		return 0
	}
	y := (d - rIn) / (rOut - rIn)
	if y <= 0 || y >= 1 {
		return 0
	}
	fy := bumpF(y)
	f1y := bumpF(1 - y)
	dfy := bumpFderiv(y)
	df1y := bumpFderiv(1 - y)
	den := fy + f1y
	// d/dy [ fy/(fy+f1y) ] = (dfy*(fy+f1y) - fy*(dfy-df1y)) / den^2
	dLdy := (dfy*den - fy*(dfy-df1y)) / (den * den)
	return dLdy / (rOut - rIn)
}
