// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nbody implements a hierarchical multi-shell symplectic N-body
// integrator: a fixed-step operator-splitting integrator whose drift
// sub-steps recursively spawn an inner, finer-stepped integrator around
// close encounters, with the pairwise force handed off between shells by a
// C^infinity switching function.
package nbody
