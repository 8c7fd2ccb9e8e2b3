// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nbody

// Body holds the state of a single point mass.
//
//	Mass -- gravitational mass; zero for a test particle
//	Pos  -- position (x,y,z)
//	Vel  -- velocity (vx,vy,vz)
//	Acc  -- acceleration accumulated by the last interaction evaluation
//	Jerk -- da/dt accumulated by the last interaction evaluation (only
//	        populated when the active schedule carries a force-gradient term)
type Body struct {
	Mass float64
	Pos  [3]float64
	Vel  [3]float64
	Acc  [3]float64
	Jerk [3]float64

	// Symmetric marks a passive (zero-mass) body that should still exert a
	// back-reaction on the active bodies it interacts with (the "test
	// particle type" flag of spec.md §4.5). Ignored for active bodies.
	Symmetric bool
}

// Bodies is the full particle set fed to the integrator. Indices
// [0, NActive) are active (they feel and exert gravity); indices
// [NActive, len(B)) are passive test particles (they feel gravity but, unless
// Body.Symmetric is set, do not exert it).
type Bodies struct {
	B       []Body
	NActive int
}

// N returns the total number of bodies, active and passive.
func (o *Bodies) N() int { return len(o.B) }

// Clone returns a deep copy of the body set; used to back up and restore
// state around predictions and cooperative cancellation the same way
// fem.Domain.backup/restore snapshot solution vectors before a trial step.
func (o *Bodies) Clone() *Bodies {
	c := &Bodies{B: make([]Body, len(o.B)), NActive: o.NActive}
	copy(c.B, o.B)
	return c
}

// CopyFrom overwrites o's state with src's, in place (no allocation), mirroring
// la.VecCopy's role in fem's backup/restore pair.
func (o *Bodies) CopyFrom(src *Bodies) {
	copy(o.B, src.B)
	o.NActive = src.NActive
}
