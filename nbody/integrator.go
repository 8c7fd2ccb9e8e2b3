// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nbody

import (
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// AccelHook is the single externally supplied acceleration hook the
// integrator accepts beyond gravity (spec.md §1 Non-goals): it is called
// once per kick, after the pairwise gravitational interaction has been
// evaluated, and must add its contribution directly into bodies[i].Acc for
// every i in ids.
type AccelHook func(bodies []Body, ids []int, t, scale float64)

// Sim is the external collaborator the integrator operates on: the body
// array, the physical constant G, the macro time step, and the cooperative
// cancellation/validation contracts of spec.md §6.
type Sim struct {
	Bodies *Bodies
	G      float64
	Dt     float64 // fixed outer macro time step (never adapted -- spec.md §1 Non-goals)

	Time       float64
	DtLastDone float64

	ExternalAccel      AccelHook
	ExternalAccelScale fun.Func // envelope multiplying ExternalAccel's contribution; nil == 1

	// Sigint polls for cooperative cancellation (spec.md §5); nil disables it.
	Sigint func() bool

	// Collaborator-contract validation flags (spec.md §6/§7): set by the
	// driver to describe its own configuration; Part1 only warns about
	// these, it never acts on them.
	VariationalEquationsPresent bool
	CollisionMode               string // warn if non-empty and != "direct"
	ExternalGravityRoutineSet   bool
}

// Config holds the recognized integrator options (spec.md §6).
type Config struct {
	PhiOuter *Schedule
	PhiInner *Schedule
	N        int // inner subdivision per outer drift sub-step
	WHSplitting bool
	SafeMode    bool
	DtFrac      float64
	SMax        int

	CentralBodyIndex int // which body index is exempt from the WH outer-shell subtraction (spec.md §9)
	Switch           SwitchFunc

	// RecalculateDcritThisTimestep is a one-shot trigger consumed by Part1.
	RecalculateDcritThisTimestep bool
}

// Integrator is the hierarchical multi-shell symplectic integrator core.
// It owns all shell-indexed scratch buffers; callers receive read-only
// observations after Synchronize (spec.md §9 "Ownership").
type Integrator struct {
	Config Config

	Shells       []ShellState
	Inshell      []int
	jerkBuf      [][]float64 // n x 3, allocated via utl.DblsAlloc
	MaxShellUsed int

	allocN       int
	synchronized bool
	firstStep    bool
}

// NewIntegrator returns an integrator with defaults applied (spec.md §6 reset
// defaults).
func NewIntegrator() *Integrator {
	I := new(Integrator)
	I.Reset()
	return I
}

// Reset frees all owned buffers and restores the documented defaults:
// phi_outer=LF, phi_inner=LF, n=10, WH-splitting on, safe-mode on,
// dt_frac=0.1, S_max=10 (spec.md §6).
func (I *Integrator) Reset() {
	I.Config = Config{
		PhiOuter:         GetSchedule("LF"),
		PhiInner:         GetSchedule("LF"),
		N:                10,
		WHSplitting:      true,
		SafeMode:         true,
		DtFrac:           0.1,
		SMax:             10,
		CentralBodyIndex: 0,
		Switch:           DefaultSwitch,
	}
	I.Shells = nil
	I.Inshell = nil
	I.jerkBuf = nil
	I.MaxShellUsed = 0
	I.allocN = 0
	I.synchronized = true
	I.firstStep = true
}

// switchFn returns the configured switching function, falling back to the
// C^infinity default (spec.md §9 "global switching-function pointer is a
// design wart" -> carried as configuration instead).
func (I *Integrator) switchFn() SwitchFunc {
	if I.Config.Switch == nil {
		return DefaultSwitch
	}
	return I.Config.Switch
}

// interruptFn adapts sim.Sigint to the closure Evaluate polls.
func (I *Integrator) interruptFn(sim *Sim) func() bool {
	if sim == nil || sim.Sigint == nil {
		return nil
	}
	return sim.Sigint
}

// allocate (re)sizes every shell-indexed buffer to n bodies and recomputes
// dcrit for all shells (spec.md §3 Lifecycle: "shell-0 arrays are
// (re)allocated whenever the body count grows").
func (I *Integrator) allocate(sim *Sim, n int) {
	I.Shells = make([]ShellState, I.Config.SMax)
	for s := range I.Shells {
		I.Shells[s].resize(n)
	}
	I.Inshell = make([]int, n)
	I.jerkBuf = utl.DblsAlloc(n, 3)
	I.MaxShellUsed = 0
	I.allocN = n
	I.recalcDcrit(sim)
}

// recalcDcrit recomputes dcrit[s][i] for every shell depth and every body,
// using the per-depth drift time derived from sim.Dt and Config.N (spec.md
// §4.2).
func (I *Integrator) recalcDcrit(sim *Sim) {
	for s := range I.Shells {
		dtShell := shellDt(sim.Dt, I.Config.N, s)
		CalcDcrit(I.Shells[s].Dcrit, sim.Bodies.B, sim.G, dtShell, I.Config.DtFrac)
	}
}

// Part1 performs pre-step bookkeeping: validates the collaborator contracts
// of spec.md §6/§7, (re)allocates shell structures if the body count grew,
// recomputes dcrit on request, and installs the default switching function
// if none is set.
func (I *Integrator) Part1(sim *Sim) error {
	if sim.VariationalEquationsPresent {
		io.PfYel("warning: variational equations are present but unsupported; the integrator proceeds with its own equations of motion\n")
	}
	if sim.CollisionMode != "" && sim.CollisionMode != "direct" {
		io.PfYel("warning: collision mode %q is not DIRECT; proceeding as if DIRECT collision handling were configured\n", sim.CollisionMode)
	}
	if sim.ExternalGravityRoutineSet {
		io.PfYel("warning: an external gravity routine is configured; the integrator ignores it and evaluates gravity itself\n")
	}
	if I.Config.Switch == nil {
		I.Config.Switch = DefaultSwitch
	}
	if sim.ExternalAccel != nil && sim.ExternalAccelScale == nil {
		sim.ExternalAccelScale = &fun.Cte{C: 1} // full-strength envelope, same default fem.inp gives DtFunc/DtoFunc
	}

	n := sim.Bodies.N()
	if n != I.allocN {
		I.allocate(sim, n)
	}

	if I.Config.RecalculateDcritThisTimestep {
		if !I.synchronized {
			io.PfYel("warning: recomputing dcrit while unsynchronized; forcing synchronize() first\n")
			I.Synchronize(sim)
		}
		I.recalcDcrit(sim)
		I.Config.RecalculateDcritThisTimestep = false
	}
	return nil
}

// buildShell0 resets map[0] to the identity permutation, active bodies
// first (spec.md §3 Lifecycle: "map[0] is the identity permutation at the
// start of every macro-step").
func (I *Integrator) buildShell0(sim *Sim) {
	s0 := &I.Shells[0]
	n := sim.Bodies.N()
	na := sim.Bodies.NActive
	for i := 0; i < n; i++ {
		s0.Map[i] = i
	}
	s0.N = n
	s0.NActive = na
	for i := 0; i < n; i++ {
		I.Inshell[i] = 1
	}
}

// Part2 performs the single macro-step described in spec.md §4.8: optional
// preprocessor on the first step, the main step, advancing sim.Time by
// sim.Dt, and (in safe mode) the postprocessor.
func (I *Integrator) Part2(sim *Sim) error {
	I.buildShell0(sim)

	if I.firstStep {
		I.Config.PhiOuter.Run(I, sim, 0, sim.Dt, RolePre)
		I.synchronized = false
		I.firstStep = false
	}

	I.Config.PhiOuter.Run(I, sim, 0, sim.Dt, RoleStep)
	sim.Time += sim.Dt
	sim.DtLastDone = sim.Dt

	if I.Config.SafeMode {
		I.Config.PhiOuter.Run(I, sim, 0, sim.Dt, RolePost)
		I.synchronized = true
	} else {
		I.synchronized = false
	}
	return nil
}

// Synchronize runs the outer postprocessor if a macro-step is pending
// synchronization; idempotent (spec.md §4.8, §8 testable property 6).
func (I *Integrator) Synchronize(sim *Sim) error {
	if I.synchronized {
		return nil
	}
	I.Config.PhiOuter.Run(I, sim, 0, sim.DtLastDone, RolePost)
	I.synchronized = true
	return nil
}

// drift resolves shell+1 from `shell` first -- clearing Inshell for every
// promoted body (spec.md §4.4) -- then advances only the bodies the resolver
// left at inshell==1 by driftLen, and finally recurses into shell+1 for any
// bodies that were promoted (spec.md §4.6). Kicks never recurse; only drift
// does. The resolve-then-advance order matters: a body promoted to shell+1
// is driven by the inner recursion instead, so it must not also take the
// outer driftLen step here.
func (I *Integrator) drift(sim *Sim, shell int, driftLen float64) {
	promoted := buildNextShell(I.Shells, shell, driftLen, sim.Bodies.B, I.Inshell, I.Config.WHSplitting)

	cur := &I.Shells[shell]
	for _, i := range cur.Map[:cur.N] {
		if I.Inshell[i] == 1 {
			b := &sim.Bodies.B[i]
			b.Pos[0] += driftLen * b.Vel[0]
			b.Pos[1] += driftLen * b.Vel[1]
			b.Pos[2] += driftLen * b.Vel[2]
		}
	}

	if !promoted {
		return
	}
	if shell+1 > I.MaxShellUsed {
		I.MaxShellUsed = shell + 1
	}

	inner := I.Config.PhiInner
	n := I.Config.N
	inner.Run(I, sim, shell+1, driftLen, RolePre)
	innerDt := driftLen / float64(n)
	for k := 0; k < n; k++ {
		inner.Run(I, sim, shell+1, innerDt, RoleStep)
	}
	inner.Run(I, sim, shell+1, driftLen, RolePost)
}

// Snapshot is a read-only view of integrator state for driver diagnostics,
// obtainable without reaching into integrator internals (SPEC_FULL.md §C.5).
type Snapshot struct {
	Time         float64
	DtLastDone   float64
	MaxShellUsed int
	Synchronized bool
}

// Observe returns a snapshot of the integrator's current state relative to
// sim. Callers needing consistent positions/velocities as well must
// Synchronize first (spec.md §4.8).
func (I *Integrator) Observe(sim *Sim) Snapshot {
	return Snapshot{
		Time:         sim.Time,
		DtLastDone:   sim.DtLastDone,
		MaxShellUsed: I.MaxShellUsed,
		Synchronized: I.synchronized,
	}
}
