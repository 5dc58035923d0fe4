// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// nlStatus reports the outcome of one Newton/active-set solve
type nlStatus int

const (
	nlConverged nlStatus = iota
	nlMaxIter
)

// NewtonActiveSet runs the Newton iteration augmented with the
// active-set enforcement of fracture irreversibility. Convergence
// requires both a stable active set and a residual norm below
// tolerance; either condition alone is not acceptance.
type NewtonActiveSet struct {
	Dom *Domain

	// diagnostics of the last Run
	Nit    int     // number of iterations
	Resid  float64 // final residual norm
	LinIts int     // cumulative linear-solver calls (outer count)
}

// Run solves the nonlinear system at the current time-step target.
// The residual is evaluated with the pressure coupling included; the
// caller is responsible for boundary conditions (SetBcs) and the
// pressure field (UpdatePressure) being up to date.
func (o *NewtonActiveSet) Run() (status nlStatus, err error) {

	d := o.Dom
	dat := &d.Sim.Solver
	showr := dat.ShowR && d.Root
	o.LinIts = 0

	// fresh active set for this solve
	d.ASet = NewActiveSet()

	// iteration table
	if showr {
		io.Pf("\n%8s%8s%23s%8s%8s\n", "Iter #", "ASet", "error", "GMRES", "Search")
	}

	first := true
	for it := 0; it < dat.NmaxIt; it++ {
		o.Nit = it + 1

		// recompute active set; membership can only grow
		prev := d.ASet
		d.ASet = prev.Update(d)
		changed := !d.ASet.Equal(prev)

		// assemble masked residual and reduce across processors
		err = o.assembleFb()
		if err != nil {
			return
		}
		o.Resid = d.Fb.Norm()

		if showr {
			io.Pf("%8d%8d%23.15e%8d%8d\n", it, d.ASet.Size(), o.Resid, o.LinIts, 0)
		}

		// convergence: stable active set AND small residual; the check
		// is skipped at iteration zero where no previous set exists
		if it > 0 && !changed && o.Resid < dat.FbTol {
			return nlConverged, nil
		}

		// assemble Jacobian
		d.Kb.Start()
		for _, e := range d.Elems {
			err = e.AddToKb(d.Sol, true)
			if err != nil {
				return
			}
		}
		d.putConstraintRows()

		// the sparsity pattern changes whenever the active set grows
		if first || changed {
			if !d.InitLSol {
				d.LinSol.Free()
				// gosl solvers panic on a second Init; re-initialisation
				// requires a fresh instance
				d.LinSol = la.NewSparseSolver(d.Sim.LinSol.Name)
			}
			d.LinSol.Init(d.Kb, &la.SpArgs{
				Symmetric:    d.Sim.LinSol.Symmetric,
				Verbose:      d.Sim.LinSol.Verbose,
				Ordering:     d.Sim.LinSol.Ordering,
				Scaling:      d.Sim.LinSol.Scaling,
				Communicator: d.Cmm,
			})
			d.InitLSol = false
			first = false
		}

		// factorise and solve for the increment
		d.LinSol.Fact()
		d.LinSol.Solve(d.Wb, d.Fb, false)
		o.LinIts++

		// update trial solution
		for i := 0; i < d.Ny; i++ {
			d.Sol.Y[i] += d.Wb[i]
		}
	}

	return nlMaxIter, nil
}

// assembleFb builds the global residual: element contributions with
// the pressure coupling, collective sum across processors, then
// masking of eliminated and hanging rows
func (o *NewtonActiveSet) assembleFb() (err error) {
	d := o.Dom
	d.Fb.Fill(0)
	for _, e := range d.Elems {
		err = e.AddToRhs(d.Sol, true)
		if err != nil {
			return
		}
	}
	if d.Distr {
		copy(d.Wb, d.Fb)
		d.Cmm.AllReduceSum(d.Fb, d.Wb)
	}
	d.maskFb()
	return
}
