// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the coupled displacement/phase-field solver
// for quasi-static brittle fracture in a pressurized solid: the
// Newton/active-set iteration, the time-step controller with /10
// cutting, and the adaptive-refinement redo loop
package fem

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/minasel/eaglefrac/inp"
	"github.com/minasel/eaglefrac/out"
)

// FEM holds all data of one simulation
type FEM struct {
	Sim     *inp.Simulation // simulation data
	Dom     *Domain         // the domain
	Post    *Postprocessor  // output of accepted steps
	Control *Control        // time-step controller
	Nproc   int             // number of processors
	Proc    int             // processor id
	Verbose bool            // show messages (root only)
}

// NewFEM builds a simulation from a .sim file
//  Input:
//   simfilepath   -- simulation (.sim) filename including full path
//   alias         -- word to be appended to the simulation key
//   erasePrev     -- erase previous results files
//   allowParallel -- use MPI when available
//   verbose       -- show messages
func NewFEM(simfilepath, alias string, erasePrev, allowParallel, verbose bool) (o *FEM, err error) {

	// read input data
	o = new(FEM)
	o.Sim = inp.ReadSim(simfilepath, alias, erasePrev)

	// multiprocessing data
	o.Nproc = 1
	distr := false
	if mpi.IsOn() {
		if allowParallel {
			o.Proc = mpi.WorldRank()
			o.Nproc = mpi.WorldSize()
			distr = o.Nproc > 1
			if distr {
				o.Sim.LinSol.Name = "mumps"
			}
		}
	} else {
		o.Sim.LinSol.Name = "umfpack"
	}
	o.Verbose = verbose && o.Proc == 0

	// domain, output and controller
	o.Dom, err = NewDomain(o.Sim, o.Proc, o.Nproc, distr)
	if err != nil {
		return nil, err
	}
	writer := out.NewWriter(o.Sim.DirOut, o.Sim.Key, o.Proc, o.Nproc)
	o.Post = NewPostprocessor(o.Dom, writer)
	o.Control = &Control{
		Data:    &o.Sim.Solver,
		Runner:  newDomainRunner(o.Dom, o.Post),
		Verbose: o.Verbose,
	}
	return
}

// Run runs the simulation
func (o *FEM) Run() (err error) {

	// initial state snapshot
	err = o.Post.WriteFields(0)
	if err != nil {
		return
	}

	// time loop
	err = o.Control.Run()
	if err != nil {
		return
	}
	if o.Verbose {
		io.Pf("\nfinal time reached: t=%g after %d steps\n", o.Control.Time, o.Control.Step)
	}
	return
}
