// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"os"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/minasel/eaglefrac/inp"
)

func Test_pfrac01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pfrac01. tension step on a plate with a single defect")

	sim := inp.ReadSim("data/pfrac-square.sim", "", true)
	dom, err := NewDomain(sim, 0, 1, false)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}

	// one solve at the first target time
	t := 0.01
	dom.Sol.T = t
	dom.Sol.Dt = t
	dom.SetBcs(t)
	dom.UpdatePressure(t)
	nl := &NewtonActiveSet{Dom: dom}
	status, err := nl.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.IntAssert(int(status), int(nlConverged))
	if nl.Resid >= sim.Solver.FbTol {
		tst.Errorf("converged residual %g is not below the tolerance %g", nl.Resid, sim.Solver.FbTol)
		return
	}

	// acceptance requires a stable active set as well
	if !dom.ASet.Update(dom).Equal(dom.ASet) {
		tst.Errorf("active set is not stable at convergence")
		return
	}

	// fracture irreversibility: the phase field never grows
	for _, nod := range dom.Nodes {
		eq := nod.GetEq("phi")
		if dom.Sol.Y[eq] > dom.Sol.YOld[eq]+1e-12 {
			tst.Errorf("phase field healed at vertex %d: %g > %g", nod.Vert.Id, dom.Sol.Y[eq], dom.Sol.YOld[eq])
			return
		}
	}

	// the defect stays fully broken
	vid := dom.Msh.FindVert(0.1, 0.5)
	eqphi := dom.Nodes[vid].GetEq("phi")
	if dom.Sol.Y[eqphi] > 1e-12 {
		tst.Errorf("defect vertex recovered: phi=%g", dom.Sol.Y[eqphi])
		return
	}

	// prescribed displacements are satisfied exactly
	top := dom.Msh.FindVert(0.5, 1.0)
	chk.Float64(tst, "uy at top", 1e-15, dom.Sol.Y[dom.Nodes[top].GetEq("uy")], 1e-4*t)
	bot := dom.Msh.FindVert(0.5, 0.0)
	chk.Float64(tst, "uy at bottom", 1e-15, dom.Sol.Y[dom.Nodes[bot].GetEq("uy")], 0)
}

func Test_pfrac02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pfrac02. complete run with output files")

	analysis, err := NewFEM("data/pfrac-square.sim", "", true, false, chk.Verbose)
	if err != nil {
		tst.Errorf("NewFEM failed:\n%v", err)
		return
	}
	err = analysis.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// single table row, tmax = dt: exactly one accepted step
	chk.IntAssert(analysis.Control.Step, 1)
	chk.Float64(tst, "final time", 1e-15, analysis.Control.Time, 0.01)

	// collection file and reaction-load history were written
	sim := analysis.Sim
	if _, err := os.Stat(io.Sf("%s/%s.pvd", sim.DirOut, sim.Key)); err != nil {
		tst.Errorf("missing collection file:\n%v", err)
		return
	}
	b := io.ReadFile(io.Sf("%s/boundary_load-%d.txt", sim.DirOut, -12))
	if len(b) == 0 {
		tst.Errorf("load history is empty")
	}
}
