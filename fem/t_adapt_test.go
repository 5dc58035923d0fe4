// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/minasel/eaglefrac/inp"
)

func Test_adapt01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("adapt01. refinement follows the defect down to the finest level")

	sim := inp.ReadSim("data/pfrac-adapt.sim", "", false)
	dom, err := NewDomain(sim, 0, 1, false)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}

	// 2x2 root grid after one global refinement
	chk.IntAssert(len(dom.Msh.Cells), 16)

	refine, coarsen, needed := dom.RefineFlags()
	if !needed {
		tst.Errorf("cells along the defect should be flagged for refinement")
		return
	}
	nflagged := 0
	for i := range refine {
		if refine[i] {
			nflagged++
		}
		if coarsen[i] {
			tst.Errorf("no cell should be flagged for coarsening at the base level")
			return
		}
	}
	if nflagged == 0 {
		tst.Errorf("refinement was needed but no cell was flagged")
		return
	}

	// refine until the damaged region sits at the finest level
	for it := 0; it < 10 && needed; it++ {
		dom.Refine(refine, coarsen)
		refine, coarsen, needed = dom.RefineFlags()
	}
	if needed {
		tst.Errorf("refinement did not settle")
		return
	}
	if len(dom.Msh.Cells) <= 16 {
		tst.Errorf("refinement did not add cells: ncells=%d", len(dom.Msh.Cells))
		return
	}

	// every damaged cell has exhausted its depth
	maxlvl := sim.Grid.Nglobal + sim.Grid.Nadapt
	for _, c := range dom.Msh.Cells {
		if dom.PhiMin(c) < sim.PhaseField.RefThr {
			chk.IntAssert(c.Level, maxlvl)
		}
	}

	// the defect survives every transfer
	for _, x := range [][]float64{{0, 0.5}, {0.25, 0.5}, {0.5, 0.5}} {
		vid := dom.Msh.FindVert(x[0], x[1])
		eq := dom.Nodes[vid].GetEq("phi")
		chk.Float64(tst, "phi at defect", 1e-15, dom.Sol.Y[eq], 0)
	}

	// interpolated values stay within bounds
	for _, nod := range dom.Nodes {
		phi := dom.Sol.Y[nod.GetEq("phi")]
		if phi < 0 || phi > 1 {
			tst.Errorf("phase field out of bounds after transfer: %g", phi)
			return
		}
	}
}

func Test_adapt02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("adapt02. intact cells coarsen back to the base level")

	sim := inp.ReadSim("data/pfrac-adapt.sim", "", false)
	dom, err := NewDomain(sim, 0, 1, false)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}

	// refine around the defect first
	refine, coarsen, needed := dom.RefineFlags()
	for it := 0; it < 10 && needed; it++ {
		dom.Refine(refine, coarsen)
		refine, coarsen, needed = dom.RefineFlags()
	}
	nrefined := len(dom.Msh.Cells)

	// pretend the material is intact everywhere; the mesh machinery
	// should then merge siblings back, one level per pass
	for _, nod := range dom.Nodes {
		eq := nod.GetEq("phi")
		dom.Sol.Y[eq] = 1.0
		dom.Sol.YOld[eq] = 1.0
		dom.Sol.YOldOld[eq] = 1.0
	}
	for it := 0; it < 10; it++ {
		refine, coarsen, needed = dom.RefineFlags()
		if needed {
			tst.Errorf("intact mesh should not need refinement")
			return
		}
		if !dom.Refine(refine, coarsen) {
			break
		}
	}

	// back to the globally refined grid
	if len(dom.Msh.Cells) >= nrefined {
		tst.Errorf("coarsening did not remove cells: before=%d after=%d", nrefined, len(dom.Msh.Cells))
		return
	}
	chk.IntAssert(len(dom.Msh.Cells), 16)
	for _, c := range dom.Msh.Cells {
		chk.IntAssert(c.Level, sim.Grid.Nglobal)
	}
	chk.IntAssert(len(dom.Msh.Hanging), 0)
}
