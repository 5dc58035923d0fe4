// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/minasel/eaglefrac/inp"
)

func Test_press01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("press01. nodal pressure follows the broken cells")

	sim := inp.ReadSim("data/pfrac-press.sim", "", true)
	dom, err := NewDomain(sim, 0, 1, false)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}

	// the defect breaks the left half: both left cells have mean
	// phase field 0.5, both right cells stay intact
	t := 2.0
	pval := 1e-3 * t
	dom.UpdatePressure(t)

	for _, pt := range [][]float64{{0, 0.5}, {0.5, 0.5}, {0, 0}, {0, 1}} {
		v := dom.Msh.FindVert(pt[0], pt[1])
		chk.Float64(tst, "p left", 1e-15, dom.Press[v], pval)
	}
	for _, pt := range [][]float64{{1, 0}, {1, 0.5}, {1, 1}} {
		v := dom.Msh.FindVert(pt[0], pt[1])
		chk.Float64(tst, "p right", 1e-15, dom.Press[v], 0)
	}

	// a healed domain carries no pressure anywhere and stale values
	// are wiped on every update
	for _, nod := range dom.Nodes {
		dom.Sol.YOld[nod.GetEq("phi")] = 1.0
	}
	dom.UpdatePressure(t)
	for v := range dom.Msh.Verts {
		chk.Float64(tst, "p healed", 1e-15, dom.Press[v], 0)
	}

	// one damaged vertex is not enough while the cell mean stays
	// above the threshold
	vrb := dom.Msh.FindVert(1, 0)
	dom.Sol.YOld[dom.Nodes[vrb].GetEq("phi")] = 0.7 // mean = 0.925
	dom.UpdatePressure(t)
	chk.Float64(tst, "p above threshold", 1e-15, dom.Press[vrb], 0)

	dom.Sol.YOld[dom.Nodes[vrb].GetEq("phi")] = 0.5 // mean = 0.875
	dom.UpdatePressure(t)
	chk.Float64(tst, "p below threshold", 1e-15, dom.Press[vrb], pval)
}

func Test_press02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("press02. no pressure function keeps the field zero")

	sim := inp.ReadSim("data/pfrac-square.sim", "", true)
	dom, err := NewDomain(sim, 0, 1, false)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}

	dom.Press[0] = 123.0 // stale value must not survive
	dom.UpdatePressure(0.5)
	for v := range dom.Msh.Verts {
		chk.Float64(tst, "p", 1e-15, dom.Press[v], 0)
	}
}

func Test_phistar01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("phistar01. phase-field extrapolation")

	sol := &Solution{
		Y:       []float64{0},
		YOld:    []float64{0.8},
		YOldOld: []float64{0.9},
	}

	// linear extrapolation from the two previous steps
	chk.Float64(tst, "phistar", 1e-15, sol.PhiStar(0), 0.7)

	// after a step cut the extrapolation falls back to the last
	// accepted value
	sol.UseOldPhi = true
	chk.Float64(tst, "phistar cut", 1e-15, sol.PhiStar(0), 0.8)
}
