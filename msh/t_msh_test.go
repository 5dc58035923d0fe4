// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_msh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh01. structured grid construction")

	m, err := NewStructured(0, 4, 0, 4, 2, 2, 2)
	if err != nil {
		tst.Errorf("NewStructured failed:\n%v", err)
		return
	}
	chk.IntAssert(len(m.Cells), 4)
	chk.IntAssert(len(m.Verts), 9)
	chk.IntAssert(len(m.Hanging), 0)
	chk.Float64(tst, "hmin", 1e-15, m.Hmin(), 2.0)
	chk.Float64(tst, "hmin finest", 1e-15, m.HminFinest(), 0.5)

	// boundary tags: each side tagged on two cells
	for _, tag := range []int{TagBottom, TagRight, TagTop, TagLeft} {
		chk.IntAssert(len(m.FaceTag2cells[tag]), 2)
	}

	// global refinement
	m.RefineGlobal(1)
	chk.IntAssert(len(m.Cells), 16)
	chk.IntAssert(len(m.Verts), 25)
	chk.IntAssert(len(m.Hanging), 0)
	chk.Float64(tst, "hmin", 1e-15, m.Hmin(), 1.0)
}

func Test_msh02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh02. local refinement, hanging vertices and balance")

	m, _ := NewStructured(0, 2, 0, 2, 2, 2, 3)

	// refine a single cell: 7 cells, 4 hanging vertices impossible on
	// a 2x2 grid corner cell (two edges are boundary) => 2 hanging
	refine := make([]bool, len(m.Cells))
	refine[0] = true
	tr, changed := m.Adapt(refine, nil)
	if !changed {
		tst.Errorf("Adapt reported no change")
		return
	}
	chk.IntAssert(len(m.Cells), 7)
	chk.IntAssert(len(m.Hanging), 2)

	// hanging vertices sit at the midpoint of their masters
	for vid, masters := range m.Hanging {
		v := m.Verts[vid]
		a := m.Verts[masters[0]]
		b := m.Verts[masters[1]]
		chk.Float64(tst, "x mid", 1e-15, v.C[0], 0.5*(a.C[0]+b.C[0]))
		chk.Float64(tst, "y mid", 1e-15, v.C[1], 0.5*(a.C[1]+b.C[1]))
	}

	// transfer reproduces a bilinear field exactly
	// (f = x + 2y is bilinear on every cell)
	uold := make([]float64, len(tr.Src))
	f := func(x, y float64) float64 { return x + 2*y }
	for i, src := range tr.Src {
		if src >= 0 {
			uold[src] = f(m.Verts[i].C[0], m.Verts[i].C[1])
		}
	}
	// fill values for vertices removed by the rebuild: none here, the
	// old mesh had 9 vertices all surviving
	unew := make([]float64, len(m.Verts))
	// rebuild uold on the old numbering: old vertices are those with
	// src >= 0; newborn values come from interpolation
	tr.Apply(unew, uold)
	for i, v := range m.Verts {
		chk.Float64(tst, "transfer", 1e-14, unew[i], f(v.C[0], v.C[1]))
	}
}

func Test_msh03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh03. 2:1 balance enforcement")

	m, _ := NewStructured(0, 4, 0, 4, 4, 4, 3)

	// refine one interior cell twice; the second round must drag the
	// coarse neighbours along to keep the balance
	idx := -1
	for i, c := range m.Cells {
		x := m.CellCoords(c)
		if x[0][0] == 1 && x[1][0] == 1 {
			idx = i
		}
	}
	if idx < 0 {
		tst.Errorf("interior cell not found")
		return
	}
	refine := make([]bool, len(m.Cells))
	refine[idx] = true
	m.Adapt(refine, nil)
	n1 := len(m.Cells)
	chk.IntAssert(n1, 19)

	// refine all level-1 cells
	refine = make([]bool, len(m.Cells))
	for i, c := range m.Cells {
		if c.Level == 1 {
			refine[i] = true
		}
	}
	m.Adapt(refine, nil)

	// no two edge neighbours may differ by more than one level
	for _, c := range m.Cells {
		k := m.cellKey(c)
		for side := 0; side < 4; side++ {
			for _, fk := range m.adjacentAtLevel(k, side, k.l+2) {
				if m.active[fk] {
					tst.Errorf("balance violated at cell %d side %d", c.Id, side)
					return
				}
			}
		}
	}
}

func Test_msh04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh04. coarsening restores the parent cell")

	m, _ := NewStructured(0, 2, 0, 2, 2, 2, 2)
	refine := make([]bool, len(m.Cells))
	refine[0] = true
	m.Adapt(refine, nil)
	chk.IntAssert(len(m.Cells), 7)

	// merge the four children back
	coarsen := make([]bool, len(m.Cells))
	for i, c := range m.Cells {
		if c.Level == 1 {
			coarsen[i] = true
		}
	}
	tr, changed := m.Adapt(nil, coarsen)
	if !changed {
		tst.Errorf("coarsening did not change the mesh")
		return
	}
	chk.IntAssert(len(m.Cells), 4)
	chk.IntAssert(len(m.Hanging), 0)

	// every vertex of the coarse mesh survives with a source
	for i := range m.Verts {
		if tr.Src[i] < 0 {
			tst.Errorf("vertex %d has no transfer source", i)
		}
	}
}

func Test_msh05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh05. partitioning and vertex lookup")

	m, _ := NewStructured(0, 1, 0, 1, 4, 4, 1)
	m.Partition(3)
	counts := make(map[int]int)
	for _, c := range m.Cells {
		counts[c.Part]++
	}
	chk.IntAssert(len(counts), 3)
	for p := 0; p < 3; p++ {
		if counts[p] < 4 {
			tst.Errorf("partition %d too small: %d cells", p, counts[p])
		}
	}

	vid := m.FindVert(0.26, 0.51)
	chk.Float64(tst, "x", 1e-15, m.Verts[vid].C[0], 0.25)
	chk.Float64(tst, "y", 1e-15, m.Verts[vid].C[1], 0.5)
}
