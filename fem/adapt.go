// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/minasel/eaglefrac/msh"

// RefineFlags inspects the current phase-field solution and flags
// cells for adaptation: a cell is refined when its smallest nodal
// phase-field value drops below the threshold and it has depth left;
// a fully intact cell above the base refinement level is flagged for
// coarsening (the mesh layer still rejects merges that would break
// the 2:1 balance). needed is true when at least one cell can be
// refined; coarsening alone never forces a redo of the step.
func (o *Domain) RefineFlags() (refine, coarsen []bool, needed bool) {
	g := &o.Sim.Grid
	thr := o.Sim.PhaseField.RefThr
	maxlvl := g.Nglobal + g.Nadapt
	refine = make([]bool, len(o.Msh.Cells))
	coarsen = make([]bool, len(o.Msh.Cells))
	for i, c := range o.Msh.Cells {
		phimin := o.PhiMin(c)
		if phimin < thr {
			if c.Level < maxlvl {
				refine[i] = true
				needed = true
			}
			continue
		}
		if phimin > 0.99 && c.Level > g.Nglobal && !o.inPreRegion(c) {
			coarsen[i] = true
		}
	}
	return
}

// inPreRegion tells whether the centre of a cell lies inside the
// pre-refined region, which is kept at full depth for the whole run
func (o *Domain) inPreRegion(c *msh.Cell) bool {
	if len(o.Sim.Grid.PreRegion) != 4 {
		return false
	}
	box := o.Sim.Grid.PreRegion
	var xc, yc float64
	for _, v := range c.Verts {
		xc += o.Nodes[v].Vert.C[0]
		yc += o.Nodes[v].Vert.C[1]
	}
	xc /= 4
	yc /= 4
	return xc >= box[0] && xc <= box[1] && yc >= box[2] && yc <= box[3]
}

// Refine applies the given adaptation flags: the mesh is rebuilt and
// the three solution-history vectors are interpolated onto the new
// dof layout. Returns whether the mesh actually changed.
func (o *Domain) Refine(refine, coarsen []bool) (changed bool) {
	tr, changed := o.Msh.Adapt(refine, coarsen)
	if !changed {
		return
	}
	o.SetMesh(o.Msh, tr)
	return
}
