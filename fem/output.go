// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/minasel/eaglefrac/out"
)

// Postprocessor turns accepted steps into output artifacts: boundary
// reaction histories on every step, visualization snapshots and
// crack-opening profiles at the output cadence
type Postprocessor struct {
	Dom    *Domain
	Writer *out.Writer

	step    int     // accepted step counter
	lastOut float64 // time of the last field output
	wrote   bool    // at least one field output written
}

// NewPostprocessor returns a postprocessor bound to one domain
func NewPostprocessor(dom *Domain, writer *out.Writer) *Postprocessor {
	return &Postprocessor{Dom: dom, Writer: writer}
}

// OnAccept runs the postprocessing of one accepted step
func (o *Postprocessor) OnAccept(t float64) (err error) {
	o.step++

	// reaction loads on every accepted step, root only
	if o.Dom.Root {
		for _, tag := range o.Dom.Sim.Out.LoadTags {
			fx, fy := o.Dom.BoundaryLoad(tag)
			err = out.AppendLoad(o.Dom.Sim.DirOut, tag, t, fx, fy)
			if err != nil {
				return
			}
		}
	}

	// field outputs at the requested cadence
	if o.wrote && t < o.lastOut+o.Dom.Sim.Out.DtOut {
		return
	}
	return o.WriteFields(t)
}

// WriteFields writes the visualization snapshot and the crack-opening
// profiles at time t
func (o *Postprocessor) WriteFields(t float64) (err error) {
	d := o.Dom

	s := &out.Snapshot{
		Step:   o.step,
		Time:   t,
		Mesh:   d.Msh,
		Ux:     make([]float64, len(d.Nodes)),
		Uy:     make([]float64, len(d.Nodes)),
		Phi:    make([]float64, len(d.Nodes)),
		Press:  d.Press,
		Active: make([]float64, len(d.Nodes)),
	}
	for i, nod := range d.Nodes {
		s.Ux[i] = d.Sol.Y[nod.GetEq("ux")]
		s.Uy[i] = d.Sol.Y[nod.GetEq("uy")]
		s.Phi[i] = d.Sol.Y[nod.GetEq("phi")]
		if d.ASet != nil && d.ASet.Contains(nod.GetEq("phi")) {
			s.Active[i] = 1
		}
	}
	err = o.Writer.WriteStep(s)
	if err != nil {
		return
	}

	if d.Root {
		for _, line := range d.Sim.Out.CodLines {
			sx, w := d.Cod(line)
			out.WriteCod(d.Sim.DirOut, o.step, sx, w)
		}
	}

	o.lastOut = t
	o.wrote = true
	return
}
