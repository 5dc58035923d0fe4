// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/minasel/eaglefrac/inp"
	"github.com/minasel/eaglefrac/shp"
)

// BoundaryLoad integrates the traction of the degraded stress over a
// tagged boundary, returning the resultant force. The mesh and the
// solution are replicated, so any processor can evaluate this alone.
func (o *Domain) BoundaryLoad(tag int) (fx, fy float64) {
	sp := o.Shp
	for _, cf := range o.Msh.FaceTag2cells[tag] {
		e := NewElemPfrac(o, cf.C)
		lv := sp.FaceLocalVerts[cf.Fid]
		for _, ipf := range shp.FaceIps() {

			// natural coordinates of the face point inside the cell
			a, b := lv[0], lv[1]
			r := 0.5*(1.0-ipf.R)*sp.NatCoords[0][a] + 0.5*(1.0+ipf.R)*sp.NatCoords[0][b]
			s := 0.5*(1.0-ipf.R)*sp.NatCoords[1][a] + 0.5*(1.0+ipf.R)*sp.NatCoords[1][b]

			// stress at the face point
			err := sp.CalcAtIp(e.X, shp.Ipoint{R: r, S: s, W: 1}, true)
			if err != nil {
				continue
			}
			st := e.calcIpState(o.Sol, false)
			g := o.Mdl.Degrade(st.phi)
			s0 := g*e.sigp[0] + e.sigm[0]
			s1 := g*e.sigp[1] + e.sigm[1]
			s2 := g*e.sigp[2] + e.sigm[2]

			// traction against the scaled outward normal
			sp.CalcAtFaceIp(e.X, ipf, cf.Fid)
			fx += ipf.W * (s0*sp.Fnvec[0] + s2*sp.Fnvec[1])
			fy += ipf.W * (s2*sp.Fnvec[0] + s1*sp.Fnvec[1])
		}
	}
	return
}

// Cod computes the crack opening displacement along a scanline by
// accumulating u·∇φ over quadrature points, binned by the position of
// each point projected onto the line and integrated across it
func (o *Domain) Cod(line *inp.CodLine) (s, w []float64) {

	n := line.N
	if n < 2 {
		n = 100
	}
	ex := line.B[0] - line.A[0]
	ey := line.B[1] - line.A[1]
	length := math.Hypot(ex, ey)
	ex /= length
	ey /= length
	ds := length / float64(n-1)

	s = make([]float64, n)
	w = make([]float64, n)
	for k := 0; k < n; k++ {
		s[k] = float64(k) * ds
	}

	sp := o.Shp
	for _, c := range o.Msh.Cells {
		e := NewElemPfrac(o, c)
		for _, ip := range e.IpsElem {
			x := sp.IpRealCoords(e.X, ip)
			xi := ((x[0]-line.A[0])*ex + (x[1]-line.A[1])*ey) / length
			if xi < 0 || xi > 1 {
				continue
			}
			err := sp.CalcAtIp(e.X, ip, true)
			if err != nil {
				continue
			}
			st := e.calcIpState(o.Sol, false)

			// displacement at the quadrature point
			var ux, uy float64
			for m := range c.Verts {
				ux += sp.S[m] * o.Sol.Y[e.Umap[3*m]]
				uy += sp.S[m] * o.Sol.Y[e.Umap[3*m+1]]
			}

			k := int(xi*float64(n-1) + 0.5)
			w[k] += sp.J * ip.W * (ux*st.gphi[0] + uy*st.gphi[1]) / ds
		}
	}
	return
}
