// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/utl"
	"github.com/minasel/eaglefrac/msh"
	"github.com/minasel/eaglefrac/shp"
)

// ElemPfrac implements the coupled displacement/phase-field element of
// the pressurized brittle-fracture model. Unknowns per vertex are
// {ux, uy, φ}. The elasticity block carries the degraded tensile
// stress g(φ*)σ⁺ plus the full compressive stress σ⁻, where φ* is the
// phase field extrapolated from the two previous steps; the
// phase-field block carries the tensile driving term, the
// Ambrosio-Tortorelli surface terms and the pressure forcing.
type ElemPfrac struct {

	// basic data
	Dom  *Domain     // access to solution, constraints and scatter
	Cell *msh.Cell   // the cell
	X    [][]float64 // [2][4] matrix of nodal coordinates

	// integration points
	IpsElem []shp.Ipoint

	// assembly map: for each vertex {ux, uy, phi} equations
	Umap []int

	// scratchpad. computed @ each ip
	fi         []float64   // [12] internal forces
	K          [][]float64 // [12][12] tangent matrix
	eps        []float64   // strain at ip
	sigp, sigm []float64   // stress split at ip
	Dp, Dm, Dg [][]float64 // tangent split and degraded tangent
}

// NewElemPfrac returns a new element for one owned cell
func NewElemPfrac(dom *Domain, cell *msh.Cell) (o *ElemPfrac) {
	o = new(ElemPfrac)
	o.Dom = dom
	o.Cell = cell
	o.X = dom.Msh.CellCoords(cell)
	o.IpsElem = shp.Ips()
	o.Umap = make([]int, 12)
	for m, v := range cell.Verts {
		for k := 0; k < 3; k++ {
			o.Umap[3*m+k] = dom.Nodes[v].Dofs[k].Eq
		}
	}
	o.fi = make([]float64, 12)
	o.K = utl.Alloc(12, 12)
	o.eps = make([]float64, 3)
	o.sigp = make([]float64, 3)
	o.sigm = make([]float64, 3)
	o.Dp = utl.Alloc(3, 3)
	o.Dm = utl.Alloc(3, 3)
	o.Dg = utl.Alloc(3, 3)
	return
}

// Id returns the cell Id
func (o *ElemPfrac) Id() int { return o.Cell.Id }

// ipState holds the interpolated fields at one integration point
type ipState struct {
	phi, phistar float64 // current and extrapolated phase field
	gphi         [2]float64
	press, divu  float64
	psip         float64 // σ⁺ : ε
}

// calcIpState interpolates the solution at the current ip (the shape
// scratchpad must be up to date) and evaluates the stress split
func (o *ElemPfrac) calcIpState(sol *Solution, withPressure bool) (s ipState) {
	sp := o.Dom.Shp
	o.eps[0], o.eps[1], o.eps[2] = 0, 0, 0
	for m, v := range o.Cell.Verts {
		ux := sol.Y[o.Umap[3*m]]
		uy := sol.Y[o.Umap[3*m+1]]
		phm := sol.Y[o.Umap[3*m+2]]
		o.eps[0] += sp.G[m][0] * ux
		o.eps[1] += sp.G[m][1] * uy
		o.eps[2] += 0.5 * (sp.G[m][1]*ux + sp.G[m][0]*uy)
		s.phi += sp.S[m] * phm
		s.phistar += sp.S[m] * sol.PhiStar(o.Umap[3*m+2])
		s.gphi[0] += sp.G[m][0] * phm
		s.gphi[1] += sp.G[m][1] * phm
		if withPressure {
			s.press += sp.S[m] * o.Dom.Press[v]
		}
	}
	s.divu = o.eps[0] + o.eps[1]
	o.Dom.Mdl.Split(o.sigp, o.sigm, o.eps)
	s.psip = o.sigp[0]*o.eps[0] + o.sigp[1]*o.eps[1] + 2.0*o.sigp[2]*o.eps[2]
	return
}

// AddToRhs adds the negative of the element residual to the global
// right-hand side
func (o *ElemPfrac) AddToRhs(sol *Solution, withPressure bool) (err error) {

	sp := o.Dom.Shp
	mdl := o.Dom.Mdl
	gc, ereg, biot := o.Dom.Gc, o.Dom.EpsReg, o.Dom.Biot
	utl.Fill(o.fi, 0)

	for _, ip := range o.IpsElem {
		err = sp.CalcAtIp(o.X, ip, true)
		if err != nil {
			return
		}
		s := o.calcIpState(sol, withPressure)
		wdet := sp.J * ip.W

		g := mdl.Degrade(s.phistar)
		for r := 0; r < 3; r++ {
			o.sigp[r] = g*o.sigp[r] + o.sigm[r] // total degraded stress
		}

		for i := 0; i < 4; i++ {
			gx, gy := sp.G[i][0], sp.G[i][1]

			// displacement rows: degraded stress against virtual strain
			// plus the φ*-weighted pressure forcing
			rx := o.sigp[0]*gx + o.sigp[2]*gy
			ry := o.sigp[1]*gy + o.sigp[2]*gx
			if withPressure {
				pw := biot * s.phistar * s.phistar * s.press
				rx += pw * gx
				ry += pw * gy
			}
			o.fi[3*i] += wdet * rx
			o.fi[3*i+1] += wdet * ry

			// phase-field row: driving, surface, gradient, pressure
			rp := 0.5 * mdl.DegradeD(s.phi) * s.psip * sp.S[i]
			rp += gc * (-(1.0/ereg)*(1.0-s.phi)*sp.S[i] + ereg*(s.gphi[0]*gx+s.gphi[1]*gy))
			if withPressure {
				rp += 2.0 * s.phi * biot * s.press * s.divu * sp.S[i]
			}
			o.fi[3*i+2] += wdet * rp
		}
	}

	// scatter: fb gets the negative of the internal forces
	for l, eq := range o.Umap {
		o.Dom.addToFb(eq, -o.fi[l])
	}
	return
}

// AddToKb adds the element tangent matrix to the global Jacobian
func (o *ElemPfrac) AddToKb(sol *Solution, withPressure bool) (err error) {

	sp := o.Dom.Shp
	mdl := o.Dom.Mdl
	gc, ereg, biot := o.Dom.Gc, o.Dom.EpsReg, o.Dom.Biot
	for _, row := range o.K {
		utl.Fill(row, 0)
	}

	for _, ip := range o.IpsElem {
		err = sp.CalcAtIp(o.X, ip, true)
		if err != nil {
			return
		}
		s := o.calcIpState(sol, withPressure)
		wdet := sp.J * ip.W

		// degraded tangent: g(φ*)·D⁺ + D⁻
		g := mdl.Degrade(s.phistar)
		mdl.SplitTangent(o.Dp, o.Dm, o.eps)
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				o.Dg[r][c] = g*o.Dp[r][c] + o.Dm[r][c]
			}
		}

		for j := 0; j < 4; j++ {
			gxj, gyj := sp.G[j][0], sp.G[j][1]

			// virtual strains of the two displacement dofs of node j
			ej := [2][3]float64{
				{gxj, 0, 0.5 * gyj},
				{0, gyj, 0.5 * gxj},
			}

			for e := 0; e < 2; e++ {
				// stress variation δσ = Dg · ε(vj)
				var ds [3]float64
				for r := 0; r < 3; r++ {
					ds[r] = o.Dg[r][0]*ej[e][0] + o.Dg[r][1]*ej[e][1] + o.Dg[r][2]*ej[e][2]
				}
				// tensile stress variation drives the φ-u coupling
				dpsip := 2.0 * (o.sigp[0]*ej[e][0] + o.sigp[1]*ej[e][1] + 2.0*o.sigp[2]*ej[e][2])

				for i := 0; i < 4; i++ {
					gxi, gyi := sp.G[i][0], sp.G[i][1]

					// u-u block
					kxu := ds[0]*gxi + ds[2]*gyi
					kyu := ds[1]*gyi + ds[2]*gxi
					o.K[3*i][3*j+e] += wdet * kxu
					o.K[3*i+1][3*j+e] += wdet * kyu

					// φ-u block
					kpu := 0.5 * mdl.DegradeD(s.phi) * dpsip * sp.S[i]
					if withPressure {
						kpu += 2.0 * s.phi * biot * s.press * ej[e][e] * sp.S[i]
					}
					o.K[3*i+2][3*j+e] += wdet * kpu
				}
			}

			// φ-φ block
			for i := 0; i < 4; i++ {
				gxi, gyi := sp.G[i][0], sp.G[i][1]
				kpp := 0.5 * mdl.DegradeDD() * s.psip * sp.S[i] * sp.S[j]
				kpp += gc * ((1.0/ereg)*sp.S[i]*sp.S[j] + ereg*(gxi*gxj+gyi*gyj))
				if withPressure {
					kpp += 2.0 * biot * s.press * s.divu * sp.S[i] * sp.S[j]
				}
				o.K[3*i+2][3*j+2] += wdet * kpp
			}
		}
	}

	// scatter
	for li, ri := range o.Umap {
		for lj, cj := range o.Umap {
			if o.K[li][lj] != 0 {
				o.Dom.addToKb(ri, cj, o.K[li][lj])
			}
		}
	}
	return
}
