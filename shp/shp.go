// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape functions for the bilinear quadrilateral,
// the only cell type used by the phase-field solver
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// Ipoint holds integration point data: {r, s, weight}
type Ipoint struct {
	R, S float64 // natural coordinates
	W    float64 // weight
}

// Shape holds qua4 geometry data and a scratchpad computed at each
// integration point
type Shape struct {

	// geometry
	Nverts         int       // number of vertices == 4
	Gndim          int       // geometry dimension == 2
	FaceLocalVerts [][]int   // face (edge) local vertices [4][2]
	NatCoords      [2][4]float64

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][ndim] G == dSdx
	J    float64     // Jacobian: determinant of dxdR
	DSdR [][]float64 // [nverts][ndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [ndim][ndim]
	DRdx [][]float64 // [ndim][ndim] inverse of DxdR

	// scratchpad: face
	Sf    []float64 // [2] face shape function values
	Fnvec []float64 // [ndim] face normal vector scaled by face Jacobian
}

// New returns a new qua4 Shape structure with allocated scratchpad
func New() (o *Shape) {
	o = new(Shape)
	o.Nverts = 4
	o.Gndim = 2
	o.FaceLocalVerts = [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	o.NatCoords = [2][4]float64{
		{-1, 1, 1, -1},
		{-1, -1, 1, 1},
	}
	o.S = make([]float64, o.Nverts)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	o.DxdR = utl.Alloc(o.Gndim, o.Gndim)
	o.DRdx = utl.Alloc(o.Gndim, o.Gndim)
	o.G = utl.Alloc(o.Nverts, o.Gndim)
	o.Sf = make([]float64, 2)
	o.Fnvec = make([]float64, o.Gndim)
	return
}

// Ips returns the 2x2 Gauss integration rule
func Ips() []Ipoint {
	g := 1.0 / math.Sqrt(3.0)
	return []Ipoint{
		{-g, -g, 1}, {g, -g, 1}, {g, g, 1}, {-g, g, 1},
	}
}

// FaceIps returns the 2-point Gauss rule for edges
func FaceIps() []Ipoint {
	g := 1.0 / math.Sqrt(3.0)
	return []Ipoint{{-g, 0, 1}, {g, 0, 1}}
}

// CalcAtIp calculates volume data at integration point
//  Input:
//   x[ndim][nverts] -- coordinates matrix
//   derivs          -- also compute G and J
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {

	// S and dSdR
	o.calcFuncs(ip.R, ip.S, derivs)
	if !derivs {
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	// J and dRdx := inv(dxdR)
	o.J = o.DxdR[0][0]*o.DxdR[1][1] - o.DxdR[0][1]*o.DxdR[1][0]
	if math.Abs(o.J) < MINDET {
		return chk.Err("shp: cell is distorted: det(dxdR) = %g", o.J)
	}
	o.DRdx[0][0] = o.DxdR[1][1] / o.J
	o.DRdx[1][1] = o.DxdR[0][0] / o.J
	o.DRdx[0][1] = -o.DxdR[0][1] / o.J
	o.DRdx[1][0] = -o.DxdR[1][0] / o.J

	// G == dSdx := dSdR * dRdx
	for m := 0; m < o.Nverts; m++ {
		for i := 0; i < o.Gndim; i++ {
			o.G[m][i] = o.DSdR[m][0]*o.DRdx[0][i] + o.DSdR[m][1]*o.DRdx[1][i]
		}
	}
	return
}

// CalcAtFaceIp calculates face data (Sf and Fnvec) at a face integration point
func (o *Shape) CalcAtFaceIp(x [][]float64, ipf Ipoint, idxface int) (err error) {

	// Sf and dSfdR (lin2 shapes on the edge)
	r := ipf.R
	o.Sf[0] = 0.5 * (1.0 - r)
	o.Sf[1] = 0.5 * (1.0 + r)
	dSfdR := [2]float64{-0.5, 0.5}

	// dxfdRf
	var dxf, dyf float64
	for k, n := range o.FaceLocalVerts[idxface] {
		dxf += x[0][n] * dSfdR[k]
		dyf += x[1][n] * dSfdR[k]
	}

	// outward normal scaled by the face Jacobian
	o.Fnvec[0] = dyf
	o.Fnvec[1] = -dxf
	return
}

// IpRealCoords returns the real coordinates of an integration point
func (o *Shape) IpRealCoords(x [][]float64, ip Ipoint) (y []float64) {
	o.calcFuncs(ip.R, ip.S, false)
	y = make([]float64, o.Gndim)
	for i := 0; i < o.Gndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// calcFuncs computes S and dSdR for the qua4 cell
func (o *Shape) calcFuncs(r, s float64, derivs bool) {
	o.S[0] = 0.25 * (1.0 - r) * (1.0 - s)
	o.S[1] = 0.25 * (1.0 + r) * (1.0 - s)
	o.S[2] = 0.25 * (1.0 + r) * (1.0 + s)
	o.S[3] = 0.25 * (1.0 - r) * (1.0 + s)
	if !derivs {
		return
	}
	o.DSdR[0][0] = -0.25 * (1.0 - s)
	o.DSdR[0][1] = -0.25 * (1.0 - r)
	o.DSdR[1][0] = 0.25 * (1.0 - s)
	o.DSdR[1][1] = -0.25 * (1.0 + r)
	o.DSdR[2][0] = 0.25 * (1.0 + s)
	o.DSdR[2][1] = 0.25 * (1.0 + r)
	o.DSdR[3][0] = -0.25 * (1.0 + s)
	o.DSdR[3][1] = 0.25 * (1.0 - r)
}
