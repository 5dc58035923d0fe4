// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// Sneddon implements the plane-strain solution for a straight crack of
// half-length l in an infinite medium loaded by a constant internal
// fluid pressure p [Sneddon & Lowengrub, 1969]
//
//                 ↑↑↑↑↑ p
//          ───────────────────  y = yc
//                 ↓↓↓↓↓ p
//          |----- 2 l -----|
type Sneddon struct {

	// input
	p  float64 // crack pressure
	l  float64 // crack half-length
	E  float64 // Young's modulus
	ν  float64 // Poisson's coefficient
	xc float64 // x-coordinate of crack centre
}

// Init initialises this structure with keys p, l, E, nu, xc
func (o *Sneddon) Init(prms dbf.Params) {

	// default values
	o.p = 1e-3
	o.l = 0.2
	o.E = 1.0
	o.ν = 0.2

	// parameters
	for _, prm := range prms {
		switch prm.N {
		case "p":
			o.p = prm.V
		case "l":
			o.l = prm.V
		case "E":
			o.E = prm.V
		case "nu":
			o.ν = prm.V
		case "xc":
			o.xc = prm.V
		}
	}
}

// Cod returns the total crack opening displacement at coordinate x
// (zero outside the crack)
func (o *Sneddon) Cod(x float64) float64 {
	ξ := (x - o.xc) / o.l
	if ξ*ξ >= 1 {
		return 0
	}
	return 4.0 * o.p * o.l * (1.0 - o.ν*o.ν) / o.E * math.Sqrt(1.0-ξ*ξ)
}

// Volume returns the total volume of the opened crack (per unit
// thickness)
func (o *Sneddon) Volume() float64 {
	return 2.0 * math.Pi * o.p * o.l * o.l * (1.0 - o.ν*o.ν) / o.E
}

// PlotCod plots the opening profile over [xc-L, xc+L] together with a
// computed profile given by (xnum, wnum)
func (o *Sneddon) PlotCod(L float64, npts int, xnum, wnum []float64) {
	x := utl.LinSpace(o.xc-L, o.xc+L, npts)
	w := make([]float64, npts)
	for i := 0; i < npts; i++ {
		w[i] = o.Cod(x[i])
	}
	plt.Plot(x, w, &plt.A{C: "b", L: "analytical"})
	if len(xnum) > 0 {
		plt.Plot(xnum, wnum, &plt.A{C: "r", Ls: "none", M: ".", L: "computed"})
	}
	plt.Gll("$x$", "$w$", nil)
}
