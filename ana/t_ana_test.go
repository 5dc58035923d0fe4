// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

func Test_sneddon01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sneddon01. pressurized crack opening")

	var sol Sneddon
	sol.Init(dbf.Params{
		&dbf.P{N: "p", V: 1e-3},
		&dbf.P{N: "l", V: 0.2},
		&dbf.P{N: "E", V: 1.0},
		&dbf.P{N: "nu", V: 0.2},
		&dbf.P{N: "xc", V: 2.0},
	})

	// maximum opening at the centre
	wmax := 4.0 * 1e-3 * 0.2 * (1.0 - 0.04)
	chk.Float64(tst, "w(xc)", 1e-15, sol.Cod(2.0), wmax)

	// zero at and beyond the tips
	chk.Float64(tst, "w(tip)", 1e-15, sol.Cod(2.2), 0)
	chk.Float64(tst, "w(outside)", 1e-15, sol.Cod(2.5), 0)

	// symmetric about the centre
	chk.Float64(tst, "symmetry", 1e-15, sol.Cod(2.1), sol.Cod(1.9))

	// volume matches the numerical integral of the profile
	np := 10001
	x := utl.LinSpace(1.8, 2.2, np)
	dx := x[1] - x[0]
	var vol float64
	for i := 0; i < np-1; i++ {
		vol += 0.5 * (sol.Cod(x[i]) + sol.Cod(x[i+1])) * dx
	}
	chk.Float64(tst, "volume", 1e-7, sol.Volume(), vol)

	if chk.Verbose {
		plt.Reset(true, &plt.A{Eps: true, Prop: 0.8, WidthPt: 455})
		sol.PlotCod(0.3, 101, nil, nil)
		plt.Save("/tmp/eaglefrac", "ana_sneddon01")
	}
}
