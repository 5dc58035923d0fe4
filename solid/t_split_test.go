// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

func getModel(tst *testing.T) (o *Elastic) {
	o = new(Elastic)
	err := o.Init(dbf.Params{
		&dbf.P{N: "E", V: 10e9},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "kappa", V: 1e-12},
	})
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
	}
	return
}

func Test_split01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("split01. σ⁺ + σ⁻ reconstructs the elastic stress")

	o := getModel(tst)

	// strain states: tension, compression, shear, mixed, zero,
	// repeated eigenvalues, and a near-degenerate spectrum
	strains := [][]float64{
		{1e-3, 2e-3, 0.5e-3},
		{-1e-3, -2e-3, 0.5e-3},
		{0, 0, 1e-3},
		{2e-3, -1e-3, 0.7e-3},
		{0, 0, 0},
		{1e-3, 1e-3, 0},
		{-1e-3, -1e-3, 0},
		{1e-3, 1e-3 + 1e-16, 0},
	}

	sigP := make([]float64, 3)
	sigM := make([]float64, 3)
	sig := make([]float64, 3)
	sum := make([]float64, 3)
	for _, eps := range strains {
		o.Split(sigP, sigM, eps)
		o.Stress(sig, eps)
		for i := 0; i < 3; i++ {
			sum[i] = sigP[i] + sigM[i]
		}
		chk.Array(tst, "σ⁺+σ⁻", 1e-6, sum, sig)
	}
}

func Test_split02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("split02. σ⁻ vanishes for non-negative spectra")

	o := getModel(tst)

	// strains with all eigenvalues ≥ 0
	strains := [][]float64{
		{1e-3, 2e-3, 0},
		{1e-3, 1e-3, 0},
		{2e-3, 2e-3, 1e-3},
		{1e-3, 1e-3, 1e-3}, // eigenvalues 0 and 2e-3
		{0, 0, 0},
	}

	sigP := make([]float64, 3)
	sigM := make([]float64, 3)
	zero := []float64{0, 0, 0}
	for _, eps := range strains {
		o.Split(sigP, sigM, eps)
		chk.Array(tst, "σ⁻", 1e-6, sigM, zero)
	}

	// mirror states: all eigenvalues ≤ 0 must give σ⁺ = 0
	for _, eps := range strains {
		neg := []float64{-eps[0], -eps[1], -eps[2]}
		o.Split(sigP, sigM, neg)
		chk.Array(tst, "σ⁺", 1e-6, sigP, zero)
	}
}

func Test_split03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("split03. tangents add up to the elastic stiffness")

	o := getModel(tst)

	Dp := utl.Alloc(3, 3)
	Dm := utl.Alloc(3, 3)
	D := utl.Alloc(3, 3)
	o.CalcD(D)

	strains := [][]float64{
		{1e-3, 2e-3, 0.5e-3},
		{-2e-3, 1e-3, 0.3e-3},
		{0, 0, 1e-3},
		{0, 0, 0},
	}
	for _, eps := range strains {
		o.SplitTangent(Dp, Dm, eps)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				chk.Float64(tst, "D⁺+D⁻", 1e-6*o.E, Dp[i][j]+Dm[i][j], D[i][j])
			}
		}
	}
}

func Test_degrade01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("degrade01. degradation function bounds")

	o := getModel(tst)
	chk.Float64(tst, "g(0)", 1e-15, o.Degrade(0), o.Kappa)
	chk.Float64(tst, "g(1)", 1e-15, o.Degrade(1), 1.0)
	chk.Float64(tst, "g'(0)", 1e-15, o.DegradeD(0), 0.0)
	chk.Float64(tst, "g'(1)", 1e-15, o.DegradeD(1), 2.0*(1.0-o.Kappa))
}
