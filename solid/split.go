// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import "math"

// EVTOL is the tolerance to consider two eigenvalues repeated
const EVTOL = 1e-12

// Split decomposes the linear-elastic stress into tension (+) and
// compression (-) parts:
//   σ⁺ = 2μ ε⁺ + λ tr⁺(ε) I
//   σ⁻ = 2μ (ε - ε⁺) + λ (tr(ε) - tr⁺(ε)) I
// where ε⁺ is the positive-semidefinite part of ε (spectral clipping
// of negative eigenvalues) and tr⁺(ε) = max(tr(ε), 0). The sum
// σ⁺ + σ⁻ reconstructs the full stress exactly.
func (o *Elastic) Split(sigPlus, sigMinus, eps []float64) {

	// positive part of the strain
	var epsPlus [3]float64
	o.strainPlus(epsPlus[:], eps)

	// positive part of the trace
	tr := eps[0] + eps[1]
	trPlus := math.Max(tr, 0.0)

	sigPlus[0] = 2.0*o.Mu*epsPlus[0] + o.Lam*trPlus
	sigPlus[1] = 2.0*o.Mu*epsPlus[1] + o.Lam*trPlus
	sigPlus[2] = 2.0 * o.Mu * epsPlus[2]

	sigMinus[0] = 2.0*o.Mu*(eps[0]-epsPlus[0]) + o.Lam*(tr-trPlus)
	sigMinus[1] = 2.0*o.Mu*(eps[1]-epsPlus[1]) + o.Lam*(tr-trPlus)
	sigMinus[2] = 2.0 * o.Mu * (eps[2] - epsPlus[2])
}

// SplitTangent computes Dplus = dσ⁺/dε and Dminus = dσ⁻/dε = D - Dplus.
// Operators act on Voigt strains {xx, yy, xy}; the shear column carries
// the contraction weight 2 so that dσ = D·dε holds componentwise.
func (o *Elastic) SplitTangent(Dplus, Dminus [][]float64, eps []float64) {

	// derivative of the positive strain part
	var P [3][3]float64
	o.strainPlusDeriv(&P, eps)

	// Dplus = 2μ P + λ H(tr) I⊗I
	tr := eps[0] + eps[1]
	h := 0.0
	if tr > 0 {
		h = 1.0
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Dplus[i][j] = 2.0 * o.Mu * P[i][j]
		}
	}
	Dplus[0][0] += o.Lam * h
	Dplus[0][1] += o.Lam * h
	Dplus[1][0] += o.Lam * h
	Dplus[1][1] += o.Lam * h

	// Dminus = D - Dplus
	o.CalcD(Dminus)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Dminus[i][j] -= Dplus[i][j]
		}
	}
}

// strainPlus computes the positive-semidefinite part of the 2x2 strain
func (o *Elastic) strainPlus(epsPlus, eps []float64) {

	mean := 0.5 * (eps[0] + eps[1])
	dev := 0.5 * (eps[0] - eps[1])
	rad := math.Hypot(dev, eps[2])
	l1 := mean + rad
	l2 := mean - rad

	// trivial spectra
	if l2 >= 0 {
		copy(epsPlus, eps)
		return
	}
	if l1 <= 0 {
		epsPlus[0], epsPlus[1], epsPlus[2] = 0, 0, 0
		return
	}

	// l1 > 0 > l2: eigenprojector of l1
	// rad > 0 here since the eigenvalues differ in sign
	m1 := [3]float64{
		0.5 * (1.0 + dev/rad),
		0.5 * (1.0 - dev/rad),
		0.5 * eps[2] / rad,
	}
	epsPlus[0] = l1 * m1[0]
	epsPlus[1] = l1 * m1[1]
	epsPlus[2] = l1 * m1[2]
}

// strainPlusDeriv computes P = dε⁺/dε with the spectral formula
//   P = Σa H(λa) Ma⊗Ma + ((λ1⁺-λ2⁺)/(λ1-λ2)) (S - Σa Ma⊗Ma)
// degenerating to H(λ)·S for repeated eigenvalues
func (o *Elastic) strainPlusDeriv(P *[3][3]float64, eps []float64) {

	mean := 0.5 * (eps[0] + eps[1])
	dev := 0.5 * (eps[0] - eps[1])
	rad := math.Hypot(dev, eps[2])
	l1 := mean + rad
	l2 := mean - rad

	// contraction weights for the shear column
	w := [3]float64{1, 1, 2}

	// repeated eigenvalues: ε⁺ is ε or 0 in a neighbourhood
	if rad < EVTOL {
		h := 0.0
		if l1 > 0 {
			h = 1.0
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				P[i][j] = 0
			}
			P[i][i] = h
		}
		return
	}

	m1 := [3]float64{
		0.5 * (1.0 + dev/rad),
		0.5 * (1.0 - dev/rad),
		0.5 * eps[2] / rad,
	}
	m2 := [3]float64{1 - m1[0], 1 - m1[1], -m1[2]}

	h1, h2 := 0.0, 0.0
	if l1 > 0 {
		h1 = 1.0
	}
	if l2 > 0 {
		h2 = 1.0
	}
	q := (math.Max(l1, 0) - math.Max(l2, 0)) / (l1 - l2)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			mm := h1*m1[i]*m1[j]*w[j] + h2*m2[i]*m2[j]*w[j]
			s := 0.0
			if i == j {
				s = 1.0
			}
			P[i][j] = mm + q*(s-m1[i]*m1[j]*w[j]-m2[i]*m2[j]*w[j])
		}
	}
}
