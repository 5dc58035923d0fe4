// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements the constitutive layer of the phase-field
// fracture model: isotropic linear elasticity, the tension/compression
// stress decomposition and the stiffness degradation function
package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Elastic holds parameters of the isotropic linear-elastic solid in
// plane strain. Stress and strain tensors are stored in Voigt order
// {xx, yy, xy} with the tensorial (not engineering) shear component.
type Elastic struct {

	// parameters
	E     float64 // Young's modulus
	Nu    float64 // Poisson's ratio
	Kappa float64 // residual stiffness regularization constant

	// derived
	Mu  float64 // shear modulus
	Lam float64 // Lamé constant λ
}

// Init initialises this model from a parameters set
func (o *Elastic) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		case "kappa":
			o.Kappa = p.V
		}
	}
	if o.E <= 0 {
		return chk.Err("solid: Young's modulus must be positive. E=%g is invalid", o.E)
	}
	if o.Nu < 0 || o.Nu >= 0.5 {
		return chk.Err("solid: Poisson's ratio must be within [0, 0.5). nu=%g is invalid", o.Nu)
	}
	o.Mu = o.E / (2.0 * (1.0 + o.Nu))
	o.Lam = o.E * o.Nu / ((1.0 + o.Nu) * (1.0 - 2.0*o.Nu))
	return
}

// Stress computes the full linear-elastic stress σ = 2με + λ tr(ε) I
func (o *Elastic) Stress(sig, eps []float64) {
	tr := eps[0] + eps[1]
	sig[0] = 2.0*o.Mu*eps[0] + o.Lam*tr
	sig[1] = 2.0*o.Mu*eps[1] + o.Lam*tr
	sig[2] = 2.0 * o.Mu * eps[2]
}

// CalcD computes the full elastic stiffness D = dσ/dε
func (o *Elastic) CalcD(D [][]float64) {
	D[0][0] = o.Lam + 2.0*o.Mu
	D[0][1] = o.Lam
	D[0][2] = 0
	D[1][0] = o.Lam
	D[1][1] = o.Lam + 2.0*o.Mu
	D[1][2] = 0
	D[2][0] = 0
	D[2][1] = 0
	D[2][2] = 2.0 * o.Mu
}

// Degrade returns the degraded modulus factor g(φ) = (1-κ)φ² + κ
func (o *Elastic) Degrade(phi float64) float64 {
	return (1.0-o.Kappa)*phi*phi + o.Kappa
}

// DegradeD returns dg/dφ = 2(1-κ)φ
func (o *Elastic) DegradeD(phi float64) float64 {
	return 2.0 * (1.0 - o.Kappa) * phi
}

// DegradeDD returns d²g/dφ² = 2(1-κ)
func (o *Elastic) DegradeDD() float64 {
	return 2.0 * (1.0 - o.Kappa)
}
