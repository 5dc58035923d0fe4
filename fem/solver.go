// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/minasel/eaglefrac/inp"
)

// StepOutcome is the controller action derived from one solve attempt
type StepOutcome int

const (
	// StepAccepted: the step converged on the final mesh
	StepAccepted StepOutcome = iota

	// StepRetrySmaller: the solve did not converge; redo the step with
	// the size divided by 10
	StepRetrySmaller

	// StepRetryRefined: the solve converged but the mesh must be
	// refined; redo the same step, same size, on the refined mesh
	StepRetryRefined

	// StepFatal: the reduced step would fall below the minimum
	StepFatal
)

func (o StepOutcome) String() string {
	switch o {
	case StepAccepted:
		return "accepted"
	case StepRetrySmaller:
		return "retry-smaller-step"
	case StepRetryRefined:
		return "retry-refined-mesh"
	}
	return "fatal"
}

// classifyOutcome maps the result of one solve attempt to the
// controller action
func classifyOutcome(converged, refineNeeded bool, dt, dtmin float64) StepOutcome {
	if !converged {
		if dt/10.0 < dtmin {
			return StepFatal
		}
		return StepRetrySmaller
	}
	if refineNeeded {
		return StepRetryRefined
	}
	return StepAccepted
}

// StepRunner is what the time controller drives for each attempt at a
// target time. A domain-backed implementation runs the Newton solve;
// tests substitute scripted doubles.
type StepRunner interface {

	// Attempt runs one nonlinear solve for target time t with step dt
	Attempt(t, dt float64) (converged, refineNeeded bool, err error)

	// Refine adapts the mesh after a converged-but-flagged attempt
	Refine() error

	// Accept finalises the converged step (history shift, outputs)
	Accept(t, dt float64) error

	// Reject discards the trial state after a failed attempt
	Reject()
}

// Control owns the outer time loop: step sizes from the time table,
// redo on non-convergence with /10 cuts, redo on refinement at the
// same size, fatal abort below the minimum step
type Control struct {
	Data    *inp.SolverData
	Runner  StepRunner
	Verbose bool

	// state
	Step int     // number of accepted steps
	Time float64 // current time
}

// Run drives the simulation from Time to the final time
func (o *Control) Run() (err error) {
	tiny := o.Data.Eps
	for o.Time < o.Data.Tmax-tiny {

		// nominal step from the table, clipped at the final time
		dt := o.Data.GetDt(o.Time)
		if o.Time+dt > o.Data.Tmax {
			dt = o.Data.Tmax - o.Time
		}

		// attempt loop: cut on failure, redo on refinement
		for {
			conv, refine, e := o.Runner.Attempt(o.Time+dt, dt)
			if e != nil {
				return e
			}
			outcome := classifyOutcome(conv, refine, dt, o.Data.DtMin)
			if outcome == StepAccepted {
				break
			}
			switch outcome {
			case StepFatal:
				return chk.Err("step size %g cannot be reduced below the minimum %g: "+
					"no convergence at t=%g after %d iterations", dt/10.0, o.Data.DtMin, o.Time+dt, o.Data.NmaxIt)
			case StepRetrySmaller:
				o.Runner.Reject()
				dt /= 10.0
				if o.Verbose {
					io.Pfred(". . . step cut to %g at t=%g . . .\n", dt, o.Time)
				}
			case StepRetryRefined:
				err = o.Runner.Refine()
				if err != nil {
					return
				}
				if o.Verbose {
					io.Pfyel(". . . mesh refined, redoing step at t=%g . . .\n", o.Time+dt)
				}
			}
		}

		// accept
		err = o.Runner.Accept(o.Time+dt, dt)
		if err != nil {
			return
		}
		o.Time += dt
		o.Step++
	}
	return
}

// domainRunner is the production StepRunner: Newton/active-set solve
// on the domain, refinement flags from the phase field, postprocessing
// on acceptance
type domainRunner struct {
	dom     *Domain
	nl      *NewtonActiveSet
	post    *Postprocessor
	refine  []bool
	coarsen []bool
}

func newDomainRunner(dom *Domain, post *Postprocessor) *domainRunner {
	return &domainRunner{
		dom:  dom,
		nl:   &NewtonActiveSet{Dom: dom},
		post: post,
	}
}

func (o *domainRunner) Attempt(t, dt float64) (converged, refineNeeded bool, err error) {
	d := o.dom
	d.Sol.T = t
	d.Sol.Dt = dt
	d.SetBcs(t)
	d.UpdatePressure(t)
	status, err := o.nl.Run()
	if err != nil || status == nlMaxIter {
		return false, false, err
	}
	o.refine, o.coarsen, refineNeeded = d.RefineFlags()
	return true, refineNeeded, nil
}

func (o *domainRunner) Refine() error {
	o.dom.Refine(o.refine, o.coarsen)
	return nil
}

func (o *domainRunner) Accept(t, dt float64) error {
	o.dom.Accept()
	if o.post != nil {
		return o.post.OnAccept(t)
	}
	return nil
}

func (o *domainRunner) Reject() {
	o.dom.Reject()
	o.dom.Sol.UseOldPhi = true
}
