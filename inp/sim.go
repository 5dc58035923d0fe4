// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Data holds global data for simulations
type Data struct {
	Desc   string `json:"desc"`   // description of simulation
	DirOut string `json:"dirout"` // directory for output; e.g. /tmp/eaglefrac
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name      string `json:"name"`      // "mumps" or "umfpack"
	Symmetric bool   `json:"symmetric"` // use symmetric solver
	Verbose   bool   `json:"verbose"`   // verbose?
	Ordering  string `json:"ordering"`  // ordering scheme
	Scaling   string `json:"scaling"`   // scaling scheme
}

// SetDefault sets default values
func (o *LinSolData) SetDefault() {
	o.Name = "umfpack"
	o.Ordering = "amf"
	o.Scaling = "rcit"
}

// GridData holds the rectangular root grid and refinement depths
type GridData struct {
	Xmin      float64   `json:"xmin"`      // domain extents
	Xmax      float64   `json:"xmax"`      //
	Ymin      float64   `json:"ymin"`      //
	Ymax      float64   `json:"ymax"`      //
	Nx        int       `json:"nx"`        // root grid divisions along x
	Ny        int       `json:"ny"`        // root grid divisions along y
	Nglobal   int       `json:"nglobal"`   // global refinement levels applied up front
	Nadapt    int       `json:"nadapt"`    // extra levels available to adaptive refinement
	PreRegion []float64 `json:"preregion"` // {x0, x1, y0, y1}: refine to the finest level inside this box; empty => none
}

// MatData holds the material parameters of the solid
type MatData struct {
	Name string     `json:"name"` // material name
	Prms dbf.Params `json:"prms"` // E, nu, kappa, gc, biot
}

// PhaseFieldData holds phase-field model constants
type PhaseFieldData struct {
	Eps      float64 `json:"eps"`      // regularization length; 0 => derive from EpsK and the finest mesh size
	EpsK     float64 `json:"epsk"`     // regularization length as a multiple of the finest mesh size
	RefThr   float64 `json:"refthr"`   // refine cells whose minimum phase-field value drops below this
	PressThr float64 `json:"pressthr"` // cells with mean phase-field below this carry the full fluid pressure

	// derived
	EpsReg float64 // actual regularization length
}

// DefectData holds an initial defect: the phase field starts broken
// within distance W of segment A-B
type DefectData struct {
	A []float64 `json:"a"` // first end point
	B []float64 `json:"b"` // second end point
	W float64   `json:"w"` // half-thickness; 0 => one finest cell
}

// FaceBc holds face boundary condition
type FaceBc struct {
	Tag   int      `json:"tag"`   // tag of face
	Keys  []string `json:"keys"`  // dof keys: ux, uy
	Funcs []string `json:"funcs"` // name of prescribed-value function per key
}

// NodeBc holds node boundary condition (applied to the vertex closest
// to the given point)
type NodeBc struct {
	At    []float64 `json:"at"`    // point locating the vertex
	Keys  []string  `json:"keys"`  // dof keys: ux, uy
	Funcs []string  `json:"funcs"` // name of prescribed-value function per key
}

// SolverData holds solver data
type SolverData struct {

	// nonlinear solver
	NmaxIt int     `json:"nmaxit"` // number of max iterations
	FbTol  float64 `json:"fbtol"`  // tolerance for convergence on residual norm
	ShowR  bool    `json:"showr"`  // show iteration table

	// time stepping
	Tmax      float64     `json:"tmax"`      // final time
	DtMin     float64     `json:"dtmin"`     // abort when a cut would drop the step below this
	TimeTable [][]float64 `json:"timetable"` // rows {t, dt}: from time t on, use step dt

	// constants
	Eps float64 `json:"eps"` // smallest number satisfying 1.0 + ϵ > 1.0
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	o.NmaxIt = 50
	o.FbTol = 1e-7
	o.ShowR = true
	o.DtMin = 1e-9
	o.Eps = 1e-16
}

// GetDt returns the nominal step size at time t: the dt of the last
// table row whose time is not greater than t
func (o *SolverData) GetDt(t float64) (dt float64) {
	if len(o.TimeTable) == 0 {
		chk.Panic("solver data: time table is empty")
	}
	dt = o.TimeTable[0][1]
	for _, row := range o.TimeTable {
		if row[0] <= t+o.Eps {
			dt = row[1]
		}
	}
	return
}

// CodLine holds a scanline for crack-opening-displacement output
type CodLine struct {
	A []float64 `json:"a"` // first end point
	B []float64 `json:"b"` // second end point
	N int       `json:"n"` // number of sample points
}

// OutData holds postprocessing requests
type OutData struct {
	DtOut    float64    `json:"dtout"`    // minimum time between field outputs; 0 => every accepted step
	LoadTags []int      `json:"loadtags"` // boundary tags for reaction-load histories
	CodLines []*CodLine `json:"codlines"` // crack-opening scanlines
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data       Data           `json:"data"`       // global simulation data
	Grid       GridData       `json:"grid"`       // root grid and refinement depths
	Mat        MatData        `json:"mat"`        // material parameters
	PhaseField PhaseFieldData `json:"phasefield"` // phase-field constants
	Defects    []*DefectData  `json:"defects"`    // initial defects
	Functions  FuncsData      `json:"functions"`  // named time functions
	FaceBcs    []*FaceBc      `json:"facebcs"`    // face boundary conditions
	NodeBcs    []*NodeBc      `json:"nodebcs"`    // node boundary conditions
	PressFcn   string         `json:"pressfcn"`   // name of fluid pressure function; "" => no pressure
	LinSol     LinSolData     `json:"linsol"`     // linear solver data
	Solver     SolverData     `json:"solver"`     // solver data
	Out        OutData        `json:"out"`        // postprocessing requests

	// derived
	DirOut   string // directory to save results
	Key      string // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	Pressure dbf.T  // fluid pressure function; nil when PressFcn is ""
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath, alias string, erasefiles bool) *Simulation {

	// new sim
	var o Simulation

	// read file
	if _, errStat := os.Stat(simfilepath); errStat != nil {
		chk.Panic("ReadSim: cannot read simulation file %q", simfilepath)
	}
	b := io.ReadFile(simfilepath)

	// set default values
	o.Solver.SetDefault()
	o.LinSol.SetDefault()
	o.PhaseField.EpsK = 2.0
	o.PhaseField.RefThr = 0.8
	o.PhaseField.PressThr = 0.9

	// decode
	err := json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// filename key
	fn := filepath.Base(simfilepath)
	fnkey := io.FnKey(fn)
	o.Key = fnkey
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/eaglefrac/" + fnkey
	}

	// create directory and erase previous simulation results
	if erasefiles {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			chk.Panic("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, fnkey))
	}

	// check grid
	g := &o.Grid
	if g.Nx < 1 || g.Ny < 1 {
		chk.Panic("ReadSim: grid divisions must be positive. nx=%d, ny=%d is invalid", g.Nx, g.Ny)
	}
	if g.Xmax <= g.Xmin || g.Ymax <= g.Ymin {
		chk.Panic("ReadSim: invalid domain extents: [%g,%g]x[%g,%g]", g.Xmin, g.Xmax, g.Ymin, g.Ymax)
	}

	// regularization length from the finest admissible mesh size
	if o.PhaseField.Eps > 0 {
		o.PhaseField.EpsReg = o.PhaseField.Eps
	} else {
		f := float64(int(1) << uint(g.Nglobal+g.Nadapt))
		hx := (g.Xmax - g.Xmin) / float64(g.Nx) / f
		hy := (g.Ymax - g.Ymin) / float64(g.Ny) / f
		o.PhaseField.EpsReg = o.PhaseField.EpsK * utl.Min(hx, hy)
	}

	// material parameters
	for _, key := range []string{"E", "nu", "gc"} {
		if o.Mat.Prms.Find(key) == nil {
			chk.Panic("ReadSim: material parameter %q is missing", key)
		}
	}

	// boundary conditions
	for _, fb := range o.FaceBcs {
		if len(fb.Keys) != len(fb.Funcs) {
			chk.Panic("ReadSim: face bc on tag %d: keys and funcs must have the same length", fb.Tag)
		}
		for _, fname := range fb.Funcs {
			o.Functions.GetOrPanic(fname)
		}
	}
	for _, nb := range o.NodeBcs {
		if len(nb.Keys) != len(nb.Funcs) {
			chk.Panic("ReadSim: node bc at %v: keys and funcs must have the same length", nb.At)
		}
		for _, fname := range nb.Funcs {
			o.Functions.GetOrPanic(fname)
		}
	}

	// pressure function
	if o.PressFcn != "" {
		o.Pressure = o.Functions.GetOrPanic(o.PressFcn)
	}

	// time stepping
	if o.Solver.Tmax < 1e-14 {
		chk.Panic("ReadSim: solver tmax must be positive")
	}
	if len(o.Solver.TimeTable) == 0 {
		chk.Panic("ReadSim: solver time table must have at least one {t, dt} row")
	}
	for _, row := range o.Solver.TimeTable {
		if len(row) != 2 {
			chk.Panic("ReadSim: time table rows must be {t, dt} pairs. %v is invalid", row)
		}
		if row[1] <= 0 {
			chk.Panic("ReadSim: time table dt must be positive. %v is invalid", row)
		}
	}

	// results
	return &o
}

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}
