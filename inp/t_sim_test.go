// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. read .sim file")

	sim := ReadSim("data/frac-tension.sim", "", false)

	chk.IntAssert(sim.Grid.Nx, 4)
	chk.IntAssert(sim.Grid.Nglobal, 2)
	chk.IntAssert(sim.Grid.Nadapt, 2)
	chk.Float64(tst, "E", 1e-15, sim.Mat.Prms.Find("E").V, 1e10)
	chk.Float64(tst, "gc", 1e-15, sim.Mat.Prms.Find("gc").V, 1.0)

	// eps_reg = epsk * finest mesh size = 2.0 * (1/4)/2^4
	chk.Float64(tst, "eps_reg", 1e-15, sim.PhaseField.EpsReg, 2.0*0.0625)

	// defaults survive partial input
	chk.Float64(tst, "pressthr", 1e-15, sim.PhaseField.PressThr, 0.9)
	chk.IntAssert(len(sim.Defects), 1)

	// boundary functions resolve
	pull := sim.Functions.GetOrPanic("pull")
	chk.Float64(tst, "pull(2)", 1e-15, pull.F(2, nil), 2e-3)
	zero := sim.Functions.Get("zero")
	chk.Float64(tst, "zero(1)", 1e-15, zero.F(1, nil), 0.0)
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. time table lookup")

	sim := ReadSim("data/frac-tension.sim", "", false)

	chk.Float64(tst, "dt @ 0", 1e-15, sim.Solver.GetDt(0), 1e-2)
	chk.Float64(tst, "dt @ 0.49", 1e-15, sim.Solver.GetDt(0.49), 1e-2)
	chk.Float64(tst, "dt @ 0.5", 1e-15, sim.Solver.GetDt(0.5), 1e-3)
	chk.Float64(tst, "dt @ 0.9", 1e-15, sim.Solver.GetDt(0.9), 1e-3)
}

func Test_sim03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim03. simulation info report")

	sim := ReadSim("data/frac-tension.sim", "", false)

	var buf bytes.Buffer
	err := sim.GetInfo(&buf)
	if err != nil {
		tst.Errorf("GetInfo failed:\n%v", err)
		return
	}

	// the report is valid JSON carrying the input back
	var echo Simulation
	err = json.Unmarshal(buf.Bytes(), &echo)
	if err != nil {
		tst.Errorf("GetInfo did not produce valid JSON:\n%v", err)
		return
	}
	chk.Int(tst, "nx", echo.Grid.Nx, sim.Grid.Nx)
	chk.String(tst, echo.Data.Desc, sim.Data.Desc)
}
