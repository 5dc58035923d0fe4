// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build ignore

package main

import (
	"github.com/cpmech/gosl/io"
	"github.com/minasel/eaglefrac/fem"
	"github.com/minasel/eaglefrac/inp"
	"github.com/minasel/eaglefrac/out"
)

// Sim2vtu writes the initial state of a simulation (refined mesh,
// defects, boundary partitioning) as a .vtu file, so the setup can be
// inspected in Paraview without running the solver

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	simfn, fnkey := io.ArgToFilename(0, "data/frac-tension", ".sim", true)
	io.Pf("\n%s\n", io.ArgsTable("INPUT ARGUMENTS",
		"simulation filename", "simfn", simfn,
	))

	// simulation and initial domain
	sim := inp.ReadSim(simfn, "", true)
	dom, err := fem.NewDomain(sim, 0, 1, false)
	if err != nil {
		io.PfRed("cannot build domain:\n%v\n", err)
		return
	}

	// write the initial snapshot
	writer := out.NewWriter(sim.DirOut, fnkey, 0, 1)
	post := fem.NewPostprocessor(dom, writer)
	err = post.WriteFields(0)
	if err != nil {
		io.PfRed("cannot write initial state:\n%v\n", err)
		return
	}
	io.Pf("file <%s/%s-p0-000000.vtu> written\n", sim.DirOut, fnkey)
}
