// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"
	"github.com/minasel/eaglefrac/fem"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.WorldRank() == 0 {
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop()
	}()
	mpi.Start()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	erasePrev := io.ArgToBool(2, true)
	allowParallel := io.ArgToBool(3, true)
	alias := io.ArgToString(4, "")
	profile := io.ArgToBool(5, false)

	// message
	if mpi.WorldRank() == 0 && verbose {
		io.PfWhite("\nEaglefrac -- phase-field brittle fracture\n\n")
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"erase previous results", "erasePrev", erasePrev,
			"allow parallel run", "allowParallel", allowParallel,
			"word to add to results", "alias", alias,
			"activate CPU profiling", "profile", profile,
		))
	}

	// profiling?
	if profile {
		defer utl.Prof(false, false)()
	}

	// analysis data
	analysis, err := fem.NewFEM(fnamepath, alias, erasePrev, allowParallel, verbose)
	if err != nil {
		chk.Panic("cannot allocate analysis:\n%v", err)
	}

	// run simulation
	err = analysis.Run()
	if err != nil {
		chk.Panic("Run failed:\n%v", err)
	}
}
