// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// FuncData holds function definition
type FuncData struct {
	Name string     `json:"name"` // name of function. ex: zero, pressure, pull
	Type string     `json:"type"` // type of function. ex: cte, lin, rmp
	Prms dbf.Params `json:"prms"` // parameters
}

// FuncsData holds the database of named time functions
type FuncsData []*FuncData

// Get returns function by name
//  Note: returns nil if not found
func (o FuncsData) Get(name string) dbf.T {
	if name == "zero" || name == "none" {
		return &dbf.Cte{}
	}
	for _, f := range o {
		if f.Name == name {
			return dbf.New(f.Type, f.Prms)
		}
	}
	return nil
}

// GetOrPanic returns function by name, panicking if not found
func (o FuncsData) GetOrPanic(name string) dbf.T {
	fcn := o.Get(name)
	if fcn == nil {
		chk.Panic("cannot find function named %q", name)
	}
	return fcn
}
