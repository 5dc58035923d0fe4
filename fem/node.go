// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/minasel/eaglefrac/msh"

// ykeys are the dof keys of every vertex, in equation order
var ykeys = []string{"ux", "uy", "phi"}

// Dof holds one degree-of-freedom
type Dof struct {
	Key string // name of this dof: "ux", "uy", "phi"
	Eq  int    // equation number in the global system
}

// Node holds a vertex and its dofs
type Node struct {
	Vert *msh.Vert // corresponding vertex
	Dofs []*Dof    // all dofs, in ykeys order
}

// NewNode allocates a node with the three dofs of the coupled problem;
// equation numbers are contiguous per vertex
func NewNode(v *msh.Vert) *Node {
	o := &Node{Vert: v, Dofs: make([]*Dof, len(ykeys))}
	for k, key := range ykeys {
		o.Dofs[k] = &Dof{Key: key, Eq: len(ykeys)*v.Id + k}
	}
	return o
}

// GetEq returns the equation number of a dof by key, or -1
func (o *Node) GetEq(key string) int {
	for _, d := range o.Dofs {
		if d.Key == key {
			return d.Eq
		}
	}
	return -1
}
