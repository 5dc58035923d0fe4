// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// ActiveSet is an immutable snapshot of the phase-field equations
// pinned by the irreversibility constraint during one Newton solve.
// Each Newton iteration derives a new snapshot from the previous one;
// membership can only grow within a solve.
type ActiveSet struct {
	set map[int]bool
}

// NewActiveSet returns an empty snapshot
func NewActiveSet() *ActiveSet {
	return &ActiveSet{set: make(map[int]bool)}
}

// Contains tells whether an equation is held by the set
func (o *ActiveSet) Contains(eq int) bool { return o.set[eq] }

// Size returns the number of held equations
func (o *ActiveSet) Size() int { return len(o.set) }

// Equal compares two snapshots by membership
func (o *ActiveSet) Equal(other *ActiveSet) bool {
	if len(o.set) != len(other.set) {
		return false
	}
	for eq := range o.set {
		if !other.set[eq] {
			return false
		}
	}
	return true
}

// Update returns a new snapshot: the union of this set with every
// phase-field equation whose trial value exceeds its value at the
// start of the time step (the update direction would heal the
// fracture). Newly held equations are projected onto the constraint
// boundary: their trial value is clamped to the old-solution value.
// The solution vectors are replicated on all processors, so every
// processor derives the same snapshot without communication.
func (o *ActiveSet) Update(dom *Domain) *ActiveSet {
	next := &ActiveSet{set: make(map[int]bool, len(o.set))}
	for eq := range o.set {
		next.set[eq] = true
	}
	sol := dom.Sol
	for _, nod := range dom.Nodes {
		eq := nod.GetEq("phi")
		if next.set[eq] {
			sol.Y[eq] = sol.YOld[eq]
			continue
		}
		if sol.Y[eq] > sol.YOld[eq] {
			next.set[eq] = true
			sol.Y[eq] = sol.YOld[eq]
		}
	}
	return next
}
