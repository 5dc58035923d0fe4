// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// Master is one master equation of a hanging dof, with its weight
type Master struct {
	Eq int
	W  float64
}

// Constraints holds the essential constraints of one time step:
// pinned dofs with prescribed values and hanging dofs coupled to
// their edge-master equations
type Constraints struct {
	pinned map[int]float64  // eq => prescribed value
	hang   map[int][]Master // eq => master equations
}

// NewConstraints returns an empty set of constraints
func NewConstraints() *Constraints {
	return &Constraints{
		pinned: make(map[int]float64),
		hang:   make(map[int][]Master),
	}
}

// Pin prescribes the value of one dof. Pinning wins over hanging.
func (o *Constraints) Pin(eq int, val float64) {
	o.pinned[eq] = val
	delete(o.hang, eq)
}

// Hang couples a hanging dof to the two masters of its edge
func (o *Constraints) Hang(slave, ma, mb int) {
	if _, ok := o.pinned[slave]; ok {
		return
	}
	o.hang[slave] = []Master{{ma, 0.5}, {mb, 0.5}}
}

// Resolve expands chained couplings until every master is a free or
// pinned equation: a master that is itself hanging is replaced by its
// own masters with multiplied weights
func (o *Constraints) Resolve() {
	for changed := true; changed; {
		changed = false
		for slave, masters := range o.hang {
			var out []Master
			for _, m := range masters {
				if sub, ok := o.hang[m.Eq]; ok {
					changed = true
					for _, s := range sub {
						out = append(out, Master{s.Eq, m.W * s.W})
					}
					continue
				}
				out = append(out, m)
			}
			o.hang[slave] = out
		}
	}
}

// IsPinned returns the prescribed value of a pinned dof
func (o *Constraints) IsPinned(eq int) (val float64, ok bool) {
	val, ok = o.pinned[eq]
	return
}

// Hanging returns the masters of a hanging dof
func (o *Constraints) Hanging(eq int) (masters []Master, ok bool) {
	masters, ok = o.hang[eq]
	return
}

// Npinned returns the number of pinned dofs
func (o *Constraints) Npinned() int { return len(o.pinned) }

// Nhanging returns the number of hanging dofs
func (o *Constraints) Nhanging() int { return len(o.hang) }

// EachPinned calls fn for every pinned dof
func (o *Constraints) EachPinned(fn func(eq int, val float64)) {
	for eq, val := range o.pinned {
		fn(eq, val)
	}
}

// EachHanging calls fn for every hanging dof
func (o *Constraints) EachHanging(fn func(eq int, masters []Master)) {
	for eq, masters := range o.hang {
		fn(eq, masters)
	}
}
