// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

// Transfer maps nodal data from the mesh before an Adapt call onto the
// rebuilt mesh. Vertices that survive keep their value exactly; newborn
// vertices average their masters (bilinear interpolation on the parent
// cell).
type Transfer struct {
	Src     []int   // [nverts(new)] old vertex id, or -1 for newborn vertices
	Masters [][]int // [nverts(new)] old vertex ids to average when Src < 0
}

// Apply interpolates old nodal values u onto the new mesh
func (o *Transfer) Apply(unew, u []float64) {
	for i, src := range o.Src {
		if src >= 0 {
			unew[i] = u[src]
			continue
		}
		var sum float64
		for _, m := range o.Masters[i] {
			sum += u[m]
		}
		unew[i] = sum / float64(len(o.Masters[i]))
	}
}

// Adapt refines and coarsens the flagged cells (indices follow
// o.Cells before the call) and rebuilds the mesh. Cells already at
// MaxLevel are not refined. Coarsening merges a group of four siblings
// only when all four are flagged, none is selected for refinement and
// the merge keeps the 2:1 level balance. Returns the nodal transfer
// and whether the mesh changed at all.
func (o *Mesh) Adapt(refine, coarsen []bool) (tr *Transfer, changed bool) {

	// refinement set
	ref := make(map[ckey]bool)
	if refine != nil {
		for idx, c := range o.Cells {
			if refine[idx] && c.Level < o.MaxLevel {
				ref[o.cellKey(c)] = true
			}
		}
	}

	// 2:1 balance: an active neighbour one level coarser than a cell
	// being refined must be refined as well
	for {
		grown := false
		for k := range ref {
			for side := 0; side < 4; side++ {
				nb := ckey{k.l, k.i + sideDelta[side][0], k.j + sideDelta[side][1]}
				if !o.inDomain(nb) || o.active[nb] || k.l == 0 {
					continue
				}
				cn := coarserNeighbor(k, side)
				if o.active[cn] && !ref[cn] {
					ref[cn] = true
					grown = true
				}
			}
		}
		if !grown {
			break
		}
	}

	// coarsening: count flagged children per parent
	count := make(map[ckey]int)
	if coarsen != nil {
		for idx, c := range o.Cells {
			if !coarsen[idx] || c.Level == 0 {
				continue
			}
			k := o.cellKey(c)
			if ref[k] {
				continue
			}
			count[ckey{k.l - 1, k.i >> 1, k.j >> 1}]++
		}
	}
	merge := make(map[ckey]bool)
	for p, n := range count {
		if n == 4 && o.mergeKeepsBalance(p, ref) {
			merge[p] = true
		}
	}

	if len(ref) == 0 && len(merge) == 0 {
		return nil, false
	}

	// apply refinements, recording parentage of newborn vertices
	oldKey2vid := o.key2vid
	newborn := make(map[int][]int)
	for k := range ref {
		delete(o.active, k)
		for dj := 0; dj < 2; dj++ {
			for di := 0; di < 2; di++ {
				o.active[ckey{k.l + 1, 2*k.i + di, 2*k.j + dj}] = true
			}
		}
		step := 1 << uint(o.MaxLevel-k.l)
		i0, j0 := k.i*step, k.j*step
		i1, j1 := i0+step, j0+step
		im, jm := i0+step/2, j0+step/2
		v00 := oldKey2vid[o.vkey(i0, j0)]
		v10 := oldKey2vid[o.vkey(i1, j0)]
		v11 := oldKey2vid[o.vkey(i1, j1)]
		v01 := oldKey2vid[o.vkey(i0, j1)]
		newborn[o.vkey(im, j0)] = []int{v00, v10}
		newborn[o.vkey(i1, jm)] = []int{v10, v11}
		newborn[o.vkey(im, j1)] = []int{v11, v01}
		newborn[o.vkey(i0, jm)] = []int{v01, v00}
		newborn[o.vkey(im, jm)] = []int{v00, v10, v11, v01}
	}

	// apply merges
	for p := range merge {
		for dj := 0; dj < 2; dj++ {
			for di := 0; di < 2; di++ {
				delete(o.active, ckey{p.l + 1, 2*p.i + di, 2*p.j + dj})
			}
		}
		o.active[p] = true
	}

	o.build()

	// transfer map for the rebuilt vertex set
	tr = &Transfer{
		Src:     make([]int, len(o.Verts)),
		Masters: make([][]int, len(o.Verts)),
	}
	for i, v := range o.Verts {
		if src, ok := oldKey2vid[v.Key]; ok {
			tr.Src[i] = src
			continue
		}
		tr.Src[i] = -1
		tr.Masters[i] = newborn[v.Key]
	}
	return tr, true
}

// mergeKeepsBalance tells whether merging the children of p keeps the
// 2:1 balance: no edge neighbour of p may end up two levels finer,
// neither an already active one nor one created by this round of
// refinements
func (o *Mesh) mergeKeepsBalance(p ckey, ref map[ckey]bool) bool {
	for side := 0; side < 4; side++ {
		for _, k := range o.adjacentAtLevel(p, side, p.l+2) {
			if o.active[k] {
				return false
			}
		}
		for _, k := range o.adjacentAtLevel(p, side, p.l+1) {
			if ref[k] {
				return false
			}
		}
	}
	return true
}

// adjacentAtLevel lists the keys at the given (finer) level sharing
// the given side of p
func (o *Mesh) adjacentAtLevel(p ckey, side, lvl int) (keys []ckey) {
	f := 1 << uint(lvl-p.l)
	i0, j0 := p.i*f, p.j*f
	for m := 0; m < f; m++ {
		var k ckey
		switch side {
		case 0:
			k = ckey{lvl, i0 + m, j0 - 1}
		case 1:
			k = ckey{lvl, i0 + f, j0 + m}
		case 2:
			k = ckey{lvl, i0 + m, j0 + f}
		default:
			k = ckey{lvl, i0 - 1, j0 + m}
		}
		if o.inDomain(k) {
			keys = append(keys, k)
		}
	}
	return
}
