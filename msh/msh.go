// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh implements a refinable structured quadrilateral mesh for
// FE analyses: a rectangular root grid whose cells can be split and
// merged quadtree-style with a 2:1 level balance between edge
// neighbours. Vertices are identified by exact integer coordinates on
// the finest admissible grid, so meshes rebuilt after refinement agree
// bit-for-bit across processors.
package msh

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
)

// boundary edge tags (negative by convention)
const (
	TagBottom = -10
	TagRight  = -11
	TagTop    = -12
	TagLeft   = -13
)

// Vert holds vertex data
type Vert struct {
	Id  int       // id
	Tag int       // tag
	C   []float64 // coordinates (size==2)
	Key int       // exact integer key on the finest grid
}

// Cell holds cell data
type Cell struct {
	Id    int   // id
	Tag   int   // tag
	Verts []int // vertices (qua4, counter-clockwise)
	Level int   // refinement depth below the root grid
	Part  int   // partition id
	FTags []int // edge tags: {bottom, right, top, left}; 0 == interior
}

// CellFaceId holds a cell and one of its local faces
type CellFaceId struct {
	C   *Cell // cell
	Fid int   // face id
}

// ckey identifies an active cell in the quadtree: level and integer
// cell coordinates at that level
type ckey struct {
	l, i, j int
}

// Mesh holds the active cells and vertices of the current refinement
// state
type Mesh struct {

	// definition
	Xmin, Xmax float64 // domain extents
	Ymin, Ymax float64
	Nx, Ny     int // root grid divisions
	MaxLevel   int // hard bound on refinement depth

	// current state
	Verts []*Vert // vertices
	Cells []*Cell // active cells

	// derived
	Hanging       map[int][2]int       // hanging vertex id => edge master vertex ids
	FaceTag2cells map[int][]CellFaceId // boundary tag => cells with a tagged face

	// internal
	active  map[ckey]bool // active cell set
	key2vid map[int]int   // finest-grid vertex key => vertex id
}

// NewStructured returns a mesh over [xmin,xmax]x[ymin,ymax] with an
// nx by ny root grid. maxLevel bounds the total refinement depth.
func NewStructured(xmin, xmax, ymin, ymax float64, nx, ny, maxLevel int) (o *Mesh, err error) {
	if nx < 1 || ny < 1 {
		return nil, chk.Err("msh: grid divisions must be positive. nx=%d, ny=%d is invalid", nx, ny)
	}
	if xmax <= xmin || ymax <= ymin {
		return nil, chk.Err("msh: invalid domain extents: [%g,%g]x[%g,%g]", xmin, xmax, ymin, ymax)
	}
	o = new(Mesh)
	o.Xmin, o.Xmax, o.Ymin, o.Ymax = xmin, xmax, ymin, ymax
	o.Nx, o.Ny = nx, ny
	o.MaxLevel = maxLevel
	o.active = make(map[ckey]bool)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			o.active[ckey{0, i, j}] = true
		}
	}
	o.build()
	return
}

// RefineGlobal splits every active cell n times
func (o *Mesh) RefineGlobal(n int) {
	for it := 0; it < n; it++ {
		flags := make([]bool, len(o.Cells))
		for i := range flags {
			flags[i] = true
		}
		o.Adapt(flags, nil)
	}
}

// RefineRegion splits every cell whose centre lies inside the box
// {x0, x1, y0, y1} by one level
func (o *Mesh) RefineRegion(box []float64) {
	flags := make([]bool, len(o.Cells))
	for idx, c := range o.Cells {
		var xc, yc float64
		for _, v := range c.Verts {
			xc += o.Verts[v].C[0]
			yc += o.Verts[v].C[1]
		}
		xc /= 4
		yc /= 4
		if xc >= box[0] && xc <= box[1] && yc >= box[2] && yc <= box[3] {
			flags[idx] = true
		}
	}
	o.Adapt(flags, nil)
}

// Hmin returns the smallest edge length among active cells
func (o *Mesh) Hmin() (h float64) {
	h = math.Inf(1)
	for _, c := range o.Cells {
		k := o.cellKey(c)
		h = math.Min(h, math.Min(o.dx(k.l), o.dy(k.l)))
	}
	return
}

// HminFinest returns the edge length a cell would have at MaxLevel
func (o *Mesh) HminFinest() float64 {
	f := float64(int(1) << uint(o.MaxLevel))
	return math.Min((o.Xmax-o.Xmin)/float64(o.Nx)/f, (o.Ymax-o.Ymin)/float64(o.Ny)/f)
}

// Partition assigns cells to nproc partitions in contiguous blocks
func (o *Mesh) Partition(nproc int) {
	n := len(o.Cells)
	for idx, c := range o.Cells {
		c.Part = idx * nproc / n
	}
}

// CellCoords returns the coordinates matrix x[ndim][nverts] of a cell
func (o *Mesh) CellCoords(c *Cell) (x [][]float64) {
	x = [][]float64{make([]float64, 4), make([]float64, 4)}
	for m, v := range c.Verts {
		x[0][m] = o.Verts[v].C[0]
		x[1][m] = o.Verts[v].C[1]
	}
	return
}

// FindVert returns the id of the vertex closest to (x, y)
func (o *Mesh) FindVert(x, y float64) (vid int) {
	dmin := math.Inf(1)
	for _, v := range o.Verts {
		d := math.Hypot(v.C[0]-x, v.C[1]-y)
		if d < dmin {
			dmin = d
			vid = v.Id
		}
	}
	return
}

// internal /////////////////////////////////////////////////////////////////////////////////////////

// finest-grid resolution along x and y
func (o *Mesh) resX() int { return o.Nx << uint(o.MaxLevel) }
func (o *Mesh) resY() int { return o.Ny << uint(o.MaxLevel) }

// cell sizes at a given level
func (o *Mesh) dx(l int) float64 { return (o.Xmax - o.Xmin) / float64(o.Nx<<uint(l)) }
func (o *Mesh) dy(l int) float64 { return (o.Ymax - o.Ymin) / float64(o.Ny<<uint(l)) }

// vkey maps finest-grid integer coordinates to a unique vertex key
func (o *Mesh) vkey(i, j int) int { return j*(o.resX()+1) + i }

// cellKey recovers the ckey of an active cell from its first vertex
// and level
func (o *Mesh) cellKey(c *Cell) ckey {
	v := o.Verts[c.Verts[0]]
	step := 1 << uint(o.MaxLevel-c.Level)
	i := (v.Key % (o.resX() + 1)) / step
	j := (v.Key / (o.resX() + 1)) / step
	return ckey{c.Level, i, j}
}

// sortedKeys returns the active cell keys in a deterministic spatial
// order (identical on every processor)
func (o *Mesh) sortedKeys() (keys []ckey) {
	keys = make([]ckey, 0, len(o.active))
	for k := range o.active {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		ka, kb := keys[a], keys[b]
		// compare centre positions on the finest grid
		sa := 1 << uint(o.MaxLevel-ka.l)
		sb := 1 << uint(o.MaxLevel-kb.l)
		ya, yb := (2*ka.j+1)*sa, (2*kb.j+1)*sb
		if ya != yb {
			return ya < yb
		}
		xa, xb := (2*ka.i+1)*sa, (2*kb.i+1)*sb
		return xa < xb
	})
	return
}

// getVert returns (allocating if needed) the vertex at finest-grid
// coordinates (i, j)
func (o *Mesh) getVert(i, j int) int {
	key := o.vkey(i, j)
	if vid, ok := o.key2vid[key]; ok {
		return vid
	}
	vid := len(o.Verts)
	x := o.Xmin + (o.Xmax-o.Xmin)*float64(i)/float64(o.resX())
	y := o.Ymin + (o.Ymax-o.Ymin)*float64(j)/float64(o.resY())
	o.Verts = append(o.Verts, &Vert{Id: vid, C: []float64{x, y}, Key: key})
	o.key2vid[key] = vid
	return vid
}

// build regenerates Verts, Cells and the derived maps from the active
// cell set
func (o *Mesh) build() {
	keys := o.sortedKeys()
	o.Verts = make([]*Vert, 0)
	o.Cells = make([]*Cell, 0, len(keys))
	o.key2vid = make(map[int]int)
	for idx, k := range keys {
		step := 1 << uint(o.MaxLevel-k.l)
		i0, j0 := k.i*step, k.j*step
		cell := &Cell{
			Id:    idx,
			Tag:   -1,
			Level: k.l,
			FTags: make([]int, 4),
			Verts: []int{
				o.getVert(i0, j0),
				o.getVert(i0+step, j0),
				o.getVert(i0+step, j0+step),
				o.getVert(i0, j0+step),
			},
		}
		if k.j == 0 {
			cell.FTags[0] = TagBottom
		}
		if k.i == (o.Nx<<uint(k.l))-1 {
			cell.FTags[1] = TagRight
		}
		if k.j == (o.Ny<<uint(k.l))-1 {
			cell.FTags[2] = TagTop
		}
		if k.i == 0 {
			cell.FTags[3] = TagLeft
		}
		o.Cells = append(o.Cells, cell)
	}
	o.findHanging()
	o.FaceTag2cells = make(map[int][]CellFaceId)
	for _, c := range o.Cells {
		for f, tag := range c.FTags {
			if tag != 0 {
				o.FaceTag2cells[tag] = append(o.FaceTag2cells[tag], CellFaceId{c, f})
			}
		}
	}
}

// edge local vertices per side: {bottom, right, top, left}
var sideVerts = [4][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}

// FaceVerts returns the local vertices of a cell face
func FaceVerts(fid int) [2]int { return sideVerts[fid] }

// sideDelta gives the (di, dj) step towards a side's neighbour
var sideDelta = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// finerPair returns the two same-side children of the neighbour cell
// across the given side of k
func finerPair(k ckey, side int) [2]ckey {
	ni, nj := k.i+sideDelta[side][0], k.j+sideDelta[side][1]
	ci, cj := 2*ni, 2*nj
	switch side {
	case 0: // neighbour below: its top children
		return [2]ckey{{k.l + 1, ci, cj + 1}, {k.l + 1, ci + 1, cj + 1}}
	case 1: // neighbour right: its left children
		return [2]ckey{{k.l + 1, ci, cj}, {k.l + 1, ci, cj + 1}}
	case 2: // neighbour above: its bottom children
		return [2]ckey{{k.l + 1, ci, cj}, {k.l + 1, ci + 1, cj}}
	default: // neighbour left: its right children
		return [2]ckey{{k.l + 1, ci + 1, cj}, {k.l + 1, ci + 1, cj + 1}}
	}
}

// coarserNeighbor returns the parent-level cell across a side
func coarserNeighbor(k ckey, side int) ckey {
	ni, nj := k.i+sideDelta[side][0], k.j+sideDelta[side][1]
	return ckey{k.l - 1, ni >> 1, nj >> 1}
}

// inDomain tells whether a same-level neighbour key lies inside the
// root grid
func (o *Mesh) inDomain(k ckey) bool {
	return k.i >= 0 && k.j >= 0 && k.i < o.Nx<<uint(k.l) && k.j < o.Ny<<uint(k.l)
}

// findHanging locates hanging vertices: edge midpoints of cells whose
// neighbour across that edge is one level finer
func (o *Mesh) findHanging() {
	o.Hanging = make(map[int][2]int)
	for _, c := range o.Cells {
		k := o.cellKey(c)
		step := 1 << uint(o.MaxLevel-k.l)
		i0, j0 := k.i*step, k.j*step
		for side := 0; side < 4; side++ {
			nb := ckey{k.l, k.i + sideDelta[side][0], k.j + sideDelta[side][1]}
			if !o.inDomain(nb) || o.active[nb] {
				continue
			}
			fp := finerPair(k, side)
			if !o.active[fp[0]] {
				continue
			}
			// midpoint of this side on the finest grid
			a := sideVerts[side][0]
			b := sideVerts[side][1]
			corners := [4][2]int{{i0, j0}, {i0 + step, j0}, {i0 + step, j0 + step}, {i0, j0 + step}}
			mi := (corners[a][0] + corners[b][0]) / 2
			mj := (corners[a][1] + corners[b][1]) / 2
			mid, ok := o.key2vid[o.vkey(mi, mj)]
			if !ok {
				continue
			}
			o.Hanging[mid] = [2]int{c.Verts[a], c.Verts[b]}
		}
	}
}
