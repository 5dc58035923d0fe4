// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out writes simulation results: parallel VTK files for
// visualization (one .vtu piece per processor, a .pvtu index and a
// .pvd time series) and plain-text postprocessing files
package out

import (
	"bytes"

	"github.com/cpmech/gosl/io"
	"github.com/minasel/eaglefrac/msh"
)

// Snapshot holds the read-only view of one accepted step handed over
// by the solver
type Snapshot struct {
	Step   int       // accepted step counter
	Time   float64   // step time
	Mesh   *msh.Mesh // the mesh
	Ux, Uy []float64 // [nverts] displacement
	Phi    []float64 // [nverts] phase field
	Press  []float64 // [nverts] fluid pressure
	Active []float64 // [nverts] 1 where the active set held the dof
}

// pvdEntry is one (time, file) pair of the .pvd collection
type pvdEntry struct {
	time  float64
	fname string
}

// Writer writes the visualization files of one simulation
type Writer struct {
	DirOut string // output directory
	Key    string // simulation key used in filenames
	Proc   int    // this processor id
	Nproc  int    // number of processors

	entries []pvdEntry
}

// NewWriter returns a writer for one simulation run
func NewWriter(dirout, key string, proc, nproc int) *Writer {
	return &Writer{DirOut: dirout, Key: key, Proc: proc, Nproc: nproc}
}

// WriteStep writes the piece of this processor and, on the root
// processor, the .pvtu index and the updated .pvd collection
func (o *Writer) WriteStep(s *Snapshot) (err error) {
	o.writeVtu(s)
	if o.Proc == 0 {
		o.writePvtu(s)
		o.entries = append(o.entries, pvdEntry{s.Time, io.Sf("%s-%06d.pvtu", o.Key, s.Step)})
		o.writePvd()
	}
	return
}

// writeVtu writes the cells of this processor's partition
func (o *Writer) writeVtu(s *Snapshot) {

	// owned cells
	var cells []*msh.Cell
	for _, c := range s.Mesh.Cells {
		if o.Nproc < 2 || c.Part == o.Proc {
			cells = append(cells, c)
		}
	}

	buf := new(bytes.Buffer)
	io.Ff(buf, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n<UnstructuredGrid>\n")
	io.Ff(buf, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", len(s.Mesh.Verts), len(cells))

	// topology
	io.Ff(buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, v := range s.Mesh.Verts {
		io.Ff(buf, "%23.15e %23.15e 0 ", v.C[0], v.C[1])
	}
	io.Ff(buf, "\n</DataArray>\n</Points>\n")
	io.Ff(buf, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, c := range cells {
		for _, v := range c.Verts {
			io.Ff(buf, "%d ", v)
		}
	}
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	for i := range cells {
		io.Ff(buf, "%d ", 4*(i+1))
	}
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for range cells {
		io.Ff(buf, "9 ") // VTK_QUAD
	}
	io.Ff(buf, "\n</DataArray>\n</Cells>\n")

	// nodal fields
	io.Ff(buf, "<PointData Scalars=\"phi\">\n")
	io.Ff(buf, "<DataArray type=\"Float64\" Name=\"displacement\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for i := range s.Mesh.Verts {
		io.Ff(buf, "%23.15e %23.15e 0 ", s.Ux[i], s.Uy[i])
	}
	io.Ff(buf, "\n</DataArray>\n")
	for _, f := range []struct {
		name string
		vals []float64
	}{{"phi", s.Phi}, {"pressure", s.Press}, {"active_set", s.Active}} {
		io.Ff(buf, "<DataArray type=\"Float64\" Name=\"%s\" format=\"ascii\">\n", f.name)
		for i := range s.Mesh.Verts {
			io.Ff(buf, "%23.15e ", f.vals[i])
		}
		io.Ff(buf, "\n</DataArray>\n")
	}
	io.Ff(buf, "</PointData>\n")

	// cell fields
	io.Ff(buf, "<CellData>\n<DataArray type=\"Int32\" Name=\"level\" format=\"ascii\">\n")
	for _, c := range cells {
		io.Ff(buf, "%d ", c.Level)
	}
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"partition\" format=\"ascii\">\n")
	for _, c := range cells {
		io.Ff(buf, "%d ", c.Part)
	}
	io.Ff(buf, "\n</DataArray>\n</CellData>\n")

	io.Ff(buf, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")
	io.WriteFileD(o.DirOut, io.Sf("%s-p%d-%06d.vtu", o.Key, o.Proc, s.Step), buf)
}

// writePvtu writes the parallel index referencing all pieces
func (o *Writer) writePvtu(s *Snapshot) {
	buf := new(bytes.Buffer)
	io.Ff(buf, "<?xml version=\"1.0\"?>\n<VTKFile type=\"PUnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n<PUnstructuredGrid GhostLevel=\"0\">\n")
	io.Ff(buf, "<PPoints>\n<PDataArray type=\"Float64\" NumberOfComponents=\"3\"/>\n</PPoints>\n")
	io.Ff(buf, "<PPointData Scalars=\"phi\">\n")
	io.Ff(buf, "<PDataArray type=\"Float64\" Name=\"displacement\" NumberOfComponents=\"3\"/>\n")
	for _, name := range []string{"phi", "pressure", "active_set"} {
		io.Ff(buf, "<PDataArray type=\"Float64\" Name=\"%s\"/>\n", name)
	}
	io.Ff(buf, "</PPointData>\n<PCellData>\n")
	for _, name := range []string{"level", "partition"} {
		io.Ff(buf, "<PDataArray type=\"Int32\" Name=\"%s\"/>\n", name)
	}
	io.Ff(buf, "</PCellData>\n")
	np := o.Nproc
	if np < 1 {
		np = 1
	}
	for p := 0; p < np; p++ {
		io.Ff(buf, "<Piece Source=\"%s-p%d-%06d.vtu\"/>\n", o.Key, p, s.Step)
	}
	io.Ff(buf, "</PUnstructuredGrid>\n</VTKFile>\n")
	io.WriteFileD(o.DirOut, io.Sf("%s-%06d.pvtu", o.Key, s.Step), buf)
}

// writePvd rewrites the time-series collection; rewriting on every
// step keeps the collection valid if the run aborts
func (o *Writer) writePvd() {
	buf := new(bytes.Buffer)
	io.Ff(buf, "<?xml version=\"1.0\"?>\n<VTKFile type=\"Collection\" version=\"0.1\" byte_order=\"LittleEndian\">\n<Collection>\n")
	for _, e := range o.entries {
		io.Ff(buf, "<DataSet timestep=\"%23.15e\" file=\"%s\"/>\n", e.time, e.fname)
	}
	io.Ff(buf, "</Collection>\n</VTKFile>\n")
	io.WriteFileD(o.DirOut, o.Key+".pvd", buf)
}
