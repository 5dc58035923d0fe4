// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"
	"github.com/minasel/eaglefrac/inp"
	"github.com/minasel/eaglefrac/msh"
	"github.com/minasel/eaglefrac/shp"
	"github.com/minasel/eaglefrac/solid"
)

// Solution holds the solution vectors of the coupled problem and the
// time-step state. Three temporal copies of the dof vector are kept:
// current, previous accepted step and the step before that; the last
// two feed the linear extrapolation of the phase field.
type Solution struct {

	// time
	T     float64 // current time
	Dt    float64 // current step size
	DtOld float64 // previous accepted step size

	// vectors
	Y       []float64 // current trial solution
	YOld    []float64 // last accepted solution
	YOldOld []float64 // accepted solution before that

	// flags
	UseOldPhi bool // suppress extrapolation after a step cut
}

// PhiStar returns the extrapolated phase-field value at one equation:
// φ* = φold + (φold − φoldold), or φold right after a step cut
func (o *Solution) PhiStar(eq int) float64 {
	if o.UseOldPhi {
		return o.YOld[eq]
	}
	return 2.0*o.YOld[eq] - o.YOldOld[eq]
}

// Domain holds the finite-element mesh, nodes, elements, constraints
// and solution of the coupled displacement/phase-field problem
type Domain struct {

	// init
	Sim   *inp.Simulation   // simulation data
	Proc  int               // this processor id
	Nproc int               // number of processors
	Distr bool              // distributed (parallel) run
	Root  bool              // this is the root processor
	Cmm   *mpi.Communicator // world communicator; nil in serial runs

	// model
	Mdl    *solid.Elastic // elasticity + degradation
	Gc     float64        // fracture toughness
	Biot   float64        // Biot coupling coefficient
	EpsReg float64        // phase-field regularization length

	// mesh and dofs
	Msh   *msh.Mesh    // the mesh (replicated on all processors)
	Shp   *shp.Shape   // qua4 shape structure shared by all elements
	Nodes []*Node      // all nodes
	Elems []*ElemPfrac // elements of cells owned by this processor
	Ny    int          // total number of equations

	// current step state
	Sol   *Solution    // solution vectors
	Press la.Vector    // nodal fluid pressure (piecewise linear)
	Cs    *Constraints // essential constraints of the current step
	ASet  *ActiveSet   // active set of the current Newton solve

	// linear system
	Kb       *la.Triplet     // global Jacobian in triplet form
	Fb       la.Vector       // global residual (right-hand side)
	Wb       la.Vector       // workspace; also the solution increment
	LinSol   la.SparseSolver // linear solver
	InitLSol bool            // linear solver must be initialised before use
	NnzKb    int             // maximum number of non-zeros in Kb
}

// NewDomain builds the initial domain: root grid, global refinement,
// optional pre-refined region, defects, and the dof layout
func NewDomain(sim *inp.Simulation, proc, nproc int, distr bool) (o *Domain, err error) {

	// basic data
	o = new(Domain)
	o.Sim = sim
	o.Proc, o.Nproc, o.Distr = proc, nproc, distr
	o.Root = proc == 0
	o.Shp = shp.New()
	o.LinSol = la.NewSparseSolver(sim.LinSol.Name)
	if distr {
		o.Cmm = mpi.NewCommunicator(nil)
	}

	// material model
	o.Mdl = new(solid.Elastic)
	err = o.Mdl.Init(sim.Mat.Prms)
	if err != nil {
		return nil, err
	}
	if p := sim.Mat.Prms.Find("gc"); p != nil {
		o.Gc = p.V
	}
	if p := sim.Mat.Prms.Find("biot"); p != nil {
		o.Biot = p.V
	}
	if o.Gc <= 0 {
		return nil, chk.Err("domain: fracture toughness gc must be positive")
	}
	o.EpsReg = sim.PhaseField.EpsReg

	// mesh: root grid, global refinement, pre-refined region
	g := &sim.Grid
	m, err := msh.NewStructured(g.Xmin, g.Xmax, g.Ymin, g.Ymax, g.Nx, g.Ny, g.Nglobal+g.Nadapt)
	if err != nil {
		return nil, err
	}
	m.RefineGlobal(g.Nglobal)
	if len(g.PreRegion) == 4 {
		for i := 0; i < g.Nadapt; i++ {
			m.RefineRegion(g.PreRegion)
		}
	}
	o.SetMesh(m, nil)

	// initial state: intact material, broken inside defects
	for _, nod := range o.Nodes {
		eq := nod.GetEq("phi")
		o.Sol.Y[eq] = 1.0
		o.Sol.YOld[eq] = 1.0
		o.Sol.YOldOld[eq] = 1.0
	}
	o.applyDefects()
	return
}

// SetMesh installs a mesh (initial or refined), rebuilds nodes,
// elements and the linear system, and, when a transfer map is given,
// interpolates the three solution-history vectors onto the new layout
func (o *Domain) SetMesh(m *msh.Mesh, tr *msh.Transfer) {

	// partitioning
	m.Partition(o.Nproc)
	o.Msh = m

	// nodes and equations
	o.Nodes = make([]*Node, len(m.Verts))
	for i, v := range m.Verts {
		o.Nodes[i] = NewNode(v)
	}
	o.Ny = len(ykeys) * len(m.Verts)

	// elements of owned cells
	o.Elems = nil
	for _, c := range m.Cells {
		if o.Distr && c.Part != o.Proc {
			continue
		}
		o.Elems = append(o.Elems, NewElemPfrac(o, c))
	}

	// solution vectors
	sol := &Solution{
		Y:       make([]float64, o.Ny),
		YOld:    make([]float64, o.Ny),
		YOldOld: make([]float64, o.Ny),
	}
	if o.Sol != nil {
		sol.T = o.Sol.T
		sol.Dt = o.Sol.Dt
		sol.DtOld = o.Sol.DtOld
		sol.UseOldPhi = o.Sol.UseOldPhi
	}
	if tr != nil {
		o.transferDofs(tr, sol.Y, o.Sol.Y)
		o.transferDofs(tr, sol.YOld, o.Sol.YOld)
		o.transferDofs(tr, sol.YOldOld, o.Sol.YOldOld)
	}
	o.Sol = sol

	// pressure field
	o.Press = la.NewVector(len(m.Verts))

	// linear system
	if o.Kb != nil {
		o.LinSol.Free()
	}
	o.NnzKb = 144*len(o.Elems) + 8*o.Ny
	o.Kb = new(la.Triplet)
	o.Kb.Init(o.Ny, o.Ny, o.NnzKb)
	o.Fb = la.NewVector(o.Ny)
	o.Wb = la.NewVector(o.Ny)
	o.InitLSol = true
	o.Cs = nil
	o.ASet = nil
}

// transferDofs maps one dof vector onto the new mesh: per vertex, keep
// the old value when the vertex survives, average the masters otherwise
func (o *Domain) transferDofs(tr *msh.Transfer, unew, u []float64) {
	nk := len(ykeys)
	for i, src := range tr.Src {
		for k := 0; k < nk; k++ {
			if src >= 0 {
				unew[nk*i+k] = u[nk*src+k]
				continue
			}
			var sum float64
			for _, m := range tr.Masters[i] {
				sum += u[nk*m+k]
			}
			unew[nk*i+k] = sum / float64(len(tr.Masters[i]))
		}
	}
}

// applyDefects breaks the phase field (φ = 0) at vertices within the
// half-thickness of each defect segment, in all three history vectors
func (o *Domain) applyDefects() {
	for _, def := range o.Sim.Defects {
		w := def.W
		if w == 0 {
			w = o.Msh.HminFinest()
		}
		for _, nod := range o.Nodes {
			if distPointSegment(nod.Vert.C, def.A, def.B) <= w {
				eq := nod.GetEq("phi")
				o.Sol.Y[eq] = 0
				o.Sol.YOld[eq] = 0
				o.Sol.YOldOld[eq] = 0
			}
		}
	}
}

// SetBcs builds the constraints of the step at time t: hanging-vertex
// couplings and prescribed displacements, whose values are also copied
// into the trial solution
func (o *Domain) SetBcs(t float64) {

	cs := NewConstraints()

	// hanging vertices: all dofs are coupled to the edge masters
	for slave, masters := range o.Msh.Hanging {
		na := o.Nodes[masters[0]]
		nb := o.Nodes[masters[1]]
		for k, key := range ykeys {
			cs.Hang(o.Nodes[slave].Dofs[k].Eq, na.GetEq(key), nb.GetEq(key))
		}
	}

	// face boundary conditions
	for _, fb := range o.Sim.FaceBcs {
		for _, cf := range o.Msh.FaceTag2cells[fb.Tag] {
			lverts := msh.FaceVerts(cf.Fid)
			for j, key := range fb.Keys {
				val := o.Sim.Functions.GetOrPanic(fb.Funcs[j]).F(t, nil)
				for _, lv := range lverts {
					cs.Pin(o.Nodes[cf.C.Verts[lv]].GetEq(key), val)
				}
			}
		}
	}

	// point boundary conditions
	for _, nb := range o.Sim.NodeBcs {
		nod := o.Nodes[o.Msh.FindVert(nb.At[0], nb.At[1])]
		for j, key := range nb.Keys {
			val := o.Sim.Functions.GetOrPanic(nb.Funcs[j]).F(t, nil)
			cs.Pin(nod.GetEq(key), val)
		}
	}

	cs.Resolve()
	o.Cs = cs

	// trial solution satisfies the essential conditions from the start
	cs.EachPinned(func(eq int, val float64) {
		o.Sol.Y[eq] = val
	})
	o.enforceHanging()
}

// enforceHanging sets every hanging dof to the weighted value of its
// masters in the trial solution
func (o *Domain) enforceHanging() {
	o.Cs.EachHanging(func(eq int, masters []Master) {
		var sum float64
		for _, m := range masters {
			sum += m.W * o.Sol.Y[m.Eq]
		}
		o.Sol.Y[eq] = sum
	})
}

// UpdatePressure rebuilds the nodal fluid pressure at time t: cells
// whose mean phase field (last accepted solution) is below the crack
// threshold carry the full pressure value, the rest carry zero
func (o *Domain) UpdatePressure(t float64) {
	o.Press.Fill(0)
	if o.Sim.Pressure == nil {
		return
	}
	pval := o.Sim.Pressure.F(t, nil)
	thr := o.Sim.PhaseField.PressThr
	for _, c := range o.Msh.Cells {
		var mean float64
		for _, v := range c.Verts {
			mean += o.Sol.YOld[o.Nodes[v].GetEq("phi")]
		}
		mean /= 4.0
		if mean < thr {
			for _, v := range c.Verts {
				o.Press[v] = pval
			}
		}
	}
}

// masked tells whether an equation is eliminated from the linear
// system: pinned by a boundary condition or held by the active set
func (o *Domain) masked(eq int) bool {
	if _, ok := o.Cs.IsPinned(eq); ok {
		return true
	}
	return o.ASet != nil && o.ASet.Contains(eq)
}

// addToFb scatters one residual contribution, redirecting hanging rows
// to their masters and dropping eliminated rows
func (o *Domain) addToFb(eq int, v float64) {
	if o.masked(eq) {
		return
	}
	if masters, ok := o.Cs.Hanging(eq); ok {
		for _, m := range masters {
			if !o.masked(m.Eq) {
				o.Fb[m.Eq] += m.W * v
			}
		}
		return
	}
	o.Fb[eq] += v
}

// addToKb scatters one Jacobian contribution, condensing hanging rows
// and columns onto their masters and dropping eliminated ones
func (o *Domain) addToKb(r, c int, v float64) {
	if o.masked(r) {
		return
	}
	if masters, ok := o.Cs.Hanging(r); ok {
		for _, m := range masters {
			o.addToKb(m.Eq, c, m.W*v)
		}
		return
	}
	if o.masked(c) {
		return
	}
	if masters, ok := o.Cs.Hanging(c); ok {
		for _, m := range masters {
			o.addToKb(r, m.Eq, m.W*v)
		}
		return
	}
	o.Kb.Put(r, c, v)
}

// putConstraintRows appends the trivial equations of eliminated and
// hanging dofs to the linear system: δy = 0 for pinned and active-set
// dofs, δy − Σ w δy_master = 0 for hanging dofs. Under MPI only the
// root processor contributes these rows.
func (o *Domain) putConstraintRows() {
	if o.Distr && !o.Root {
		return
	}
	for eq := 0; eq < o.Ny; eq++ {
		if o.masked(eq) {
			o.Kb.Put(eq, eq, 1.0)
			continue
		}
		if masters, ok := o.Cs.Hanging(eq); ok {
			o.Kb.Put(eq, eq, 1.0)
			for _, m := range masters {
				o.Kb.Put(eq, m.Eq, -m.W)
			}
		}
	}
}

// maskFb zeroes the residual entries of eliminated and hanging rows so
// that the constraint equations read δy = 0 and the residual norm only
// measures free equations
func (o *Domain) maskFb() {
	for eq := 0; eq < o.Ny; eq++ {
		if o.masked(eq) {
			o.Fb[eq] = 0
			continue
		}
		if _, ok := o.Cs.Hanging(eq); ok {
			o.Fb[eq] = 0
		}
	}
}

// Accept finalises a converged step: the trial solution becomes the
// accepted one and the histories shift
func (o *Domain) Accept() {
	copy(o.Sol.YOldOld, o.Sol.YOld)
	copy(o.Sol.YOld, o.Sol.Y)
	o.Sol.DtOld = o.Sol.Dt
	o.Sol.UseOldPhi = false
}

// Reject discards the trial solution, restoring the last accepted one
func (o *Domain) Reject() {
	copy(o.Sol.Y, o.Sol.YOld)
}

// PhiMin returns the smallest nodal phase-field value of a cell
func (o *Domain) PhiMin(c *msh.Cell) (phimin float64) {
	phimin = math.Inf(1)
	for _, v := range c.Verts {
		phimin = math.Min(phimin, o.Sol.Y[o.Nodes[v].GetEq("phi")])
	}
	return
}

// distPointSegment returns the distance from point p to segment a-b
func distPointSegment(p, a, b []float64) float64 {
	vx, vy := b[0]-a[0], b[1]-a[1]
	wx, wy := p[0]-a[0], p[1]-a[1]
	den := vx*vx + vy*vy
	t := 0.0
	if den > 0 {
		t = (wx*vx + wy*vy) / den
		t = math.Max(0, math.Min(1, t))
	}
	return math.Hypot(wx-t*vx, wy-t*vy)
}
