package multipatch

import (
	"github.com/igafem/g1mp/utils"
)

// KinkTol bounds the squared determinant of the paired transverse tangents
// at a shared corner. Below the tolerance the tangents are treated as
// parallel (smooth boundary); above it the corner is a kink.
const KinkTol = 1.e-25

// Geometry is the capability the classifier needs from a patch
// parameterization: corner positions and the Jacobian at a parametric point.
type Geometry interface {
	Corner(c Corner) (x, y float64)
	Jacobian(u, v float64) utils.Matrix
}

// Kink reports whether the domain boundary bends at the corner shared by
// two patches meeting at an interface end. da and db select the Jacobian
// column transverse to the interface on each patch.
func Kink(a Geometry, ca Corner, da int, b Geometry, cb Corner, db int) bool {
	var (
		ua, va = ca.UV()
		ub, vb = cb.UV()
		ta     = a.Jacobian(ua, va).Col(da)
		tb     = b.Jacobian(ub, vb).Col(db)
	)
	m := utils.NewMatrix(2, 2)
	m.SetCol(0, ta.DataP())
	m.SetCol(1, tb.DataP())
	det := m.Det()
	return det*det > KinkTol
}

// BilinearPatch maps the unit square onto the quadrilateral spanned by four
// corner points.
type BilinearPatch struct {
	SW, SE, NW, NE [2]float64
}

func NewBilinearPatch(sw, se, nw, ne [2]float64) *BilinearPatch {
	return &BilinearPatch{SW: sw, SE: se, NW: nw, NE: ne}
}

// NewUnitSquare places a unit square with its south-west corner at (x0, y0).
func NewUnitSquare(x0, y0 float64) *BilinearPatch {
	return NewBilinearPatch(
		[2]float64{x0, y0},
		[2]float64{x0 + 1, y0},
		[2]float64{x0, y0 + 1},
		[2]float64{x0 + 1, y0 + 1},
	)
}

func (p *BilinearPatch) Corner(c Corner) (x, y float64) {
	switch c {
	case SouthWest:
		return p.SW[0], p.SW[1]
	case SouthEast:
		return p.SE[0], p.SE[1]
	case NorthWest:
		return p.NW[0], p.NW[1]
	default:
		return p.NE[0], p.NE[1]
	}
}

func (p *BilinearPatch) Jacobian(u, v float64) (J utils.Matrix) {
	J = utils.NewMatrix(2, 2)
	for d := 0; d < 2; d++ {
		// column 0: d/du, column 1: d/dv
		J.Set(d, 0, (p.SE[d]-p.SW[d])*(1-v)+(p.NE[d]-p.NW[d])*v)
		J.Set(d, 1, (p.NW[d]-p.SW[d])*(1-u)+(p.NE[d]-p.SE[d])*u)
	}
	return
}
