package spline

// Piece is one locally supported spline on one patch, given by its full
// coefficient vector in that patch's basis. The continuity-basis generator
// produces one Piece per contributing patch for every entity DOF; most
// coefficients are zero and are pruned on insertion.
type Piece struct {
	Patch int
	Coefs []float64
}

func NewPiece(patch int, coefs []float64) Piece {
	return Piece{Patch: patch, Coefs: coefs}
}

// Scale returns a copy of the piece with all coefficients multiplied by a.
func (p Piece) Scale(a float64) (r Piece) {
	r = Piece{Patch: p.Patch, Coefs: make([]float64, len(p.Coefs))}
	for i, val := range p.Coefs {
		r.Coefs[i] = a * val
	}
	return
}
