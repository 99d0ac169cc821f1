// Package spline describes per-patch tensor-product B-spline bases at the
// level the G1 system needs: degree, interior-knot multiplicity, element
// count and coefficient count per parametric direction. The actual basis
// evaluation lives with the continuity-basis generator, outside this module.
package spline

import "fmt"

// DirectionalBasis is the capability interface the DOF classifier queries.
// Any univariate parametric basis can implement it; the classifier never
// downcasts to a concrete spline type.
type DirectionalBasis interface {
	Degree() int
	KnotMultiplicity() int
	NumElements() int
	Size() int
}

// BSplineBasis is a univariate B-spline basis on [0,1] with an open knot
// vector, uniform interior knots of multiplicity Mult and NEl knot spans.
type BSplineBasis struct {
	P    int
	Mult int
	NEl  int
}

func NewBSplineBasis(p, mult, nEl int) (b BSplineBasis, err error) {
	if p < 1 || mult < 1 || mult > p || nEl < 1 {
		err = fmt.Errorf("invalid basis parameters: p = %d, mult = %d, elements = %d", p, mult, nEl)
		return
	}
	b = BSplineBasis{P: p, Mult: mult, NEl: nEl}
	return
}

func (b BSplineBasis) Degree() int           { return b.P }
func (b BSplineBasis) KnotMultiplicity() int { return b.Mult }
func (b BSplineBasis) NumElements() int      { return b.NEl }

// Size is the coefficient count: (P+1) boundary functions plus Mult per
// interior knot.
func (b BSplineBasis) Size() int {
	return b.P + 1 + (b.NEl-1)*b.Mult
}

// TensorBasis is a bivariate tensor-product basis; component 0 runs in u,
// component 1 in v. Coefficients are numbered row-major in v-major order,
// index = j*dimU + i.
type TensorBasis struct {
	U, V DirectionalBasis
}

func NewTensorBasis(u, v DirectionalBasis) TensorBasis {
	return TensorBasis{U: u, V: v}
}

func (t TensorBasis) Component(dir int) DirectionalBasis {
	if dir == 0 {
		return t.U
	}
	return t.V
}

func (t TensorBasis) Size() int {
	return t.U.Size() * t.V.Size()
}

func (t TensorBasis) Dims() (dimU, dimV int) {
	return t.U.Size(), t.V.Size()
}

// MultiBasis holds one TensorBasis per patch.
type MultiBasis struct {
	bases []TensorBasis
}

func NewMultiBasis(bases ...TensorBasis) MultiBasis {
	return MultiBasis{bases: bases}
}

func (m MultiBasis) NumBases() int           { return len(m.bases) }
func (m MultiBasis) Basis(i int) TensorBasis { return m.bases[i] }
