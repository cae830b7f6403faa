package bijector

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Shift adds a location: y = x + loc.
//
// loc is either batch-shaped or a single row broadcast over the batch.
type Shift struct {
	Loc *mat.Dense
}

// Scale multiplies by a scale: y = x * scale.
//
// scale follows the same broadcasting rule as Shift.
type Scale struct {
	Scale *mat.Dense
}

func NewShift(loc *mat.Dense) Shift { return Shift{Loc: loc} }

func NewScale(scale *mat.Dense) Scale { return Scale{Scale: scale} }

// broadcastAt reads p at (i, j), repeating a single-row p for every i.
func broadcastAt(p *mat.Dense, i, j int) float64 {
	if r, _ := p.Dims(); r == 1 {
		return p.At(0, j)
	}
	return p.At(i, j)
}

func checkBroadcast(op string, p, x *mat.Dense) error {
	pr, pc := p.Dims()
	xr, xc := x.Dims()
	if pc != xc || (pr != 1 && pr != xr) {
		return shapeError(op, pr, pc, xr, xc)
	}
	return nil
}

func (s Shift) Forward(x *mat.Dense) (*mat.Dense, error) {
	if err := checkBroadcast("shift forward", s.Loc, x); err != nil {
		return nil, err
	}
	var y mat.Dense
	y.Apply(func(i, j int, v float64) float64 { return v + broadcastAt(s.Loc, i, j) }, x)
	return &y, nil
}

func (s Shift) Inverse(y *mat.Dense) (*mat.Dense, error) {
	if err := checkBroadcast("shift inverse", s.Loc, y); err != nil {
		return nil, err
	}
	var x mat.Dense
	x.Apply(func(i, j int, v float64) float64 { return v - broadcastAt(s.Loc, i, j) }, y)
	return &x, nil
}

// ForwardLogDetJacobian is zero: a shift preserves volume.
func (s Shift) ForwardLogDetJacobian(x *mat.Dense) ([]float64, error) {
	if err := checkBroadcast("shift log det", s.Loc, x); err != nil {
		return nil, err
	}
	rows, _ := x.Dims()
	return make([]float64, rows), nil
}

func (s Scale) Forward(x *mat.Dense) (*mat.Dense, error) {
	if err := checkBroadcast("scale forward", s.Scale, x); err != nil {
		return nil, err
	}
	var y mat.Dense
	y.Apply(func(i, j int, v float64) float64 { return v * broadcastAt(s.Scale, i, j) }, x)
	return &y, nil
}

func (s Scale) Inverse(y *mat.Dense) (*mat.Dense, error) {
	if err := checkBroadcast("scale inverse", s.Scale, y); err != nil {
		return nil, err
	}
	var x mat.Dense
	x.Apply(func(i, j int, v float64) float64 { return v / broadcastAt(s.Scale, i, j) }, y)
	return &x, nil
}

func (s Scale) ForwardLogDetJacobian(x *mat.Dense) ([]float64, error) {
	if err := checkBroadcast("scale log det", s.Scale, x); err != nil {
		return nil, err
	}
	rows, cols := x.Dims()
	ldj := make([]float64, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			ldj[i] += math.Log(math.Abs(broadcastAt(s.Scale, i, j)))
		}
	}
	return ldj, nil
}
