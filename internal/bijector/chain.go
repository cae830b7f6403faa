package bijector

import "gonum.org/v1/gonum/mat"

// Chain composes bijectors like functions: Chain(f, g).Forward(x) is
// f(g(x)). The last bijector is applied first on the forward path.
type Chain struct {
	Bijectors []Bijector
}

func NewChain(bijectors ...Bijector) Chain {
	return Chain{Bijectors: bijectors}
}

func (c Chain) Forward(x *mat.Dense) (*mat.Dense, error) {
	cur := x
	for i := len(c.Bijectors) - 1; i >= 0; i-- {
		next, err := c.Bijectors[i].Forward(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func (c Chain) Inverse(y *mat.Dense) (*mat.Dense, error) {
	cur := y
	for _, b := range c.Bijectors {
		next, err := b.Inverse(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// ForwardLogDetJacobian sums each stage's term evaluated at that stage's
// input along the forward path.
func (c Chain) ForwardLogDetJacobian(x *mat.Dense) ([]float64, error) {
	rows, _ := x.Dims()
	total := make([]float64, rows)

	cur := x
	for i := len(c.Bijectors) - 1; i >= 0; i-- {
		b := c.Bijectors[i]
		ldj, err := b.ForwardLogDetJacobian(cur)
		if err != nil {
			return nil, err
		}
		for r, v := range ldj {
			total[r] += v
		}
		if i == 0 {
			break
		}
		if cur, err = b.Forward(cur); err != nil {
			return nil, err
		}
	}
	return total, nil
}
