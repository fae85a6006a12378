package integrate

// System is a first-order ODE system y' = f(z, y).
type System interface {
	Derive(z float64, y []float64) []float64
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(z float64, y []float64) []float64

func (f SystemFunc) Derive(z float64, y []float64) []float64 { return f(z, y) }

func clone(y []float64) []float64 {
	c := make([]float64, len(y))
	copy(c, y)
	return c
}
