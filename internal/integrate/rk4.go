package integrate

// RK4 is the classical fixed-step fourth-order method. It has no error
// control; it exists for benchmarking the adaptive solver against a
// uniform grid.
type RK4 struct{}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Step(sys System, z float64, y []float64, h float64) []float64 {
	n := len(y)

	k1 := sys.Derive(z, y)

	x2 := make([]float64, n)
	for i := 0; i < n; i++ {
		x2[i] = y[i] + h/2*k1[i]
	}
	k2 := sys.Derive(z+h/2, x2)

	x3 := make([]float64, n)
	for i := 0; i < n; i++ {
		x3[i] = y[i] + h/2*k2[i]
	}
	k3 := sys.Derive(z+h/2, x3)

	x4 := make([]float64, n)
	for i := 0; i < n; i++ {
		x4[i] = y[i] + h*k3[i]
	}
	k4 := sys.Derive(z+h, x4)

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = y[i] + h/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out
}
