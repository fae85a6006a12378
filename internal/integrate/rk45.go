package integrate

import (
	"fmt"
	"math"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0

	// dense-output weights for the quartic continuous extension
	d1 = -12715105075.0 / 11282082432.0
	d3 = 87487479700.0 / 32700410799.0
	d4 = -10690763975.0 / 1880347072.0
	d5 = 701980252875.0 / 199316789632.0
	d6 = -1453857185.0 / 822651844.0
	d7 = 69997945.0 / 29380423.0
)

const (
	defaultRTol     = 1e-8
	defaultATol     = 1e-12
	defaultMinStep  = 1e-12
	defaultMaxSteps = 1_000_000
)

// Options controls an adaptive solve.
type Options struct {
	RTol, ATol  float64
	InitialStep float64
	MinStep     float64
	MaxSteps    int

	// PostStep, if set, is applied in place to every accepted state before
	// it is fed back into the derivative function. Trial states inside a
	// step are never touched, so error control sees the raw solution.
	PostStep func(y []float64)
}

// Solution is the output of a solve: either the accepted step sequence, or
// the dense-output states at the caller's requested positions.
type Solution struct {
	Z        []float64
	Y        [][]float64
	Steps    int
	Rejected int
	Evals    int
}

// StepError reports an adaptive step collapsing below the minimum without
// meeting tolerance. Z and State are the furthest accepted point.
type StepError struct {
	Z     float64
	State []float64
	H     float64
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step size %.3e below minimum at z=%.6g", e.H, e.Z)
}

// StepLimitError reports the step budget running out before the end of the
// interval. Z and State are the furthest accepted point.
type StepLimitError struct {
	Z     float64
	State []float64
	Steps int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("exceeded %d steps at z=%.6g", e.Steps, e.Z)
}

// RK45 is an embedded Dormand-Prince integrator: 5th-order solution with a
// 4th-order error estimate and a free quartic interpolant per step.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

// Solve integrates sys from z0 to zEnd. When evalAt is non-nil it must be
// sorted ascending within [z0, zEnd]; the solution is then reported at
// exactly those positions via dense output, without disturbing the
// adaptive step sequence. With evalAt nil every accepted step is reported.
func (r *RK45) Solve(sys System, z0, zEnd float64, y0 []float64, evalAt []float64, opt Options) (*Solution, error) {
	n := len(y0)
	rtol, atol := opt.RTol, opt.ATol
	if rtol == 0 {
		rtol = defaultRTol
	}
	if atol == 0 {
		atol = defaultATol
	}
	minStep := opt.MinStep
	if minStep == 0 {
		minStep = defaultMinStep
	}
	maxSteps := opt.MaxSteps
	if maxSteps == 0 {
		maxSteps = defaultMaxSteps
	}
	span := zEnd - z0
	if span <= 0 {
		return nil, fmt.Errorf("integrate: empty interval [%g, %g]", z0, zEnd)
	}
	h := opt.InitialStep
	if h == 0 {
		h = span / 100
	}

	sol := &Solution{}
	y := clone(y0)
	z := z0
	dense := evalAt != nil

	ei := 0
	for ei < len(evalAt) && evalAt[ei] <= z0+1e-14*span {
		sol.Z = append(sol.Z, evalAt[ei])
		sol.Y = append(sol.Y, clone(y))
		ei++
	}
	if !dense {
		sol.Z = append(sol.Z, z)
		sol.Y = append(sol.Y, clone(y))
	}

	var k1 []float64

	for z < zEnd-1e-14*span {
		if sol.Steps+sol.Rejected >= maxSteps {
			return sol, &StepLimitError{Z: z, State: clone(y), Steps: maxSteps}
		}
		if h > zEnd-z {
			h = zEnd - z
		}
		if h < minStep && zEnd-z > minStep {
			return sol, &StepError{Z: z, State: clone(y), H: h}
		}

		if k1 == nil {
			k1 = sys.Derive(z, y)
			sol.Evals++
		}

		x2 := make([]float64, n)
		for i := 0; i < n; i++ {
			x2[i] = y[i] + h*b21*k1[i]
		}
		k2 := sys.Derive(z+a2*h, x2)

		x3 := make([]float64, n)
		for i := 0; i < n; i++ {
			x3[i] = y[i] + h*(b31*k1[i]+b32*k2[i])
		}
		k3 := sys.Derive(z+a3*h, x3)

		x4 := make([]float64, n)
		for i := 0; i < n; i++ {
			x4[i] = y[i] + h*(b41*k1[i]+b42*k2[i]+b43*k3[i])
		}
		k4 := sys.Derive(z+a4*h, x4)

		x5 := make([]float64, n)
		for i := 0; i < n; i++ {
			x5[i] = y[i] + h*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
		}
		k5 := sys.Derive(z+a5*h, x5)

		x6 := make([]float64, n)
		for i := 0; i < n; i++ {
			x6[i] = y[i] + h*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
		}
		k6 := sys.Derive(z+h, x6)

		yNew := make([]float64, n)
		for i := 0; i < n; i++ {
			yNew[i] = y[i] + h*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
		}
		k7 := sys.Derive(z+h, yNew)
		sol.Evals += 6

		sumSq := 0.0
		for i := 0; i < n; i++ {
			errEst := h * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
			sc := atol + rtol*math.Max(math.Abs(y[i]), math.Abs(yNew[i]))
			sumSq += (errEst / sc) * (errEst / sc)
		}
		errNorm := math.Sqrt(sumSq / float64(n))

		if math.IsNaN(errNorm) || errNorm > 1 {
			// reject: shrink and retry from the same z
			scale := r.minScale
			if !math.IsNaN(errNorm) {
				scale = math.Max(r.minScale, r.safety*math.Pow(errNorm, -0.25))
			}
			h *= scale
			sol.Rejected++
			if h < minStep {
				return sol, &StepError{Z: z, State: clone(y), H: h}
			}
			continue
		}

		if dense && ei < len(evalAt) {
			rc := denseCoefficients(y, yNew, k1, k3, k4, k5, k6, k7, h)
			for ei < len(evalAt) && evalAt[ei] <= z+h+1e-14*span {
				theta := (evalAt[ei] - z) / h
				if theta < 0 {
					theta = 0
				} else if theta > 1 {
					theta = 1
				}
				sol.Z = append(sol.Z, evalAt[ei])
				sol.Y = append(sol.Y, rc.at(theta))
				ei++
			}
		}

		z += h
		y = yNew
		if opt.PostStep != nil {
			opt.PostStep(y)
		}
		k1 = nil
		sol.Steps++
		if !dense {
			sol.Z = append(sol.Z, z)
			sol.Y = append(sol.Y, clone(y))
		}

		if errNorm > 0 {
			h *= math.Min(r.maxScale, r.safety*math.Pow(errNorm, -0.2))
		} else {
			h *= r.maxScale
		}
	}

	// requested positions at or beyond the terminal z collapse onto it
	for ei < len(evalAt) {
		sol.Z = append(sol.Z, evalAt[ei])
		sol.Y = append(sol.Y, clone(y))
		ei++
	}

	return sol, nil
}

// rcont holds the per-step interpolation coefficients of the DOPRI5
// continuous extension, per state component.
type rcont struct {
	r1, r2, r3, r4, r5 []float64
}

func denseCoefficients(y, yNew, k1, k3, k4, k5, k6, k7 []float64, h float64) *rcont {
	n := len(y)
	rc := &rcont{
		r1: make([]float64, n),
		r2: make([]float64, n),
		r3: make([]float64, n),
		r4: make([]float64, n),
		r5: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		dy := yNew[i] - y[i]
		bspl := h*k1[i] - dy
		rc.r1[i] = y[i]
		rc.r2[i] = dy
		rc.r3[i] = bspl
		rc.r4[i] = dy - h*k7[i] - bspl
		rc.r5[i] = h * (d1*k1[i] + d3*k3[i] + d4*k4[i] + d5*k5[i] + d6*k6[i] + d7*k7[i])
	}
	return rc
}

// at evaluates the interpolant at theta in [0,1] across the step.
func (rc *rcont) at(theta float64) []float64 {
	n := len(rc.r1)
	s := theta
	s1 := 1 - theta
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = rc.r1[i] + s*(rc.r2[i]+s1*(rc.r3[i]+s*(rc.r4[i]+s1*rc.r5[i])))
	}
	return out
}
