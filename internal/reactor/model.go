package reactor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/anukaran/pbreactor/internal/integrate"
	"github.com/anukaran/pbreactor/internal/props"
)

// DefaultPoints is the size of the axial output grid when the caller does
// not request specific positions.
const DefaultPoints = 200

// Model solves one reactor configuration. Independent models share no
// state and may run in parallel workers.
type Model struct {
	cfg      Config
	fTotalIn float64 // kmol/s
	fCH4In   float64
	fH2In    float64
	fN2In    float64
}

func New(cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// inlet molar flows from the ideal-gas inlet concentration
	cTotalIn := cfg.InletPressure / (props.RGas * cfg.InletTemperature) / 1000 // kmol/m^3
	fTotalIn := cfg.FlowRate * cTotalIn

	return &Model{
		cfg:      cfg,
		fTotalIn: fTotalIn,
		fCH4In:   cfg.YCH4In * fTotalIn,
		fH2In:    cfg.YH2In * fTotalIn,
		fN2In:    cfg.YN2In * fTotalIn,
	}, nil
}

func (m *Model) Config() Config { return m.cfg }

// Grid returns n evenly spaced axial positions spanning [0, L].
func Grid(bedLength float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	pts := make([]float64, n)
	floats.Span(pts, 0, bedLength)
	return pts
}

// Solve integrates the bed from z=0 to z=L and reports the solution at the
// given axial positions (empty for the default grid). Positions must be
// ascending within [0, L].
func (m *Model) Solve(points []float64) (*Result, error) {
	if len(points) == 0 {
		points = Grid(m.cfg.BedLength, DefaultPoints)
	}
	for i, z := range points {
		if z < 0 || z > m.cfg.BedLength {
			return nil, &ValidationError{"points", fmt.Sprintf("position %g outside [0, %g]", z, m.cfg.BedLength)}
		}
		if i > 0 && z <= points[i-1] {
			return nil, &ValidationError{"points", "positions must be strictly increasing"}
		}
	}

	sys := &rhs{cfg: m.cfg, fN2: m.fN2In, area: m.cfg.CrossSection()}
	y0 := []float64{m.fCH4In, m.fH2In, m.cfg.InletTemperature, m.cfg.InletPressure}

	sol, err := integrate.NewRK45().Solve(sys, 0, m.cfg.BedLength, y0, points, integrate.Options{
		RTol:     1e-8,
		ATol:     1e-12,
		PostStep: clampState,
	})
	if err != nil {
		return nil, fmt.Errorf("reactor integration: %w", err)
	}

	return m.postProcess(sol), nil
}

// SolveFixed integrates the bed with the classical fixed-step method on n
// uniform steps. There is no error control; it exists to benchmark the
// adaptive solver against a uniform grid.
func (m *Model) SolveFixed(n int) (*Result, error) {
	if n < 1 {
		return nil, &ValidationError{"steps", "must be at least 1"}
	}

	sys := &rhs{cfg: m.cfg, fN2: m.fN2In, area: m.cfg.CrossSection()}
	h := m.cfg.BedLength / float64(n)
	rk := integrate.NewRK4()

	sol := &integrate.Solution{
		Z:     make([]float64, 0, n+1),
		Y:     make([][]float64, 0, n+1),
		Steps: n,
		Evals: 4 * n,
	}

	y := []float64{m.fCH4In, m.fH2In, m.cfg.InletTemperature, m.cfg.InletPressure}
	sol.Z = append(sol.Z, 0)
	sol.Y = append(sol.Y, append([]float64(nil), y...))

	for i := 1; i <= n; i++ {
		y = rk.Step(sys, float64(i-1)*h, y, h)
		clampState(y)
		sol.Z = append(sol.Z, float64(i)*h)
		sol.Y = append(sol.Y, append([]float64(nil), y...))
	}

	return m.postProcess(sol), nil
}
