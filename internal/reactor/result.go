package reactor

import (
	"math"

	"github.com/anukaran/pbreactor/internal/integrate"
	"github.com/anukaran/pbreactor/internal/props"
)

// Result holds the axial profiles and derived metrics of one solve. It is
// owned by the caller and never mutated afterwards.
type Result struct {
	Z    []float64 // [m]
	FCH4 []float64 // [kmol/s]
	FH2  []float64 // [kmol/s]
	T    []float64 // [K]
	P    []float64 // [Pa]
	YCH4 []float64
	YH2  []float64
	YN2  []float64

	FN2    float64 // inert flow, constant along the bed [kmol/s]
	FCH4In float64 // [kmol/s]

	Conversion   float64 // X_CH4 in [0,1]
	H2FlowNm3h   float64 // outlet H2 at standard conditions [Nm^3/h]
	H2MassRate   float64 // [kg/s]
	CarbonRate   float64 // solid carbon production [kg/s]
	PressureDrop float64 // P(0) - P(L) [Pa]
	OutletTemp   float64 // [K]

	Steps    int
	Rejected int
}

func (m *Model) postProcess(sol *integrate.Solution) *Result {
	n := len(sol.Z)
	res := &Result{
		Z:        make([]float64, n),
		FCH4:     make([]float64, n),
		FH2:      make([]float64, n),
		T:        make([]float64, n),
		P:        make([]float64, n),
		YCH4:     make([]float64, n),
		YH2:      make([]float64, n),
		YN2:      make([]float64, n),
		FN2:      m.fN2In,
		FCH4In:   m.fCH4In,
		Steps:    sol.Steps,
		Rejected: sol.Rejected,
	}

	for i := 0; i < n; i++ {
		y := sol.Y[i]
		fCH4 := math.Max(y[iFCH4], 0)
		fH2 := math.Max(y[iFH2], 0)
		fTotal := fCH4 + fH2 + m.fN2In

		res.Z[i] = sol.Z[i]
		res.FCH4[i] = fCH4
		res.FH2[i] = fH2
		res.T[i] = math.Max(y[iT], minTemperature)
		res.P[i] = math.Max(y[iP], minPressure)
		res.YCH4[i] = fCH4 / fTotal
		res.YH2[i] = fH2 / fTotal
		res.YN2[i] = m.fN2In / fTotal
	}

	fCH4Out := res.FCH4[n-1]
	fH2Out := res.FH2[n-1]

	if m.fCH4In > 0 {
		x := (m.fCH4In - fCH4Out) / m.fCH4In
		res.Conversion = math.Min(math.Max(x, 0), 1)
	}
	res.H2FlowNm3h = fH2Out * 1000 * props.RGas * props.StdTemperature / props.StdPressure * 3600
	res.H2MassRate = fH2Out * 1000 * props.MWH2
	res.CarbonRate = (m.fCH4In - fCH4Out) * 1000 * props.MWC
	res.PressureDrop = res.P[0] - res.P[n-1]
	res.OutletTemp = res.T[n-1]

	return res
}
