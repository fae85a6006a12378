package reactor

import (
	"math"

	"github.com/anukaran/pbreactor/internal/kinetics"
	"github.com/anukaran/pbreactor/internal/props"
)

// State vector layout along the bed: (F_CH4, F_H2, T, P).
// Flows are kmol/s; N2 is inert and carried as a fixed constant.
const (
	iFCH4 = 0
	iFH2  = 1
	iT    = 2
	iP    = 3
)

// Floors keeping the right-hand side well-defined. Applied to every
// accepted state and defensively to the inputs of each evaluation; they
// correct, never fail.
const (
	minFCH4        = 1e-30 // kmol/s
	minTemperature = 300.0 // K
	minPressure    = 1000. // Pa
)

func clampState(y []float64) {
	y[iFCH4] = math.Max(y[iFCH4], minFCH4)
	y[iFH2] = math.Max(y[iFH2], 0)
	y[iT] = math.Max(y[iT], minTemperature)
	y[iP] = math.Max(y[iP], minPressure)
}

// Local bundles the quantities derived from one axial state. It is
// recomputed at every derivative evaluation and never persisted.
type Local struct {
	YCH4, YH2, YN2 float64
	FTotal         float64 // kmol/s
	MixMW          float64 // kg/mol
	Rho            float64 // kg/m^3
	Mu             float64 // Pa s
	CpMix          float64 // J/(mol K)
	DMol, DEff     float64 // m^2/s
	K              float64 // 1/s
	Phi, Eta       float64
	CCH4           float64 // kmol/m^3
	RBed           float64 // kmol/(m^3 s)
	Q              float64 // local volumetric flow [m^3/s]
	U              float64 // superficial velocity [m/s]
}

// rhs is the plug-flow derivative function. It is pure with respect to its
// inputs; fN2 and area are fixed for the whole run.
type rhs struct {
	cfg  Config
	fN2  float64 // inlet N2 flow [kmol/s], invariant along the bed
	area float64 // cross section [m^2]
}

func (r *rhs) local(fCH4, fH2, T, P float64) Local {
	var l Local
	l.FTotal = fCH4 + fH2 + r.fN2
	l.YCH4 = fCH4 / l.FTotal
	l.YH2 = fH2 / l.FTotal
	l.YN2 = r.fN2 / l.FTotal

	l.MixMW = props.MixtureMW(l.YCH4, l.YH2, l.YN2)
	l.Rho = props.Density(T, P, l.YCH4, l.YH2, l.YN2)
	l.Mu = props.Viscosity(T, l.YCH4, l.YH2, l.YN2)
	l.CpMix = props.HeatCapacity(T, l.YCH4, l.YH2, l.YN2)

	// local volumetric flow from the ideal-gas law at local T,P, not the
	// inlet value
	l.Q = l.FTotal * 1000 * props.RGas * T / P
	l.U = l.Q / r.area
	l.CCH4 = fCH4 / l.Q

	l.DMol = props.DiffusivityCH4(T, P)
	l.DEff = props.EffectiveDiffusivity(l.DMol, r.cfg.ParticlePorosity, r.cfg.Tortuosity)

	l.K = kinetics.RateConstant(T, r.cfg.PreExponential, r.cfg.Beta, r.cfg.ActivationEnergy)
	if l.DEff > 0 {
		l.Phi = kinetics.ThieleModulus(r.cfg.ParticleDiameter, l.K, l.DEff)
	}
	l.Eta = kinetics.Effectiveness(l.Phi)

	l.RBed = l.K * l.Eta * l.CCH4 * (1 - r.cfg.BedPorosity)
	return l
}

func (r *rhs) Derive(z float64, y []float64) []float64 {
	fCH4 := math.Max(y[iFCH4], minFCH4)
	fH2 := math.Max(y[iFH2], 0)
	T := math.Max(y[iT], minTemperature)
	P := math.Max(y[iP], minPressure)

	l := r.local(fCH4, fH2, T, P)

	dFCH4 := -l.RBed * r.area
	dFH2 := 2 * l.RBed * r.area

	dT := 0.0
	if !r.cfg.Isothermal {
		// positive HeatOfReaction (endothermic) cools the bed
		dT = -r.cfg.HeatOfReaction * l.RBed * r.area / (l.FTotal*1000*l.CpMix + 1e-10)
	}

	dP := -props.Ergun(l.U, l.Rho, l.Mu, r.cfg.ParticleDiameter, r.cfg.BedPorosity)

	return []float64{dFCH4, dFH2, dT, dP}
}
