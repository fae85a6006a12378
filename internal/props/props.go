package props

import "math"

// Gas-phase mixture properties for CH4/H2/N2. All functions are pure and
// expect T [K] and P [Pa] strictly positive; the reactor clamps upstream.

// MixtureMW returns the mole-fraction-weighted molecular weight [kg/mol].
func MixtureMW(yCH4, yH2, yN2 float64) float64 {
	return yCH4*MWCH4 + yH2*MWH2 + yN2*MWN2
}

// Density returns the ideal-gas mixture density [kg/m^3].
func Density(T, P, yCH4, yH2, yN2 float64) float64 {
	return P * MixtureMW(yCH4, yH2, yN2) / (RGas * T)
}

// Viscosity returns the mixture dynamic viscosity [Pa s]. Species
// viscosities follow power laws referenced to 300 K, mixed linearly.
func Viscosity(T, yCH4, yH2, yN2 float64) float64 {
	muCH4 := 1.02e-5 * math.Pow(T/300, 0.87)
	muH2 := 8.76e-6 * math.Pow(T/300, 0.68)
	muN2 := 1.78e-5 * math.Pow(T/300, 0.67)
	return yCH4*muCH4 + yH2*muH2 + yN2*muN2
}

// HeatCapacityCH4 returns the CH4 molar heat capacity [J/(mol K)].
func HeatCapacityCH4(T float64) float64 { return 35.69 + 0.0275*T }

// HeatCapacityH2 returns the H2 molar heat capacity [J/(mol K)].
func HeatCapacityH2(T float64) float64 { return 28.84 + 0.00192*T }

// HeatCapacityN2 returns the N2 molar heat capacity [J/(mol K)].
func HeatCapacityN2(T float64) float64 { return 29.12 + 0.00293*T }

// HeatCapacity returns the mole-fraction-weighted mixture molar heat
// capacity [J/(mol K)].
func HeatCapacity(T, yCH4, yH2, yN2 float64) float64 {
	return yCH4*HeatCapacityCH4(T) + yH2*HeatCapacityH2(T) + yN2*HeatCapacityN2(T)
}

// DiffusivityCH4 returns the molecular diffusivity of CH4 in the mixture
// [m^2/s], scaled from 300 K and atmospheric pressure.
func DiffusivityCH4(T, P float64) float64 {
	return 1.87e-5 * math.Pow(T/300, 1.75) * (StdPressure / P)
}

// EffectiveDiffusivity reduces a molecular diffusivity by the particle
// porosity/tortuosity ratio.
func EffectiveDiffusivity(dMol, particlePorosity, tortuosity float64) float64 {
	return dMol * particlePorosity / tortuosity
}
