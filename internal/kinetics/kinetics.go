package kinetics

import "math"

// Effectiveness factor branch thresholds. Below phiKinetic the particle is
// kinetically controlled and eta is exactly 1; above phiDiffusion the
// sphere formula collapses to its 3/phi asymptote and coth would overflow.
const (
	phiKinetic   = 1e-6
	phiDiffusion = 100.0
)

const rGas = 8.314

// RateConstant evaluates the modified Arrhenius expression
// k = A * T^beta * exp(-Ea/(R T)) [1/s].
func RateConstant(T, preExponential, beta, activationEnergy float64) float64 {
	return preExponential * math.Pow(T, beta) * math.Exp(-activationEnergy/(rGas*T))
}

// ThieleModulus returns phi = (dp/6) * sqrt(k/Deff) for a spherical
// particle, with k a first-order frequency [1/s].
func ThieleModulus(dp, k, dEff float64) float64 {
	return dp / 6 * math.Sqrt(k/dEff)
}

// Effectiveness returns the internal effectiveness factor of a spherical
// particle, eta = (3/phi)(coth(phi) - 1/phi), with explicit limits at both
// ends so the expression is never evaluated where it cancels or overflows.
func Effectiveness(phi float64) float64 {
	switch {
	case phi <= phiKinetic:
		return 1.0
	case phi > phiDiffusion:
		return 3.0 / phi
	default:
		return (3.0 / phi) * (1.0/math.Tanh(phi) - 1.0/phi)
	}
}
