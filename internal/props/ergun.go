package props

// Ergun returns the magnitude of the packed-bed pressure loss per unit
// length [Pa/m] for superficial velocity u [m/s], gas density rho,
// viscosity mu, particle diameter dp and bed porosity eps. Zero velocity
// gives zero loss. The caller applies the sign.
func Ergun(u, rho, mu, dp, eps float64) float64 {
	viscous := 150 * mu * (1 - eps) * (1 - eps) / (dp * dp * eps * eps * eps) * u
	inertial := 1.75 * rho * (1 - eps) / (dp * eps * eps * eps) * u * u
	return viscous + inertial
}
