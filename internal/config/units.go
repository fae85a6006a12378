package config

// Boundary conversions between conventional engineering units and the SI
// units the core consumes. Pure and stateless; the solver never sees
// anything but SI.

func CelsiusToKelvin(t float64) float64 { return t + 273.15 }
func KelvinToCelsius(t float64) float64 { return t - 273.15 }

func BarToPascal(p float64) float64 { return p * 1e5 }
func PascalToBar(p float64) float64 { return p / 1e5 }

// MLPerMinToM3PerSec converts a volumetric flow from mL/min to m^3/s.
func MLPerMinToM3PerSec(q float64) float64 { return q / (60 * 1e6) }

func MicronToMeter(d float64) float64 { return d * 1e-6 }
func CmToMeter(l float64) float64     { return l / 100 }

// KJPerMolToJPerMol converts an activation energy to J/mol.
func KJPerMolToJPerMol(e float64) float64 { return e * 1000 }

// KJPerMolToJPerKmol converts a heat of reaction to J/kmol, the unit the
// energy balance works in.
func KJPerMolToJPerKmol(h float64) float64 { return h * 1e6 }
