package reactor

import (
	"fmt"
	"math"
)

// Config describes one packed-bed methane decomposition case in SI units.
// It is validated once at construction of a Model and never mutated.
type Config struct {
	// geometry
	Diameter  float64 // reactor diameter [m]
	BedLength float64 // catalyst bed length [m]

	// catalyst
	ParticleDiameter float64 // [m]
	BedPorosity      float64 // bed void fraction
	ParticlePorosity float64 // intra-particle porosity
	Tortuosity       float64

	// kinetics: k = A * T^beta * exp(-Ea/(R T))
	PreExponential   float64 // [1/s]
	Beta             float64
	ActivationEnergy float64 // [J/mol]
	HeatOfReaction   float64 // [J/kmol], positive endothermic

	// inlet
	InletTemperature float64 // [K]
	InletPressure    float64 // [Pa]
	FlowRate         float64 // volumetric [m^3/s]
	YCH4In           float64
	YH2In            float64
	YN2In            float64

	Isothermal bool
}

// ValidationError rejects a config field before any integration starts.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("reactor config: %s %s", e.Field, e.Reason)
}

func (c Config) Validate() error {
	switch {
	case c.Diameter <= 0:
		return &ValidationError{"diameter", "must be positive"}
	case c.BedLength <= 0:
		return &ValidationError{"bed length", "must be positive"}
	case c.ParticleDiameter <= 0:
		return &ValidationError{"particle diameter", "must be positive"}
	case c.BedPorosity <= 0 || c.BedPorosity >= 1:
		return &ValidationError{"bed porosity", "must be in (0,1)"}
	case c.ParticlePorosity <= 0 || c.ParticlePorosity >= 1:
		return &ValidationError{"particle porosity", "must be in (0,1)"}
	case c.Tortuosity < 1:
		return &ValidationError{"tortuosity", "must be at least 1"}
	case c.PreExponential < 0:
		return &ValidationError{"pre-exponential", "must be non-negative"}
	case c.ActivationEnergy < 0:
		return &ValidationError{"activation energy", "must be non-negative"}
	case c.InletTemperature <= 0:
		return &ValidationError{"inlet temperature", "must be positive"}
	case c.InletPressure <= 0:
		return &ValidationError{"inlet pressure", "must be positive"}
	case c.FlowRate <= 0:
		return &ValidationError{"flow rate", "must be positive"}
	case c.YCH4In < 0 || c.YCH4In > 1:
		return &ValidationError{"inlet CH4 fraction", "must be in [0,1]"}
	case c.YH2In < 0 || c.YH2In > 1:
		return &ValidationError{"inlet H2 fraction", "must be in [0,1]"}
	case c.YN2In < 0 || c.YN2In > 1:
		return &ValidationError{"inlet N2 fraction", "must be in [0,1]"}
	case math.Abs(c.YCH4In+c.YH2In+c.YN2In-1) > 1e-9:
		return &ValidationError{"inlet composition", "mole fractions must sum to 1"}
	}
	return nil
}

// CrossSection returns the reactor cross-sectional area [m^2].
func (c Config) CrossSection() float64 {
	return math.Pi * c.Diameter * c.Diameter / 4
}
