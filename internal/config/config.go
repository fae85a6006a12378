package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anukaran/pbreactor/internal/reactor"
)

// Config is the on-disk run description in conventional engineering units
// (°C, bar, mL/min, μm, cm, kJ/mol). ToSI translates it for the solver.
type Config struct {
	Reactor    ReactorConfig  `yaml:"reactor"`
	Catalyst   CatalystConfig `yaml:"catalyst"`
	Kinetics   KineticsConfig `yaml:"kinetics"`
	Feed       FeedConfig     `yaml:"feed"`
	Isothermal bool           `yaml:"isothermal"`
	Points     int            `yaml:"points"`
}

type ReactorConfig struct {
	DiameterCm  float64 `yaml:"diameter_cm"`
	BedHeightCm float64 `yaml:"bed_height_cm"`
}

type CatalystConfig struct {
	ParticleDiameterUm float64 `yaml:"particle_diameter_um"`
	BedPorosity        float64 `yaml:"bed_porosity"`
	ParticlePorosity   float64 `yaml:"particle_porosity"`
	Tortuosity         float64 `yaml:"tortuosity"`
}

type KineticsConfig struct {
	PreExponential     float64 `yaml:"pre_exponential"`
	Beta               float64 `yaml:"beta"`
	ActivationEnergyKJ float64 `yaml:"activation_energy_kj_mol"`
	HeatOfReactionKJ   float64 `yaml:"heat_of_reaction_kj_mol"`
}

type FeedConfig struct {
	TemperatureC  float64 `yaml:"temperature_c"`
	PressureBar   float64 `yaml:"pressure_bar"`
	FlowRateMLMin float64 `yaml:"flow_rate_ml_min"`
	YCH4          float64 `yaml:"y_ch4"`
	YH2           float64 `yaml:"y_h2"`
	YN2           float64 `yaml:"y_n2"`
}

// DefaultConfig is the lab baseline: diluted methane over a fine catalyst
// bed at 800 °C and atmospheric pressure.
func DefaultConfig() *Config {
	return &Config{
		Reactor: ReactorConfig{
			DiameterCm:  2.5,
			BedHeightCm: 10,
		},
		Catalyst: CatalystConfig{
			ParticleDiameterUm: 500,
			BedPorosity:        0.4,
			ParticlePorosity:   0.5,
			Tortuosity:         3,
		},
		Kinetics: KineticsConfig{
			PreExponential:     1e6,
			Beta:               0,
			ActivationEnergyKJ: 100,
			HeatOfReactionKJ:   74.87,
		},
		Feed: FeedConfig{
			TemperatureC:  800,
			PressureBar:   1,
			FlowRateMLMin: 50,
			YCH4:          0.5,
			YH2:           0,
			YN2:           0.5,
		},
		Points: 200,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToSI translates the engineering-unit config into the solver's SI config.
func (c *Config) ToSI() reactor.Config {
	return reactor.Config{
		Diameter:         CmToMeter(c.Reactor.DiameterCm),
		BedLength:        CmToMeter(c.Reactor.BedHeightCm),
		ParticleDiameter: MicronToMeter(c.Catalyst.ParticleDiameterUm),
		BedPorosity:      c.Catalyst.BedPorosity,
		ParticlePorosity: c.Catalyst.ParticlePorosity,
		Tortuosity:       c.Catalyst.Tortuosity,
		PreExponential:   c.Kinetics.PreExponential,
		Beta:             c.Kinetics.Beta,
		ActivationEnergy: KJPerMolToJPerMol(c.Kinetics.ActivationEnergyKJ),
		HeatOfReaction:   KJPerMolToJPerKmol(c.Kinetics.HeatOfReactionKJ),
		InletTemperature: CelsiusToKelvin(c.Feed.TemperatureC),
		InletPressure:    BarToPascal(c.Feed.PressureBar),
		FlowRate:         MLPerMinToM3PerSec(c.Feed.FlowRateMLMin),
		YCH4In:           c.Feed.YCH4,
		YH2In:            c.Feed.YH2,
		YN2In:            c.Feed.YN2,
		Isothermal:       c.Isothermal,
	}
}
