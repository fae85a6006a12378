package config

import "sort"

// Presets are named operating scenarios. "lab" mirrors the bench-scale
// conditions the kinetics were fitted against; the others span the kinetic
// and diffusion-limited regimes.
var Presets = map[string]*Config{
	"lab": DefaultConfig(),

	"baseline": {
		Reactor:  ReactorConfig{DiameterCm: 5, BedHeightCm: 50},
		Catalyst: CatalystConfig{ParticleDiameterUm: 500, BedPorosity: 0.4, ParticlePorosity: 0.4, Tortuosity: 3},
		Kinetics: KineticsConfig{PreExponential: 1e6, Beta: 0, ActivationEnergyKJ: 100, HeatOfReactionKJ: 74.87},
		Feed:     FeedConfig{TemperatureC: 800, PressureBar: 2, FlowRateMLMin: 60, YCH4: 1, YH2: 0, YN2: 0},
		Points:   200,
	},

	"isothermal": {
		Reactor:    ReactorConfig{DiameterCm: 2.5, BedHeightCm: 10},
		Catalyst:   CatalystConfig{ParticleDiameterUm: 500, BedPorosity: 0.4, ParticlePorosity: 0.5, Tortuosity: 3},
		Kinetics:   KineticsConfig{PreExponential: 1e6, Beta: 0, ActivationEnergyKJ: 100, HeatOfReactionKJ: 74.87},
		Feed:       FeedConfig{TemperatureC: 830, PressureBar: 1, FlowRateMLMin: 50, YCH4: 0.5, YH2: 0, YN2: 0.5},
		Isothermal: true,
		Points:     200,
	},

	// coarse particles push the Thiele modulus into the internal
	// diffusion-limited regime
	"diffusion": {
		Reactor:  ReactorConfig{DiameterCm: 2.5, BedHeightCm: 10},
		Catalyst: CatalystConfig{ParticleDiameterUm: 2000, BedPorosity: 0.45, ParticlePorosity: 0.5, Tortuosity: 4},
		Kinetics: KineticsConfig{PreExponential: 1e8, Beta: 0, ActivationEnergyKJ: 100, HeatOfReactionKJ: 74.87},
		Feed:     FeedConfig{TemperatureC: 1000, PressureBar: 1, FlowRateMLMin: 100, YCH4: 0.5, YH2: 0, YN2: 0.5},
		Points:   200,
	},
}

// GetPreset returns a copy of a named preset, nil when unknown.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
