package reactor

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// baseCase is a hot pure-methane feed over a fine catalyst bed.
func baseCase() Config {
	return Config{
		Diameter:         0.05,
		BedLength:        0.5,
		ParticleDiameter: 5e-4,
		BedPorosity:      0.4,
		ParticlePorosity: 0.4,
		Tortuosity:       3,
		PreExponential:   1e6,
		Beta:             0,
		ActivationEnergy: 1e5,
		HeatOfReaction:   7.487e7,
		InletTemperature: 1073,
		InletPressure:    2e5,
		FlowRate:         1e-6,
		YCH4In:           1.0,
		YH2In:            0,
		YN2In:            0,
	}
}

// labCase is a diluted feed at lab conditions with mild kinetics, cheap to
// integrate.
func labCase() Config {
	cfg := baseCase()
	cfg.Diameter = 0.025
	cfg.BedLength = 0.1
	cfg.InletTemperature = 1073.15
	cfg.InletPressure = 1e5
	cfg.FlowRate = 8.333e-7
	cfg.PreExponential = 100
	cfg.YCH4In = 0.5
	cfg.YH2In = 0
	cfg.YN2In = 0.5
	cfg.Isothermal = true
	return cfg
}

var _ = Describe("Config validation", func() {
	It("accepts the base case", func() {
		_, err := New(baseCase())
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("rejects out-of-range fields",
		func(mutate func(*Config), field string) {
			cfg := baseCase()
			mutate(&cfg)
			_, err := New(cfg)
			var vErr *ValidationError
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(vErr))
			Expect(err.(*ValidationError).Field).To(Equal(field))
		},
		Entry("zero diameter", func(c *Config) { c.Diameter = 0 }, "diameter"),
		Entry("negative bed length", func(c *Config) { c.BedLength = -1 }, "bed length"),
		Entry("porosity at 1", func(c *Config) { c.BedPorosity = 1 }, "bed porosity"),
		Entry("particle porosity at 0", func(c *Config) { c.ParticlePorosity = 0 }, "particle porosity"),
		Entry("tortuosity below 1", func(c *Config) { c.Tortuosity = 0.5 }, "tortuosity"),
		Entry("negative activation energy", func(c *Config) { c.ActivationEnergy = -1 }, "activation energy"),
		Entry("zero inlet temperature", func(c *Config) { c.InletTemperature = 0 }, "inlet temperature"),
		Entry("zero pressure", func(c *Config) { c.InletPressure = 0 }, "inlet pressure"),
		Entry("zero flow", func(c *Config) { c.FlowRate = 0 }, "flow rate"),
		Entry("CH4 fraction above 1", func(c *Config) { c.YCH4In = 1.5 }, "inlet CH4 fraction"),
		Entry("fractions not summing to 1", func(c *Config) { c.YCH4In = 0.5 }, "inlet composition"),
	)
})

var _ = Describe("Derivative function", func() {
	It("produces two moles of H2 per mole of CH4 and cools an endothermic bed", func() {
		cfg := baseCase()
		m, err := New(cfg)
		Expect(err).NotTo(HaveOccurred())

		sys := &rhs{cfg: cfg, fN2: m.fN2In, area: cfg.CrossSection()}
		dy := sys.Derive(0, []float64{m.fCH4In, m.fH2In, cfg.InletTemperature, cfg.InletPressure})

		Expect(dy[iFCH4]).To(BeNumerically("<", 0))
		Expect(dy[iFH2]).To(BeNumerically("~", -2*dy[iFCH4], 1e-12*math.Abs(dy[iFH2])))
		Expect(dy[iT]).To(BeNumerically("<", 0))
		Expect(dy[iP]).To(BeNumerically("<", 0))
	})

	It("tolerates states below the physical floors", func() {
		cfg := baseCase()
		m, _ := New(cfg)
		sys := &rhs{cfg: cfg, fN2: m.fN2In, area: cfg.CrossSection()}

		dy := sys.Derive(0, []float64{-1e-9, -1e-9, -50, -100})
		for _, v := range dy {
			Expect(math.IsNaN(v)).To(BeFalse())
			Expect(math.IsInf(v, 0)).To(BeFalse())
		}
	})
})

var _ = Describe("Solve", func() {
	It("matches the hot pure-methane scenario expectations", func() {
		m, err := New(baseCase())
		Expect(err).NotTo(HaveOccurred())

		res, err := m.Solve(nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Conversion).To(BeNumerically(">", 0))
		Expect(res.Conversion).To(BeNumerically("<", 1))
		Expect(res.OutletTemp).To(BeNumerically("<", 1073))
		Expect(res.P[len(res.P)-1]).To(BeNumerically("<", 2e5))
		Expect(res.H2FlowNm3h).To(BeNumerically(">", 0))
	})

	It("returns the default grid spanning the bed", func() {
		m, _ := New(labCase())
		res, err := m.Solve(nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Z).To(HaveLen(DefaultPoints))
		Expect(res.Z[0]).To(Equal(0.0))
		Expect(res.Z[len(res.Z)-1]).To(BeNumerically("~", 0.1, 1e-12))
		for i := 1; i < len(res.Z); i++ {
			Expect(res.Z[i]).To(BeNumerically(">", res.Z[i-1]))
		}
	})

	It("falls back to the default grid for an empty position slice", func() {
		m, _ := New(labCase())
		res, err := m.Solve([]float64{})
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Z).To(HaveLen(DefaultPoints))
		Expect(res.Conversion).To(BeNumerically(">", 0))
	})

	It("honors caller-specified axial positions", func() {
		m, _ := New(labCase())
		pts := []float64{0, 0.02, 0.05, 0.1}
		res, err := m.Solve(pts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Z).To(Equal(pts))
	})

	It("rejects unsorted or out-of-range positions", func() {
		m, _ := New(labCase())
		_, err := m.Solve([]float64{0, 0.2})
		Expect(err).To(HaveOccurred())
		_, err = m.Solve([]float64{0.05, 0.02})
		Expect(err).To(HaveOccurred())
	})

	It("holds the clamp invariants on every returned point", func() {
		m, _ := New(baseCase())
		res, err := m.Solve(nil)
		Expect(err).NotTo(HaveOccurred())

		for i := range res.Z {
			Expect(res.FCH4[i]).To(BeNumerically(">=", 0))
			Expect(res.FH2[i]).To(BeNumerically(">=", 0))
			Expect(res.T[i]).To(BeNumerically(">=", 300))
			Expect(res.P[i]).To(BeNumerically(">=", 1000))
		}
	})

	It("keeps the inert N2 flow constant along the bed", func() {
		m, _ := New(labCase())
		res, err := m.Solve(nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.FN2).To(BeNumerically(">", 0))
		for i := range res.Z {
			fTotal := res.FCH4[i] + res.FH2[i] + res.FN2
			Expect(res.YN2[i] * fTotal).To(BeNumerically("~", res.FN2, 1e-12*res.FN2))
		}
	})

	It("closes the mass balance between CH4 consumed and H2 produced", func() {
		m, _ := New(labCase())
		res, err := m.Solve(nil)
		Expect(err).NotTo(HaveOccurred())

		n := len(res.Z)
		consumed := res.FCH4[0] - res.FCH4[n-1]
		Expect(consumed).To(BeNumerically(">", 0))
		produced := res.FH2[n-1] - res.FH2[0]
		Expect(produced / 2).To(BeNumerically("~", consumed, 1e-6*consumed))
	})

	It("keeps temperature flat in isothermal mode", func() {
		cfg := labCase()
		cfg.Isothermal = true
		m, _ := New(cfg)
		res, err := m.Solve(nil)
		Expect(err).NotTo(HaveOccurred())

		for i := range res.Z {
			Expect(res.T[i]).To(Equal(cfg.InletTemperature))
		}
	})

	It("never lets pressure increase along the bed", func() {
		m, _ := New(baseCase())
		res, err := m.Solve(nil)
		Expect(err).NotTo(HaveOccurred())

		for i := 1; i < len(res.P); i++ {
			Expect(res.P[i]).To(BeNumerically("<=", res.P[i-1]))
		}
		Expect(res.PressureDrop).To(BeNumerically(">", 0))
	})

	It("reports zero conversion when the catalyst is inert", func() {
		cfg := labCase()
		cfg.PreExponential = 0
		cfg.FlowRate = 1e-8
		m, err := New(cfg)
		Expect(err).NotTo(HaveOccurred())

		res, err := m.Solve(nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Conversion).To(Equal(0.0))
		n := len(res.Z)
		Expect(res.FCH4[n-1]).To(Equal(res.FCH4[0]))
		Expect(res.T[n-1]).To(Equal(cfg.InletTemperature))
		Expect(res.YCH4[n-1]).To(BeNumerically("~", res.YCH4[0], 1e-15))
		Expect(res.PressureDrop).To(BeNumerically(">", 0))
	})

	It("loses more pressure over finer particles", func() {
		coarse := labCase()
		coarse.PreExponential = 0
		fine := coarse
		fine.ParticleDiameter = coarse.ParticleDiameter / 10

		mc, _ := New(coarse)
		mf, _ := New(fine)
		rc, err := mc.Solve(nil)
		Expect(err).NotTo(HaveOccurred())
		rf, err := mf.Solve(nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(rf.PressureDrop).To(BeNumerically(">", rc.PressureDrop))
	})
})
