package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/anukaran/pbreactor/internal/reactor"
)

// Axis is one swept config field with its candidate values.
type Axis struct {
	Param  string
	Values []float64
}

// Span returns n evenly spaced values covering [min, max].
func Span(min, max float64, n int) []float64 {
	if n < 2 {
		return []float64{min}
	}
	v := make([]float64, n)
	floats.Span(v, min, max)
	return v
}

// Grid expands the axes into their cartesian product.
func Grid(axes []Axis) []map[string]float64 {
	points := []map[string]float64{{}}
	for _, ax := range axes {
		next := make([]map[string]float64, 0, len(points)*len(ax.Values))
		for _, p := range points {
			for _, v := range ax.Values {
				np := make(map[string]float64, len(p)+1)
				for k, pv := range p {
					np[k] = pv
				}
				np[ax.Param] = v
				next = append(next, np)
			}
		}
		points = next
	}
	return points
}

// Apply overrides named fields of a base SI config. Values are SI.
func Apply(base reactor.Config, params map[string]float64) (reactor.Config, error) {
	cfg := base
	for name, v := range params {
		switch name {
		case "inlet_temperature":
			cfg.InletTemperature = v
		case "inlet_pressure":
			cfg.InletPressure = v
		case "flow_rate":
			cfg.FlowRate = v
		case "bed_length":
			cfg.BedLength = v
		case "diameter":
			cfg.Diameter = v
		case "particle_diameter":
			cfg.ParticleDiameter = v
		case "bed_porosity":
			cfg.BedPorosity = v
		case "pre_exponential":
			cfg.PreExponential = v
		case "activation_energy":
			cfg.ActivationEnergy = v
		default:
			return cfg, fmt.Errorf("sweep: unknown parameter %q", name)
		}
	}
	return cfg, nil
}

// Outcome is one solved grid point. Err is set when that point failed;
// other points are unaffected.
type Outcome struct {
	Params map[string]float64
	Result *reactor.Result
	Err    error
}

// Run solves every grid point with a bounded worker pool. Independent
// solves share no state, so workers need no locking beyond the index feed.
func Run(ctx context.Context, base reactor.Config, points []map[string]float64, workers int) []Outcome {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(points) {
		workers = len(points)
	}

	outcomes := make([]Outcome, len(points))
	idx := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				outcomes[i] = solveOne(base, points[i])
			}
		}()
	}

	log.WithFields(log.Fields{"points": len(points), "workers": workers}).Info("sweep started")

feed:
	for i := range points {
		select {
		case <-ctx.Done():
			for j := i; j < len(points); j++ {
				outcomes[j] = Outcome{Params: points[j], Err: ctx.Err()}
			}
			break feed
		case idx <- i:
		}
	}
	close(idx)
	wg.Wait()

	failed := 0
	for i := range outcomes {
		if outcomes[i].Err != nil {
			failed++
		}
	}
	log.WithFields(log.Fields{"points": len(points), "failed": failed}).Info("sweep finished")

	return outcomes
}

func solveOne(base reactor.Config, params map[string]float64) Outcome {
	out := Outcome{Params: params}

	cfg, err := Apply(base, params)
	if err != nil {
		out.Err = err
		return out
	}
	m, err := reactor.New(cfg)
	if err != nil {
		out.Err = err
		return out
	}
	out.Result, out.Err = m.Solve(nil)
	return out
}

// Objective extracts a scalar metric from a solved point.
func Objective(res *reactor.Result, name string) (float64, error) {
	switch name {
	case "conversion":
		return res.Conversion, nil
	case "h2_nm3_h":
		return res.H2FlowNm3h, nil
	case "pressure_drop":
		return res.PressureDrop, nil
	case "outlet_temperature":
		return res.OutletTemp, nil
	default:
		return 0, fmt.Errorf("sweep: unknown objective %q", name)
	}
}

// Best returns the outcome optimizing the objective. Failed points are
// skipped; an error is returned only when no point succeeded.
func Best(outcomes []Outcome, objective string, maximize bool) (*Outcome, error) {
	var best *Outcome
	var bestVal float64

	for i := range outcomes {
		o := &outcomes[i]
		if o.Err != nil {
			continue
		}
		v, err := Objective(o.Result, objective)
		if err != nil {
			return nil, err
		}
		if best == nil || (maximize && v > bestVal) || (!maximize && v < bestVal) {
			best = o
			bestVal = v
		}
	}
	if best == nil {
		return nil, fmt.Errorf("sweep: no successful points")
	}
	return best, nil
}

// Summary reports the mean and standard deviation of the objective across
// the successful points.
func Summary(outcomes []Outcome, objective string) (mean, stddev float64, err error) {
	vals := make([]float64, 0, len(outcomes))
	for i := range outcomes {
		if outcomes[i].Err != nil {
			continue
		}
		v, oerr := Objective(outcomes[i].Result, objective)
		if oerr != nil {
			return 0, 0, oerr
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return 0, 0, fmt.Errorf("sweep: no successful points")
	}
	return stat.Mean(vals, nil), stat.StdDev(vals, nil), nil
}
