package integrate

import (
	"errors"
	"math"
	"testing"
)

// decay is y' = -y with solution y0*exp(-z).
type decay struct{}

func (decay) Derive(z float64, y []float64) []float64 {
	return []float64{-y[0]}
}

// blowup is y' = y^2 with y0=1; the exact solution 1/(1-z) leaves any
// finite tolerance behind before z=1.
type blowup struct{}

func (blowup) Derive(z float64, y []float64) []float64 {
	return []float64{y[0] * y[0]}
}

func TestRK45_ExponentialDecay(t *testing.T) {
	sol, err := NewRK45().Solve(decay{}, 0, 10, []float64{1}, nil, Options{})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	got := sol.Y[len(sol.Y)-1][0]
	want := math.Exp(-10)
	if math.Abs(got-want) > 1e-6*want+1e-12 {
		t.Errorf("y(10) = %v, want %v", got, want)
	}
	if sol.Steps == 0 {
		t.Error("no steps taken")
	}
}

func TestRK45_DenseOutput(t *testing.T) {
	evalAt := []float64{0, 0.5, 1.3, 2.71, 4, 4.999, 5}
	sol, err := NewRK45().Solve(decay{}, 0, 5, []float64{1}, evalAt, Options{})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if len(sol.Z) != len(evalAt) {
		t.Fatalf("expected %d output points, got %d", len(evalAt), len(sol.Z))
	}
	for i, z := range evalAt {
		if sol.Z[i] != z {
			t.Errorf("output position %d = %v, want %v", i, sol.Z[i], z)
		}
		want := math.Exp(-z)
		if math.Abs(sol.Y[i][0]-want) > 1e-5*want+1e-12 {
			t.Errorf("y(%v) = %v, want %v", z, sol.Y[i][0], want)
		}
	}
}

func TestRK45_DenseOutputDoesNotChangeSteps(t *testing.T) {
	free, err := NewRK45().Solve(decay{}, 0, 5, []float64{1}, nil, Options{})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	densePts := []float64{0.1, 0.2, 0.3, 1.5, 3.7, 4.9}
	dense, err := NewRK45().Solve(decay{}, 0, 5, []float64{1}, densePts, Options{})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if dense.Steps != free.Steps || dense.Rejected != free.Rejected {
		t.Errorf("dense output changed step sequence: %d/%d vs %d/%d",
			dense.Steps, dense.Rejected, free.Steps, free.Rejected)
	}
}

func TestRK45_StepUnderflow(t *testing.T) {
	_, err := NewRK45().Solve(blowup{}, 0, 2, []float64{1}, nil, Options{})
	if err == nil {
		t.Fatal("expected failure on finite-time blow-up")
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected StepError, got %T: %v", err, err)
	}
	if stepErr.Z >= 1 {
		t.Errorf("failure reported beyond the singularity: z=%v", stepErr.Z)
	}
	if len(stepErr.State) != 1 || stepErr.State[0] <= 1 {
		t.Errorf("furthest state not carried: %v", stepErr.State)
	}
}

func TestRK45_StepBudgetExhausted(t *testing.T) {
	_, err := NewRK45().Solve(decay{}, 0, 10, []float64{1}, nil, Options{MaxSteps: 3})
	if err == nil {
		t.Fatal("expected failure with a 3-step budget")
	}

	var limitErr *StepLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected StepLimitError, got %T: %v", err, err)
	}
	if limitErr.Steps != 3 {
		t.Errorf("budget = %d, want 3", limitErr.Steps)
	}
	if limitErr.Z <= 0 || limitErr.Z >= 10 {
		t.Errorf("furthest z not carried: %v", limitErr.Z)
	}
	if len(limitErr.State) != 1 || limitErr.State[0] >= 1 {
		t.Errorf("furthest state not carried: %v", limitErr.State)
	}
}

func TestRK45_PostStepApplied(t *testing.T) {
	// y' = -1 drives y negative; the hook floors every accepted state,
	// so the derivative never sees a value below zero at step boundaries.
	sol, err := NewRK45().Solve(
		SystemFunc(func(z float64, y []float64) []float64 { return []float64{-1} }),
		0, 2, []float64{0.5}, nil,
		Options{PostStep: func(y []float64) {
			y[0] = math.Max(y[0], 0)
		}},
	)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	final := sol.Y[len(sol.Y)-1][0]
	if final != 0 {
		t.Errorf("expected clamped final state 0, got %v", final)
	}
}

func TestRK45_AcceptsTighterTolerance(t *testing.T) {
	loose, err := NewRK45().Solve(decay{}, 0, 5, []float64{1}, nil, Options{RTol: 1e-4, ATol: 1e-8})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	tight, err := NewRK45().Solve(decay{}, 0, 5, []float64{1}, nil, Options{RTol: 1e-10, ATol: 1e-14})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if tight.Steps <= loose.Steps {
		t.Errorf("tighter tolerance should need more steps: %d <= %d", tight.Steps, loose.Steps)
	}
}

func TestRK4_FixedStep(t *testing.T) {
	rk4 := NewRK4()
	y := []float64{1.0}
	h := 0.01
	for i := 0; i < 1000; i++ {
		y = rk4.Step(decay{}, float64(i)*h, y, h)
	}
	want := math.Exp(-10)
	if math.Abs(y[0]-want) > 1e-8 {
		t.Errorf("RK4 y(10) = %v, want %v", y[0], want)
	}
}
