package storage

import (
	"math"
	"testing"

	"github.com/anukaran/pbreactor/internal/reactor"
)

func sampleResult() *reactor.Result {
	return &reactor.Result{
		Z:            []float64{0, 0.05, 0.1},
		FCH4:         []float64{2e-8, 1.5e-8, 1.2e-8},
		FH2:          []float64{0, 1e-8, 1.6e-8},
		T:            []float64{1073, 1050, 1040},
		P:            []float64{1e5, 9.9e4, 9.8e4},
		YCH4:         []float64{0.5, 0.4, 0.35},
		YH2:          []float64{0, 0.2, 0.3},
		YN2:          []float64{0.5, 0.4, 0.35},
		FN2:          2e-8,
		FCH4In:       2e-8,
		Conversion:   0.4,
		H2FlowNm3h:   1.3e-3,
		PressureDrop: 2000,
		OutletTemp:   1040,
		Steps:        120,
		Rejected:     4,
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("lab", true, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID || meta.Label != "lab" || !meta.Isothermal {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Conversion != 0.4 || meta.Points != 3 {
		t.Errorf("derived metrics mismatch: %+v", meta)
	}
}

func TestStore_List(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := st.Save("a", false, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestStore_List_EmptyDir(t *testing.T) {
	st := New(t.TempDir() + "/nonexistent")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStore_LoadProfile(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	res := sampleResult()
	runID, err := st.Save("lab", true, res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	p, err := st.LoadProfile(runID)
	if err != nil {
		t.Fatalf("load profile failed: %v", err)
	}

	z := p.Column("z")
	if len(z) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(z))
	}
	for i, want := range res.Z {
		if math.Abs(z[i]-want) > 1e-12 {
			t.Errorf("z[%d] = %v, want %v", i, z[i], want)
		}
	}

	temps := p.Column("T")
	if temps == nil {
		t.Fatal("temperature column missing")
	}
	if math.Abs(temps[2]-1040) > 1e-6 {
		t.Errorf("T[2] = %v, want 1040", temps[2])
	}

	if p.Column("bogus") != nil {
		t.Error("unknown column should return nil")
	}
}

func TestStore_LoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error for missing run")
	}
}
