package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/anukaran/pbreactor/internal/reactor"
)

// Store persists solved runs under a base directory, one subdirectory per
// run with metadata.json and profile.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// profileColumns is the fixed CSV column order.
var profileColumns = []string{"z", "F_CH4", "F_H2", "T", "P", "y_CH4", "y_H2", "y_N2"}

type RunMetadata struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	Timestamp  time.Time `json:"timestamp"`
	Isothermal bool      `json:"isothermal"`
	Points     int       `json:"points"`

	Conversion     float64 `json:"conversion"`
	H2FlowNm3h     float64 `json:"h2_flow_nm3_h"`
	PressureDropPa float64 `json:"pressure_drop_pa"`
	OutletTempK    float64 `json:"outlet_temp_k"`

	Steps    int `json:"steps"`
	Rejected int `json:"rejected"`
}

// Save writes one solved run and returns its generated ID.
func (s *Store) Save(label string, isothermal bool, res *reactor.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", label, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Label:          label,
		Timestamp:      time.Now(),
		Isothermal:     isothermal,
		Points:         len(res.Z),
		Conversion:     res.Conversion,
		H2FlowNm3h:     res.H2FlowNm3h,
		PressureDropPa: res.PressureDrop,
		OutletTempK:    res.OutletTemp,
		Steps:          res.Steps,
		Rejected:       res.Rejected,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "profile.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(profileColumns); err != nil {
		return "", err
	}

	cols := [][]float64{res.Z, res.FCH4, res.FH2, res.T, res.P, res.YCH4, res.YH2, res.YN2}
	for i := range res.Z {
		row := make([]string, len(cols))
		for j, col := range cols {
			row[j] = strconv.FormatFloat(col[i], 'e', 10, 64)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Profile is a loaded axial table, column-major in the header order.
type Profile struct {
	Header  []string
	Columns [][]float64
}

// Column returns a named series, nil when absent.
func (p *Profile) Column(name string) []float64 {
	for i, h := range p.Header {
		if h == name {
			return p.Columns[i]
		}
	}
	return nil
}

func (s *Store) LoadProfile(runID string) (*Profile, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "profile.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("storage: profile for %s is empty", runID)
	}

	header := records[0]
	p := &Profile{
		Header:  header,
		Columns: make([][]float64, len(header)),
	}
	for j := range header {
		p.Columns[j] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("storage: ragged row in profile for %s", runID)
		}
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: bad value %q in profile for %s", field, runID)
			}
			p.Columns[j] = append(p.Columns[j], v)
		}
	}

	return p, nil
}
