package bench

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/interner/pkg/persist"
)

// baselineName is the file basename of a saved baseline.
const baselineName = "bench-baseline"

// Baseline is a saved run that later runs are compared with.
type Baseline struct {
	Strings   int      `json:"strings"`
	StringLen int      `json:"string_len"`
	Symbol    string   `json:"symbol"`
	Results   []Result `json:"results"`
}

// Delta compares one scenario with its baseline.
type Delta struct {
	Scenario string
	Base     float64 // Baseline ops/s.
	Current  float64 // Current ops/s.
}

// Ratio returns current throughput relative to the baseline.
func (d Delta) Ratio() float64 {
	if d.Base == 0 {
		return 0
	}

	return d.Current / d.Base
}

// BaselineStore saves and loads baselines as JSON files in a directory.
type BaselineStore struct {
	persister *persist.Persister[Baseline]
}

// NewBaselineStore creates a store for baselines.
func NewBaselineStore() *BaselineStore {
	return &BaselineStore{persister: persist.NewPersister[Baseline](baselineName, persist.NewJSONCodec(), nil)}
}

// Path returns the baseline file inside dir.
func (s *BaselineStore) Path(dir string) string {
	return s.persister.Path(dir)
}

// Save writes b into dir, replacing any previous baseline.
func (s *BaselineStore) Save(dir string, b Baseline) error {
	return s.persister.Save(dir, &b)
}

// Load reads the baseline in dir. ok is false when none was saved.
func (s *BaselineStore) Load(dir string) (b Baseline, ok bool, err error) {
	_, err = os.Stat(s.Path(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return Baseline{}, false, nil
	}

	loaded, err := s.persister.Load(dir)
	if err != nil {
		return Baseline{}, false, err
	}

	return *loaded, true, nil
}

// Compare pairs current results with baseline results by scenario.
// Scenarios missing from the baseline are skipped.
func Compare(base, current []Result) []Delta {
	byName := make(map[string]Result, len(base))
	for _, r := range base {
		byName[r.Scenario] = r
	}

	deltas := make([]Delta, 0, len(current))

	for _, r := range current {
		b, ok := byName[r.Scenario]
		if !ok {
			continue
		}

		deltas = append(deltas, Delta{Scenario: r.Scenario, Base: b.OpsPerSec(), Current: r.OpsPerSec()})
	}

	return deltas
}

// RenderComparison writes deltas as a text table.
func RenderComparison(w io.Writer, deltas []Delta) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Scenario", "Baseline ops/s", "Current ops/s", "Change"})

	for _, d := range deltas {
		tbl.AppendRow(table.Row{
			d.Scenario,
			fmt.Sprintf("%.0f", d.Base),
			fmt.Sprintf("%.0f", d.Current),
			fmt.Sprintf("%+.1f%%", (d.Ratio()-1)*100),
		})
	}

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write comparison: %w", err)
	}

	return nil
}
