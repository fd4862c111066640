package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mfalab/flowdyn/internal/mfa"
)

// Store writes one directory per exported system run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Snapshot is the json form of a computed system.
type Snapshot struct {
	Name       string                   `json:"name"`
	Timestamp  time.Time                `json:"timestamp"`
	Dimensions []DimensionInfo          `json:"dimensions"`
	Processes  []string                 `json:"processes"`
	Flows      map[string]FlowSnapshot  `json:"flows"`
	Stocks     map[string]StockSnapshot `json:"stocks"`
	Parameters map[string]ArraySnapshot `json:"parameters"`
}

type DimensionInfo struct {
	Name   string   `json:"name"`
	Letter string   `json:"letter"`
	Items  []string `json:"items"`
}

type ArraySnapshot struct {
	Dims   []string  `json:"dims"`
	Values []float64 `json:"values"`
}

type FlowSnapshot struct {
	From string `json:"from"`
	To   string `json:"to"`
	ArraySnapshot
}

type StockSnapshot struct {
	Process string    `json:"process"`
	Dims    []string  `json:"dims"`
	Inflow  []float64 `json:"inflow"`
	Outflow []float64 `json:"outflow"`
	Stock   []float64 `json:"stock"`
}

// TakeSnapshot captures the current values of a system.
func TakeSnapshot(sys *mfa.System) Snapshot {
	snap := Snapshot{
		Name:       sys.Name(),
		Timestamp:  time.Now(),
		Processes:  sys.ProcessNames(),
		Flows:      make(map[string]FlowSnapshot, len(sys.Flows())),
		Stocks:     make(map[string]StockSnapshot, len(sys.Stocks())),
		Parameters: make(map[string]ArraySnapshot, len(sys.Parameters())),
	}
	ds := sys.Dims()
	for i := 0; i < ds.Len(); i++ {
		d := ds.Dim(i)
		snap.Dimensions = append(snap.Dimensions, DimensionInfo{
			Name:   d.Name(),
			Letter: d.Letter(),
			Items:  d.Items(),
		})
	}
	for name, f := range sys.Flows() {
		snap.Flows[name] = FlowSnapshot{
			From: f.From(),
			To:   f.To(),
			ArraySnapshot: ArraySnapshot{
				Dims:   f.Array().Dims().Letters(),
				Values: f.Array().Values(),
			},
		}
	}
	for name, st := range sys.Stocks() {
		snap.Stocks[name] = StockSnapshot{
			Process: st.Process(),
			Dims:    st.Dims().Letters(),
			Inflow:  st.Inflow().Values(),
			Outflow: st.Outflow().Values(),
			Stock:   st.Stock().Values(),
		}
	}
	for name, p := range sys.Parameters() {
		snap.Parameters[name] = ArraySnapshot{
			Dims:   p.Dims().Letters(),
			Values: p.Values(),
		}
	}
	return snap
}

// SaveJSON writes a system snapshot to a file.
func SaveJSON(path string, sys *mfa.System) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(TakeSnapshot(sys))
}

// Save writes a full run directory: a json snapshot plus one csv per flow
// and per stock. It returns the run id.
func (s *Store) Save(sys *mfa.System) (string, error) {
	runID := fmt.Sprintf("%s_%d", sys.Name(), time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := SaveJSON(filepath.Join(runDir, "system.json"), sys); err != nil {
		return "", err
	}
	for name, f := range sys.Flows() {
		path := filepath.Join(runDir, "flow_"+fileName(name)+".csv")
		if err := SaveArrayCSV(path, f.Array()); err != nil {
			return "", err
		}
	}
	for name, st := range sys.Stocks() {
		path := filepath.Join(runDir, "stock_"+fileName(name)+".csv")
		if err := SaveStockCSV(path, st); err != nil {
			return "", err
		}
	}
	return runID, nil
}

// fileName flattens a flow or stock name into something a filesystem
// accepts, e.g. "production => use" becomes "production_to_use".
func fileName(name string) string {
	name = strings.ReplaceAll(name, " => ", "_to_")
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ReplaceAll(name, string(os.PathSeparator), "_")
}
