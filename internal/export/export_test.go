package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/config"
	"github.com/mfalab/flowdyn/internal/dims"
	"github.com/mfalab/flowdyn/internal/mfa"
)

func demoArray(t *testing.T) *array.Array {
	t.Helper()
	td, err := dims.NewNumeric("time", "t", []int{2000, 2001})
	require.NoError(t, err)
	region, err := dims.New("region", "r", []string{"EU", "US"})
	require.NoError(t, err)
	ds, err := dims.NewSet(td, region)
	require.NoError(t, err)
	a, err := array.New(ds, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	return a
}

func TestWriteArrayCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteArrayCSV(&buf, demoArray(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"time", "region", "value"}, records[0])
	assert.Equal(t, []string{"2000", "EU", "1"}, records[1])
	assert.Equal(t, []string{"2001", "US", "4"}, records[4])
}

func computedSystem(t *testing.T) *mfa.System {
	t.Helper()
	sys, err := config.Build(config.GetPreset("steel"), nil)
	require.NoError(t, err)

	st := sys.Stocks()["in_use"]
	st.Inflow().Fill(1)
	require.NoError(t, st.Compute())
	return sys
}

func TestWriteStockCSV(t *testing.T) {
	sys := computedSystem(t)

	var buf bytes.Buffer
	require.NoError(t, WriteStockCSV(&buf, sys.Stocks()["in_use"]))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"time", "region", "inflow", "outflow", "stock"}, records[0])
	// 21 years x 2 regions plus the header
	assert.Len(t, records, 43)
	assert.Equal(t, "1", records[1][2])
}

func TestStoreSave(t *testing.T) {
	sys := computedSystem(t)

	store := New(t.TempDir())
	require.NoError(t, store.Init())

	runID, err := store.Save(sys)
	require.NoError(t, err)

	runDir := filepath.Join(store.baseDir, runID)
	data, err := os.ReadFile(filepath.Join(runDir, "system.json"))
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, "steel", snap.Name)
	assert.Equal(t, []string{"sysenv", "production", "use"}, snap.Processes)
	require.Contains(t, snap.Flows, "production => use")
	assert.Equal(t, []string{"t", "r"}, snap.Flows["production => use"].Dims)
	require.Contains(t, snap.Stocks, "in_use")
	assert.Len(t, snap.Stocks["in_use"].Stock, 42)
	require.Contains(t, snap.Parameters, "production => use")
	assert.Equal(t, []float64{2, 1}, snap.Parameters["production => use"].Values)

	_, err = os.Stat(filepath.Join(runDir, "flow_production_to_use.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(runDir, "stock_in_use.csv"))
	assert.NoError(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "production_to_use", fileName("production => use"))
	assert.Equal(t, "in_use", fileName("in_use"))
	assert.Equal(t, "a_b", fileName("a b"))
}
