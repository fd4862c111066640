package mfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/dims"
	"github.com/mfalab/flowdyn/internal/lifetime"
	"github.com/mfalab/flowdyn/internal/stock"
)

func normalFactory(t *testing.T, mean, std float64) StockFactory {
	return func(ds *dims.Set, cfg stock.Config) (stock.Stock, error) {
		m, err := lifetime.NewNormal(ds, lifetime.Config{})
		require.NoError(t, err)
		require.NoError(t, m.SetParams(array.Scalar(mean), array.Scalar(std)))
		return stock.NewInflowDriven(ds, m, cfg)
	}
}

func fixedStockDrivenFactory(t *testing.T, mean float64) StockFactory {
	return func(ds *dims.Set, cfg stock.Config) (stock.Stock, error) {
		m, err := lifetime.NewFixed(ds, lifetime.Config{})
		require.NoError(t, err)
		require.NoError(t, m.SetMean(array.Scalar(mean)))
		return stock.NewStockDriven(ds, m, cfg)
	}
}

func TestDriveInflowChain(t *testing.T) {
	ds := modelDims(t)

	processes, err := MakeProcesses([]string{"sysenv", "production", "use"})
	require.NoError(t, err)
	flows, err := MakeEmptyFlows(processes, []FlowDefinition{
		{From: "sysenv", To: "production", Letters: []string{"t", "r"}},
		{From: "production", To: "use", Letters: []string{"t", "r"}},
		{From: "use", To: "sysenv", Letters: []string{"t", "r"}},
	}, ds)
	require.NoError(t, err)
	stocks, err := MakeEmptyStocks([]StockDefinition{
		{Name: "in_use", Process: "use", Letters: []string{"t", "r"}, New: normalFactory(t, 15, 5)},
	}, processes, ds)
	require.NoError(t, err)

	sys := NewSystem("steel", ds, nil)
	sys.SetProcesses(processes)
	sys.SetFlows(flows)
	sys.SetStocks(stocks)

	region, err := ds.Subset("r")
	require.NoError(t, err)
	supply, err := array.New(region, []float64{2, 1})
	require.NoError(t, err)
	sys.SetParameter("sysenv => production", supply)
	sys.SetParameter("production => use", supply)

	require.NoError(t, sys.Drive())

	// the parameter is broadcast over time
	assert.Equal(t, 2.0, flows["production => use"].Array().At(0, 0))
	assert.Equal(t, 1.0, flows["production => use"].Array().At(3, 1))

	// the stock took the arriving flow as inflow
	st := stocks["in_use"]
	assert.Equal(t, 2.0, st.Inflow().At(0, 0))
	assert.Greater(t, st.Stock().Total(), 0.0)

	// the zero return flow absorbed the computed outflow
	assert.Equal(t, st.Outflow().Values(), flows["use => sysenv"].Array().Values())

	violations, err := sys.CheckMassBalance(1e-9)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestDriveStockTarget(t *testing.T) {
	td, err := dims.NewNumeric("time", "t", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(t, err)
	ds, err := dims.NewSet(td)
	require.NoError(t, err)

	processes, err := MakeProcesses([]string{"sysenv", "fleet"})
	require.NoError(t, err)
	flows, err := MakeEmptyFlows(processes, []FlowDefinition{
		{From: "sysenv", To: "fleet", Letters: []string{"t"}},
		{From: "fleet", To: "sysenv", Letters: []string{"t"}},
	}, ds)
	require.NoError(t, err)
	stocks, err := MakeEmptyStocks([]StockDefinition{
		{Name: "fleet_stock", Process: "fleet", Letters: []string{"t"}, New: fixedStockDrivenFactory(t, 3)},
	}, processes, ds)
	require.NoError(t, err)

	sys := NewSystem("vehicles", ds, nil)
	sys.SetProcesses(processes)
	sys.SetFlows(flows)
	sys.SetStocks(stocks)

	target := make([]float64, 10)
	for i := range target {
		target[i] = 10 + float64(i)
	}
	targetArr, err := array.New(ds, target)
	require.NoError(t, err)
	sys.SetParameter("fleet_stock.stock", targetArr)

	require.NoError(t, sys.Drive())

	st := stocks["fleet_stock"]
	for i, want := range target {
		assert.InDelta(t, want, st.Stock().Values()[i], 1e-9)
	}
	// both boundary flows were backfilled from the solved stock
	assert.Equal(t, st.Inflow().Values(), flows["sysenv => fleet"].Array().Values())
	assert.Equal(t, st.Outflow().Values(), flows["fleet => sysenv"].Array().Values())

	violations, err := sys.CheckMassBalance(1e-9)
	require.NoError(t, err)
	assert.Empty(t, violations)
}
