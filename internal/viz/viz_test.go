package viz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfalab/flowdyn/internal/config"
	"github.com/mfalab/flowdyn/internal/mfa"
)

func TestTimeSeries(t *testing.T) {
	sys, err := config.Build(config.GetPreset("steel"), nil)
	require.NoError(t, err)

	f := sys.Flows()["production => use"]
	f.Array().Fill(1)

	series, err := TimeSeries(f.Array(), "t")
	require.NoError(t, err)
	require.Len(t, series, 21)
	// two regions of one each
	assert.Equal(t, 2.0, series[0])

	_, err = TimeSeries(f.Array(), "z")
	assert.Error(t, err)
}

func TestStockPanel(t *testing.T) {
	sys, err := config.Build(config.GetPreset("steel"), nil)
	require.NoError(t, err)

	st := sys.Stocks()["in_use"]
	st.Inflow().Fill(1)
	require.NoError(t, st.Compute())

	panel, err := StockPanel(st, "t", 40, 4)
	require.NoError(t, err)
	assert.Contains(t, panel, "in_use")
	assert.Contains(t, panel, "stock")
	assert.Contains(t, panel, "inflow")
	assert.Contains(t, panel, "outflow")
}

func TestRenderBalanceReport(t *testing.T) {
	assert.Contains(t, RenderBalanceReport(nil), "mass balance ok")

	report := RenderBalanceReport([]mfa.BalanceViolation{
		{Process: "use", TimeItem: "2003", Residual: -0.5},
	})
	assert.Contains(t, report, "1 mass balance violations")
	assert.Contains(t, report, "use")
	assert.Contains(t, report, "2003")
	assert.True(t, strings.Contains(report, "-0.5"))
}
