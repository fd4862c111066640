package config

import "sort"

func intp(v int) *int { return &v }

// Presets are small self-contained model definitions, usable as demo
// input and as documentation of the schema.
var Presets = map[string]*Definition{
	"steel": {
		Name: "steel",
		Dimensions: []DimensionDef{
			{Name: "time", Letter: "t", Start: intp(2000), Stop: intp(2020)},
			{Name: "region", Letter: "r", Items: []string{"EU", "US"}},
		},
		Processes: []string{"sysenv", "production", "use"},
		Flows: []FlowDef{
			{From: "sysenv", To: "production", Dims: []string{"t", "r"}},
			{From: "production", To: "use", Dims: []string{"t", "r"}},
			{From: "use", To: "sysenv", Dims: []string{"t", "r"}},
		},
		Stocks: []StockDef{
			{
				Name: "in_use", Process: "use", Dims: []string{"t", "r"}, Type: "inflow_driven",
				Lifetime: &LifetimeDef{Type: "normal", Mean: 15, Std: 5},
			},
		},
		Parameters: []ParameterDef{
			{Name: "sysenv => production", Dims: []string{"r"}, Values: []float64{2, 1}},
			{Name: "production => use", Dims: []string{"r"}, Values: []float64{2, 1}},
		},
	},
	"vehicles": {
		Name: "vehicles",
		Dimensions: []DimensionDef{
			{Name: "time", Letter: "t", Start: intp(2010), Stop: intp(2040)},
		},
		Processes: []string{"sysenv", "fleet"},
		Flows: []FlowDef{
			{From: "sysenv", To: "fleet", Dims: []string{"t"}},
			{From: "fleet", To: "sysenv", Dims: []string{"t"}},
		},
		Stocks: []StockDef{
			{
				Name: "fleet_stock", Process: "fleet", Dims: []string{"t"}, Type: "stock_driven",
				Lifetime: &LifetimeDef{Type: "weibull", Shape: 2.2, Scale: 16},
			},
		},
		Parameters: []ParameterDef{
			{Name: "fleet_stock.stock", Dims: []string{"t"}, Values: []float64{
				100, 102.5, 105, 107.5, 110, 112.5, 115, 117.5, 120, 122.5,
				125, 127.5, 130, 132.5, 135, 137.5, 140, 142.5, 145, 147.5,
				150, 152.5, 155, 157.5, 160, 162.5, 165, 167.5, 170, 172.5,
				175,
			}},
		},
	},
}

func GetPreset(name string) *Definition { return Presets[name] }

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
