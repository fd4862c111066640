package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mfalab/flowdyn/internal/dims"
)

// Definition is the on-disk description of one model: its dimension
// universe and the layout of processes, flows, stocks and parameters.
type Definition struct {
	Name       string         `yaml:"name"`
	TimeLetter string         `yaml:"time_letter"`
	Dimensions []DimensionDef `yaml:"dimensions"`
	Processes  []string       `yaml:"processes"`
	Flows      []FlowDef      `yaml:"flows"`
	Stocks     []StockDef     `yaml:"stocks"`
	Parameters []ParameterDef `yaml:"parameters"`
}

// DimensionDef describes one dimension. Exactly one of items, values or
// start/stop must be given; start/stop is an inclusive integer range.
type DimensionDef struct {
	Name   string   `yaml:"name"`
	Letter string   `yaml:"letter"`
	Items  []string `yaml:"items"`
	Values []int    `yaml:"values"`
	Start  *int     `yaml:"start"`
	Stop   *int     `yaml:"stop"`
}

type FlowDef struct {
	From string   `yaml:"from"`
	To   string   `yaml:"to"`
	Dims []string `yaml:"dims"`
	Name string   `yaml:"name"`
}

type StockDef struct {
	Name     string       `yaml:"name"`
	Process  string       `yaml:"process"`
	Dims     []string     `yaml:"dims"`
	Type     string       `yaml:"type"`
	Lifetime *LifetimeDef `yaml:"lifetime"`
}

type LifetimeDef struct {
	Type              string  `yaml:"type"`
	Mean              float64 `yaml:"mean"`
	Std               float64 `yaml:"std"`
	Shape             float64 `yaml:"shape"`
	Scale             float64 `yaml:"scale"`
	InflowAt          string  `yaml:"inflow_at"`
	PointsPerInterval int     `yaml:"points_per_interval"`
}

type ParameterDef struct {
	Name   string    `yaml:"name"`
	Dims   []string  `yaml:"dims"`
	Values []float64 `yaml:"values"`
}

// Load reads a definition from a yaml file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def := &Definition{}
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, err
	}
	return def, nil
}

// Save writes a definition back out as yaml.
func Save(path string, def *Definition) error {
	data, err := yaml.Marshal(def)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildDims assembles the dimension universe of the definition.
func (d *Definition) BuildDims() (*dims.Set, error) {
	list := make([]*dims.Dimension, 0, len(d.Dimensions))
	for _, dd := range d.Dimensions {
		dim, err := dd.build()
		if err != nil {
			return nil, err
		}
		list = append(list, dim)
	}
	return dims.NewSet(list...)
}

func (dd DimensionDef) build() (*dims.Dimension, error) {
	switch {
	case dd.Start != nil && dd.Stop != nil:
		return dims.NewRange(dd.Name, dd.Letter, *dd.Start, *dd.Stop)
	case len(dd.Values) > 0:
		return dims.NewNumeric(dd.Name, dd.Letter, dd.Values)
	case len(dd.Items) > 0:
		return dims.New(dd.Name, dd.Letter, dd.Items)
	}
	return nil, fmt.Errorf("%w: dimension %q needs items, values or a range", ErrDefinition, dd.Name)
}
