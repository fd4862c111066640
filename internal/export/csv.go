package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/stock"
)

// WriteArrayCSV writes one row per coordinate combination: the dimension
// items followed by the value.
func WriteArrayCSV(w io.Writer, a *array.Array) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(append(a.Header(), "value")); err != nil {
		return err
	}
	for _, row := range a.Table() {
		record := append(row.Items, formatValue(row.Value))
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStockCSV writes the three quantities of a stock side by side, one
// row per coordinate combination.
func WriteStockCSV(w io.Writer, st stock.Stock) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(append(st.Inflow().Header(), "inflow", "outflow", "stock")); err != nil {
		return err
	}
	rows := st.Inflow().Table()
	outflow, total := st.Outflow().Values(), st.Stock().Values()
	for i, row := range rows {
		record := append(row.Items,
			formatValue(row.Value),
			formatValue(outflow[i]),
			formatValue(total[i]))
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveArrayCSV writes an array table to a file.
func SaveArrayCSV(path string, a *array.Array) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteArrayCSV(file, a)
}

// SaveStockCSV writes a stock table to a file.
func SaveStockCSV(path string, st stock.Stock) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteStockCSV(file, st)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
