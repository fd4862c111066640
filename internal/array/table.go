package array

// Row is one coordinate combination and its value, for flat tabular
// export.
type Row struct {
	Items []string
	Value float64
}

// Table flattens the array into one row per coordinate combination, in
// row-major order. Column layout (headers, formatting) is the consumer's
// concern.
func (a *Array) Table() []Row {
	rows := make([]Row, len(a.data))
	od := newOdometer(a.Shape())
	for i, v := range a.data {
		items := make([]string, a.dims.Len())
		for k := 0; k < a.dims.Len(); k++ {
			items[k] = a.dims.Dim(k).Item(od.coord[k])
		}
		rows[i] = Row{Items: items, Value: v}
		od.next()
	}
	return rows
}

// Header returns the dimension names, matching the item order in each Row.
func (a *Array) Header() []string {
	return a.dims.Names()
}
