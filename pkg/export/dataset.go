package export

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Group is a run of rows sharing one value of the grouping column.
type Group struct {
	Key  string
	Rows []map[string]string
}

// GroupBy splits rows by the value of header, keeping groups in first-seen order.
func (d Dataset) GroupBy(header string) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, row := range d.Rows {
		key := row[header]
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	return groups
}

func (d Dataset) hasHeader(header string) bool {
	for _, h := range d.Headers {
		if h == header {
			return true
		}
	}
	return false
}
