package inspect

import (
	"fmt"

	"github.com/npillmayer/sortedvec"
)

// Row is a flattened container entry.
type Row struct {
	Primary     string // key, or primary key for two-level containers
	Secondary   string // secondary key, empty for single-key containers
	Value       string
	Partitioned bool // taken from a two-level container
}

// RowsOf flattens the items of a single-key container, usually obtained
// by calling Items. Shared containers yield pointers, which work as well.
func RowsOf[K any, E sortedvec.Keyed[K]](items []E) []Row {
	rows := make([]Row, len(items))
	for i, item := range items {
		rows[i] = Row{
			Primary: fmt.Sprint(item.Key()),
			Value:   fmt.Sprintf("%+v", item),
		}
	}
	return rows
}

// RowsOf2 flattens the partitions of a two-level container, in
// (primary, secondary) order.
func RowsOf2[E sortedvec.TwoKeyed](parts []*sortedvec.Partition[E]) []Row {
	var rows []Row
	for _, p := range parts {
		for _, item := range p.Items() {
			rows = append(rows, Row{
				Primary:     item.PrimaryKey(),
				Secondary:   item.SecondaryKey(),
				Value:       fmt.Sprintf("%+v", item),
				Partitioned: true,
			})
		}
	}
	return rows
}

// groups returns the index ranges of runs of rows with equal primary keys.
func groups(rows []Row) [][2]int {
	if len(rows) == 0 {
		return nil
	}
	var g [][2]int
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i == len(rows) || rows[i].Primary != rows[start].Primary {
			g = append(g, [2]int{start, i})
			start = i
		}
	}
	return g
}

// isPartitioned reports whether rows have been taken from a two-level
// container.
func isPartitioned(rows []Row) bool {
	for _, row := range rows {
		if row.Partitioned {
			return true
		}
	}
	return false
}
