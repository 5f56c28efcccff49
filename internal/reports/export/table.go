// Package export renders tabular report data as Excel, PDF or CSV.
package export

import "fmt"

// Table is the format-independent input every exporter consumes
type Table struct {
	Title   string
	Columns []string
	Rows    [][]interface{}
}

func formatCell(v interface{}) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case *string:
		if val == nil {
			return ""
		}
		return *val
	default:
		return fmt.Sprintf("%v", val)
	}
}
