package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSVRender(t *testing.T) {
	table := Table{
		Title:   "Register",
		Columns: []string{"Project ID", "Name", "Progress (%)"},
		Rows: [][]interface{}{
			{"PROJ001", "Rural Road Construction", 75},
			{"PROJ002", "Smart Water Management", 30},
		},
	}

	var buf bytes.Buffer
	assert.NoError(t, NewCSVExporter().Render(table, &buf))

	out := buf.String()
	assert.Equal(t, "Project ID,Name,Progress (%)\nPROJ001,Rural Road Construction,75\nPROJ002,Smart Water Management,30\n", out)
}

func TestCSVRenderShortRow(t *testing.T) {
	table := Table{
		Columns: []string{"A", "B", "C"},
		Rows:    [][]interface{}{{"x"}},
	}

	var buf bytes.Buffer
	assert.NoError(t, NewCSVExporter().Render(table, &buf))
	assert.Equal(t, "A,B,C\nx,,\n", buf.String())
}

func TestFormatCell(t *testing.T) {
	s := "val"
	var nilStr *string

	assert.Equal(t, "", formatCell(nil))
	assert.Equal(t, "", formatCell(nilStr))
	assert.Equal(t, "val", formatCell(&s))
	assert.Equal(t, "42", formatCell(42))
	assert.Equal(t, "42", formatCell(int64(42)))
}
