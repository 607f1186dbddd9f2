package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"section", "field", "value"},
		Rows: []map[string]string{
			{"section": "info", "field": "date", "value": "1403/01/01"},
			{"section": "feed LINE_1", "field": "07:00", "value": "120 t"},
			{"section": "info", "field": "crew", "value": "B"},
		},
	}
}

func TestGroupByKeepsFirstSeenOrder(t *testing.T) {
	groups := sampleDataset().GroupBy("section")
	require.Len(t, groups, 2)
	assert.Equal(t, "info", groups[0].Key)
	assert.Len(t, groups[0].Rows, 2)
	assert.Equal(t, "feed LINE_1", groups[1].Key)
}

func TestCSVExporterWritesBOM(t *testing.T) {
	data, err := NewCSVExporter(true).Render(sampleDataset())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, utf8BOM))

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"section", "field", "value"}, records[0])
	assert.Equal(t, []string{"info", "crew", "B"}, records[3])

	plain, err := NewCSVExporter(false).Render(sampleDataset())
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(plain, utf8BOM))
}

func TestCSVExporterNeutralizesFormulas(t *testing.T) {
	data := Dataset{
		Headers: []string{"field", "value"},
		Rows: []map[string]string{
			{"field": "note", "value": "=HYPERLINK(\"http://x\")"},
			{"field": "stopped", "value": "-"},
			{"field": "tonnage", "value": "120"},
		},
	}
	out, err := NewCSVExporter(true).Render(data)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\r\n")

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, utf8BOM))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "'=HYPERLINK(\"http://x\")", records[1][1])
	assert.Equal(t, "-", records[2][1])
	assert.Equal(t, "120", records[3][1])
}

func TestPDFExporterEmbedsUnicodeFont(t *testing.T) {
	data := Dataset{
		Headers: []string{"section", "field", "value"},
		Rows: []map[string]string{
			{"section": "notes", "field": "1", "value": "لاینر آسیاب ۲ فرسوده است"},
			{"section": "downtime LINE_1", "field": "reason", "value": "تعویض نوار نقاله"},
		},
	}
	out, err := NewPDFExporter("section").Render(data, "گزارش شیفت SR-1403-0001")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.True(t, bytes.Contains(out, []byte("/FontFile2")))
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter(false).Render(Dataset{})
	assert.Error(t, err)
	_, err = NewPDFExporter("").Render(Dataset{}, "x")
	assert.Error(t, err)
	_, err = NewPDFExporter("section").Render(Dataset{Headers: []string{"section"}}, "x")
	assert.Error(t, err)
}

func TestPDFExporterRendersGroups(t *testing.T) {
	data, err := NewPDFExporter("section").Render(sampleDataset(), "Shift report SR-1403-0001")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	flat, err := NewPDFExporter("").Render(sampleDataset(), "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(flat, []byte("%PDF")))
}
