package export

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// fontFamily is an embedded UTF-8 font with Latin and Arabic-script glyphs.
const fontFamily = "DejaVu"

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	regularFont []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	boldFont []byte
)

const (
	pageWidth  = 190.0
	firstWidth = 60.0
)

// PDFExporter renders datasets into an A4 report. When groupBy names a header,
// rows are laid out under a shaded heading per group and that column is dropped
// from the table body.
type PDFExporter struct {
	groupBy string
}

// NewPDFExporter constructs a PDF exporter grouping rows by groupBy (may be empty).
func NewPDFExporter(groupBy string) *PDFExporter {
	return &PDFExporter{groupBy: groupBy}
}

// Render creates a PDF document with an optional title.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AliasNbPages("")
	pdf.AddUTF8FontFromBytes(fontFamily, "", regularFont)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", boldFont)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("load pdf font: %w", err)
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("%s  -  page %d/{nb}", title, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	if title != "" {
		pdf.SetFont(fontFamily, "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	columns := data.Headers
	groups := []Group{{Rows: data.Rows}}
	if e.groupBy != "" && data.hasHeader(e.groupBy) {
		columns = make([]string, 0, len(data.Headers)-1)
		for _, h := range data.Headers {
			if h != e.groupBy {
				columns = append(columns, h)
			}
		}
		groups = data.GroupBy(e.groupBy)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("pdf has no columns besides %s", e.groupBy)
	}
	widths := columnWidths(len(columns))

	pdf.SetFont(fontFamily, "B", 10)
	for i, header := range columns {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	for _, group := range groups {
		if group.Key != "" {
			pdf.SetFont(fontFamily, "B", 10)
			pdf.SetFillColor(225, 225, 225)
			pdf.CellFormat(pageWidth, 7, group.Key, "1", 1, "L", true, 0, "")
		}
		pdf.SetFont(fontFamily, "", 9)
		for _, row := range group.Rows {
			for i, header := range columns {
				pdf.CellFormat(widths[i], 7, row[header], "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidths(n int) []float64 {
	widths := make([]float64, n)
	if n == 1 {
		widths[0] = pageWidth
		return widths
	}
	widths[0] = firstWidth
	rest := (pageWidth - firstWidth) / float64(n-1)
	for i := 1; i < n; i++ {
		widths[i] = rest
	}
	return widths
}
