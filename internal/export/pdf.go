package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"gyeongbi/internal/core"
)

// PDFRenderer lays the report out on A4 landscape pages: centered
// title, period and author header, the table with its header repeated
// per page, page numbers, and the grand total on the last page.
//
// FontPath may point at a UTF-8 TTF for full glyph coverage. Without
// one the built-in Helvetica is used and the won sign, which cp1252
// lacks, is written as "KRW".
type PDFRenderer struct {
	FontPath string
	Title    string
}

var _ Renderer = (*PDFRenderer)(nil)

const (
	pdfMargin     = 14.0
	pdfRowHeight  = 7.0
	pdfHeaderFrom = 42.0 // y where the table starts
)

func (p *PDFRenderer) Format() Format { return FormatPDF }

func (p *PDFRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)

	font := "Helvetica"
	unicode := false
	if p.FontPath != "" {
		pdf.AddUTF8Font("report", "", p.FontPath)
		font = "report"
		unicode = true
	}
	title := p.Title
	if title == "" {
		title = "Trip Expense Report"
	}

	pageW, pageH := pdf.GetPageSize()
	widths := columnWidths(pageW - 2*pdfMargin)
	headers := Headers()

	rowsPerPage := int((pageH - pdfHeaderFrom - 2*pdfRowHeight - 2*pdfMargin) / pdfRowHeight)
	if rowsPerPage < 1 {
		rowsPerPage = 1
	}
	totalPages := (len(doc.Rows) + rowsPerPage - 1) / rowsPerPage
	if totalPages == 0 {
		totalPages = 1
	}

	cell := func(s string) string {
		if unicode {
			return s
		}
		return strings.ReplaceAll(s, "₩", "KRW ")
	}

	for page := 0; page < totalPages; page++ {
		pdf.AddPage()

		pdf.SetFont(font, "B", 16)
		pdf.CellFormat(pageW-2*pdfMargin, 10, cell(title), "", 1, "C", false, 0, "")

		pdf.SetFont(font, "", 9)
		pdf.CellFormat((pageW-2*pdfMargin)/2, 6, cell("Period: "+doc.Summary.Period()), "", 0, "L", false, 0, "")
		pdf.CellFormat((pageW-2*pdfMargin)/2, 6, cell("Author: "+doc.Summary.Author), "", 1, "R", false, 0, "")
		pdf.CellFormat(pageW-2*pdfMargin, 6, cell("Created: "+doc.Summary.CreatedDate), "", 1, "R", false, 0, "")

		pdf.SetY(pdfHeaderFrom)
		pdf.SetFont(font, "B", 7)
		pdf.SetFillColor(243, 244, 246)
		for i, h := range headers {
			pdf.CellFormat(widths[i], pdfRowHeight, cell(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont(font, "", 7)
		start := page * rowsPerPage
		end := min(start+rowsPerPage, len(doc.Rows))
		for _, row := range doc.Rows[start:end] {
			for i, v := range row.Values() {
				pdf.CellFormat(widths[i], pdfRowHeight, cell(v), "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}

		if page == totalPages-1 {
			pdf.SetFont(font, "B", 11)
			pdf.SetXY(pdfMargin, pageH-pdfMargin-6)
			pdf.CellFormat(pageW-2*pdfMargin, 6,
				cell("Total: "+core.FormatWon(doc.Summary.TotalAmount)),
				"", 0, "R", false, 0, "")
		}
		if totalPages > 1 {
			pdf.SetFont(font, "", 8)
			pdf.SetXY(pdfMargin, pageH-pdfMargin-6)
			pdf.CellFormat(40, 6, fmt.Sprintf("%d / %d", page+1, totalPages), "", 0, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths spreads the usable width over the 14 columns, giving
// wider cells to free-text fields.
func columnWidths(usable float64) []float64 {
	weights := []float64{
		5, 7, 7, 4, 4, 5, 8, 5, 5, 5, 6, 5, 6, 8,
	}
	var total float64
	for _, w := range weights {
		total += w
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = usable * w / total
	}
	return out
}
