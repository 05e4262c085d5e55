package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"gyeongbi/internal/core"
)

// Summary block labels, in write order.
const (
	labelAuthor     = "Author"
	labelCreated    = "Created"
	labelPeriod     = "Period"
	labelTotalItems = "Total Items"
	labelTotal      = "Total Amount"
)

// CSVRenderer writes a document as UTF-8 CSV with a BOM so Excel
// detects the encoding, every cell quoted so Excel never re-parses
// values, and the summary block after a blank line. The output
// round-trips through ReadDocument.
type CSVRenderer struct{}

var _ Renderer = CSVRenderer{}

func (CSVRenderer) Format() Format { return FormatCSV }

func (CSVRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("\uFEFF")

	writeQuoted(&b, Headers())
	for _, row := range doc.Rows {
		writeQuoted(&b, row.Values())
	}

	s := doc.Summary
	b.WriteString("\n")
	writeQuoted(&b, []string{labelAuthor, s.Author})
	writeQuoted(&b, []string{labelCreated, s.CreatedDate})
	writeQuoted(&b, []string{labelPeriod, s.Period()})
	writeQuoted(&b, []string{labelTotalItems, strconv.Itoa(s.TotalItems)})
	writeQuoted(&b, []string{labelTotal, core.FormatWon(s.TotalAmount)})

	return b.Bytes(), nil
}

func writeQuoted(b *bytes.Buffer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(c, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// ReadDocument parses a CSV produced by CSVRenderer back into a
// document, so exports can be re-imported losslessly.
func ReadDocument(data []byte) (Document, error) {
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	recs, err := r.ReadAll()
	if err != nil {
		return Document{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(recs) == 0 {
		return Document{}, fmt.Errorf("empty csv")
	}

	var doc Document
	inSummary := false
	for i, rec := range recs {
		if i == 0 {
			continue // header
		}
		if len(rec) == 2 {
			inSummary = true
		}
		if !inSummary {
			if len(rec) != len(Headers()) {
				return Document{}, fmt.Errorf("row %d: %d cells, want %d", i, len(rec), len(Headers()))
			}
			doc.Rows = append(doc.Rows, Row{
				Date: rec[0], Departure: rec[1], Destination: rec[2],
				Distance: rec[3], Duration: rec[4], TollFee: rec[5],
				Vehicle: rec[6], FuelCost: rec[7], Parking: rec[8],
				Meals: rec[9], Accommodation: rec[10], Other: rec[11],
				Total: rec[12], Memo: rec[13],
			})
			continue
		}
		if len(rec) != 2 {
			continue
		}
		switch rec[0] {
		case labelAuthor:
			doc.Summary.Author = rec[1]
		case labelCreated:
			doc.Summary.CreatedDate = rec[1]
		case labelPeriod:
			start, end, ok := strings.Cut(rec[1], " ~ ")
			if ok {
				doc.Summary.StartDate, doc.Summary.EndDate = start, end
			}
		case labelTotalItems:
			doc.Summary.TotalItems, _ = strconv.Atoi(rec[1])
		case labelTotal:
			doc.Summary.TotalAmount, _ = core.ParseWon(rec[1])
		}
	}
	return doc, nil
}
