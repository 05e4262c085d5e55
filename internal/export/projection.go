// Package export projects the expense ledger into a formatted,
// date-filtered report document and renders it to the supported
// output formats.
package export

import (
	"strconv"

	"gyeongbi/internal/core"
)

// Format names an output format of a report.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatPDF    Format = "pdf"
	FormatSheets Format = "sheets"
)

// Row is one report line with display-formatted values. Amounts are
// won strings ("₩12,000"), zero amounts render as "-".
type Row struct {
	Date          string `json:"date"`
	Departure     string `json:"departure"`
	Destination   string `json:"destination"`
	Distance      string `json:"distance"`
	Duration      string `json:"duration"`
	TollFee       string `json:"tollFee"`
	Vehicle       string `json:"vehicle"`
	FuelCost      string `json:"fuelCost"`
	Parking       string `json:"parking"`
	Meals         string `json:"meals"`
	Accommodation string `json:"accommodation"`
	Other         string `json:"other"`
	Total         string `json:"total"`
	Memo          string `json:"memo"`
}

// Headers returns the column headers in table order.
func Headers() []string {
	return []string{
		"Date", "Departure", "Destination", "Distance", "Duration",
		"Toll", "Vehicle", "Fuel", "Parking", "Meals",
		"Accommodation", "Other", "Total", "Memo",
	}
}

// Values returns the row cells in the same order as Headers.
func (r Row) Values() []string {
	return []string{
		r.Date, r.Departure, r.Destination, r.Distance, r.Duration,
		r.TollFee, r.Vehicle, r.FuelCost, r.Parking, r.Meals,
		r.Accommodation, r.Other, r.Total, r.Memo,
	}
}

// Summary is the report trailer block.
type Summary struct {
	Author      string `json:"author"`
	CreatedDate string `json:"createdDate"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	TotalItems  int    `json:"totalItems"`
	TotalAmount int64  `json:"totalAmount"`
}

// Period renders the covered date range.
func (s Summary) Period() string {
	return s.StartDate + " ~ " + s.EndDate
}

// Document is a fully projected report, ready for any renderer.
type Document struct {
	Rows    []Row   `json:"rows"`
	Summary Summary `json:"summary"`
}

// Project filters records to startDate <= date <= endDate and formats
// them into a document. The comparison is lexicographic, which is
// exact for zero-padded ISO dates. The input list is not mutated and
// row order follows record order.
func Project(records []core.ExpenseRecord, author, createdDate, startDate, endDate string) Document {
	rows := make([]Row, 0, len(records))
	var total int64
	for _, rec := range records {
		if rec.Date < startDate || rec.Date > endDate {
			continue
		}
		rows = append(rows, projectRow(rec))
		total += rec.Breakdown.Total
	}
	return Document{
		Rows: rows,
		Summary: Summary{
			Author:      author,
			CreatedDate: createdDate,
			StartDate:   startDate,
			EndDate:     endDate,
			TotalItems:  len(rows),
			TotalAmount: total,
		},
	}
}

func projectRow(rec core.ExpenseRecord) Row {
	distance, duration := "-", "-"
	if rec.Route.DistanceKm > 0 {
		distance = strconv.FormatFloat(rec.Route.DistanceKm, 'f', -1, 64) + "km"
		duration = strconv.FormatFloat(rec.Route.DurationMin, 'f', -1, 64) + "min"
	}
	return Row{
		Date:          rec.Date,
		Departure:     rec.Form.Departure,
		Destination:   rec.Form.Destination,
		Distance:      distance,
		Duration:      duration,
		TollFee:       core.FormatWonOrDash(rec.Breakdown.TollFee),
		Vehicle:       rec.Vehicle.Label(),
		FuelCost:      core.FormatWonOrDash(rec.Breakdown.FuelCost),
		Parking:       core.FormatWonOrDash(rec.Breakdown.Parking),
		Meals:         core.FormatWonOrDash(rec.Breakdown.Meals),
		Accommodation: core.FormatWonOrDash(rec.Breakdown.Accommodation),
		Other:         core.FormatWonOrDash(rec.Breakdown.Other),
		Total:         core.FormatWon(rec.Breakdown.Total),
		Memo:          rec.Memo,
	}
}
