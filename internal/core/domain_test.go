package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateDate(t *testing.T) {
	tests := []struct {
		date    string
		wantErr bool
	}{
		{"2024-01-15", false},
		{"2024-02-29", false},
		{"2023-02-29", true},
		{"15-01-2024", true},
		{"2024-1-5", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateDate(tt.date)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
		}
	}
}

func TestVehicleSelectionValidate(t *testing.T) {
	tests := []struct {
		name    string
		sel     VehicleSelection
		wantErr error
	}{
		{
			name: "catalog vehicle",
			sel:  VehicleSelection{Brand: "Kia", Model: "K5", EfficiencyKmPerLtr: 12.3, FuelType: FuelGasoline},
		},
		{
			name: "manual entry",
			sel:  VehicleSelection{EfficiencyKmPerLtr: 15, FuelType: FuelDiesel},
		},
		{
			name: "electric without efficiency",
			sel:  VehicleSelection{Brand: "Kia", Model: "EV6", FuelType: FuelElectric},
		},
		{
			name:    "zero efficiency for fuel burner",
			sel:     VehicleSelection{FuelType: FuelGasoline},
			wantErr: ErrInvalidEfficiency,
		},
		{
			name:    "bogus fuel type",
			sel:     VehicleSelection{EfficiencyKmPerLtr: 10, FuelType: "steam"},
			wantErr: ErrInvalidFuelType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sel.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpenseRecordValidate(t *testing.T) {
	valid := ExpenseRecord{
		ID:   "r-1",
		Date: "2024-03-10",
		Route: RouteCandidate{
			DistanceKm: 250, DurationMin: 180, TollFeeWon: 15000,
		},
		Vehicle: VehicleSelection{
			Brand: "Hyundai", Model: "Sonata",
			EfficiencyKmPerLtr: 12.5, FuelType: FuelGasoline,
		},
		Breakdown: CostBreakdown{FuelCost: 37000, TollFee: 15000, Total: 52000},
		Form:      RouteForm{Mode: RouteBySearch, Departure: "Seoul", Destination: "Busan"},
		CreatedAt: time.Now(),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid record: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*ExpenseRecord)
		wantErr error
	}{
		{"missing id", func(r *ExpenseRecord) { r.ID = "" }, ErrEmptyRecordID},
		{"bad date", func(r *ExpenseRecord) { r.Date = "10/03/2024" }, ErrInvalidDate},
		{"zero distance", func(r *ExpenseRecord) { r.Route.DistanceKm = 0 }, ErrInvalidDistance},
		{"negative toll", func(r *ExpenseRecord) { r.Route.TollFeeWon = -1 }, ErrNegativeAmount},
		{"negative meals", func(r *ExpenseRecord) { r.Incidentals.Meals = -100 }, ErrNegativeAmount},
		{"zero total", func(r *ExpenseRecord) { r.Breakdown = CostBreakdown{} }, ErrZeroTotal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.mutate(&rec)
			if err := rec.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVehicleLabel(t *testing.T) {
	sel := VehicleSelection{Brand: "Genesis", Model: "G80", EfficiencyKmPerLtr: 9.8, FuelType: FuelGasoline}
	if got := sel.Label(); got != "Genesis G80" {
		t.Errorf("Label() = %q, want %q", got, "Genesis G80")
	}
	manual := VehicleSelection{EfficiencyKmPerLtr: 14, FuelType: FuelGasoline}
	if got := manual.Label(); got != "" {
		t.Errorf("manual Label() = %q, want empty", got)
	}
}
