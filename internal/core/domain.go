package core

import (
	"errors"
	"fmt"
	"time"
)

// FuelType identifies the energy source used by a vehicle.
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelPremium  FuelType = "premium"
	FuelDiesel   FuelType = "diesel"
	FuelLPG      FuelType = "lpg"
	FuelElectric FuelType = "electric"
)

var (
	ErrInvalidFuelType   = errors.New("invalid fuel type")
	ErrInvalidDate       = errors.New("invalid date, want YYYY-MM-DD")
	ErrInvalidDistance   = errors.New("distance must be positive")
	ErrInvalidDuration   = errors.New("duration must be positive")
	ErrInvalidEfficiency = errors.New("fuel efficiency must be positive")
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrZeroTotal         = errors.New("total cost is zero")
	ErrEmptyRecordID     = errors.New("record id is empty")
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelGasoline, FuelPremium, FuelDiesel, FuelLPG, FuelElectric:
		return true
	}
	return false
}

// BurnsFuel reports whether the fuel type consumes liters priced per
// liter. Electric vehicles are costed on a flat energy tariff instead.
func (f FuelType) BurnsFuel() bool {
	return f.Valid() && f != FuelElectric
}

// RouteCandidate is one driving route between two points, as returned
// by a route provider or entered by hand.
type RouteCandidate struct {
	Name        string  `json:"name,omitempty"`
	DistanceKm  float64 `json:"distanceKm"`
	DurationMin float64 `json:"durationMin"`
	TollFeeWon  int64   `json:"tollFee"`
}

func (r RouteCandidate) Validate() error {
	if r.DistanceKm <= 0 {
		return ErrInvalidDistance
	}
	if r.DurationMin <= 0 {
		return ErrInvalidDuration
	}
	if r.TollFeeWon < 0 {
		return fmt.Errorf("toll fee: %w", ErrNegativeAmount)
	}
	return nil
}

// VehicleSelection captures the vehicle a trip was driven with. Brand
// and model are empty when the user entered efficiency by hand.
type VehicleSelection struct {
	Brand              string   `json:"brand,omitempty"`
	Model              string   `json:"model,omitempty"`
	EfficiencyKmPerLtr float64  `json:"efficiency"`
	FuelType           FuelType `json:"fuelType"`
}

// Manual reports whether the selection came from hand-entered figures
// rather than the catalog.
func (v VehicleSelection) Manual() bool {
	return v.Brand == "" && v.Model == ""
}

// Label renders the selection for display, "brand model" or empty for
// manual entries.
func (v VehicleSelection) Label() string {
	if v.Manual() {
		return ""
	}
	return v.Brand + " " + v.Model
}

func (v VehicleSelection) Validate() error {
	if !v.FuelType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFuelType, v.FuelType)
	}
	// Electric efficiency is informational only and may be zero.
	if v.FuelType.BurnsFuel() && v.EfficiencyKmPerLtr <= 0 {
		return ErrInvalidEfficiency
	}
	return nil
}

// IncidentalExpenses are the out-of-pocket amounts logged alongside a
// trip, in won.
type IncidentalExpenses struct {
	Parking       int64 `json:"parking"`
	Meals         int64 `json:"meals"`
	Accommodation int64 `json:"accommodation"`
	Other         int64 `json:"other"`
}

func (e IncidentalExpenses) Sum() int64 {
	return e.Parking + e.Meals + e.Accommodation + e.Other
}

func (e IncidentalExpenses) Validate() error {
	for _, v := range []int64{e.Parking, e.Meals, e.Accommodation, e.Other} {
		if v < 0 {
			return ErrNegativeAmount
		}
	}
	return nil
}

// CostBreakdown is the derived cost of a trip. Total is always the sum
// of the other fields.
type CostBreakdown struct {
	FuelCost      int64 `json:"fuelCost"`
	TollFee       int64 `json:"tollFee"`
	Parking       int64 `json:"parking"`
	Meals         int64 `json:"meals"`
	Accommodation int64 `json:"accommodation"`
	Other         int64 `json:"other"`
	Total         int64 `json:"total"`
}

// RouteInputMode distinguishes how the route of a record was produced.
type RouteInputMode string

const (
	RouteBySearch RouteInputMode = "search"
	RouteByManual RouteInputMode = "manual"
)

// RouteForm is the snapshot of the route input that produced a record,
// kept so an edit can re-open the form as it was.
type RouteForm struct {
	Mode        RouteInputMode `json:"mode"`
	Departure   string         `json:"departure,omitempty"`
	Destination string         `json:"destination,omitempty"`
}

// ExpenseRecord is one confirmed trip expense.
type ExpenseRecord struct {
	ID          string             `json:"id"`
	Date        string             `json:"date"`
	Route       RouteCandidate     `json:"route"`
	Vehicle     VehicleSelection   `json:"vehicle"`
	Incidentals IncidentalExpenses `json:"incidentals"`
	Breakdown   CostBreakdown      `json:"breakdown"`
	Form        RouteForm          `json:"form"`
	Memo        string             `json:"memo,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

func (r ExpenseRecord) Validate() error {
	if r.ID == "" {
		return ErrEmptyRecordID
	}
	if err := ValidateDate(r.Date); err != nil {
		return err
	}
	if err := r.Route.Validate(); err != nil {
		return fmt.Errorf("route: %w", err)
	}
	if err := r.Vehicle.Validate(); err != nil {
		return fmt.Errorf("vehicle: %w", err)
	}
	if err := r.Incidentals.Validate(); err != nil {
		return fmt.Errorf("incidentals: %w", err)
	}
	if r.Breakdown.Total == 0 {
		return ErrZeroTotal
	}
	return nil
}
