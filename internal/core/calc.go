package core

import "math"

// Flat tariff applied to electric vehicles regardless of their listed
// efficiency: 0.2 kWh per km at 150 won per kWh.
const (
	electricKWhPerKm  = 0.2
	electricWonPerKWh = 150
)

// roundWon rounds half away from zero, matching how the rest of the
// pipeline rounds won amounts.
func roundWon(v float64) int64 {
	return int64(math.Round(v))
}

// FuelCost computes the fuel cost of a trip in won. pricePerLiter is
// ignored for electric vehicles, which use a flat tariff.
func FuelCost(distanceKm float64, vehicle VehicleSelection, pricePerLiter int64) int64 {
	if distanceKm <= 0 {
		return 0
	}
	if vehicle.FuelType == FuelElectric {
		return roundWon(distanceKm * electricKWhPerKm * electricWonPerKWh)
	}
	if vehicle.EfficiencyKmPerLtr <= 0 || pricePerLiter <= 0 {
		return 0
	}
	liters := distanceKm / vehicle.EfficiencyKmPerLtr
	return roundWon(liters * float64(pricePerLiter))
}

// TotalCost derives the full breakdown for a trip. The returned Total
// is the sum of every other field.
func TotalCost(route RouteCandidate, vehicle VehicleSelection, pricePerLiter int64, inc IncidentalExpenses) CostBreakdown {
	b := CostBreakdown{
		FuelCost:      FuelCost(route.DistanceKm, vehicle, pricePerLiter),
		TollFee:       route.TollFeeWon,
		Parking:       inc.Parking,
		Meals:         inc.Meals,
		Accommodation: inc.Accommodation,
		Other:         inc.Other,
	}
	b.Total = b.FuelCost + b.TollFee + b.Parking + b.Meals + b.Accommodation + b.Other
	return b
}
