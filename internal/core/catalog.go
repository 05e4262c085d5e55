package core

// CatalogVariant is one drivetrain of a catalog model.
type CatalogVariant struct {
	FuelType   FuelType `json:"fuelType"`
	Efficiency float64  `json:"efficiency"`
}

// CatalogModel is one model of a brand, with its variants in catalog
// order. The first variant matching DefaultFuelType is the default.
type CatalogModel struct {
	Name            string           `json:"name"`
	Variants        []CatalogVariant `json:"variants"`
	DefaultFuelType FuelType         `json:"defaultFuelType"`
}

type catalogBrand struct {
	name   string
	models []CatalogModel
}

// Brands, models and variants are kept as ordered slices so listing
// endpoints return them in a stable catalog order.
var catalog = []catalogBrand{
	{name: "Hyundai", models: []CatalogModel{
		{Name: "Sonata", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{
			{FuelGasoline, 12.5}, {FuelGasoline, 18.2}, // second is the hybrid trim
		}},
		{Name: "Elantra", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{
			{FuelGasoline, 14.2}, {FuelGasoline, 19.5},
		}},
		{Name: "Kona", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{
			{FuelGasoline, 13.8}, {FuelElectric, 6.2},
		}},
		{Name: "Tucson", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 11.5}}},
		{Name: "Santa Fe", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 10.8}}},
		{Name: "Palisade", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 9.5}}},
		{Name: "Avante", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 14.5}}},
		{Name: "Grandeur", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 11.2}}},
	}},
	{name: "Kia", models: []CatalogModel{
		{Name: "K5", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{
			{FuelGasoline, 12.3}, {FuelGasoline, 17.8},
		}},
		{Name: "Sorento", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 10.5}}},
		{Name: "Sportage", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 11.8}}},
		{Name: "Telluride", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 9.2}}},
		{Name: "Carnival", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 9.8}}},
		{Name: "Seltos", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 13.2}}},
		{Name: "K3", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{
			{FuelGasoline, 14.8}, {FuelGasoline, 20.1},
		}},
		{Name: "EV6", DefaultFuelType: FuelElectric, Variants: []CatalogVariant{{FuelElectric, 5.8}}},
		{Name: "Niro", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 19.2}}},
	}},
	{name: "Genesis", models: []CatalogModel{
		{Name: "G70", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 10.5}}},
		{Name: "G80", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 9.8}}},
		{Name: "G90", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 8.5}}},
		{Name: "GV70", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 10.2}}},
		{Name: "GV80", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 9.5}}},
		{Name: "GV90", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 8.8}}},
	}},
	{name: "SsangYong", models: []CatalogModel{
		{Name: "Rexton", DefaultFuelType: FuelDiesel, Variants: []CatalogVariant{{FuelDiesel, 9.2}}},
		{Name: "Tivoli", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 12.5}}},
		{Name: "Korando", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 11.8}}},
	}},
	{name: "Renault", models: []CatalogModel{
		{Name: "SM6", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 12.0}}},
		{Name: "QM6", DefaultFuelType: FuelGasoline, Variants: []CatalogVariant{{FuelGasoline, 10.5}}},
	}},
}

// Brands lists every brand in catalog order.
func Brands() []string {
	out := make([]string, 0, len(catalog))
	for _, b := range catalog {
		out = append(out, b.name)
	}
	return out
}

// Models lists the model names of a brand, or an empty slice for an
// unknown brand.
func Models(brand string) []string {
	for _, b := range catalog {
		if b.name == brand {
			out := make([]string, 0, len(b.models))
			for _, m := range b.models {
				out = append(out, m.Name)
			}
			return out
		}
	}
	return []string{}
}

// Variants lists the drivetrains of a model, or an empty slice when
// brand or model is unknown.
func Variants(brand, model string) []CatalogVariant {
	m, ok := lookupModel(brand, model)
	if !ok {
		return []CatalogVariant{}
	}
	return append([]CatalogVariant(nil), m.Variants...)
}

// FuelTypes lists the distinct fuel types of a model in variant order.
func FuelTypes(brand, model string) []FuelType {
	m, ok := lookupModel(brand, model)
	if !ok {
		return []FuelType{}
	}
	seen := make(map[FuelType]bool, len(m.Variants))
	out := make([]FuelType, 0, len(m.Variants))
	for _, v := range m.Variants {
		if !seen[v.FuelType] {
			seen[v.FuelType] = true
			out = append(out, v.FuelType)
		}
	}
	return out
}

// ResolveVehicle finds the catalog variant for a brand, model and fuel
// type and returns it as a selection. An empty fuel type picks the
// model's default; a fuel type with no matching variant falls back to
// the first variant. ok is false when brand or model is unknown.
func ResolveVehicle(brand, model string, fuel FuelType) (sel VehicleSelection, ok bool) {
	m, found := lookupModel(brand, model)
	if !found || len(m.Variants) == 0 {
		return VehicleSelection{}, false
	}
	want := fuel
	if want == "" {
		want = m.DefaultFuelType
	}
	chosen := m.Variants[0]
	for _, v := range m.Variants {
		if v.FuelType == want {
			chosen = v
			break
		}
	}
	return VehicleSelection{
		Brand:              brand,
		Model:              model,
		EfficiencyKmPerLtr: chosen.Efficiency,
		FuelType:           chosen.FuelType,
	}, true
}

func lookupModel(brand, model string) (CatalogModel, bool) {
	for _, b := range catalog {
		if b.name != brand {
			continue
		}
		for _, m := range b.models {
			if m.Name == model {
				return m, true
			}
		}
	}
	return CatalogModel{}, false
}
