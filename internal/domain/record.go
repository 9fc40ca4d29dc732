package domain

// Category identifies one of the recognized fuel products.
type Category string

const (
	CategoryGasOil2      Category = "GAS_OIL_2"
	CategoryGasOil3      Category = "GAS_OIL_3"
	CategoryNaftaSuper   Category = "NAFTA_SUPER"
	CategoryNaftaPremium Category = "NAFTA_PREMIUM"

	// CategoryUnknown marks products outside the taxonomy. Rows carrying it
	// never survive the row filter.
	CategoryUnknown Category = ""
)

// minPrice is the plausibility floor per category. Prices below the floor
// are rejected as stale or mistyped entries.
var minPrice = map[Category]float64{
	CategoryGasOil2:      1600,
	CategoryGasOil3:      1600,
	CategoryNaftaSuper:   1500,
	CategoryNaftaPremium: 1500,
}

// Column names of the upstream dataset.
const (
	FieldTimeIndex   = "indice_tiempo"
	FieldAddress     = "direccion"
	FieldLocality    = "localidad"
	FieldProduct     = "producto"
	FieldSchedule    = "tipohorario"
	FieldPrice       = "precio"
	FieldCompanyID   = "idempresabandera"
	FieldCompanyName = "empresabandera"
	FieldLatitude    = "latitud"
	FieldLongitude   = "longitud"
)

// RawRecord is one CSV row as a field→value mapping. Fields may be missing
// or malformed; the row filter decides what survives.
type RawRecord map[string]string

// Rules holds the fixed filtering configuration: which localities and flag
// companies are of interest, and how far below a city's top price a station
// may sit before it is treated as an outlier.
type Rules struct {
	Localities   map[string]bool
	CompanyIDs   map[string]bool
	MaxDeviation float64
}

// ValidatedRecord is a row that passed every filter predicate. It always
// carries a real category and a price at or above that category's floor.
type ValidatedRecord struct {
	TimeIndex   string
	Address     string
	City        string
	Product     string // original product text from the CSV
	Category    Category
	Price       float64
	PriceText   string // two-decimal rendering written to the report
	CompanyID   string
	CompanyName string
	Latitude    string
	Longitude   string
}

// StationKey identifies one pump-product pair. The coordinate pair stands in
// as the station's location identity.
type StationKey struct {
	Latitude  string
	Longitude string
	Category  Category
}

// Label marks a final row as its group's maximum or minimum price.
type Label string

const (
	LabelMax Label = "MAX"
	LabelMin Label = "MIN"
)

// FinalRow is a deduplicated station record chosen as the MAX or MIN price
// within its (city, category) group.
type FinalRow struct {
	Label Label
	ValidatedRecord
}
