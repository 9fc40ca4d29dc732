package domain

import (
	"strconv"
	"strings"
)

// RejectReason says why the row filter dropped a record. Values double as
// metrics labels.
type RejectReason string

const (
	RejectLocality RejectReason = "locality"
	RejectSchedule RejectReason = "schedule"
	RejectCompany  RejectReason = "company"
	RejectProduct  RejectReason = "product"
	RejectPrice    RejectReason = "price"
)

// daytimeSchedule is the only tipohorario retained, spelled exactly as the
// upstream dataset does.
const daytimeSchedule = "Diurno"

// FilterRow applies the locality, schedule, company, product, and minimum
// price predicates to a raw row. It returns the validated record, or the
// rejection reason with ok=false. Malformed fields are rejections, never
// errors; each row is judged independently.
func FilterRow(row RawRecord, rules Rules) (ValidatedRecord, RejectReason, bool) {
	city := row[FieldLocality]
	if city == "" || !rules.Localities[city] {
		return ValidatedRecord{}, RejectLocality, false
	}
	if row[FieldSchedule] != daytimeSchedule {
		return ValidatedRecord{}, RejectSchedule, false
	}
	if !rules.CompanyIDs[row[FieldCompanyID]] {
		return ValidatedRecord{}, RejectCompany, false
	}

	product := row[FieldProduct]
	category := ClassifyProduct(product)
	if category == CategoryUnknown {
		return ValidatedRecord{}, RejectProduct, false
	}

	price, ok := parsePrice(row[FieldPrice])
	if !ok || price < minPrice[category] {
		return ValidatedRecord{}, RejectPrice, false
	}

	return ValidatedRecord{
		TimeIndex:   row[FieldTimeIndex],
		Address:     row[FieldAddress],
		City:        city,
		Product:     product,
		Category:    category,
		Price:       price,
		PriceText:   strconv.FormatFloat(price, 'f', 2, 64),
		CompanyID:   row[FieldCompanyID],
		CompanyName: row[FieldCompanyName],
		Latitude:    row[FieldLatitude],
		Longitude:   row[FieldLongitude],
	}, "", true
}

// parsePrice parses a decimal price accepting both "." and "," as the
// decimal separator.
func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
