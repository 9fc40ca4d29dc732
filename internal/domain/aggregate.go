package domain

// cityKey groups deduplicated station records for the MIN/MAX reduction.
type cityKey struct {
	City     string
	Category Category
}

// AggregateCities reduces station records to at most two rows per
// (city, category): the highest price, and the lowest price among stations
// within maxDeviation of the group's top price. Stations further below the
// ceiling are treated as data anomalies and excluded from the MIN slot.
// When a single record survives it is emitted under both labels.
//
// Records with an empty city or category are excluded from grouping.
func AggregateCities(records []ValidatedRecord, maxDeviation float64) []FinalRow {
	groups := make(map[cityKey][]ValidatedRecord)
	var order []cityKey

	for _, r := range records {
		if r.City == "" || r.Category == CategoryUnknown {
			continue
		}
		key := cityKey{City: r.City, Category: r.Category}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	rows := make([]FinalRow, 0, 2*len(order))
	for _, key := range order {
		group := groups[key]

		maxPrice := group[0].Price
		for _, r := range group[1:] {
			if r.Price > maxPrice {
				maxPrice = r.Price
			}
		}

		candidates := make([]ValidatedRecord, 0, len(group))
		for _, r := range group {
			if r.Price >= maxPrice-maxDeviation {
				candidates = append(candidates, r)
			}
		}
		// The max itself always qualifies; fall back to the whole group if
		// that invariant is ever broken.
		if len(candidates) == 0 {
			candidates = group
		}

		maxRow := candidates[0]
		minRow := candidates[0]
		for _, r := range candidates[1:] {
			if outranks(r, maxRow, true) {
				maxRow = r
			}
			if outranks(r, minRow, false) {
				minRow = r
			}
		}

		rows = append(rows,
			FinalRow{Label: LabelMax, ValidatedRecord: maxRow},
			FinalRow{Label: LabelMin, ValidatedRecord: minRow},
		)
	}
	return rows
}

// outranks reports whether candidate beats current for the MAX slot
// (wantMax) or the MIN slot. Equal prices fall to the lexically smaller
// (companyId, address, latitude, longitude) tuple so the outcome never
// depends on input row order.
func outranks(candidate, current ValidatedRecord, wantMax bool) bool {
	if candidate.Price != current.Price {
		if wantMax {
			return candidate.Price > current.Price
		}
		return candidate.Price < current.Price
	}
	return stationOrderKey(candidate) < stationOrderKey(current)
}

func stationOrderKey(r ValidatedRecord) string {
	return r.CompanyID + "|" + r.Address + "|" + r.Latitude + "|" + r.Longitude
}
