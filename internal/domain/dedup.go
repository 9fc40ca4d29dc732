package domain

// DeduplicateStations keeps one record per (latitude, longitude, category)
// key: the one with the greatest timeIndex, then the greatest price on the
// same period, then the first seen. Records missing coordinates or a
// timeIndex are dropped rather than pooled under an empty key.
//
// Output order follows first appearance of each key, so a fixed input set
// always reduces to the same result.
func DeduplicateStations(records []ValidatedRecord) []ValidatedRecord {
	latest := make(map[StationKey]int, len(records))
	keys := make([]StationKey, 0, len(records))

	for i, r := range records {
		if r.Latitude == "" || r.Longitude == "" || r.TimeIndex == "" {
			continue
		}
		key := StationKey{Latitude: r.Latitude, Longitude: r.Longitude, Category: r.Category}
		cur, seen := latest[key]
		if !seen {
			latest[key] = i
			keys = append(keys, key)
			continue
		}
		if newerStationRecord(r, records[cur]) {
			latest[key] = i
		}
	}

	out := make([]ValidatedRecord, 0, len(keys))
	for _, key := range keys {
		out = append(out, records[latest[key]])
	}
	return out
}

// newerStationRecord reports whether candidate should replace current:
// greater timeIndex wins (lexical compare is chronological for the
// zero-padded "YYYY-MM" format), then greater price on an equal period.
func newerStationRecord(candidate, current ValidatedRecord) bool {
	if candidate.TimeIndex != current.TimeIndex {
		return candidate.TimeIndex > current.TimeIndex
	}
	return candidate.Price > current.Price
}
