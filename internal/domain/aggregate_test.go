package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cityRecord(city string, cat Category, price float64, companyID string) ValidatedRecord {
	return ValidatedRecord{
		TimeIndex: "2024-05",
		City:      city,
		Category:  cat,
		Price:     price,
		CompanyID: companyID,
		Latitude:  "-27.1",
		Longitude: "-58.1",
	}
}

func findRow(t *testing.T, rows []FinalRow, label Label) FinalRow {
	t.Helper()
	for _, r := range rows {
		if r.Label == label {
			return r
		}
	}
	t.Fatalf("no %s row found", label)
	return FinalRow{}
}

func TestAggregateCities_OutlierExcludedFromMin(t *testing.T) {
	records := []ValidatedRecord{
		cityRecord("CORRIENTES", CategoryGasOil2, 1000, "2"),
		cityRecord("CORRIENTES", CategoryGasOil2, 1500, "4"),
		cityRecord("CORRIENTES", CategoryGasOil2, 1600, "28"),
	}

	rows := AggregateCities(records, 150)

	require.Len(t, rows, 2)
	assert.Equal(t, 1600.0, findRow(t, rows, LabelMax).Price)
	assert.Equal(t, 1500.0, findRow(t, rows, LabelMin).Price)
}

func TestAggregateCities_SingletonGroupEmitsBothLabels(t *testing.T) {
	records := []ValidatedRecord{
		cityRecord("CORRIENTES", CategoryNaftaSuper, 1550, "2"),
	}

	rows := AggregateCities(records, 150)

	require.Len(t, rows, 2)
	maxRow := findRow(t, rows, LabelMax)
	minRow := findRow(t, rows, LabelMin)
	assert.Equal(t, maxRow.ValidatedRecord, minRow.ValidatedRecord)
}

func TestAggregateCities_AllWithinDeviation(t *testing.T) {
	records := []ValidatedRecord{
		cityRecord("CORRIENTES", CategoryNaftaSuper, 1550, "2"),
		cityRecord("CORRIENTES", CategoryNaftaSuper, 1520, "4"),
	}

	rows := AggregateCities(records, 150)

	require.Len(t, rows, 2)
	assert.Equal(t, 1550.0, findRow(t, rows, LabelMax).Price)
	assert.Equal(t, 1520.0, findRow(t, rows, LabelMin).Price)
}

func TestAggregateCities_GroupsAreIndependent(t *testing.T) {
	records := []ValidatedRecord{
		cityRecord("CORRIENTES", CategoryNaftaSuper, 1550, "2"),
		cityRecord("CORRIENTES", CategoryGasOil2, 1650, "2"),
		cityRecord("PASO DE LOS LIBRES", CategoryNaftaSuper, 1540, "4"),
	}

	rows := AggregateCities(records, 150)

	// Two labels per (city, category) group.
	assert.Len(t, rows, 6)
}

func TestAggregateCities_EqualPriceTieIsDeterministic(t *testing.T) {
	a := cityRecord("CORRIENTES", CategoryNaftaSuper, 1550, "4")
	b := cityRecord("CORRIENTES", CategoryNaftaSuper, 1550, "2")

	for _, input := range [][]ValidatedRecord{{a, b}, {b, a}} {
		rows := AggregateCities(input, 150)

		require.Len(t, rows, 2)
		// Lexically smallest company id wins either slot regardless of order.
		assert.Equal(t, "2", findRow(t, rows, LabelMax).CompanyID)
		assert.Equal(t, "2", findRow(t, rows, LabelMin).CompanyID)
	}
}

func TestAggregateCities_ExcludesIncompleteRecords(t *testing.T) {
	noCity := cityRecord("", CategoryNaftaSuper, 1550, "2")
	noCategory := cityRecord("CORRIENTES", CategoryUnknown, 1550, "2")

	rows := AggregateCities([]ValidatedRecord{noCity, noCategory}, 150)

	assert.Empty(t, rows)
}

func TestAggregateCities_EmptyInput(t *testing.T) {
	assert.Empty(t, AggregateCities(nil, 150))
}
