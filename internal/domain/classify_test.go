package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyProduct(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		expected Category
	}{
		{"gas oil grado 2", "Gas Oil Grado 2", CategoryGasOil2},
		{"gasoil joined grado 2", "GasOil Grado 2", CategoryGasOil2},
		{"gas oil grado 3", "GAS OIL GRADO 3", CategoryGasOil3},
		{"ultra gasoil grado 3", "Ultra GasOil Grado 3", CategoryGasOil3},
		{"nafta super", "Nafta Super", CategoryNaftaSuper},
		{"nafta super accented", "Nafta Súper", CategoryNaftaSuper},
		{"nafta premium", "nafta premium", CategoryNaftaPremium},
		{"nafta infinia premium", "Nafta Infinia Premium", CategoryNaftaPremium},
		{"plain nafta unclassified", "Nafta", CategoryUnknown},
		{"gas oil without grade", "Gas Oil", CategoryUnknown},
		{"gnc unclassified", "GNC", CategoryUnknown},
		{"kerosene unclassified", "Kerosene", CategoryUnknown},
		{"empty string", "", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyProduct(tt.product))
		})
	}
}

func TestClassifyProduct_Stable(t *testing.T) {
	for range 3 {
		assert.Equal(t, CategoryNaftaSuper, ClassifyProduct("Nafta Súper"))
	}
}
