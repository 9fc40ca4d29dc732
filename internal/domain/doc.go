// Package domain implements the fuel-price aggregation core over the
// Argentine "Precios en surtidor" (Resolución 314/2016) open dataset.
//
// # Data Source
//
// The dataset is a CSV published at datos.energia.gob.ar listing pump prices
// reported by fuel stations nationwide. Relevant columns:
//
//	indice_tiempo     reporting period, zero-padded "YYYY-MM"; lexical
//	                  comparison therefore orders periods chronologically
//	direccion         street address of the station
//	localidad         locality name, uppercase in the source data
//	producto          free-text product name ("Nafta Súper", "GasOil Grado 2", ...)
//	tipohorario       price schedule; only "Diurno" rows are of interest
//	precio            decimal price, with either "." or "," as separator
//	idempresabandera  flag company id, compared as text (2=YPF, 4=Shell, 28=PUMA)
//	empresabandera    flag company name
//	latitud/longitud  station coordinates, kept as opaque text and used only
//	                  as the station's identity, never parsed as numbers
//
// # Product Taxonomy
//
// Free-text product names collapse into four categories via normalized
// substring matching: GAS_OIL_2, GAS_OIL_3, NAFTA_SUPER, NAFTA_PREMIUM.
// Anything else is unclassified and dropped. Normalization uppercases,
// folds accented vowels, rewrites "GASOIL" to "GAS OIL", and collapses
// whitespace, so "GasOil  Grado 2" and "GAS OIL GRADO 2" classify alike.
//
// # Price Floors
//
// Each category carries a minimum plausible price (gas oil 1600, nafta
// 1500). Rows below the floor are almost always stale or mistyped entries
// and are rejected before aggregation.
//
// # Reduction
//
// A station may report the same product across many periods. Deduplication
// keeps the newest report per (latitud, longitud, category), breaking period
// ties by the higher price. The city aggregation then takes each
// (localidad, category) group, drops stations priced more than the deviation
// threshold below the group's top price, and labels the surviving extremes
// MAX and MIN. A lone survivor is emitted under both labels.
package domain
