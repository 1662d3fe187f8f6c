// Package publish turns a finished layout into a publication: the lot's
// metadata together with one {label, x, y, rotation} record per spot.
//
// Lot metadata is read from a TOML or YAML file with [LoadLot]:
//
//	name = "Harbour Street"
//	address = "12 Harbour St, Kiel"
//	latitude = 54.3233
//	longitude = 10.1228
//	price_per_hour = 2.5
//
// [Build] validates the metadata, refuses layouts that still have spots outside
// the canvas, and assigns a fresh publication id. Storing the result is the
// job of package store.
package publish
