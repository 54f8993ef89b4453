// Package hydration turns a day's drink events into effective volume,
// caffeine, circadian distribution, quality grades, warnings and insights.
// Everything here is a pure function of its arguments.
package hydration

import "github.com/limbo/drip/pkg/entity"

// Drink is a catalog entry. CaffeinePerMl is in mg per ml.
type Drink struct {
	Kind            entity.DrinkKind `json:"kind"`
	Name            string           `json:"name"`
	HydrationFactor float64          `json:"hydration_factor"`
	CaffeinePerMl   float64          `json:"caffeine_per_ml"`
}

// Unknown is returned by Lookup for kinds outside the catalog: counted as
// water for hydration and as caffeine free.
var Unknown = Drink{
	Name:            "Unknown",
	HydrationFactor: 1.0,
	CaffeinePerMl:   0,
}

var kinds = []entity.DrinkKind{
	entity.DrinkWater,
	entity.DrinkTea,
	entity.DrinkCoffee,
	entity.DrinkSoda,
	entity.DrinkJuice,
	entity.DrinkEnergy,
}

var catalog = map[entity.DrinkKind]Drink{
	entity.DrinkWater:  {Kind: entity.DrinkWater, Name: "Water", HydrationFactor: 1.0, CaffeinePerMl: 0},
	entity.DrinkTea:    {Kind: entity.DrinkTea, Name: "Tea", HydrationFactor: 0.95, CaffeinePerMl: 0.2},
	entity.DrinkCoffee: {Kind: entity.DrinkCoffee, Name: "Coffee", HydrationFactor: 0.85, CaffeinePerMl: 0.4},
	entity.DrinkSoda:   {Kind: entity.DrinkSoda, Name: "Soda", HydrationFactor: 0.9, CaffeinePerMl: 0.1},
	entity.DrinkJuice:  {Kind: entity.DrinkJuice, Name: "Juice", HydrationFactor: 1.0, CaffeinePerMl: 0},
	entity.DrinkEnergy: {Kind: entity.DrinkEnergy, Name: "Energy", HydrationFactor: 0.85, CaffeinePerMl: 0.32},
}

// Lookup returns the catalog entry for kind, or Unknown.
func Lookup(kind entity.DrinkKind) Drink {
	if d, ok := catalog[kind]; ok {
		return d
	}
	return Unknown
}

func Known(kind entity.DrinkKind) bool {
	_, ok := catalog[kind]
	return ok
}

// Catalog lists all known drinks in display order.
func Catalog() []Drink {
	result := make([]Drink, 0, len(kinds))
	for _, k := range kinds {
		result = append(result, catalog[k])
	}
	return result
}
