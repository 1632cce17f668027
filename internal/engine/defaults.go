package engine

// DefaultAppliances is the catalog seeded on first run: the twelve common
// household appliances with their nominal wattage and daily usage.
func DefaultAppliances() []Appliance {
	return []Appliance{
		{ID: "refrigerator", Name: "Refrigerator", Category: CategoryKitchen, Efficiency: EfficiencyHigh, EnergyRating: RatingAPlusPlus, Wattage: 150, HoursPerDay: 24, Quantity: 1},
		{ID: "air-conditioner", Name: "Air Conditioner", Category: CategoryCooling, Efficiency: EfficiencyMedium, EnergyRating: RatingB, Wattage: 1500, HoursPerDay: 8, Quantity: 1},
		{ID: "washing-machine", Name: "Washing Machine", Category: CategoryLaundry, Efficiency: EfficiencyHigh, EnergyRating: RatingAPlus, Wattage: 500, HoursPerDay: 2, Quantity: 1},
		{ID: "microwave", Name: "Microwave", Category: CategoryKitchen, Efficiency: EfficiencyHigh, EnergyRating: RatingA, Wattage: 1000, HoursPerDay: 1, Quantity: 1},
		{ID: "television", Name: "Television", Category: CategoryEntertainment, Efficiency: EfficiencyMedium, EnergyRating: RatingBPlus, Wattage: 200, HoursPerDay: 6, Quantity: 1},
		{ID: "computer", Name: "Computer", Category: CategoryOffice, Efficiency: EfficiencyMedium, EnergyRating: RatingB, Wattage: 300, HoursPerDay: 8, Quantity: 1},
		{ID: "water-heater", Name: "Water Heater", Category: CategoryBathroom, Efficiency: EfficiencyLow, EnergyRating: RatingC, Wattage: 2000, HoursPerDay: 2, Quantity: 1},
		{ID: "dishwasher", Name: "Dishwasher", Category: CategoryKitchen, Efficiency: EfficiencyHigh, EnergyRating: RatingA, Wattage: 1800, HoursPerDay: 1, Quantity: 1},
		{ID: "dryer", Name: "Dryer", Category: CategoryLaundry, Efficiency: EfficiencyLow, EnergyRating: RatingC, Wattage: 3000, HoursPerDay: 1, Quantity: 1},
		{ID: "oven", Name: "Oven", Category: CategoryKitchen, Efficiency: EfficiencyMedium, EnergyRating: RatingB, Wattage: 2400, HoursPerDay: 2, Quantity: 1},
		{ID: "blender", Name: "Blender", Category: CategoryKitchen, Efficiency: EfficiencyHigh, EnergyRating: RatingAPlus, Wattage: 300, HoursPerDay: 0.5, Quantity: 1},
		{ID: "fan", Name: "Fan", Category: CategoryCooling, Efficiency: EfficiencyHigh, EnergyRating: RatingAPlusPlus, Wattage: 75, HoursPerDay: 12, Quantity: 1},
	}
}
