package engine

import "time"

// Category groups appliances for category-specific advice
type Category string

const (
	CategoryKitchen       Category = "Kitchen"
	CategoryCooling       Category = "Cooling"
	CategoryLaundry       Category = "Laundry"
	CategoryEntertainment Category = "Entertainment"
	CategoryOffice        Category = "Office"
	CategoryBathroom      Category = "Bathroom"
	CategoryCustom        Category = "Custom"
)

// Efficiency is the coarse bucket used by the advisor rules
type Efficiency string

const (
	EfficiencyHigh   Efficiency = "High"
	EfficiencyMedium Efficiency = "Medium"
	EfficiencyLow    Efficiency = "Low"
)

// EnergyRating is the letter-grade label shown next to an appliance (A++ best,
// C worst). Advisory only; the Efficiency bucket drives the replacement rule.
type EnergyRating string

const (
	RatingAPlusPlus EnergyRating = "A++"
	RatingAPlus     EnergyRating = "A+"
	RatingA         EnergyRating = "A"
	RatingBPlus     EnergyRating = "B+"
	RatingB         EnergyRating = "B"
	RatingC         EnergyRating = "C"
)

// Appliance represents a household appliance and its nominal usage profile
type Appliance struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     Category     `json:"category"`
	Efficiency   Efficiency   `json:"efficiency"`
	EnergyRating EnergyRating `json:"energy_rating"`
	Wattage      float64      `json:"wattage"`
	HoursPerDay  float64      `json:"hours_per_day"`
	Quantity     int          `json:"quantity"`
	Selected     bool         `json:"selected"`
}

// Overrides supplies ad-hoc values for a single estimate without mutating the
// stored appliance. Zero fields fall back to the appliance's nominal spec.
type Overrides struct {
	Wattage     float64 `json:"wattage,omitempty"`
	HoursPerDay float64 `json:"hours_per_day,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
}

// ConsumptionResult is the derived energy/cost profile of one appliance
type ConsumptionResult struct {
	DailyKWh    float64 `json:"daily_kwh"`
	MonthlyKWh  float64 `json:"monthly_kwh"`
	MonthlyCost float64 `json:"monthly_cost"`
	CostPerUnit float64 `json:"cost_per_unit"`
}

// FleetTotals aggregates consumption across a set of selected appliances
type FleetTotals struct {
	TotalDailyKWh    float64 `json:"total_daily_kwh"`
	TotalMonthlyKWh  float64 `json:"total_monthly_kwh"`
	TotalMonthlyCost float64 `json:"total_monthly_cost"`
}

// HouseProfile describes one household for efficiency scoring and comparison
type HouseProfile struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Units        float64 `json:"units"`
	Price        float64 `json:"price"`
	Month        string  `json:"month"`
	Occupants    int     `json:"occupants"`
	SquareFeet   int     `json:"square_feet"`
	ApplianceAge int     `json:"appliance_age"`
	Insulation   string  `json:"insulation"`
	ACUnits      int     `json:"ac_units"`
	SolarPanels  bool    `json:"solar_panels"`
}

// Grade is a letter grade with its display color token
type Grade struct {
	Letter string `json:"letter"`
	Color  string `json:"color"`
}

// HouseScore is the scored efficiency profile of a single house
type HouseScore struct {
	HouseID              string   `json:"house_id"`
	Name                 string   `json:"name"`
	Score                int      `json:"score"`
	Grade                Grade    `json:"grade"`
	CostPerUnit          float64  `json:"cost_per_unit"`
	EstimatedConsumption float64  `json:"estimated_consumption"`
	Recommendations      []string `json:"recommendations"`
}

// Comparison summarises a set of scored houses against each other
type Comparison struct {
	Houses             []HouseScore `json:"houses"`
	TotalHouses        int          `json:"total_houses"`
	AverageEfficiency  float64      `json:"average_efficiency"`
	TotalUnits         float64      `json:"total_units"`
	TotalPrice         float64      `json:"total_price"`
	AverageCostPerUnit float64      `json:"average_cost_per_unit"`
	BestHouse          string       `json:"best_house"`
	WorstHouse         string       `json:"worst_house"`
	EfficiencyGap      int          `json:"efficiency_gap"`
	// Unitless index, not currency: sum of (100 - score) * 2 across houses
	PotentialSavingsIndex int `json:"potential_savings_index"`
}

// SeasonalAnalysis is the narrative seasonal guidance for a billing month
type SeasonalAnalysis struct {
	Season          string   `json:"season"`
	Description     string   `json:"description"`
	PeakHours       string   `json:"peak_hours"`
	OffPeakHours    string   `json:"off_peak_hours"`
	Recommendations []string `json:"recommendations"`
}

// HistoryEntry is one persisted prediction run
type HistoryEntry struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	ConsumedUnits float64   `json:"consumed_units"`
	BillPrice     float64   `json:"bill_price"`
	Prediction    string    `json:"prediction"`
}
