package engine

import (
	"fmt"
	"math"
	"strings"
)

// Thresholds for the heuristic advisor rules, in kWh/month and PKR/month.
const (
	highConsumptionKWh = 200
	highCostPKR        = 1000
	fleetHighKWh       = 500
	fleetModerateKWh   = 300
	fleetHighCostPKR   = 5000
	priorityKWh        = 100
	solarWorthwhilePKR = 3000
	savingsFraction    = 0.25
	offPeakWindow      = "10 PM - 6 AM"
)

// Analyze inspects one appliance's consumption profile and returns an ordered
// list of recommendations, most severe first. Multiple rules may fire; the
// generic off-peak tip is always appended last.
func Analyze(app Appliance, c ConsumptionResult) []string {
	var recs []string

	if c.MonthlyKWh > highConsumptionKWh {
		recs = append(recs,
			fmt.Sprintf("HIGH CONSUMPTION: %s is consuming %.1f kWh/month", app.Name, c.MonthlyKWh),
			"Consider reducing usage or upgrading to an energy-efficient model")
	}

	if c.MonthlyCost > highCostPKR {
		recs = append(recs,
			fmt.Sprintf("HIGH COST: Monthly bill for %s is PKR %.0f", app.Name, c.MonthlyCost),
			"This appliance contributes significantly to your electricity bill")
	}

	recs = append(recs, categoryTips(app)...)

	if app.Efficiency == EfficiencyLow {
		recs = append(recs,
			fmt.Sprintf("LOW EFFICIENCY: Consider replacing %s with an energy-efficient model", app.Name),
			"Look for appliances with an A++ or A+ energy rating")
	}

	recs = append(recs, fmt.Sprintf("Use %s during off-peak hours (%s) for lower rates", app.Name, offPeakWindow))

	return recs
}

func categoryTips(app Appliance) []string {
	switch app.Category {
	case CategoryCooling:
		if strings.Contains(app.Name, "Air Conditioner") {
			return []string{
				"AC tips: set temperature to 24-26 C for optimal efficiency",
				fmt.Sprintf("Use during off-peak hours (%s) to save money", offPeakWindow),
				"Clean AC filters monthly for better performance",
			}
		}
		return []string{
			"A fan is an energy-efficient alternative to AC",
			"Use ceiling fans to circulate air effectively",
		}
	case CategoryKitchen:
		if strings.Contains(app.Name, "Refrigerator") {
			return []string{
				"Fridge tips: keep temperature at 2-4 C",
				"Don't leave the door open, defrost regularly",
				"Place away from heat sources",
			}
		}
		if strings.Contains(app.Name, "Microwave") {
			return []string{
				"A microwave is more efficient than an oven for small items",
				"Use the timer to avoid overcooking",
			}
		}
	case CategoryLaundry:
		if strings.Contains(app.Name, "Washing Machine") {
			return []string{
				"Wash full loads to maximize efficiency",
				"Use cold water when possible",
				"Use eco-mode for energy savings",
			}
		}
	}
	return nil
}

// AnalyzeFleet produces household-level recommendations for the selected
// appliances: the overall consumption banner, cost and off-peak guidance,
// the list of priority (>100 kWh/month) appliances, and a solar suggestion
// once the bill is large enough to make the payback period plausible.
func AnalyzeFleet(estimates []ApplianceEstimate, totals FleetTotals) []string {
	var recs []string

	switch {
	case totals.TotalMonthlyKWh > fleetHighKWh:
		recs = append(recs,
			fmt.Sprintf("HIGH OVERALL CONSUMPTION: %.1f kWh/month", totals.TotalMonthlyKWh),
			"Your total consumption is above average - immediate action needed")
	case totals.TotalMonthlyKWh > fleetModerateKWh:
		recs = append(recs,
			fmt.Sprintf("MODERATE CONSUMPTION: %.1f kWh/month", totals.TotalMonthlyKWh),
			"Room for improvement in energy efficiency")
	default:
		recs = append(recs,
			fmt.Sprintf("GOOD CONSUMPTION: %.1f kWh/month", totals.TotalMonthlyKWh),
			"You're managing energy well!")
	}

	if totals.TotalMonthlyCost > fleetHighCostPKR {
		recs = append(recs,
			fmt.Sprintf("HIGH MONTHLY COST: PKR %.0f", totals.TotalMonthlyCost),
			"Focus on high-consumption appliances first")
	}

	recs = append(recs,
		fmt.Sprintf("OFF-PEAK STRATEGY: Use high-wattage appliances during %s", offPeakWindow),
		"This can save 20-30% on your electricity bill")

	var priority []ApplianceEstimate
	for _, e := range estimates {
		if e.Consumption.MonthlyKWh > priorityKWh {
			priority = append(priority, e)
		}
	}
	if len(priority) > 0 {
		recs = append(recs, "PRIORITY APPLIANCES: Focus on these high-consumption items:")
		for _, e := range priority {
			recs = append(recs, fmt.Sprintf("  %s: %.1f kWh/month", e.Appliance.Name, e.Consumption.MonthlyKWh))
		}
	}

	if totals.TotalMonthlyCost > solarWorthwhilePKR {
		recs = append(recs, fmt.Sprintf(
			"SOLAR CONSIDERATION: With monthly costs of PKR %.0f, solar panels could pay for themselves in 3-5 years",
			totals.TotalMonthlyCost))
	}

	return recs
}

// PotentialSavings is the crude household savings estimate: a flat 25% of
// the total monthly cost, rounded to whole rupees.
func PotentialSavings(totalMonthlyCost float64) float64 {
	return math.Round(totalMonthlyCost * savingsFraction)
}

// OffPeakRecommendations is the fixed list of general saving tips shown
// alongside any bill analysis.
func OffPeakRecommendations() []string {
	return []string{
		fmt.Sprintf("Use heavy appliances during off-peak hours (%s)", offPeakWindow),
		"Set AC temperature to 26 C for optimal efficiency",
		"Unplug chargers when not in use",
		"Use LED bulbs instead of incandescent",
		"Regular maintenance of AC filters",
	}
}
