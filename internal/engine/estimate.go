package engine

const daysPerMonth = 30 // fixed-length month, not calendar-aware

// Estimate converts an appliance's wattage, daily hours and quantity into
// daily/monthly energy and the slab-billed monthly cost. Overrides let a
// caller try ad-hoc values without committing them to the appliance; zero
// override fields fall back to the appliance's nominal spec.
func Estimate(app Appliance, ov *Overrides, tiers []TariffTier) (ConsumptionResult, error) {
	wattage := app.Wattage
	hours := app.HoursPerDay
	quantity := app.Quantity
	if ov != nil {
		if ov.Wattage > 0 {
			wattage = ov.Wattage
		}
		if ov.HoursPerDay > 0 {
			hours = ov.HoursPerDay
		}
		if ov.Quantity > 0 {
			quantity = ov.Quantity
		}
	}
	if quantity < 1 {
		quantity = 1
	}

	dailyKWh := wattage * hours * float64(quantity) / 1000
	monthlyKWh := dailyKWh * daysPerMonth

	monthlyCost, err := ComputeBill(monthlyKWh, tiers)
	if err != nil {
		return ConsumptionResult{}, err
	}

	costPerUnit := 0.0
	if monthlyKWh > 0 {
		costPerUnit = monthlyCost / monthlyKWh
	}

	return ConsumptionResult{
		DailyKWh:    dailyKWh,
		MonthlyKWh:  monthlyKWh,
		MonthlyCost: monthlyCost,
		CostPerUnit: costPerUnit,
	}, nil
}

// ApplianceEstimate pairs an appliance with its computed consumption
type ApplianceEstimate struct {
	Appliance   Appliance         `json:"appliance"`
	Consumption ConsumptionResult `json:"consumption"`
}

// EstimateFleet estimates every appliance in the slice and accumulates the
// household totals. Overrides are keyed by appliance ID.
func EstimateFleet(apps []Appliance, overrides map[string]Overrides, tiers []TariffTier) ([]ApplianceEstimate, FleetTotals, error) {
	estimates := make([]ApplianceEstimate, 0, len(apps))
	var totals FleetTotals

	for _, app := range apps {
		var ov *Overrides
		if o, ok := overrides[app.ID]; ok {
			ov = &o
		}
		c, err := Estimate(app, ov, tiers)
		if err != nil {
			return nil, FleetTotals{}, err
		}
		estimates = append(estimates, ApplianceEstimate{Appliance: app, Consumption: c})
		totals.TotalDailyKWh += c.DailyKWh
		totals.TotalMonthlyKWh += c.MonthlyKWh
		totals.TotalMonthlyCost += c.MonthlyCost
	}

	return estimates, totals, nil
}
