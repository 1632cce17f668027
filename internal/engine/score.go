package engine

import "math"

var summerMonths = map[string]bool{
	"May": true, "June": true, "July": true, "August": true, "September": true,
}

var winterMonths = map[string]bool{
	"November": true, "December": true, "January": true, "February": true,
}

// ScoreHouse computes the 0-100 efficiency score for a household profile.
// Scoring starts at a base of 50 and applies seasonal, solar, AC-count and
// cost-per-unit adjustments before clamping to [0, 100].
func ScoreHouse(h HouseProfile) HouseScore {
	score := 50

	if summerMonths[h.Month] {
		score += 10
	} else if winterMonths[h.Month] {
		score -= 5
	}

	if h.SolarPanels {
		score += 25
	}

	switch {
	case h.ACUnits <= 1:
		score += 10
	case h.ACUnits <= 2:
		score += 5
	default:
		score -= 15
	}

	costPerUnit := 0.0
	if h.Units > 0 {
		costPerUnit = h.Price / h.Units
	}
	switch {
	case costPerUnit <= 5:
		score += 15
	case costPerUnit <= 7:
		score += 10
	case costPerUnit <= 10:
		score += 5
	default:
		score -= 10
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return HouseScore{
		HouseID:              h.ID,
		Name:                 h.Name,
		Score:                score,
		Grade:                GradeFor(score),
		CostPerUnit:          round2(costPerUnit),
		EstimatedConsumption: EstimateHouseConsumption(h),
		Recommendations:      HouseRecommendations(h, score),
	}
}

// GradeFor maps a score to its letter grade and display color token
func GradeFor(score int) Grade {
	switch {
	case score >= 90:
		return Grade{Letter: "A+", Color: "green"}
	case score >= 80:
		return Grade{Letter: "A", Color: "green"}
	case score >= 70:
		return Grade{Letter: "B", Color: "blue"}
	case score >= 60:
		return Grade{Letter: "C", Color: "yellow"}
	case score >= 50:
		return Grade{Letter: "D", Color: "orange"}
	default:
		return Grade{Letter: "F", Color: "red"}
	}
}

// HouseRecommendations returns the threshold-triggered guidance for a house
// plus two always-on tips.
func HouseRecommendations(h HouseProfile, score int) []string {
	var recs []string

	if score < 70 {
		recs = append(recs,
			"Consider upgrading to energy-efficient appliances",
			"Focus on reducing AC usage during peak hours")
	}
	if !h.SolarPanels && score < 80 {
		recs = append(recs, "Install solar panels to reduce energy costs")
	}
	if h.ACUnits > 2 {
		recs = append(recs, "Consider reducing AC units or using smart thermostats")
	}

	recs = append(recs,
		"Use programmable thermostats for better control",
		"Regular maintenance of HVAC systems")

	return recs
}

// EstimateHouseConsumption is a rough monthly kWh estimate for a house:
// a 300 kWh base adjusted for season, AC count and solar, floored at 100.
func EstimateHouseConsumption(h HouseProfile) float64 {
	base := 300.0

	seasonal := 1.0
	if summerMonths[h.Month] {
		seasonal = 1.3
	} else if winterMonths[h.Month] {
		seasonal = 0.8
	}

	acLoad := float64(h.ACUnits) * 80
	solarOffset := 0.0
	if h.SolarPanels {
		solarOffset = -80
	}

	return math.Max(100, math.Round((base+acLoad+solarOffset)*seasonal))
}

// CompareHouses scores each profile and summarises the set: best and worst
// house, the efficiency gap between them, and the aggregate potential-savings
// index (sum of (100 - score) * 2, a unitless heuristic rather than currency).
func CompareHouses(profiles []HouseProfile) Comparison {
	cmp := Comparison{TotalHouses: len(profiles)}
	if len(profiles) == 0 {
		return cmp
	}

	var scoreSum, cpuSum float64
	best, worst := 0, 0

	for i, p := range profiles {
		hs := ScoreHouse(p)
		cmp.Houses = append(cmp.Houses, hs)

		scoreSum += float64(hs.Score)
		cpuSum += hs.CostPerUnit
		cmp.TotalUnits += p.Units
		cmp.TotalPrice += p.Price
		cmp.PotentialSavingsIndex += (100 - hs.Score) * 2

		if hs.Score > cmp.Houses[best].Score {
			best = i
		}
		if hs.Score < cmp.Houses[worst].Score {
			worst = i
		}
	}

	cmp.AverageEfficiency = round2(scoreSum / float64(len(profiles)))
	cmp.AverageCostPerUnit = round2(cpuSum / float64(len(profiles)))
	cmp.BestHouse = houseLabel(cmp.Houses[best])
	cmp.WorstHouse = houseLabel(cmp.Houses[worst])
	cmp.EfficiencyGap = cmp.Houses[best].Score - cmp.Houses[worst].Score

	return cmp
}

func houseLabel(hs HouseScore) string {
	if hs.Name != "" {
		return hs.Name
	}
	return "House " + hs.HouseID
}

// SeasonForMonth returns the narrative seasonal guidance for a billing month
func SeasonForMonth(month string) SeasonalAnalysis {
	switch {
	case summerMonths[month]:
		return SeasonalAnalysis{
			Season:       "Summer",
			Description:  "High energy consumption due to AC usage",
			PeakHours:    "2:00 PM - 6:00 PM",
			OffPeakHours: "10:00 PM - 6:00 AM",
			Recommendations: []string{
				"Use AC during off-peak hours (10 PM - 6 AM)",
				"Set AC temperature to 24-26 C for optimal efficiency",
				"Use ceiling fans to reduce AC dependency",
				"Close curtains during peak sun hours",
			},
		}
	case winterMonths[month]:
		return SeasonalAnalysis{
			Season:       "Winter",
			Description:  "Lower energy consumption, heating needs",
			PeakHours:    "6:00 PM - 10:00 PM",
			OffPeakHours: "12:00 AM - 6:00 AM",
			Recommendations: []string{
				"Use heaters during off-peak hours",
				"Improve insulation to retain heat",
				"Use energy-efficient space heaters",
				"Seal windows and doors properly",
			},
		}
	default:
		return SeasonalAnalysis{
			Season:       "Spring/Autumn",
			Description:  "Moderate energy consumption",
			PeakHours:    "6:00 PM - 9:00 PM",
			OffPeakHours: "11:00 PM - 6:00 AM",
			Recommendations: []string{
				"Natural ventilation when possible",
				"Use fans instead of AC",
				"Optimal temperature settings",
				"Regular appliance maintenance",
			},
		}
	}
}
