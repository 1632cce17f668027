package engine

import (
	"strings"
	"testing"
)

func TestScoreHouse(t *testing.T) {
	tests := []struct {
		name      string
		house     HouseProfile
		wantScore int
		wantGrade string
	}{
		{
			name: "solar summer house clamps to 100",
			// 50 +10 summer +25 solar +10 single AC +10 cost/unit 6.67
			house:     HouseProfile{Month: "June", ACUnits: 1, SolarPanels: true, Units: 300, Price: 2000},
			wantScore: 100,
			wantGrade: "A+",
		},
		{
			name: "winter house with many ACs",
			// 50 -5 winter -15 three ACs -10 cost/unit 12
			house:     HouseProfile{Month: "December", ACUnits: 3, SolarPanels: false, Units: 250, Price: 3000},
			wantScore: 20,
			wantGrade: "F",
		},
		{
			name: "shoulder month average house",
			// 50 +5 two ACs +5 cost/unit 8
			house:     HouseProfile{Month: "March", ACUnits: 2, SolarPanels: false, Units: 250, Price: 2000},
			wantScore: 60,
			wantGrade: "C",
		},
		{
			name: "very cheap power",
			// 50 +10 single AC +15 cost/unit 4
			house:     HouseProfile{Month: "October", ACUnits: 1, SolarPanels: false, Units: 500, Price: 2000},
			wantScore: 75,
			wantGrade: "B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreHouse(tt.house)
			if got.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.Grade.Letter != tt.wantGrade {
				t.Errorf("Grade = %q, want %q", got.Grade.Letter, tt.wantGrade)
			}
		})
	}
}

func TestScoreHouseZeroUnits(t *testing.T) {
	// Zero units must not divide by zero; cost/unit 0 counts as very efficient
	got := ScoreHouse(HouseProfile{Month: "June", ACUnits: 1, Units: 0, Price: 2000})
	if got.CostPerUnit != 0 {
		t.Errorf("CostPerUnit = %.2f, want 0", got.CostPerUnit)
	}
	if got.Score != 85 { // 50 +10 summer +10 AC +15 cheapest bucket
		t.Errorf("Score = %d, want 85", got.Score)
	}
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{95, "A+"}, {90, "A+"}, {85, "A"}, {75, "B"}, {65, "C"}, {55, "D"}, {40, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := GradeFor(tt.score); got.Letter != tt.want {
			t.Errorf("GradeFor(%d) = %q, want %q", tt.score, got.Letter, tt.want)
		}
	}
}

func TestHouseRecommendations(t *testing.T) {
	h := HouseProfile{ACUnits: 3, SolarPanels: false}
	recs := HouseRecommendations(h, 60)

	joined := strings.Join(recs, "\n")
	for _, want := range []string{
		"energy-efficient appliances",
		"Install solar panels",
		"smart thermostats",
		"programmable thermostats",
		"HVAC",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("recommendations missing %q: %v", want, recs)
		}
	}

	// Efficient solar house only gets the two always-on tips
	efficient := HouseRecommendations(HouseProfile{ACUnits: 1, SolarPanels: true}, 95)
	if len(efficient) != 2 {
		t.Errorf("got %d recommendations for an efficient house, want 2: %v", len(efficient), efficient)
	}
}

func TestEstimateHouseConsumption(t *testing.T) {
	tests := []struct {
		name  string
		house HouseProfile
		want  float64
	}{
		{"summer two ACs", HouseProfile{Month: "July", ACUnits: 2}, 598},   // (300+160)*1.3
		{"winter solar", HouseProfile{Month: "January", ACUnits: 1, SolarPanels: true}, 240}, // (300+80-80)*0.8
		{"winter no AC with solar", HouseProfile{Month: "December", ACUnits: 0, SolarPanels: true}, 176}, // (300-80)*0.8
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateHouseConsumption(tt.house); got != tt.want {
				t.Errorf("EstimateHouseConsumption = %.0f, want %.0f", got, tt.want)
			}
		})
	}
}

func TestCompareHouses(t *testing.T) {
	houses := []HouseProfile{
		{ID: "1", Name: "Gulberg House", Month: "June", ACUnits: 1, SolarPanels: true, Units: 300, Price: 2000},
		{ID: "2", Name: "Model Town House", Month: "December", ACUnits: 3, Units: 250, Price: 3000},
	}

	cmp := CompareHouses(houses)

	if cmp.TotalHouses != 2 {
		t.Fatalf("TotalHouses = %d, want 2", cmp.TotalHouses)
	}
	if cmp.BestHouse != "Gulberg House" {
		t.Errorf("BestHouse = %q, want Gulberg House", cmp.BestHouse)
	}
	if cmp.WorstHouse != "Model Town House" {
		t.Errorf("WorstHouse = %q, want Model Town House", cmp.WorstHouse)
	}
	if cmp.EfficiencyGap != 80 { // 100 - 20
		t.Errorf("EfficiencyGap = %d, want 80", cmp.EfficiencyGap)
	}
	if cmp.PotentialSavingsIndex != 160 { // (100-100)*2 + (100-20)*2
		t.Errorf("PotentialSavingsIndex = %d, want 160", cmp.PotentialSavingsIndex)
	}
	if cmp.AverageEfficiency != 60 {
		t.Errorf("AverageEfficiency = %.1f, want 60", cmp.AverageEfficiency)
	}
	if cmp.TotalUnits != 550 || cmp.TotalPrice != 5000 {
		t.Errorf("totals = %.0f units / %.0f PKR, want 550 / 5000", cmp.TotalUnits, cmp.TotalPrice)
	}
}

func TestCompareHousesEmpty(t *testing.T) {
	cmp := CompareHouses(nil)
	if cmp.TotalHouses != 0 || len(cmp.Houses) != 0 {
		t.Errorf("empty comparison = %+v", cmp)
	}
}

func TestSeasonForMonth(t *testing.T) {
	if got := SeasonForMonth("July"); got.Season != "Summer" {
		t.Errorf("July season = %q, want Summer", got.Season)
	}
	if got := SeasonForMonth("January"); got.Season != "Winter" {
		t.Errorf("January season = %q, want Winter", got.Season)
	}
	if got := SeasonForMonth("April"); got.Season != "Spring/Autumn" {
		t.Errorf("April season = %q, want Spring/Autumn", got.Season)
	}
}
