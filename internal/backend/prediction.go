package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PredictionClient talks to the remote ML prediction service
type PredictionClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewPredictionClient creates a client for the prediction backend
func NewPredictionClient(baseURL string) *PredictionClient {
	return &PredictionClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
}

// PredictionRequest is the payload the backend expects
type PredictionRequest struct {
	ConsumedUnits float64                `json:"consumed_units"`
	BillPrice     float64                `json:"bill_price,omitempty"`
	Month         string                 `json:"month,omitempty"`
	ApplianceData map[string]interface{} `json:"appliance_data,omitempty"`
}

// YearForecast is one year of the backend's long-range forecast
type YearForecast struct {
	AnnualAverageUnits float64 `json:"annual_average_units"`
	AnnualAverageBill  float64 `json:"annual_average_bill"`
}

// Prediction is the compound forecast returned by the backend. Fields the
// service omits decode to zero values; callers must not assume completeness.
type Prediction struct {
	CurrentMonthUnits  float64                 `json:"current_month_units"`
	NextMonthUnits     float64                 `json:"next_month_units"`
	EstimatedBill      float64                 `json:"estimated_bill"`
	CurrentSeason      string                  `json:"current_season"`
	SeasonalFactor     float64                 `json:"seasonal_factor"`
	PeakHours          string                  `json:"peak_hours"`
	EnsemblePrediction float64                 `json:"ensemble_prediction"`
	FuturePredictions  map[string]YearForecast `json:"future_predictions"`
	Recommendations    []string                `json:"recommendations"`
	BillBreakdown      []string                `json:"bill_breakdown"`
}

// Predict posts the consumption snapshot and decodes the forecast
func (c *PredictionClient) Predict(ctx context.Context, preq PredictionRequest) (*Prediction, error) {
	body, err := json.Marshal(preq)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	endpoint := c.baseURL + "/api/predict/energy/"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching prediction: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("prediction API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var pred Prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &pred, nil
}
