package uiapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secpars/secpars/internal/backend"
	"github.com/secpars/secpars/internal/engine"
	"github.com/secpars/secpars/internal/metrics"
	"github.com/secpars/secpars/internal/store"
)

// Config points the server at the optional remote backends. Empty URLs
// disable the remote path; every computation still works offline.
type Config struct {
	PredictionURL string
	OCRURL        string
}

type Server struct {
	store      *store.Store
	prediction *backend.PredictionClient
	ocr        *backend.OCRClient
}

func NewServer(st *store.Store, cfg Config) *Server {
	s := &Server{store: st}
	if cfg.PredictionURL != "" {
		s.prediction = backend.NewPredictionClient(cfg.PredictionURL)
	}
	if cfg.OCRURL != "" {
		s.ocr = backend.NewOCRClient(cfg.OCRURL)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(instrument)

	// CORS for local development
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/tariff", s.handleGetTariff)
		r.Post("/bill", s.handleComputeBill)
		r.Get("/appliances", s.handleGetAppliances)
		r.Post("/appliances", s.handleCreateAppliance)
		r.Get("/appliances/{id}", s.handleGetAppliance)
		r.Put("/appliances/{id}", s.handleUpdateAppliance)
		r.Delete("/appliances/{id}", s.handleDeleteAppliance)
		r.Post("/appliances/estimate", s.handleEstimate)
		r.Post("/houses/compare", s.handleCompareHouses)
		r.Post("/predict", s.handlePredict)
		r.Post("/scan-bill", s.handleScanBill)
		r.Get("/history", s.handleGetHistory)
		r.Delete("/history/{id}", s.handleDeleteHistory)
	})

	return r
}

// instrument records per-route request counts and latency
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		metrics.RequestsTotal.WithLabelValues(route).Inc()
		metrics.RequestDurationSeconds.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":             "ok",
		"version":            "1.0.0",
		"prediction_backend": s.prediction != nil,
		"ocr_backend":        s.ocr != nil,
	})
}

func (s *Server) handleGetTariff(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, engine.LESCOTariff)
}

type billRequest struct {
	Units float64 `json:"units"`
}

func (s *Server) handleComputeBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	breakdown, err := engine.ComputeBillBreakdown(req.Units, engine.LESCOTariff)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidUnits) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, breakdown)
}

func (s *Server) handleGetAppliances(w http.ResponseWriter, r *http.Request) {
	appliances, err := s.store.GetAppliances()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, appliances)
}

func (s *Server) handleCreateAppliance(w http.ResponseWriter, r *http.Request) {
	var appliance engine.Appliance
	if err := json.NewDecoder(r.Body).Decode(&appliance); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if appliance.Name == "" {
		respondError(w, http.StatusBadRequest, "appliance name is required")
		return
	}
	if appliance.Category == "" {
		appliance.Category = engine.CategoryCustom
	}

	if err := s.store.SaveAppliance(&appliance); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, appliance)
}

func (s *Server) handleGetAppliance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	appliance, err := s.store.GetAppliance(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "appliance not found")
		return
	}
	respondJSON(w, http.StatusOK, appliance)
}

func (s *Server) handleUpdateAppliance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var appliance engine.Appliance
	if err := json.NewDecoder(r.Body).Decode(&appliance); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appliance.ID = id
	if err := s.store.SaveAppliance(&appliance); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, appliance)
}

func (s *Server) handleDeleteAppliance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteAppliance(id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "deleted", "id": id})
}

type estimateRequest struct {
	ApplianceIDs []string                    `json:"appliance_ids"`
	Overrides    map[string]engine.Overrides `json:"overrides"`
}

type estimateResponse struct {
	Appliances       []applianceReport  `json:"appliances"`
	Totals           engine.FleetTotals `json:"totals"`
	Recommendations  []string           `json:"recommendations"`
	PotentialSavings float64            `json:"potential_savings"`
}

type applianceReport struct {
	engine.ApplianceEstimate
	Recommendations []string `json:"recommendations"`
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	apps, err := s.resolveAppliances(req.ApplianceIDs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(apps) == 0 {
		respondError(w, http.StatusBadRequest, "no appliances selected")
		return
	}

	estimates, totals, err := engine.EstimateFleet(apps, req.Overrides, engine.LESCOTariff)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	reports := make([]applianceReport, 0, len(estimates))
	for _, e := range estimates {
		reports = append(reports, applianceReport{
			ApplianceEstimate: e,
			Recommendations:   engine.Analyze(e.Appliance, e.Consumption),
		})
	}

	respondJSON(w, http.StatusOK, estimateResponse{
		Appliances:       reports,
		Totals:           totals,
		Recommendations:  engine.AnalyzeFleet(estimates, totals),
		PotentialSavings: engine.PotentialSavings(totals.TotalMonthlyCost),
	})
}

// resolveAppliances loads the named appliances, or the selected set when no
// IDs were given.
func (s *Server) resolveAppliances(ids []string) ([]engine.Appliance, error) {
	if len(ids) == 0 {
		return s.store.SelectedAppliances()
	}
	apps := make([]engine.Appliance, 0, len(ids))
	for _, id := range ids {
		a, err := s.store.GetAppliance(id)
		if err != nil {
			continue // skip unknown IDs rather than failing the batch
		}
		apps = append(apps, *a)
	}
	return apps, nil
}

type compareRequest struct {
	Houses []engine.HouseProfile `json:"houses"`
}

type compareResponse struct {
	engine.Comparison
	Seasonal []engine.SeasonalAnalysis `json:"seasonal"`
}

func (s *Server) handleCompareHouses(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Houses) == 0 {
		respondError(w, http.StatusBadRequest, "at least one house is required")
		return
	}

	resp := compareResponse{Comparison: engine.CompareHouses(req.Houses)}
	for _, h := range req.Houses {
		resp.Seasonal = append(resp.Seasonal, engine.SeasonForMonth(h.Month))
	}

	respondJSON(w, http.StatusOK, resp)
}

type predictRequest struct {
	ConsumedUnits float64                `json:"consumed_units"`
	BillPrice     float64                `json:"bill_price"`
	Month         string                 `json:"month"`
	ApplianceData map[string]interface{} `json:"appliance_data"`
}

// localPrediction is the offline approximation of the backend forecast
type localPrediction struct {
	Breakdown       *engine.BillBreakdown   `json:"breakdown"`
	CostPerUnit     float64                 `json:"cost_per_unit"`
	BillEfficiency  string                  `json:"bill_efficiency"`
	Seasonal        engine.SeasonalAnalysis `json:"seasonal"`
	Recommendations []string                `json:"recommendations"`
}

// predictResponse keeps local and remote results separate so the provenance
// of every field stays traceable.
type predictResponse struct {
	Local  localPrediction     `json:"local"`
	Remote *backend.Prediction `json:"remote,omitempty"`
	Source string              `json:"source"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	breakdown, err := engine.ComputeBillBreakdown(req.ConsumedUnits, engine.LESCOTariff)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidUnits) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	costPerUnit := 0.0
	if req.ConsumedUnits > 0 {
		costPerUnit = req.BillPrice / req.ConsumedUnits
	}

	resp := predictResponse{
		Local: localPrediction{
			Breakdown:       breakdown,
			CostPerUnit:     costPerUnit,
			BillEfficiency:  billEfficiency(costPerUnit),
			Seasonal:        engine.SeasonForMonth(req.Month),
			Recommendations: engine.OffPeakRecommendations(),
		},
		Source: "local",
	}

	// Local result first, then try the backend and attach its forecast.
	// A failed call degrades to the local result, never to an error.
	if s.prediction != nil {
		remote, err := s.prediction.Predict(r.Context(), backend.PredictionRequest{
			ConsumedUnits: req.ConsumedUnits,
			BillPrice:     req.BillPrice,
			Month:         req.Month,
			ApplianceData: req.ApplianceData,
		})
		if err != nil {
			metrics.BackendErrorsTotal.WithLabelValues("prediction").Inc()
		} else {
			resp.Remote = remote
			resp.Source = "merged"
		}
	}
	metrics.PredictionsTotal.WithLabelValues(resp.Source).Inc()

	s.appendHistory(req, resp)

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) appendHistory(req predictRequest, resp predictResponse) {
	doc, err := json.Marshal(resp)
	if err != nil {
		return
	}
	entry := engine.HistoryEntry{
		ConsumedUnits: req.ConsumedUnits,
		BillPrice:     req.BillPrice,
		Prediction:    string(doc),
	}
	if err := s.store.AppendHistory(&entry); err != nil {
		return
	}
	if n, err := s.store.HistoryCount(); err == nil {
		metrics.HistorySize.Set(float64(n))
	}
}

// billEfficiency buckets the observed cost per unit against typical
// all-in LESCO rates
func billEfficiency(costPerUnit float64) string {
	switch {
	case costPerUnit <= 0:
		return "Unknown"
	case costPerUnit <= 25:
		return "High"
	case costPerUnit <= 35:
		return "Moderate"
	default:
		return "Low"
	}
}

func (s *Server) handleScanBill(w http.ResponseWriter, r *http.Request) {
	if s.ocr == nil {
		respondError(w, http.StatusServiceUnavailable, "OCR backend not configured")
		return
	}

	file, header, err := r.FormFile("bill_image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "bill_image file is required")
		return
	}
	defer file.Close()

	result, err := s.ocr.ScanBill(r.Context(), header.Filename, file)
	if err != nil {
		metrics.OCRScansTotal.WithLabelValues("error").Inc()
		metrics.BackendErrorsTotal.WithLabelValues("ocr").Inc()
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	metrics.OCRScansTotal.WithLabelValues("ok").Inc()

	// Missing fields come back as zeros, indistinguishable from manual entry
	respondJSON(w, http.StatusOK, map[string]float64{
		"consumed_units": result.Units(),
		"bill_price":     result.Price(),
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.GetHistory()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteHistoryEntry(id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "deleted", "id": id})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
