package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/secpars/secpars/internal/metrics"
	"github.com/secpars/secpars/internal/store"
	"github.com/secpars/secpars/internal/uiapi"
	"github.com/spf13/cobra"
)

func main() {
	var port int
	var dbPath string
	var predictionURL string
	var ocrURL string
	var pruneSchedule string

	rootCmd := &cobra.Command{
		Use:   "secparsd",
		Short: "Secpars HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				home, _ := os.UserHomeDir()
				dbPath = filepath.Join(home, ".secpars", "secpars.db")
			}
			os.MkdirAll(filepath.Dir(dbPath), 0755)

			st, err := store.NewStore(dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer st.Close()

			if err := st.SeedDefaults(); err != nil {
				return fmt.Errorf("seeding appliances: %w", err)
			}

			srv := uiapi.NewServer(st, uiapi.Config{
				PredictionURL: predictionURL,
				OCRURL:        ocrURL,
			})

			// Keep the history log at its cap even if the API path that
			// normally prunes it is never hit
			c := cron.New()
			if _, err := c.AddFunc(pruneSchedule, func() { pruneHistory(st) }); err != nil {
				return fmt.Errorf("invalid prune schedule %q: %w", pruneSchedule, err)
			}
			c.Start()
			defer c.Stop()

			addr := fmt.Sprintf(":%d", port)
			log.Printf("Secpars server starting on port %d", port)
			log.Printf("Database: %s", dbPath)
			if predictionURL != "" {
				log.Printf("Prediction backend: %s", predictionURL)
			}
			if ocrURL != "" {
				log.Printf("OCR backend: %s", ocrURL)
			}

			return http.ListenAndServe(addr, srv.Handler())
		},
	}

	rootCmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP port")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Database path")
	rootCmd.Flags().StringVar(&predictionURL, "prediction-url", "", "Base URL of the ML prediction backend (optional)")
	rootCmd.Flags().StringVar(&ocrURL, "ocr-url", "", "Base URL of the bill OCR backend (optional)")
	rootCmd.Flags().StringVar(&pruneSchedule, "prune-schedule", "0 3 * * *", "Cron schedule for the history prune job")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func pruneHistory(st *store.Store) {
	start := time.Now()
	removed, err := st.PruneHistory(store.HistoryCap)
	metrics.UpdatePruneJobMetrics(start, err)
	if err != nil {
		log.Printf("history prune failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("history prune removed %d entries", removed)
	}
	if n, err := st.HistoryCount(); err == nil {
		metrics.HistorySize.Set(float64(n))
	}
}
