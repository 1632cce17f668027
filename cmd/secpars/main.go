package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/secpars/secpars/internal/engine"
	"github.com/secpars/secpars/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	dbPath  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "secpars",
		Short: "Secpars - LESCO bill calculator and home energy advisor",
		Long: `Secpars computes slab-wise LESCO electricity bills, estimates appliance
consumption, scores household efficiency and keeps a local prediction history.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.secpars/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default is $HOME/.secpars/secpars.db)")

	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(billCmd())
	rootCmd.AddCommand(estimateCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(applianceCmd())
	rootCmd.AddCommand(historyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".secpars")
		os.MkdirAll(configDir, 0755)

		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	viper.ReadInConfig()

	if dbPath == "" {
		if fromConfig := viper.GetString("db"); fromConfig != "" {
			dbPath = fromConfig
		} else {
			home, _ := os.UserHomeDir()
			dbPath = filepath.Join(home, ".secpars", "secpars.db")
		}
	}
}

func openStore() (*store.Store, error) {
	st, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return st, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the database with the default appliance catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.SeedDefaults(); err != nil {
				return err
			}

			fmt.Println("✓ Seeded default appliance catalog")
			fmt.Printf("Database: %s\n", dbPath)
			fmt.Println("\nNext steps:")
			fmt.Println("  1. Select appliances: secpars appliance select <id>")
			fmt.Println("  2. Estimate consumption: secpars estimate")

			return nil
		},
	}
}

func billCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bill <units>",
		Short: "Compute the slab-wise LESCO bill for consumed units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid units %q: %w", args[0], err)
			}

			breakdown, err := engine.ComputeBillBreakdown(units, engine.LESCOTariff)
			if err != nil {
				return err
			}

			return printJSON(breakdown)
		},
	}
}

func estimateCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate consumption and cost for the selected appliances",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			var apps []engine.Appliance
			if all {
				apps, err = st.GetAppliances()
			} else {
				apps, err = st.SelectedAppliances()
			}
			if err != nil {
				return err
			}
			if len(apps) == 0 {
				return fmt.Errorf("no appliances selected (use 'secpars appliance select' or --all)")
			}

			estimates, totals, err := engine.EstimateFleet(apps, nil, engine.LESCOTariff)
			if err != nil {
				return err
			}

			return printJSON(map[string]interface{}{
				"appliances":        estimates,
				"totals":            totals,
				"recommendations":   engine.AnalyzeFleet(estimates, totals),
				"potential_savings": engine.PotentialSavings(totals.TotalMonthlyCost),
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Estimate every appliance, not only the selected set")

	return cmd
}

func compareCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Score and compare house profiles from a JSON file",
		Long: `Compare reads an array of house profiles from a JSON file (or stdin
with -f -) and prints each house's efficiency score alongside the
best/worst summary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if file == "-" {
				data, err = io.ReadAll(os.Stdin)
			} else {
				data, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("reading profiles: %w", err)
			}

			var houses []engine.HouseProfile
			if err := json.Unmarshal(data, &houses); err != nil {
				return fmt.Errorf("parsing profiles: %w", err)
			}
			if len(houses) == 0 {
				return fmt.Errorf("no house profiles in %s", file)
			}

			return printJSON(engine.CompareHouses(houses))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with house profiles (required, '-' for stdin)")
	cmd.MarkFlagRequired("file")

	return cmd
}

func applianceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appliance",
		Short: "Manage the appliance catalog",
	}

	cmd.AddCommand(applianceAddCmd())
	cmd.AddCommand(applianceListCmd())
	cmd.AddCommand(applianceSelectCmd())

	return cmd
}

func applianceAddCmd() *cobra.Command {
	var name, category string
	var wattage, hours float64
	var quantity int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new appliance",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			appliance := engine.Appliance{
				Name:        name,
				Category:    engine.Category(category),
				Efficiency:  engine.EfficiencyMedium,
				Wattage:     wattage,
				HoursPerDay: hours,
				Quantity:    quantity,
			}

			if err := st.SaveAppliance(&appliance); err != nil {
				return err
			}

			fmt.Printf("✓ Added appliance: %s\n", name)
			fmt.Printf("  ID: %s\n", appliance.ID)
			fmt.Printf("  Wattage: %.0f W\n", wattage)
			fmt.Printf("  Usage: %.1f hours/day\n", hours)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Appliance name (required)")
	cmd.Flags().StringVarP(&category, "category", "c", string(engine.CategoryCustom), "Category")
	cmd.Flags().Float64VarP(&wattage, "watts", "w", 100, "Rated wattage")
	cmd.Flags().Float64Var(&hours, "hours", 1, "Hours used per day")
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "Number of units")

	cmd.MarkFlagRequired("name")

	return cmd
}

func applianceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all appliances",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			appliances, err := st.GetAppliances()
			if err != nil {
				return err
			}

			if len(appliances) == 0 {
				fmt.Println("No appliances configured (run 'secpars init' to seed defaults)")
				return nil
			}

			fmt.Printf("%-20s %-20s %8s %8s %4s %9s\n", "NAME", "ID", "WATTS", "HRS/DAY", "QTY", "SELECTED")
			fmt.Println("--------------------------------------------------------------------------")

			for _, a := range appliances {
				selected := "No"
				if a.Selected {
					selected = "Yes"
				}
				fmt.Printf("%-20s %-20s %8.0f %8.1f %4d %9s\n",
					a.Name, a.ID[:min(20, len(a.ID))], a.Wattage, a.HoursPerDay, a.Quantity, selected)
			}

			return nil
		},
	}
}

func applianceSelectCmd() *cobra.Command {
	var deselect bool

	cmd := &cobra.Command{
		Use:   "select <id>...",
		Short: "Mark appliances for estimation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			for _, id := range args {
				a, err := st.GetAppliance(id)
				if err != nil {
					return fmt.Errorf("appliance not found: %s", id)
				}
				a.Selected = !deselect
				if err := st.SaveAppliance(a); err != nil {
					return err
				}
				if deselect {
					fmt.Printf("✓ Deselected %s\n", a.Name)
				} else {
					fmt.Printf("✓ Selected %s\n", a.Name)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&deselect, "deselect", false, "Remove appliances from the selected set")

	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the prediction history log",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyPruneCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List history entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			entries, err := st.GetHistory()
			if err != nil {
				return err
			}

			return printJSON(entries)
		},
	}
}

func historyPruneCmd() *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Trim the history log to the newest entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			removed, err := st.PruneHistory(keep)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Removed %d entries, kept at most %d\n", removed, keep)
			return nil
		},
	}

	cmd.Flags().IntVarP(&keep, "keep", "k", store.HistoryCap, "Number of entries to keep")

	return cmd
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
