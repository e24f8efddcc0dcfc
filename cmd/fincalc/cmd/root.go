/*
root.go - CLI entry point and shared input plumbing

PURPOSE:
  Defines the root command, global flags, and the helpers every
  calculation subcommand shares: loading the config file, resolving a
  cashflow series or bond from flags or the catalog, and rendering
  results.

INPUT PRECEDENCE (series):
  --series NAME   Load a saved series from the catalog
  --json FILE     Parse a JSON series definition
  --csv FILE      Parse a CSV series (amount[,date] rows)
  --values LIST   Inline values, optionally with --dates and --basis

SEE ALSO:
  - cashflow.go, bond.go, capital.go: The calculation subcommands
  - catalog.go: Saved-input management
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ShaysReality/fincalc/bond"
	"github.com/ShaysReality/fincalc/config"
	"github.com/ShaysReality/fincalc/factory"
	"github.com/ShaysReality/fincalc/store/sqlite"
)

var (
	cfgFile   string
	cfg       config.Config
	roundFlag int
	dbPath    string

	// Series input flags, shared by the cashflow subcommands.
	seriesName string
	jsonPath   string
	csvPath    string
	valuesFlag []float64
	datesFlag  []string
	basisFlag  string

	// Bond input flags.
	bondName   string
	faceFlag   float64
	couponFlag float64
	yearsFlag  float64
	freqFlag   int
)

var rootCmd = &cobra.Command{
	Use:   "fincalc",
	Short: "Corporate finance and fixed income calculator",
	Long: `fincalc evaluates cashflow series and bond contracts from the
command line.

Calculations:
  npv, irr       Flat-rate present value and internal rate of return
  xnpv, xirr     Date-weighted variants (ACT/365, ACT/360, 30E/360)
  payback, pi    Payback period and profitability index
  bond           Price, yield, duration, convexity
  wacc, gordon   Capital-structure calculations
  annuity        Present and future value of level payments

Inputs come from flags, JSON/CSV files, or the saved-input catalog
(see "fincalc series" and "fincalc bonds").`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("round") {
			roundFlag = cfg.Round
		}
		if !cmd.Flags().Changed("db") {
			dbPath = cfg.Catalog
		}
		return nil
	},
}

// Execute runs the CLI, reporting any error on stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fincalc: %v\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().IntVar(&roundFlag, "round", -1, "decimal places for output (-1 disables rounding)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "catalog database path (default from config)")
}

// addSeriesFlags registers the shared series-input flags on a subcommand.
func addSeriesFlags(c *cobra.Command) {
	c.Flags().StringVar(&seriesName, "series", "", "saved series name")
	c.Flags().StringVar(&jsonPath, "json", "", "JSON series file")
	c.Flags().StringVar(&csvPath, "csv", "", "CSV series file")
	c.Flags().Float64SliceVar(&valuesFlag, "values", nil, "inline cashflow values")
	c.Flags().StringSliceVar(&datesFlag, "dates", nil, "value dates (YYYY-MM-DD)")
	c.Flags().StringVar(&basisFlag, "basis", "", "day-count basis (default from config)")
}

// addBondFlags registers the shared bond-input flags on a subcommand.
func addBondFlags(c *cobra.Command) {
	c.Flags().StringVar(&bondName, "bond", "", "saved bond name")
	c.Flags().Float64Var(&faceFlag, "face", 0, "face value")
	c.Flags().Float64Var(&couponFlag, "coupon", 0, "annual coupon rate")
	c.Flags().Float64Var(&yearsFlag, "years", 0, "years to maturity")
	c.Flags().IntVar(&freqFlag, "frequency", 2, "coupon payments per year")
}

func openCatalog() (*sqlite.Catalog, error) {
	return sqlite.New(dbPath)
}

// resolveSeries builds the input series from whichever source was given.
func resolveSeries(ctx context.Context) (factory.Series, error) {
	f := factory.NewSeriesFactory()

	switch {
	case seriesName != "":
		catalog, err := openCatalog()
		if err != nil {
			return factory.Series{}, err
		}
		defer catalog.Close()
		return catalog.GetSeries(ctx, seriesName)

	case jsonPath != "":
		data, err := os.ReadFile(jsonPath)
		if err != nil {
			return factory.Series{}, err
		}
		return f.ParseSeries(data)

	case csvPath != "":
		file, err := os.Open(csvPath)
		if err != nil {
			return factory.Series{}, err
		}
		defer file.Close()
		return f.ParseSeriesCSV(file)

	case len(valuesFlag) > 0:
		basis := basisFlag
		if basis == "" {
			basis = cfg.Basis
		}
		return f.FromJSON(factory.SeriesJSON{
			Values: valuesFlag,
			Dates:  datesFlag,
			Basis:  basis,
		})
	}

	return factory.Series{}, errors.New("no input: use --series, --json, --csv or --values")
}

// resolveBond builds the bond terms from flags or the catalog.
func resolveBond(ctx context.Context) (bond.Terms, error) {
	if bondName != "" {
		catalog, err := openCatalog()
		if err != nil {
			return bond.Terms{}, err
		}
		defer catalog.Close()
		return catalog.GetBond(ctx, bondName)
	}

	terms := bond.Terms{
		Face:       faceFlag,
		CouponRate: couponFlag,
		Years:      yearsFlag,
		Frequency:  freqFlag,
	}
	if err := terms.Validate(); err != nil {
		return bond.Terms{}, err
	}
	return terms, nil
}

// printResult renders a value with the configured rounding.
func printResult(value float64) {
	if math.IsInf(value, 1) {
		fmt.Println("never")
		return
	}
	d := decimal.NewFromFloat(value)
	if roundFlag >= 0 {
		d = d.Round(int32(roundFlag))
	}
	fmt.Println(d.String())
}
