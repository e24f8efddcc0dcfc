package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ShaysReality/fincalc/cashflow"
)

var (
	rateFlag  float64
	guessFlag float64
)

var npvCmd = &cobra.Command{
	Use:   "npv",
	Short: "Present value of a series at a flat per-period rate",
	RunE: func(c *cobra.Command, args []string) error {
		s, err := resolveSeries(c.Context())
		if err != nil {
			return err
		}
		value, err := cashflow.PresentValue(rateFlag, s.Values)
		if err != nil {
			return err
		}
		printResult(value)
		return nil
	},
}

var irrCmd = &cobra.Command{
	Use:   "irr",
	Short: "Internal rate of return of a series",
	RunE: func(c *cobra.Command, args []string) error {
		s, err := resolveSeries(c.Context())
		if err != nil {
			return err
		}
		value, err := cashflow.InternalRateOfReturn(s.Values, seedGuess(c))
		if err != nil {
			return err
		}
		printResult(value)
		return nil
	},
}

var xnpvCmd = &cobra.Command{
	Use:   "xnpv",
	Short: "Date-weighted present value of a dated series",
	RunE: func(c *cobra.Command, args []string) error {
		s, err := resolveSeries(c.Context())
		if err != nil {
			return err
		}
		value, err := cashflow.PresentValueByDate(rateFlag, s.Values, s.Dates, s.Basis)
		if err != nil {
			return err
		}
		printResult(value)
		return nil
	},
}

var xirrCmd = &cobra.Command{
	Use:   "xirr",
	Short: "Date-weighted rate of return of a dated series",
	RunE: func(c *cobra.Command, args []string) error {
		s, err := resolveSeries(c.Context())
		if err != nil {
			return err
		}
		value, err := cashflow.DateWeightedIRR(s.Values, s.Dates, seedGuess(c), s.Basis)
		if err != nil {
			return err
		}
		printResult(value)
		return nil
	},
}

var paybackCmd = &cobra.Command{
	Use:   "payback",
	Short: "Fractional payback period of a series",
	RunE: func(c *cobra.Command, args []string) error {
		s, err := resolveSeries(c.Context())
		if err != nil {
			return err
		}
		printResult(cashflow.PaybackPeriod(s.Values))
		return nil
	},
}

var piCmd = &cobra.Command{
	Use:   "pi",
	Short: "Profitability index of a series",
	RunE: func(c *cobra.Command, args []string) error {
		s, err := resolveSeries(c.Context())
		if err != nil {
			return err
		}
		value, err := cashflow.ProfitabilityIndex(rateFlag, s.Values)
		if err != nil {
			return err
		}
		printResult(value)
		return nil
	},
}

// seedGuess prefers an explicit --guess over the configured default.
func seedGuess(c *cobra.Command) float64 {
	if c.Flags().Changed("guess") {
		return guessFlag
	}
	return cfg.Guess
}

func init() {
	for _, c := range []*cobra.Command{npvCmd, irrCmd, xnpvCmd, xirrCmd, paybackCmd, piCmd} {
		addSeriesFlags(c)
		rootCmd.AddCommand(c)
	}
	npvCmd.Flags().Float64Var(&rateFlag, "rate", 0, "per-period discount rate")
	xnpvCmd.Flags().Float64Var(&rateFlag, "rate", 0, "annual discount rate")
	piCmd.Flags().Float64Var(&rateFlag, "rate", 0, "per-period discount rate")
	irrCmd.Flags().Float64Var(&guessFlag, "guess", cashflow.DefaultGuess, "initial rate guess")
	xirrCmd.Flags().Float64Var(&guessFlag, "guess", cashflow.DefaultGuess, "initial rate guess")
}
