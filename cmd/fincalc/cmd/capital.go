package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ShaysReality/fincalc/capital"
	"github.com/ShaysReality/fincalc/cashflow"
)

var waccInput capital.WACCInput

var waccCmd = &cobra.Command{
	Use:   "wacc",
	Short: "Weighted average cost of capital",
	RunE: func(c *cobra.Command, args []string) error {
		value, err := capital.WACC(waccInput)
		if err != nil {
			return err
		}
		printResult(value)
		return nil
	},
}

var (
	dividendFlag float64
	growthFlag   float64
	requiredFlag float64
)

var gordonCmd = &cobra.Command{
	Use:   "gordon",
	Short: "Gordon growth perpetuity value",
	RunE: func(c *cobra.Command, args []string) error {
		value, err := capital.GordonGrowth(dividendFlag, growthFlag, requiredFlag)
		if err != nil {
			return err
		}
		printResult(value)
		return nil
	},
}

var (
	annuityRate    float64
	annuityPeriods int
	annuityPayment float64
)

var annuityCmd = &cobra.Command{
	Use:   "annuity",
	Short: "Present and future value of level payments",
}

var annuityPVCmd = &cobra.Command{
	Use:   "pv",
	Short: "Present value of an ordinary annuity",
	RunE: func(c *cobra.Command, args []string) error {
		value, err := cashflow.AnnuityPresentValue(annuityRate, annuityPeriods, annuityPayment)
		if err != nil {
			return err
		}
		printResult(value)
		return nil
	},
}

var annuityFVCmd = &cobra.Command{
	Use:   "fv",
	Short: "Future value of an ordinary annuity",
	RunE: func(c *cobra.Command, args []string) error {
		value, err := cashflow.AnnuityFutureValue(annuityRate, annuityPeriods, annuityPayment)
		if err != nil {
			return err
		}
		printResult(value)
		return nil
	},
}

func init() {
	waccCmd.Flags().Float64Var(&waccInput.EquityWeight, "equity-weight", 0, "equity weight")
	waccCmd.Flags().Float64Var(&waccInput.DebtWeight, "debt-weight", 0, "debt weight")
	waccCmd.Flags().Float64Var(&waccInput.CostOfEquity, "cost-of-equity", 0, "cost of equity")
	waccCmd.Flags().Float64Var(&waccInput.CostOfDebt, "cost-of-debt", 0, "pre-tax cost of debt")
	waccCmd.Flags().Float64Var(&waccInput.TaxRate, "tax-rate", 0, "corporate tax rate")
	rootCmd.AddCommand(waccCmd)

	gordonCmd.Flags().Float64Var(&dividendFlag, "dividend", 0, "next-period dividend")
	gordonCmd.Flags().Float64Var(&growthFlag, "growth", 0, "perpetual growth rate")
	gordonCmd.Flags().Float64Var(&requiredFlag, "required", 0, "required rate of return")
	rootCmd.AddCommand(gordonCmd)

	for _, c := range []*cobra.Command{annuityPVCmd, annuityFVCmd} {
		c.Flags().Float64Var(&annuityRate, "rate", 0, "per-period rate")
		c.Flags().IntVar(&annuityPeriods, "periods", 0, "number of payments")
		c.Flags().Float64Var(&annuityPayment, "payment", 0, "payment per period")
		annuityCmd.AddCommand(c)
	}
	rootCmd.AddCommand(annuityCmd)
}
