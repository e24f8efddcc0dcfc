package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ShaysReality/fincalc/bond"
)

var (
	yieldFlag float64
	priceFlag float64
)

var bondCmd = &cobra.Command{
	Use:   "bond",
	Short: "Bond analytics: price, yield, duration, convexity",
	Long: `Evaluates a level-coupon bond. Terms come either from flags
(--face, --coupon, --years, --frequency) or from a saved contract
(--bond NAME).`,
}

var bondPriceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price at an annual yield",
	RunE: func(c *cobra.Command, args []string) error {
		terms, err := resolveBond(c.Context())
		if err != nil {
			return err
		}
		printResult(bond.Price(terms, yieldFlag))
		return nil
	},
}

var bondYieldCmd = &cobra.Command{
	Use:   "yield",
	Short: "Annual yield matching a target price",
	RunE: func(c *cobra.Command, args []string) error {
		terms, err := resolveBond(c.Context())
		if err != nil {
			return err
		}
		value, err := bond.Yield(terms, priceFlag)
		if err != nil {
			return err
		}
		printResult(value)
		return nil
	},
}

var bondDurationCmd = &cobra.Command{
	Use:   "duration",
	Short: "Macaulay duration in years at an annual yield",
	RunE: func(c *cobra.Command, args []string) error {
		terms, err := resolveBond(c.Context())
		if err != nil {
			return err
		}
		printResult(bond.MacaulayDuration(terms, yieldFlag))
		return nil
	},
}

var bondConvexityCmd = &cobra.Command{
	Use:   "convexity",
	Short: "Convexity at an annual yield",
	RunE: func(c *cobra.Command, args []string) error {
		terms, err := resolveBond(c.Context())
		if err != nil {
			return err
		}
		printResult(bond.Convexity(terms, yieldFlag))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{bondPriceCmd, bondYieldCmd, bondDurationCmd, bondConvexityCmd} {
		addBondFlags(c)
		bondCmd.AddCommand(c)
	}
	bondPriceCmd.Flags().Float64Var(&yieldFlag, "yield", 0, "annual yield")
	bondDurationCmd.Flags().Float64Var(&yieldFlag, "yield", 0, "annual yield")
	bondConvexityCmd.Flags().Float64Var(&yieldFlag, "yield", 0, "annual yield")
	bondYieldCmd.Flags().Float64Var(&priceFlag, "price", 0, "target price")
	rootCmd.AddCommand(bondCmd)
}
