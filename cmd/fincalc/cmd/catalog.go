package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ShaysReality/fincalc/daycount"
)

var saveName string

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Manage saved cashflow series",
}

var seriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved series names",
	RunE: func(c *cobra.Command, args []string) error {
		catalog, err := openCatalog()
		if err != nil {
			return err
		}
		defer catalog.Close()

		names, err := catalog.ListSeries(c.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var seriesSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a series under a name",
	RunE: func(c *cobra.Command, args []string) error {
		if saveName == "" {
			return errors.New("--name is required")
		}
		s, err := resolveSeries(c.Context())
		if err != nil {
			return err
		}
		s.Name = saveName

		catalog, err := openCatalog()
		if err != nil {
			return err
		}
		defer catalog.Close()

		if err := catalog.SaveSeries(c.Context(), s); err != nil {
			return err
		}
		fmt.Printf("saved series %q (%d points)\n", s.Name, len(s.Values))
		return nil
	},
}

var seriesShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a saved series",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		catalog, err := openCatalog()
		if err != nil {
			return err
		}
		defer catalog.Close()

		s, err := catalog.GetSeries(c.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", s.Name, s.Basis)
		for i, v := range s.Values {
			if s.Dated() {
				fmt.Printf("  %s  %g\n", s.Dates[i].Format(daycount.DateLayout), v)
			} else {
				fmt.Printf("  %d  %g\n", i, v)
			}
		}
		return nil
	},
}

var seriesDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a saved series",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		catalog, err := openCatalog()
		if err != nil {
			return err
		}
		defer catalog.Close()
		return catalog.DeleteSeries(c.Context(), args[0])
	},
}

var bondsCmd = &cobra.Command{
	Use:   "bonds",
	Short: "Manage saved bond contracts",
}

var bondsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved bond names",
	RunE: func(c *cobra.Command, args []string) error {
		catalog, err := openCatalog()
		if err != nil {
			return err
		}
		defer catalog.Close()

		names, err := catalog.ListBonds(c.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var bondsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save bond terms under a name",
	RunE: func(c *cobra.Command, args []string) error {
		if saveName == "" {
			return errors.New("--name is required")
		}
		terms, err := resolveBond(c.Context())
		if err != nil {
			return err
		}

		catalog, err := openCatalog()
		if err != nil {
			return err
		}
		defer catalog.Close()

		if err := catalog.SaveBond(c.Context(), saveName, terms); err != nil {
			return err
		}
		fmt.Printf("saved bond %q\n", saveName)
		return nil
	},
}

var bondsShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print saved bond terms",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		catalog, err := openCatalog()
		if err != nil {
			return err
		}
		defer catalog.Close()

		terms, err := catalog.GetBond(c.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: face %g, coupon %g, %g years, %d payments/year\n",
			args[0], terms.Face, terms.CouponRate, terms.Years, terms.Frequency)
		return nil
	},
}

func init() {
	seriesSaveCmd.Flags().StringVar(&saveName, "name", "", "name to save under")
	addSeriesFlags(seriesSaveCmd)
	seriesCmd.AddCommand(seriesListCmd, seriesSaveCmd, seriesShowCmd, seriesDeleteCmd)
	rootCmd.AddCommand(seriesCmd)

	bondsSaveCmd.Flags().StringVar(&saveName, "name", "", "name to save under")
	addBondFlags(bondsSaveCmd)
	bondsCmd.AddCommand(bondsListCmd, bondsSaveCmd, bondsShowCmd)
	rootCmd.AddCommand(bondsCmd)
}
