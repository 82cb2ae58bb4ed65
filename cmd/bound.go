package cmd

import (
	"fmt"

	"github.com/adalundhe/sketch/core/projection"
	"github.com/spf13/cobra"
)

var (
	boundSamples float64
	boundEps     []float64
)

var boundCmd = &cobra.Command{
	Use:   "bound",
	Short: "Print the Johnson-Lindenstrauss minimum dimensionality",
	Long: `Print the minimum number of target dimensions that preserves pairwise
distances within the given distortion tolerance for a dataset of the given
size. Repeat --eps to tabulate several tolerances.`,
	RunE: runBound,
}

func runBound(cmd *cobra.Command, args []string) error {
	for _, eps := range boundEps {
		n, err := projection.MinComponents(boundSamples, eps)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "samples=%g eps=%g components=%d\n", boundSamples, eps, n)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(boundCmd)

	boundCmd.Flags().Float64VarP(&boundSamples, "samples", "n", 0, "Number of samples in the dataset")
	boundCmd.Flags().Float64SliceVarP(&boundEps, "eps", "e", []float64{0.1}, "Distortion tolerance in (0, 1)")
	_ = boundCmd.MarkFlagRequired("samples")
}
