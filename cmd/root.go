// Package cmd provides the CLI surface for the sketch tool. The commands are
// thin wrappers over core/projection; all validation lives in the core.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sketch",
	Short: "Sketch - sparse random projection for high-dimensional data",
	Long: `Sketch reduces the dimensionality of numeric data with sparse random
projection, preserving pairwise distances within a configurable distortion
per the Johnson-Lindenstrauss lemma.`,
}

func Execute() error {
	return rootCmd.Execute()
}
