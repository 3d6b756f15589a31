package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askcsv-org/askcsv/dataset"
)

var (
	sampleRows int
	sampleOut  string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a sample CSV file for testing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dataset.WriteSampleCSV(sampleOut, sampleRows); err != nil {
			return err
		}
		fmt.Printf("Sample CSV created: %s (%d rows)\n", sampleOut, sampleRows)
		return nil
	},
}

func init() {
	sampleCmd.Flags().IntVar(&sampleRows, "rows", 100, "number of rows to generate")
	sampleCmd.Flags().StringVar(&sampleOut, "out", "sample_data.csv", "output file path")
	rootCmd.AddCommand(sampleCmd)
}
