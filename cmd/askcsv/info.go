package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askcsv-org/askcsv/dataset"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.csv>",
	Short: "Print schema information for a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := dataset.Load(args[0])
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(table.DescribeSchema(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
