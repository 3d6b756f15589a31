package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var askRaw bool

var askCmd = &cobra.Command{
	Use:   "ask <file.csv> <question>",
	Short: "Answer one question about a CSV file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, question := args[0], args[1]

		p := newPipeline()
		if askRaw {
			answer, err := p.AskRaw(question, source)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(answer, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		answer, err := p.Ask(question, source)
		if err != nil {
			return err
		}
		fmt.Println(answer)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askRaw, "raw", false, "also print the raw analysis results as JSON")
	rootCmd.AddCommand(askCmd)
}
