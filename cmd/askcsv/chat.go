package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askcsv-org/askcsv/dataset"
)

// ============================================================================
// CHAT — Interactive question loop over one CSV file
// ============================================================================

var chatCmd = &cobra.Command{
	Use:   "chat <file.csv>",
	Short: "Start an interactive question session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]

		table, err := dataset.Load(source)
		if err != nil {
			return err
		}

		printTableBanner(source, table)
		fmt.Println("\nStart asking questions! (type 'quit', 'exit', or 'q' to stop)")

		p := newPipeline()
		scanner := bufio.NewScanner(os.Stdin)

		for {
			fmt.Print("\n🙋 Your question: ")
			if !scanner.Scan() {
				fmt.Println("\n👋 Goodbye!")
				return scanner.Err()
			}

			question := strings.TrimSpace(scanner.Text())
			switch strings.ToLower(question) {
			case "quit", "exit", "q", "":
				fmt.Println("👋 Goodbye!")
				return nil
			case "help":
				printChatHelp()
				continue
			case "info":
				printTableBanner(source, table)
				continue
			}

			fmt.Println("🤔 Thinking...")
			answer, err := p.Ask(question, source)
			if err != nil {
				fmt.Printf("❌ Error: %v\n", err)
				continue
			}
			fmt.Printf("\n🤖 Answer: %s\n", answer)
		}
	},
}

func printTableBanner(source string, table *dataset.Table) {
	columns := table.ColumnNames()
	preview := strings.Join(columns, ", ")
	if len(columns) > 5 {
		preview = strings.Join(columns[:5], ", ") + "..."
	}

	fmt.Printf("\n📊 Dataset: %s\n", source)
	fmt.Printf("   Rows: %d\n", table.RowCount())
	fmt.Printf("   Columns: %d (%s)\n", len(columns), preview)
}

func printChatHelp() {
	fmt.Println("\n💡 Try asking questions like:")
	fmt.Println("   • How many rows are in this dataset?")
	fmt.Println("   • What are the unique values in [column]?")
	fmt.Println("   • What's the average [column] by [group column]?")
	fmt.Println("   • Show me summary statistics")
	fmt.Println("   • Find records where [column] > [value]")
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
