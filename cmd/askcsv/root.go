package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/askcsv-org/askcsv/llm"
	"github.com/askcsv-org/askcsv/logging"
	"github.com/askcsv-org/askcsv/pipeline"
)

// ============================================================================
// ASKCSV CLI — Natural-language questions over CSV files
// ============================================================================

const version = "0.1.0"

var (
	cfgFile string
	verbose bool

	log *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:     "askcsv",
	Short:   "Ask natural-language questions about CSV data",
	Version: version,
	Long: `askcsv answers plain-English questions about a CSV file.

A local language model (Ollama) classifies each question, picks one of six
data operations, executes it against the loaded table, and writes an answer
grounded in the computed results.

Examples:
  askcsv ask data.csv "What's the average salary by department?"
  askcsv ask data.csv "Show me unique cities in the data" --raw
  askcsv chat data.csv
  askcsv info data.csv
  askcsv sample --rows 200 --out sample_data.csv`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logging.New(logging.Options{
			Verbose: verbose,
			File:    viper.GetString("log.file"),
		})
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./askcsv.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("model", "", "Ollama model name")
	rootCmd.PersistentFlags().String("ollama-host", "", "Ollama base URL")

	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("ollama.host", rootCmd.PersistentFlags().Lookup("ollama-host"))

	viper.SetDefault("model", "llama3.2")
	viper.SetDefault("ollama.host", "http://127.0.0.1:11434")
}

// initConfig reads the config file and environment. Precedence:
// flag > env > config file > default.
func initConfig() {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("askcsv")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("askcsv")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newPipeline wires the configured Ollama client into a pipeline.
func newPipeline() *pipeline.Pipeline {
	client := llm.NewOllama(llm.Config{
		Host:  viper.GetString("ollama.host"),
		Model: viper.GetString("model"),
	})
	return pipeline.New(client, log)
}
