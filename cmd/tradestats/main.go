package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "tradestats [path]",
	Short: "Performance statistics for a strategy's closed-trade log",
	Long: `tradestats reads the CSV trade log written by a trading strategy and reports
win rate, profit totals, loss streaks, equity drawdown and when trades were opened.
The path defaults to the configured input path.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runAnalyze,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
