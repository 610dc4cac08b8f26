// Package cmd defines the command-line interface for impact.
package cmd

import (
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(contributorsCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(authorCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Store maintenance
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(migrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("repo-name", "", "Repository name used as the API key (default: repository directory name)")
	rootCmd.PersistentFlags().StringP("branch", "b", "", "Branch to index or query (default: current branch or the last indexed one)")
	rootCmd.PersistentFlags().String("period", contract.DefaultPeriod, "Current period as a lookback ('90 days') or a relative time ('3 months ago')")
	rootCmd.PersistentFlags().Int("per-page", schema.DefaultPerPage, "Contributors per table page")
	rootCmd.PersistentFlags().Int("look-around", schema.DefaultLookAround, "Page links shown on each side of the current page")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("endpoint", "", "Base URL of an impact server to read from instead of the local store")
	rootCmd.PersistentFlags().String("request-timeout", contract.DefaultRequestTimeout.String(), "Upper bound of every data request")
	rootCmd.PersistentFlags().Float64("rate-limit", 0, "Requests per second sent to the endpoint (0 = unlimited)")
	rootCmd.PersistentFlags().Int("chart-width", schema.DefaultChartWidth, "Chart width in pixels")
	rootCmd.PersistentFlags().Int("chart-height", schema.DefaultChartHeight, "Chart height in pixels")
	rootCmd.PersistentFlags().String("chart-format", string(schema.SVGFormat), "Chart image format: svg or png")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", contract.LogFormatConsole, "Log format: console or json")
	rootCmd.PersistentFlags().String("git-engine", string(schema.CLIEngine), "History reader: cli or gogit")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Listen address of the HTTP server")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Command-local flags are read from the command, not from Viper
	contributorsCmd.Flags().String("page", "", "Page to show (invalid or out-of-range values fall back to the nearest page)")
	contributorsCmd.Flags().Int("retries", 1, "Times to repeat a fetch that failed without a response or with a server error")
	chartCmd.Flags().Bool("image", false, "Render the chart as an image in --chart-format to --output-file")

	// Bind all flags of migrateCmd to Viper
	migrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(migrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding migrate flags", err)
	}
}
