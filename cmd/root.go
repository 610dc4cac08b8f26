package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/internal/feed"
	"github.com/huangsam/impact/internal/iocache"
	"github.com/huangsam/impact/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// logger is the process logger, replaced once the log flags are known.
var logger = contract.NopLogger()

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "impact",
	Short: "Rank the contributors of a Git repository and chart their impact.",
	Long: `Impact indexes the commit history of a Git repository per author and serves it
as a paginated contributor table, an impact chart and per-author details.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".impact")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("IMPACT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Set defaults in Viper
	viper.SetDefault("period", contract.DefaultPeriod)
	viper.SetDefault("per-page", schema.DefaultPerPage)
	viper.SetDefault("look-around", schema.DefaultLookAround)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("store-backend", schema.SQLiteBackend)
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("addr", contract.DefaultAddr)
	viper.SetDefault("request-timeout", contract.DefaultRequestTimeout.String())
	viper.SetDefault("chart-width", schema.DefaultChartWidth)
	viper.SetDefault("chart-height", schema.DefaultChartHeight)
	viper.SetDefault("chart-format", schema.SVGFormat)
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", "info")
	viper.SetDefault("log-format", contract.LogFormatConsole)
	viper.SetDefault("git-engine", schema.CLIEngine)
}

// setupOptions tunes sharedSetup for one command.
type setupOptions struct {
	repoOptional bool // The command takes the repository per request
	needStore    bool // The command reads the local store even with an endpoint set
}

// sharedSetup unmarshals config, runs validation and opens the store.
func sharedSetup(ctx context.Context, args []string, opts setupOptions) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.RepoPathStr = ""
	if len(args) == 1 {
		input.RepoPathStr = args[0]
	}
	input.RepoOptional = opts.repoOptional

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(ctx, cfg, newGitClient(schema.GitEngine(strings.ToLower(input.GitEngine))), input); err != nil {
		return err
	}
	color.NoColor = !cfg.UseColors

	lggr, err := contract.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	logger = lggr

	// 5. Open the store unless every read goes to a remote server
	if cfg.Remote() && !opts.needStore {
		return nil
	}
	if err := iocache.InitStore(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(_ *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, args, setupOptions{})
}

// storeSetupWrapper is sharedSetupWrapper for commands that write or serve the local store.
func storeSetupWrapper(_ *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, args, setupOptions{needStore: true})
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".impact")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// newGitClient returns the history reader selected by engine.
func newGitClient(engine schema.GitEngine) contract.GitClient {
	if engine == schema.GoGitEngine {
		return contract.NewGoGitClient()
	}
	return contract.NewLocalGitClient()
}

// newFetcher returns the data source of the read commands: the remote server
// when an endpoint is configured, the local store otherwise.
func newFetcher() contract.Fetcher {
	if cfg.Remote() {
		return feed.NewHTTPFetcher(cfg.Endpoint, cfg.RequestTimeout, cfg.RateLimit, logger.Named("fetch"))
	}
	return feed.NewStoreFetcher(iocache.Manager.GetContributorStore(), cfg.PerPage, cfg.RequestTimeout)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Logger returns the process logger.
func Logger() *zap.SugaredLogger {
	return logger
}
