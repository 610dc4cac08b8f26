package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/huangsam/impact/schema"
)

// Default values for configuration.
const (
	DefaultPeriod         = "90 days"
	DefaultPrecision      = 1
	DefaultAddr           = ":8080"
	DefaultRequestTimeout = 10 * time.Second
	MaxLookAround         = 50
	MaxChartDimension     = 8192
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration.
// This struct is the "final, validated" config.
type Config struct {
	RepoPath    string    // Absolute repository root, empty when only a remote endpoint is used
	RepoName    string    // Repository name used as the API key
	Branch      string    // Branch to index or query, empty means current/default
	Period      time.Duration
	PeriodStart time.Time // Commits at or after this count towards the current period

	PerPage    int
	LookAround int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	Addr           string        // Listen address of the HTTP server
	Endpoint       string        // Base URL of a remote impact server, empty means local store
	RequestTimeout time.Duration // Upper bound of every client fetch
	RateLimit      float64       // Client requests per second, 0 disables limiting

	ChartWidth  int
	ChartHeight int
	ChartFormat schema.ChartFormat

	LogLevel  string
	LogFormat string

	GitEngine schema.GitEngine
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually by the commands, so no tag
	RepoPathStr  string
	RepoOptional bool // Commands taking the repository per request tolerate a missing one

	// --- Fields from rootCmd.PersistentFlags() ---
	RepoName       string `mapstructure:"repo-name"`
	Branch         string `mapstructure:"branch"`
	Period         string `mapstructure:"period"`
	PerPage        int    `mapstructure:"per-page"`
	LookAround     int    `mapstructure:"look-around"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Endpoint       string `mapstructure:"endpoint"`
	RequestTimeout string `mapstructure:"request-timeout"`
	LogLevel       string `mapstructure:"log-level"`
	LogFormat      string `mapstructure:"log-format"`
	GitEngine      string `mapstructure:"git-engine"`

	RateLimit float64 `mapstructure:"rate-limit"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`

	// --- Fields from chartCmd.Flags() ---
	ChartWidth  int    `mapstructure:"chart-width"`
	ChartHeight int    `mapstructure:"chart-height"`
	ChartFormat string `mapstructure:"chart-format"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Remote reports whether data is read from a remote server instead of the local store.
func (c *Config) Remote() bool {
	return c.Endpoint != ""
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processPeriod(cfg, input, time.Now()); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := validateServeInputs(cfg, input); err != nil {
		return err
	}
	if err := resolveRepo(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(host:port)'")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfig validates the store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.RepoName = strings.TrimSpace(input.RepoName)
	cfg.Branch = strings.TrimSpace(input.Branch)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.LogLevel = input.LogLevel
	cfg.LogFormat = input.LogFormat

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Paging Validation ---
	if input.PerPage <= 0 || input.PerPage > schema.MaxPerPage {
		return fmt.Errorf("per-page must be greater than 0 and cannot exceed %d (received %d)", schema.MaxPerPage, input.PerPage)
	}
	cfg.PerPage = input.PerPage

	if input.LookAround < 0 || input.LookAround > MaxLookAround {
		return fmt.Errorf("look-around must be between 0 and %d (received %d)", MaxLookAround, input.LookAround)
	}
	cfg.LookAround = input.LookAround

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 3. Chart Validation ---
	if input.ChartWidth <= 0 || input.ChartWidth > MaxChartDimension {
		return fmt.Errorf("chart-width must be between 1 and %d (received %d)", MaxChartDimension, input.ChartWidth)
	}
	if input.ChartHeight <= 0 || input.ChartHeight > MaxChartDimension {
		return fmt.Errorf("chart-height must be between 1 and %d (received %d)", MaxChartDimension, input.ChartHeight)
	}
	cfg.ChartWidth = input.ChartWidth
	cfg.ChartHeight = input.ChartHeight

	cfg.ChartFormat = schema.ChartFormat(strings.ToLower(input.ChartFormat))
	if _, ok := schema.ValidChartFormats[cfg.ChartFormat]; !ok {
		return fmt.Errorf("invalid chart format '%s'. must be svg, png", input.ChartFormat)
	}

	// --- 4. Git Engine Validation ---
	cfg.GitEngine = schema.GitEngine(strings.ToLower(input.GitEngine))
	if _, ok := schema.ValidGitEngines[cfg.GitEngine]; !ok {
		return fmt.Errorf("invalid git engine '%s'. must be cli, gogit", input.GitEngine)
	}

	return nil
}

// processPeriod resolves the current period into its start time. The period is
// either a lookback such as "90 days" or a relative time such as "3 months ago".
func processPeriod(cfg *Config, input *ConfigRawInput, now time.Time) error {
	period := strings.TrimSpace(input.Period)
	if period == "" {
		period = DefaultPeriod
	}

	if start, err := ParseRelativeTime(period, now); err == nil {
		cfg.PeriodStart = start
		cfg.Period = now.Sub(start)
		return nil
	}

	d, err := ParseLookbackDuration(period)
	if err != nil {
		return fmt.Errorf("invalid period '%s'. Expected 'N [units]' or 'N [units] ago': %w", input.Period, err)
	}
	cfg.Period = d
	cfg.PeriodStart = now.Add(-d)
	return nil
}

// addrRe matches listen addresses such as ":8080", "localhost:8080" or "[::1]:8080".
var addrRe = regexp.MustCompile(`^[A-Za-z0-9.\-\[\]:]*:\d{1,5}$`)

// serveSettings groups the network settings validated together.
type serveSettings struct {
	Addr     string
	Endpoint string
	Timeout  time.Duration
	Rate     float64
}

// validateServeInputs validates the server and client network settings.
func validateServeInputs(cfg *Config, input *ConfigRawInput) error {
	timeout := DefaultRequestTimeout
	if strings.TrimSpace(input.RequestTimeout) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(input.RequestTimeout))
		if err != nil {
			return fmt.Errorf("invalid request-timeout '%s': %w", input.RequestTimeout, err)
		}
		timeout = d
	}

	s := serveSettings{
		Addr:     strings.TrimSpace(input.Addr),
		Endpoint: strings.TrimRight(strings.TrimSpace(input.Endpoint), "/"),
		Timeout:  timeout,
		Rate:     input.RateLimit,
	}
	if s.Addr == "" {
		s.Addr = DefaultAddr
	}

	err := validation.ValidateStruct(&s,
		validation.Field(&s.Addr, validation.Required, validation.Match(addrRe).Error("must be host:port or :port")),
		validation.Field(&s.Endpoint, is.RequestURL),
		validation.Field(&s.Timeout, validation.Required, validation.Min(time.Millisecond), validation.Max(10*time.Minute)),
		validation.Field(&s.Rate, validation.Min(0.0)),
	)
	if err != nil {
		return fmt.Errorf("invalid network settings: %w", err)
	}

	cfg.Addr = s.Addr
	cfg.Endpoint = s.Endpoint
	cfg.RequestTimeout = s.Timeout
	cfg.RateLimit = s.Rate
	return nil
}

// resolveRepo resolves the repository root and the repository name. When a
// remote endpoint is configured together with a repository name, no local
// repository is required.
func resolveRepo(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	if info, statErr := os.Stat(absSearchPath); statErr == nil && !info.IsDir() {
		absSearchPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, absSearchPath)
	if err != nil {
		if input.RepoOptional || (cfg.RepoName != "" && (cfg.Remote() || input.RepoPathStr == "")) {
			return nil
		}
		return err
	}

	cfg.RepoPath = gitRoot
	if cfg.RepoName == "" {
		cfg.RepoName = filepath.Base(gitRoot)
	}
	return nil
}
