package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for contributor snapshots.
	DatabaseBackend string

	// GitEngine selects how commit history is read.
	GitEngine string

	// ChartFormat represents the image format of a rendered chart.
	ChartFormat string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All git engines supported.
const (
	CLIEngine   GitEngine = "cli" // default
	GoGitEngine GitEngine = "gogit"
)

// All chart formats supported.
const (
	SVGFormat ChartFormat = "svg" // default
	PNGFormat ChartFormat = "png"
)

// Pagination and chart defaults shared by the server and its clients.
const (
	DefaultLookAround   = 3
	DefaultPerPage      = 25
	MaxPerPage          = 500
	DefaultChartTitle   = "Contributor Impact"
	DefaultChartWidth   = 960
	DefaultChartHeight  = 320
	LoadingPlaceholder  = "Loading..."
	DetailFailureNotice = "Could not load author details"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidGitEngines lists all valid git engines.
var ValidGitEngines = map[GitEngine]struct{}{
	CLIEngine:   {},
	GoGitEngine: {},
}

// ValidChartFormats lists all valid chart formats.
var ValidChartFormats = map[ChartFormat]struct{}{
	SVGFormat: {},
	PNGFormat: {},
}
