// Package constants provides shared constants for the mortgage engine.
package constants

// DateLayout is the format expected in config files for loan start dates and
// is also the output date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerYearBase is the compounding base used to derive the effective
	// daily rate from an annual rate.
	DaysPerYearBase = 360

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// DefaultRecurringInterval is the interval in months applied to recurring
	// prepayments that do not declare one.
	DefaultRecurringInterval = 12

	// PayoffEpsilon is the balance at or below which a loan is considered
	// extinguished.
	PayoffEpsilon = 0.05

	// TransactionTaxRate is the ITF rate applied to disbursed cash flow.
	TransactionTaxRate = 0.00005

	// OptimalExtraIterations is the fixed number of bisection steps used when
	// searching for the minimum recurring extra payment.
	OptimalExtraIterations = 20

	// AffordabilityRiskThreshold is the installment-to-salary percentage above
	// which a loan is flagged as risky.
	AffordabilityRiskThreshold = 30.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides of config keys
	EnvPrefix = "MORTGAGE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)
