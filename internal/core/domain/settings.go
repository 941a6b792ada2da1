package domain

import "fmt"

const unknownDescription = "Unknown"

// Default values for OCR settings.
const (
	DefaultBatchSize    = 1000
	DefaultRolloverSize = 1000
	DefaultTextEncoding = "UTF-8"
)

// OCRSettings is the configuration passed explicitly into each engine.
type OCRSettings struct {
	// BatchSize is the number of pending items that triggers a tag flush.
	BatchSize int

	// RolloverSize is the number of exported files per output directory.
	RolloverSize int

	// TagMode selects whether flushes add, remove or skip tags.
	TagMode TagMode

	// AppendOCRText keeps the original text and appends the OCR text after a separator.
	AppendOCRText bool

	// HandleExcludedItems drops excluded items from classification queries.
	HandleExcludedItems bool

	// TextEncoding is the character encoding of plain-text OCR output.
	TextEncoding string

	// Rules toggles the individual classification rules.
	Rules RuleToggles
}

// Validate checks the settings for values the engines cannot work with.
func (s OCRSettings) Validate() error {
	if s.BatchSize < 1 {
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidInput, s.BatchSize)
	}
	if s.RolloverSize < 1 {
		return fmt.Errorf("%w: rollover size must be positive, got %d", ErrInvalidInput, s.RolloverSize)
	}
	if !s.TagMode.IsValid() {
		return fmt.Errorf("%w: unknown tag mode %q", ErrInvalidInput, s.TagMode)
	}
	return nil
}

// ExportTarget identifies where exported files are written.
type ExportTarget string

// Available export targets.
const (
	// ExportTargetLocal writes into a local directory tree.
	ExportTargetLocal ExportTarget = "local"

	// ExportTargetMinio writes into an S3-compatible bucket.
	ExportTargetMinio ExportTarget = "minio"
)

// IsValid returns true if the export target is recognised.
func (t ExportTarget) IsValid() bool {
	return t == ExportTargetLocal || t == ExportTargetMinio
}

// String returns the string representation.
func (t ExportTarget) String() string {
	return string(t)
}

// Description returns a human-readable description of the target.
func (t ExportTarget) Description() string {
	switch t {
	case ExportTargetLocal:
		return "Local directory"
	case ExportTargetMinio:
		return "MinIO / S3-compatible bucket"
	default:
		return unknownDescription
	}
}

// MinioSettings holds the S3-compatible export target configuration.
type MinioSettings struct {
	Endpoint  string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// IsConfigured returns true if the bucket can be reached.
func (m MinioSettings) IsConfigured() bool {
	return m.Endpoint != "" && m.Bucket != ""
}

// ExportSettings holds export target configuration.
type ExportSettings struct {
	Target ExportTarget
	Minio  MinioSettings
}

// TaggingSettings holds tag service configuration.
type TaggingSettings struct {
	// MaxFlushesPerSecond throttles batch calls to the tag service. Zero disables throttling.
	MaxFlushesPerSecond float64
}

// LogSettings holds logging configuration.
type LogSettings struct {
	// Format is "auto", "text" or "json".
	Format string
}

// AppSettings is the full application configuration.
type AppSettings struct {
	OCR     OCRSettings
	Export  ExportSettings
	Tagging TaggingSettings
	Log     LogSettings
}

// DefaultOCRSettings returns the engine defaults.
func DefaultOCRSettings() OCRSettings {
	return OCRSettings{
		BatchSize:           DefaultBatchSize,
		RolloverSize:        DefaultRolloverSize,
		TagMode:             TagModeAdd,
		AppendOCRText:       false,
		HandleExcludedItems: true,
		TextEncoding:        DefaultTextEncoding,
		Rules:               AllRulesEnabled(),
	}
}

// DefaultAppSettings returns the default application configuration.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		OCR: DefaultOCRSettings(),
		Export: ExportSettings{
			Target: ExportTargetLocal,
		},
		Log: LogSettings{
			Format: "auto",
		},
	}
}
