package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyBatchSize        = "ocr.batch_size"
	keyRolloverSize     = "ocr.rollover_size"
	keyTagMode          = "ocr.tag_mode"
	keyAppendOCRText    = "ocr.append_ocr_text"
	keyHandleExcluded   = "ocr.handle_excluded_items"
	keyTextEncoding     = "ocr.text_encoding"
	keyRuleMustOCR      = "classify.must_ocr"
	keyRuleImages500KB  = "classify.images_over_500kb"
	keyRuleImages1MB    = "classify.images_over_1mb"
	keyRuleImages5MB    = "classify.images_over_5mb"
	keyRuleWordAverage  = "classify.pdf_word_count_average"
	keyExportTarget     = "export.target"
	keyMinioEndpoint    = "minio.endpoint"
	keyMinioBucket      = "minio.bucket"
	keyMinioPrefix      = "minio.prefix"
	keyMinioAccessKey   = "minio.access_key"
	keyMinioSecretKey   = "minio.secret_key"
	keyMinioUseSSL      = "minio.use_ssl"
	keyMaxFlushesPerSec = "tagging.max_flushes_per_second"
	keyLogFormat        = "log.format"
)

var ruleKeys = map[string]domain.RuleKind{
	keyRuleMustOCR:     domain.RuleMustOCR,
	keyRuleImages500KB: domain.RuleImagesOver500KB,
	keyRuleImages1MB:   domain.RuleImagesOver1MB,
	keyRuleImages5MB:   domain.RuleImagesOver5MB,
	keyRuleWordAverage: domain.RuleWordCountAverage,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	rules := defaults.OCR.Rules
	for key, kind := range ruleKeys {
		rules.Set(kind, s.getBool(key, rules.Enabled(kind)))
	}

	settings := &domain.AppSettings{
		OCR: domain.OCRSettings{
			BatchSize:           s.getInt(keyBatchSize, defaults.OCR.BatchSize),
			RolloverSize:        s.getInt(keyRolloverSize, defaults.OCR.RolloverSize),
			TagMode:             s.getTagMode(defaults.OCR.TagMode),
			AppendOCRText:       s.getBool(keyAppendOCRText, defaults.OCR.AppendOCRText),
			HandleExcludedItems: s.getBool(keyHandleExcluded, defaults.OCR.HandleExcludedItems),
			TextEncoding:        s.getString(keyTextEncoding, defaults.OCR.TextEncoding),
			Rules:               rules,
		},
		Export: domain.ExportSettings{
			Target: s.getExportTarget(defaults.Export.Target),
			Minio: domain.MinioSettings{
				Endpoint:  s.configStore.GetString(keyMinioEndpoint),
				Bucket:    s.configStore.GetString(keyMinioBucket),
				Prefix:    s.configStore.GetString(keyMinioPrefix),
				AccessKey: s.configStore.GetString(keyMinioAccessKey),
				SecretKey: s.configStore.GetString(keyMinioSecretKey),
				UseSSL:    s.getBool(keyMinioUseSSL, true),
			},
		},
		Tagging: domain.TaggingSettings{
			MaxFlushesPerSecond: s.getFloat(keyMaxFlushesPerSec, defaults.Tagging.MaxFlushesPerSecond),
		},
		Log: domain.LogSettings{
			Format: s.getString(keyLogFormat, defaults.Log.Format),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyBatchSize, settings.OCR.BatchSize},
		{keyRolloverSize, settings.OCR.RolloverSize},
		{keyTagMode, settings.OCR.TagMode.String()},
		{keyAppendOCRText, settings.OCR.AppendOCRText},
		{keyHandleExcluded, settings.OCR.HandleExcludedItems},
		{keyTextEncoding, settings.OCR.TextEncoding},
		{keyRuleMustOCR, settings.OCR.Rules.MustOCR},
		{keyRuleImages500KB, settings.OCR.Rules.ImagesOver500KB},
		{keyRuleImages1MB, settings.OCR.Rules.ImagesOver1MB},
		{keyRuleImages5MB, settings.OCR.Rules.ImagesOver5MB},
		{keyRuleWordAverage, settings.OCR.Rules.WordCountAverage},
		{keyExportTarget, settings.Export.Target.String()},
		{keyMinioEndpoint, settings.Export.Minio.Endpoint},
		{keyMinioBucket, settings.Export.Minio.Bucket},
		{keyMinioPrefix, settings.Export.Minio.Prefix},
		{keyMinioUseSSL, settings.Export.Minio.UseSSL},
		{keyMaxFlushesPerSec, settings.Tagging.MaxFlushesPerSecond},
		{keyLogFormat, settings.Log.Format},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Credentials are only written when present so an empty form
	// never wipes a stored secret.
	if settings.Export.Minio.AccessKey != "" {
		if err := s.configStore.Set(keyMinioAccessKey, settings.Export.Minio.AccessKey); err != nil {
			return fmt.Errorf("save %s: %w", keyMinioAccessKey, err)
		}
	}
	if settings.Export.Minio.SecretKey != "" {
		if err := s.configStore.Set(keyMinioSecretKey, settings.Export.Minio.SecretKey); err != nil {
			return fmt.Errorf("save %s: %w", keyMinioSecretKey, err)
		}
	}

	return nil
}

// Keys returns every recognised config key in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		keyBatchSize, keyRolloverSize, keyTagMode, keyAppendOCRText,
		keyHandleExcluded, keyTextEncoding,
		keyRuleMustOCR, keyRuleImages500KB, keyRuleImages1MB, keyRuleImages5MB, keyRuleWordAverage,
		keyExportTarget, keyMinioEndpoint, keyMinioBucket, keyMinioPrefix,
		keyMinioAccessKey, keyMinioSecretKey, keyMinioUseSSL,
		keyMaxFlushesPerSec, keyLogFormat,
	}
}

// Set parses and stores a single value by its config key.
func (s *SettingsService) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	var parsed any
	var err error
	switch key {
	case keyBatchSize, keyRolloverSize:
		parsed, err = parsePositiveInt(value)
	case keyTagMode:
		mode := domain.TagMode(strings.ToLower(value))
		if !mode.IsValid() {
			return fmt.Errorf("%w: tag mode must be add, remove or off", domain.ErrInvalidInput)
		}
		parsed = mode.String()
	case keyExportTarget:
		target := domain.ExportTarget(strings.ToLower(value))
		if !target.IsValid() {
			return fmt.Errorf("%w: export target must be local or minio", domain.ErrInvalidInput)
		}
		parsed = target.String()
	case keyAppendOCRText, keyHandleExcluded, keyMinioUseSSL,
		keyRuleMustOCR, keyRuleImages500KB, keyRuleImages1MB, keyRuleImages5MB, keyRuleWordAverage:
		parsed, err = strconv.ParseBool(value)
	case keyMaxFlushesPerSec:
		var f float64
		f, err = strconv.ParseFloat(value, 64)
		if err == nil && f < 0 {
			err = errors.New("must not be negative")
		}
		parsed = f
	case keyTextEncoding, keyMinioEndpoint, keyMinioBucket, keyMinioPrefix,
		keyMinioAccessKey, keyMinioSecretKey, keyLogFormat:
		parsed = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Validate checks if current settings are usable by the engines.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := settings.OCR.Validate(); err != nil {
		return err
	}
	if settings.Export.Target == domain.ExportTargetMinio && !settings.Export.Minio.IsConfigured() {
		return fmt.Errorf("export target %q requires minio.endpoint and minio.bucket",
			settings.Export.Target.Description())
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getTagMode(defaultVal domain.TagMode) domain.TagMode {
	mode := domain.TagMode(s.configStore.GetString(keyTagMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getExportTarget(defaultVal domain.ExportTarget) domain.ExportTarget {
	target := domain.ExportTarget(s.configStore.GetString(keyExportTarget))
	if !target.IsValid() {
		return defaultVal
	}
	return target
}

func parsePositiveInt(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.New("must be at least 1")
	}
	return n, nil
}
