package services

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/core/ports/driven"
	"github.com/custodia-labs/bodacc/internal/core/ports/driving"
	"github.com/custodia-labs/bodacc/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyLogLevel       = "log.level"
	KeyArchiveEnabled = "archive.enabled"
	KeyArchivePath    = "archive.path"
	KeyVocabularyPath = "vocabulary.path"
	KeyStrict         = "pipeline.strict"
	KeySkipProcessed  = "pipeline.skip_processed"
)

var settingKeys = []string{
	KeyLogLevel, KeyArchiveEnabled, KeyArchivePath, KeyVocabularyPath, KeyStrict, KeySkipProcessed,
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
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Log: domain.LogSettings{
			Level: s.getString(KeyLogLevel, defaults.Log.Level),
		},
		Archive: domain.ArchiveSettings{
			Enabled: s.getBool(KeyArchiveEnabled, defaults.Archive.Enabled),
			Path:    s.getString(KeyArchivePath, defaults.Archive.Path),
		},
		Vocabulary: domain.VocabularySettings{
			Path: s.getString(KeyVocabularyPath, defaults.Vocabulary.Path),
		},
		Pipeline: domain.PipelineSettings{
			Strict:        s.getBool(KeyStrict, defaults.Pipeline.Strict),
			SkipProcessed: s.getBool(KeySkipProcessed, defaults.Pipeline.SkipProcessed),
		},
	}

	if _, err := logger.ParseLevel(settings.Log.Level); err != nil {
		return nil, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	return settings, nil
}

// Set validates and persists one setting given as text.
func (s *SettingsService) Set(key, value string) error {
	var typed any
	switch key {
	case KeyLogLevel:
		if _, err := logger.ParseLevel(value); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		typed = value
	case KeyArchiveEnabled, KeyStrict, KeySkipProcessed:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		typed = b
	case KeyArchivePath, KeyVocabularyPath:
		typed = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the recognised setting keys.
func (s *SettingsService) Keys() []string {
	return SettingKeys()
}

// SettingKeys lists the recognised setting keys.
func SettingKeys() []string {
	return slices.Clone(settingKeys)
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getBool(key string, fallback bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return fallback
	}
	return s.configStore.GetBool(key)
}
