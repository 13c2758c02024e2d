package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bodacc/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bodacc/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(nil))

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultSettings()
	assert.Equal(t, &defaults, settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		KeyLogLevel:       "info",
		KeyArchiveEnabled: true,
		KeyArchivePath:    "/var/lib/bodacc",
		KeyVocabularyPath: "/etc/bodacc/vocabulary.toml",
		KeyStrict:         true,
	})

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, "info", settings.Log.Level)
	assert.True(t, settings.Archive.Enabled)
	assert.Equal(t, "/var/lib/bodacc", settings.Archive.Path)
	assert.Equal(t, "/etc/bodacc/vocabulary.toml", settings.Vocabulary.Path)
	assert.True(t, settings.Pipeline.Strict)
	assert.False(t, settings.Pipeline.SkipProcessed)
}

func TestSettingsService_Get_InvalidLevel(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{KeyLogLevel: "loud"})

	_, err := NewSettingsService(store).Get()
	assert.ErrorContains(t, err, KeyLogLevel)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore(nil)
	service := NewSettingsService(store)

	require.NoError(t, service.Set(KeyStrict, "true"))
	require.NoError(t, service.Set(KeyLogLevel, "debug"))
	require.NoError(t, service.Set(KeyArchivePath, "/data"))

	assert.True(t, store.GetBool(KeyStrict))
	assert.Equal(t, "debug", store.GetString(KeyLogLevel))
	assert.Equal(t, "/data", store.GetString(KeyArchivePath))
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(nil))

	tests := []struct {
		key   string
		value string
	}{
		{KeyStrict, "maybe"},
		{KeyLogLevel, "loud"},
		{"search.mode", "hybrid"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tc.key, tc.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore(nil)).Keys()
	assert.Contains(t, keys, KeyVocabularyPath)
	assert.Len(t, keys, 6)
}
