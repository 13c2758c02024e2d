package domain

// Settings is the resolved application configuration.
type Settings struct {
	Log        LogSettings        `json:"log"`
	Archive    ArchiveSettings    `json:"archive"`
	Vocabulary VocabularySettings `json:"vocabulary"`
	Pipeline   PipelineSettings   `json:"pipeline"`
}

// LogSettings configures diagnostics.
type LogSettings struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level"`
}

// ArchiveSettings configures the SQLite record archive.
type ArchiveSettings struct {
	Enabled bool `json:"enabled"`

	// Path is the archive data directory. Empty selects ~/.bodacc/data.
	Path string `json:"path"`
}

// VocabularySettings points at a user vocabulary merged over the
// embedded one.
type VocabularySettings struct {
	Path string `json:"path"`
}

// PipelineSettings tunes the driver.
type PipelineSettings struct {
	// Strict turns contract violations into run-fatal errors.
	Strict bool `json:"strict"`

	// SkipProcessed passes over envelopes already in the archive ledger.
	SkipProcessed bool `json:"skip_processed"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Log: LogSettings{Level: "warn"},
	}
}
