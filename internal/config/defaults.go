package config

const (
	defaultDataDir              = "~/.local/share/crate"
	defaultLogDir               = "~/.local/share/crate/logs"
	defaultBackupDir            = "~/.local/share/crate/backups"
	defaultDuplicateThreshold   = 0.85
	defaultOwnedArtistThreshold = 0.85
	defaultOwnedTitleThreshold  = 0.9
	defaultSameArtistThreshold  = 0.95
	defaultQueryThreshold       = 0.85
	defaultMediaType            = "cd"
	defaultSortKey              = "created"
	defaultSortOrder            = "desc"
	defaultLogFormat            = "console"
	defaultLogLevel             = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			BackupDir: defaultBackupDir,
		},
		Matching: Matching{
			DuplicateThreshold:   defaultDuplicateThreshold,
			OwnedArtistThreshold: defaultOwnedArtistThreshold,
			OwnedTitleThreshold:  defaultOwnedTitleThreshold,
			SameArtistThreshold:  defaultSameArtistThreshold,
			QueryThreshold:       defaultQueryThreshold,
		},
		Display: Display{
			MediaType: defaultMediaType,
			SortKey:   defaultSortKey,
			SortOrder: defaultSortOrder,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
