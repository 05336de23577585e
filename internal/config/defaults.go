package config

const (
	defaultInboxDir      = "~/inbox"
	defaultLibraryDir    = "~/library"
	defaultQuarantineDir = "~/quarantine"
	defaultLogDir        = "~/.local/share/mediashelf/logs"
	defaultExtrasDirName = "extras"
	defaultLLMBaseURL    = "https://api.perplexity.ai/chat/completions"
	defaultLLMModel      = "sonar"
	defaultLLMTimeout    = 30
	defaultHistoryKeep   = 200
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

func defaultExtrasMap() map[string]string {
	return map[string]string{
		"NCOP":    "openings",
		"NCED":    "endings",
		"OPENING": "openings",
		"ENDING":  "endings",
		"PV":      "trailers",
		"TRAILER": "trailers",
		"TEASER":  "trailers",
		"PROMO":   "trailers",
		"CM":      "trailers",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InboxDir:      defaultInboxDir,
			LibraryDir:    defaultLibraryDir,
			QuarantineDir: defaultQuarantineDir,
			LogDir:        defaultLogDir,
		},
		Rules: Rules{
			AllowedExtensions: []string{"mkv", "mp4", "avi"},
			DefaultSeason:     1,
			SpecialsSeason:    0,
			ExtrasDirName:     defaultExtrasDirName,
			ExtrasMap:         defaultExtrasMap(),
			CleanupEmptyDirs:  true,
		},
		Series: Series{
			Overrides: map[string]string{},
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeout,
		},
		History: History{
			Enabled: true,
			Keep:    defaultHistoryKeep,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
