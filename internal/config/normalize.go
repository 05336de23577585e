package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRules()
	c.normalizeSeries()
	c.normalizeLLM()
	c.normalizeLogging()
	if c.History.Keep <= 0 {
		c.History.Keep = defaultHistoryKeep
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.InboxDir, err = ExpandPath(c.Paths.InboxDir); err != nil {
		return fmt.Errorf("paths.inbox_dir: %w", err)
	}
	if c.Paths.LibraryDir, err = ExpandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.QuarantineDir, err = ExpandPath(c.Paths.QuarantineDir); err != nil {
		return fmt.Errorf("paths.quarantine_dir: %w", err)
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRules() {
	exts := make([]string, 0, len(c.Rules.AllowedExtensions))
	for _, ext := range c.Rules.AllowedExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	c.Rules.AllowedExtensions = exts

	if strings.TrimSpace(c.Rules.ExtrasDirName) == "" {
		c.Rules.ExtrasDirName = defaultExtrasDirName
	}

	// Keyword lookups are case-insensitive; store keys uppercased.
	normalized := make(map[string]string, len(c.Rules.ExtrasMap))
	for keyword, bucket := range c.Rules.ExtrasMap {
		keyword = strings.ToUpper(strings.TrimSpace(keyword))
		bucket = strings.TrimSpace(bucket)
		if keyword != "" && bucket != "" {
			normalized[keyword] = bucket
		}
	}
	c.Rules.ExtrasMap = normalized
}

func (c *Config) normalizeSeries() {
	overrides := make(map[string]string, len(c.Series.Overrides))
	for alias, canonical := range c.Series.Overrides {
		alias = strings.TrimSpace(alias)
		canonical = strings.TrimSpace(canonical)
		if alias != "" && canonical != "" {
			overrides[alias] = canonical
		}
	}
	c.Series.Overrides = overrides
}

func (c *Config) normalizeLLM() {
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("MEDIASHELF_LLM_API_KEY"); ok {
			c.LLM.APIKey = value
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
