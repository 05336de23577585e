package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRules(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.InboxDir) == "" {
		return errors.New("paths.inbox_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		return errors.New("paths.library_dir must be set")
	}
	if strings.TrimSpace(c.Paths.QuarantineDir) == "" {
		return errors.New("paths.quarantine_dir must be set")
	}
	if c.Paths.InboxDir == c.Paths.LibraryDir {
		return errors.New("paths.inbox_dir and paths.library_dir must differ")
	}
	return nil
}

func (c *Config) validateRules() error {
	if len(c.Rules.AllowedExtensions) == 0 {
		return errors.New("rules.allowed_extensions must list at least one extension")
	}
	if c.Rules.DefaultSeason < 0 {
		return errors.New("rules.default_season must not be negative")
	}
	if c.Rules.SpecialsSeason < 0 {
		return errors.New("rules.specials_season must not be negative")
	}
	return nil
}

func (c *Config) validateLLM() error {
	if !c.LLM.Enabled {
		return nil
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return errors.New("llm.api_key must be set when llm.enabled is true (or export MEDIASHELF_LLM_API_KEY)")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model must be set when llm.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
