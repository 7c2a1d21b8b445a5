package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"gpuprobe/internal/logging"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateReport()...)

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return []ValidationError{{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of [debug info warn error], got '%s'", c.Logging.Level),
		}}
	}
	return nil
}

func (c *Config) validateReport() []ValidationError {
	path := strings.TrimSpace(c.Report.Path)
	if path == "" {
		return []ValidationError{{
			Path:    "report.path",
			Message: "must not be empty",
		}}
	}

	if ext := filepath.Ext(path); ext != ".json" {
		return []ValidationError{{
			Path:    "report.path",
			Message: fmt.Sprintf("must end in .json, got '%s'", path),
		}}
	}

	return nil
}
