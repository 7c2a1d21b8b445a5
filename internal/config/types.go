package config

// Config represents the complete gpuprobe configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Report  ReportConfig  `yaml:"report"`
}

// LoggingConfig controls the structured event log
type LoggingConfig struct {
	Level string `yaml:"level"`
	// File receives the event log; empty means stderr.
	File string `yaml:"file"`
}

// ReportConfig controls where `check --save` writes the probe result
type ReportConfig struct {
	Path string `yaml:"path"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Path + ": " + e.Message
}
