package config

// DefaultReportPath is where saved probe results land unless configured.
const DefaultReportPath = "/tmp/gpu_probe.json"

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Report: ReportConfig{
			Path: DefaultReportPath,
		},
	}
}
