package fsutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gpuprobe/internal/logging"
)

const (
	// DefaultDirPermissions is applied to directories created for reports
	DefaultDirPermissions = 0o750
	// DefaultFilePermissions is applied to report files
	DefaultFilePermissions = 0o600
)

// AtomicWriteFile writes data to a temp file next to path and renames it into
// place, so readers never observe a partial file. Missing parent directories
// are created.
func AtomicWriteFile(path string, data []byte, perm os.FileMode, logger *logging.Logger) error {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		if removeErr := os.Remove(tmpPath); removeErr != nil && !os.IsNotExist(removeErr) {
			logger.Warn("fsutil.cleanup.failed", "Failed to remove temp file", map[string]interface{}{
				"path":  tmpPath,
				"error": removeErr.Error(),
			})
		}
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// WriteJSON writes v as indented JSON to path atomically.
func WriteJSON(path string, v interface{}, logger *logging.Logger) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := AtomicWriteFile(path, data, DefaultFilePermissions, logger); err != nil {
		return err
	}

	logger.Info("fsutil.report.saved", "Report saved", map[string]interface{}{
		"filepath": path,
	})
	return nil
}
