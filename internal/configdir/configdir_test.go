package configdir

import (
	"path/filepath"
	"testing"
)

func TestConfigDir_Default(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	if got := ConfigDir(); got != defaultConfigDir {
		t.Errorf("ConfigDir() = %s, want %s", got, defaultConfigDir)
	}
}

func TestConfigDir_Override(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	want, _ := filepath.Abs(dir)
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %s, want %s", got, want)
	}
}
