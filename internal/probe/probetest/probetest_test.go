package probetest

import (
	"fmt"
	"testing"

	"gpuprobe/internal/gpu"
)

type recordingTB struct {
	testing.TB
	fatal string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Fatal(args ...interface{}) {
	r.fatal = fmt.Sprint(args...)
}

type staticQuery struct {
	names []string
}

func (s staticQuery) Backend() string { return "static" }
func (s staticQuery) IsAvailable() bool { return len(s.names) > 0 }
func (s staticQuery) DeviceCount() (int, error) { return len(s.names), nil }
func (s staticQuery) DeviceName(i int) (string, error) { return s.names[i], nil }

func TestAssertGPU_Passes(t *testing.T) {
	tb := &recordingTB{}
	result := AssertGPU(tb, staticQuery{names: []string{"Device-X", "Device-Y"}})

	if tb.fatal != "" {
		t.Fatalf("Expected no failure, got %q", tb.fatal)
	}
	if result.DeviceCount != 2 || result.DeviceName != "Device-X" {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestAssertGPU_FailsWithoutGPU(t *testing.T) {
	tb := &recordingTB{}
	AssertGPU(tb, gpu.DisabledQuery{})

	if tb.fatal != "No GPU detected by NVML!" {
		t.Errorf("Expected fixed failure message, got %q", tb.fatal)
	}
}
