// Package probetest exposes the GPU availability probe as a test assertion.
package probetest

import (
	"os"
	"testing"

	"gpuprobe/internal/gpu"
	"gpuprobe/internal/probe"
)

// AssertGPU runs the probe from a test, writing status lines to stdout, and
// fails the test with the fixed "No GPU detected" message when no
// accelerator is visible.
func AssertGPU(tb testing.TB, query gpu.DeviceQuery) probe.Result {
	tb.Helper()

	result, err := probe.New(query, os.Stdout, nil).Run()
	if err != nil {
		tb.Fatal(err.Error())
	}
	return result
}
