package gpu

import (
	"errors"
	"os"
)

const (
	// BackendNVML names the NVIDIA Management Library backend.
	BackendNVML = "NVML"

	// EnvDisableNVML forces the disabled query when set to "1".
	EnvDisableNVML = "GPUPROBE_DISABLE_NVML"
)

var (
	// ErrNVMLDisabled is returned by the disabled query for every device lookup.
	ErrNVMLDisabled = errors.New("NVML disabled")
	// ErrDeviceIndexOutOfRange is returned when a device index is negative or
	// not below the device count.
	ErrDeviceIndexOutOfRange = errors.New("device index out of range")
)

// DeviceQuery is the device-query surface the probe consumes.
//
// Implementations hold no state between calls: two calls against an
// unchanged environment return the same answers.
type DeviceQuery interface {
	// Backend names the framework answering the queries.
	Backend() string
	// IsAvailable reports whether at least one accelerator is visible.
	IsAvailable() bool
	// DeviceCount returns the number of visible accelerators.
	DeviceCount() (int, error)
	// DeviceName returns the display name of the device at index.
	DeviceName(index int) (string, error)
}

func nvmlDisabledByEnv() bool {
	return os.Getenv(EnvDisableNVML) == "1"
}
