package gpu

import "fmt"

// DisabledQuery answers every query with "no accelerator". It backs builds
// without the cuda tag and hosts where NVML is switched off.
type DisabledQuery struct {
	Reason string
}

// Backend returns the NVML backend name; the disabled query stands in for it.
func (q DisabledQuery) Backend() string {
	return BackendNVML
}

// IsAvailable always returns false.
func (q DisabledQuery) IsAvailable() bool {
	return false
}

// DeviceCount always returns zero.
func (q DisabledQuery) DeviceCount() (int, error) {
	return 0, q.err()
}

// DeviceName always fails.
func (q DisabledQuery) DeviceName(int) (string, error) {
	return "", q.err()
}

func (q DisabledQuery) err() error {
	if q.Reason == "" {
		return ErrNVMLDisabled
	}
	return fmt.Errorf("%w: %s", ErrNVMLDisabled, q.Reason)
}
