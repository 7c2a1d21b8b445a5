package probe

import "time"

// Result is the snapshot one probe run observed.
// Data Contract: gpu_probe.json
type Result struct {
	Backend      string    `json:"backend"`
	Available    bool      `json:"available"`
	DeviceCount  int       `json:"device_count"`
	DeviceName   string    `json:"device_name,omitempty"`
	CheckedAt    time.Time `json:"checked_at"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Passed reports whether the run found an accelerator.
func (r Result) Passed() bool {
	return r.Available && r.DeviceCount >= 1 && r.ErrorMessage == ""
}
