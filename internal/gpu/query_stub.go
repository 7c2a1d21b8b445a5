//go:build !cuda

package gpu

import "gpuprobe/internal/logging"

// NewDeviceQuery returns a disabled query; NVML is only linked with -tags cuda.
func NewDeviceQuery(logger *logging.Logger) DeviceQuery {
	reason := "rebuild with -tags cuda"
	if nvmlDisabledByEnv() {
		reason = EnvDisableNVML + "=1"
	}
	logger.Info("gpu.query.disabled", "Skipping NVML device query", map[string]interface{}{
		"reason": reason,
	})
	return DisabledQuery{Reason: reason}
}
