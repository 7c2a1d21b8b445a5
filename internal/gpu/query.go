//go:build cuda

package gpu

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"gpuprobe/internal/logging"
)

// NVMLQuery answers device queries through NVML. Every call initializes NVML
// and shuts it down again before returning, so no handle outlives a call.
type NVMLQuery struct {
	nvml   NVMLInterface
	logger *logging.Logger
}

// NewDeviceQuery returns the NVML-backed query, or a disabled query when
// GPUPROBE_DISABLE_NVML=1.
func NewDeviceQuery(logger *logging.Logger) DeviceQuery {
	if nvmlDisabledByEnv() {
		logger.Info("gpu.query.disabled", "Skipping NVML device query", map[string]interface{}{
			"reason": EnvDisableNVML + "=1",
		})
		return DisabledQuery{Reason: EnvDisableNVML + "=1"}
	}
	return NewNVMLQuery(NewRealNVML(), logger)
}

// NewNVMLQuery creates a query over a custom NVML interface (for testing)
func NewNVMLQuery(nvmlInterface NVMLInterface, logger *logging.Logger) *NVMLQuery {
	return &NVMLQuery{
		nvml:   nvmlInterface,
		logger: logger,
	}
}

// Backend returns "NVML".
func (q *NVMLQuery) Backend() string {
	return BackendNVML
}

// IsAvailable reports whether NVML initializes and sees at least one device.
func (q *NVMLQuery) IsAvailable() bool {
	count, err := q.DeviceCount()
	if err != nil {
		return false
	}
	return count > 0
}

// DeviceCount returns the number of devices NVML reports.
func (q *NVMLQuery) DeviceCount() (int, error) {
	var count int
	err := q.withNVML(func() error {
		var ret nvml.Return
		count, ret = q.nvml.DeviceGetCount()
		if ret != nvml.SUCCESS {
			q.logger.Error("gpu.device.count.failed", "Failed to get GPU count", map[string]interface{}{
				"error": nvml.ErrorString(ret),
			})
			return fmt.Errorf("failed to get device count: %s", nvml.ErrorString(ret))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	q.logger.Debug("gpu.device.count", "Found GPU devices", map[string]interface{}{
		"count": count,
	})
	return count, nil
}

// DeviceName returns the display name of the device at index.
func (q *NVMLQuery) DeviceName(index int) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("%w: %d", ErrDeviceIndexOutOfRange, index)
	}

	var name string
	err := q.withNVML(func() error {
		count, ret := q.nvml.DeviceGetCount()
		if ret != nvml.SUCCESS {
			return fmt.Errorf("failed to get device count: %s", nvml.ErrorString(ret))
		}
		if index >= count {
			return fmt.Errorf("%w: %d (count %d)", ErrDeviceIndexOutOfRange, index, count)
		}

		device, ret := q.nvml.DeviceGetHandleByIndex(index)
		if ret != nvml.SUCCESS {
			q.logger.Warn("gpu.device.handle.failed", "Failed to get device handle", map[string]interface{}{
				"index": index,
				"error": nvml.ErrorString(ret),
			})
			return fmt.Errorf("failed to get handle for device %d: %s", index, nvml.ErrorString(ret))
		}

		name, ret = device.GetName()
		if ret != nvml.SUCCESS {
			return fmt.Errorf("failed to get name of device %d: %s", index, nvml.ErrorString(ret))
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	q.logger.Debug("gpu.device.detected", "GPU device detected", map[string]interface{}{
		"index": index,
		"name":  name,
	})
	return name, nil
}

func (q *NVMLQuery) withNVML(fn func() error) error {
	if ret := q.nvml.Init(); ret != nvml.SUCCESS {
		q.logger.Warn("gpu.nvml.init.failed", "NVML initialization failed", map[string]interface{}{
			"error": nvml.ErrorString(ret),
		})
		return fmt.Errorf("failed to initialize NVML: %s", nvml.ErrorString(ret))
	}
	defer func() {
		if ret := q.nvml.Shutdown(); ret != nvml.SUCCESS {
			q.logger.Warn("gpu.nvml.shutdown.failed", "NVML shutdown failed", map[string]interface{}{
				"error": nvml.ErrorString(ret),
			})
		}
	}()
	return fn()
}
