package probe

import (
	"fmt"
	"io"
	"time"

	"gpuprobe/internal/gpu"
	"gpuprobe/internal/logging"
)

// firstDevice is the only index whose name is read.
const firstDevice = 0

// Prober runs the GPU availability check against a device query and writes
// the human-readable status lines to out.
type Prober struct {
	query  gpu.DeviceQuery
	out    io.Writer
	logger *logging.Logger
	now    func() time.Time
}

// New creates a prober. A nil logger disables event logging.
func New(query gpu.DeviceQuery, out io.Writer, logger *logging.Logger) *Prober {
	return &Prober{
		query:  query,
		out:    out,
		logger: logger,
		now:    time.Now,
	}
}

// Check runs a single probe and returns its failure, if any.
func Check(query gpu.DeviceQuery, out io.Writer) error {
	_, err := New(query, out, nil).Run()
	return err
}

// Run queries availability and, when an accelerator is present, the device
// count and the name of device 0. A missing accelerator yields a
// *PreconditionError; query failures after availability was confirmed are
// returned wrapped.
func (p *Prober) Run() (Result, error) {
	result := Result{
		Backend:   p.query.Backend(),
		CheckedAt: p.now().UTC(),
	}

	p.logger.Info("probe.start", "Querying accelerator availability", map[string]interface{}{
		"backend": result.Backend,
	})

	result.Available = p.query.IsAvailable()
	p.printf("GPU available: %s\n", formatBool(result.Available))

	if !result.Available {
		return p.fail(result)
	}

	count, err := p.query.DeviceCount()
	if err != nil {
		return p.queryFailed(result, fmt.Errorf("failed to get device count: %w", err))
	}
	if count < 1 {
		// Available with no devices breaks count >= 1; treat as absent.
		p.logger.Warn("probe.count.inconsistent", "Accelerator reported available without devices", map[string]interface{}{
			"count": count,
		})
		result.Available = false
		return p.fail(result)
	}
	result.DeviceCount = count

	name, err := p.query.DeviceName(firstDevice)
	if err != nil {
		return p.queryFailed(result, fmt.Errorf("failed to get name of device %d: %w", firstDevice, err))
	}
	result.DeviceName = name

	p.printf("Number of GPUs: %d\n", result.DeviceCount)
	p.printf("GPU name: %s\n", result.DeviceName)

	p.logger.Info("probe.passed", "Accelerator detected", map[string]interface{}{
		"backend": result.Backend,
		"count":   result.DeviceCount,
		"name":    result.DeviceName,
	})
	return result, nil
}

func (p *Prober) fail(result Result) (Result, error) {
	err := &PreconditionError{Backend: result.Backend}
	result.ErrorMessage = err.Error()
	p.logger.Error("probe.failed", "No accelerator detected", map[string]interface{}{
		"backend": result.Backend,
	})
	return result, err
}

func (p *Prober) queryFailed(result Result, err error) (Result, error) {
	result.ErrorMessage = err.Error()
	p.logger.Error("probe.query.failed", "Device query failed", map[string]interface{}{
		"backend": result.Backend,
		"error":   err.Error(),
	})
	return result, err
}

func (p *Prober) printf(format string, args ...interface{}) {
	if p.out == nil {
		return
	}
	fmt.Fprintf(p.out, format, args...)
}

// formatBool renders booleans the way the status lines have always shown them.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
