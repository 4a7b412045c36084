package gpu

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"gpustat-server/internal/domain"
)

// Status is the fast diagnostic companion to Collect. It runs only the
// short-timeout device listing and never initializes the library binding:
// under a driver/library mismatch an init call can hang or crash, which a
// per-request status probe must not risk.
func (c *Collector) Status(ctx context.Context) domain.GPUStatus {
	status := domain.GPUStatus{
		NvidiaLibrary: "go-nvml",
		Errors:        []string{},
	}

	out, err := c.run(ctx, statusTimeout, "nvidia-smi", "-L")
	if err != nil {
		switch {
		case errors.Is(err, exec.ErrNotFound):
			status.Errors = append(status.Errors, "nvidia-smi not found")
		case errors.Is(err, context.DeadlineExceeded):
			status.Errors = append(status.Errors, "nvidia-smi timeout")
		default:
			status.Errors = append(status.Errors, fmt.Sprintf("nvidia-smi error: %v", err))
		}
		return status
	}

	status.SMIAvailable = true
	status.NvidiaGPUsDetected = countDeviceLines(out)
	status.Errors = append(status.Errors, "go-nvml linked but not initialized by status probe")

	return status
}
