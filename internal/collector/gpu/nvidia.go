package gpu

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"gpustat-server/internal/domain"
)

// collectNvidia short-circuits on the device-listing probe: when nvidia-smi
// is missing, errors, times out, or lists nothing, neither the library
// binding nor the XML query is attempted.
func (c *Collector) collectNvidia(ctx context.Context) []domain.GPURecord {
	out, err := c.run(ctx, listTimeout, "nvidia-smi", "-L")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			c.log.Debug("gpu: nvidia-smi not installed")
		} else {
			c.log.Warn("gpu: nvidia-smi device listing failed", "error", err)
		}
		return nil
	}

	if countDeviceLines(out) == 0 {
		c.log.Debug("gpu: nvidia-smi listed no devices")
		return nil
	}

	records, err := c.nvmlRead()
	if err == nil {
		return records
	}

	if isVersionMismatch(err) {
		c.log.Warn("gpu: driver/library version mismatch, falling back to nvidia-smi XML", "error", err)
	} else {
		c.log.Warn("gpu: library binding unavailable, falling back to nvidia-smi XML", "error", err)
	}

	return c.collectSMI(ctx)
}

func countDeviceLines(out []byte) int {
	n := 0
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "GPU ") {
			n++
		}
	}
	return n
}
