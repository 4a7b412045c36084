// Package gpu probes NVIDIA devices through a management-library binding
// with a structured nvidia-smi fallback, probes Intel integrated graphics
// through lspci and the drm sysfs tree, and merges everything into one
// ordered record list.
package gpu

import (
	"context"
	"os/exec"
	"time"

	"gpustat-server/internal/domain"
)

func runCommand(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		// Output reports the kill signal, not the reason for it.
		return nil, context.DeadlineExceeded
	}
	return out, err
}

// Collect returns NVIDIA records followed by Intel records. Index is
// assigned by position in the merged sequence.
func (c *Collector) Collect(ctx context.Context) ([]domain.GPURecord, error) {
	records := c.collectNvidia(ctx)
	records = append(records, c.collectIntel(ctx)...)

	for i := range records {
		records[i].Index = i
	}

	return records, nil
}
