package gpu

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gpustat-server/internal/domain"
)

const intelVendorID = "0x8086"

var intelNameRe = regexp.MustCompile(`Intel.*?\[.*?\]`)

// collectIntel appends hits from both detection paths, lspci and the drm
// sysfs tree, without de-duplicating between them. A single integrated GPU
// visible to both scans therefore yields two records; merging them would
// need a canonical device identity and would change observable output.
func (c *Collector) collectIntel(ctx context.Context) []domain.GPURecord {
	var records []domain.GPURecord
	records = append(records, c.intelFromLspci(ctx)...)
	records = append(records, c.intelFromSysfs()...)
	return records
}

func (c *Collector) intelFromLspci(ctx context.Context) []domain.GPURecord {
	out, err := c.run(ctx, queryTimeout, "lspci", "-v")
	if err != nil {
		c.log.Debug("gpu: lspci unavailable", "error", err)
		return nil
	}

	var records []domain.GPURecord
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.Contains(line, "VGA compatible controller") || !strings.Contains(line, "Intel") {
			continue
		}

		name := intelNameRe.FindString(line)
		if name == "" {
			name = "Intel GPU"
		}

		records = append(records, domain.GPURecord{
			Name:   name,
			Vendor: domain.VendorIntel,
		})
	}

	return records
}

func (c *Collector) intelFromSysfs() []domain.GPURecord {
	entries, err := os.ReadDir(c.sysfsRoot)
	if err != nil {
		return nil
	}

	var records []domain.GPURecord
	for _, e := range entries {
		card := e.Name()
		if !strings.HasPrefix(card, "card") || strings.Contains(card, "-") {
			continue
		}

		vendorPath := filepath.Join(c.sysfsRoot, card, "device", "vendor")
		b, err := os.ReadFile(vendorPath)
		if err != nil {
			continue
		}

		if strings.TrimSpace(string(b)) != intelVendorID {
			continue
		}

		records = append(records, domain.GPURecord{
			Name:       "Intel Integrated Graphics",
			Vendor:     domain.VendorIntel,
			Card:       card,
			MemoryType: "Shared System Memory",
		})
	}

	return records
}
