package memory

import (
	"bufio"
	"bytes"
	"os"
	"strconv"
	"strings"

	"gpustat-server/internal/domain"
)

const memInfoPath = "/proc/meminfo"

func (c *Collector) collectProc() (domain.MemoryRecord, error) {
	data, err := os.ReadFile(memInfoPath)
	if err != nil {
		c.log.Error("memory: failed to read /proc/meminfo", "error", err)
		return domain.MemoryRecord{}, err
	}

	return parseMemInfo(data), nil
}

// parseMemInfo reads the key:value table, converting all kB quantities to
// bytes. Used memory is derived as total minus available, with available
// defaulting to free when the kernel does not report it.
func parseMemInfo(data []byte) domain.MemoryRecord {
	values := make(map[string]uint64)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		key, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}

		kb, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}
		values[strings.TrimSpace(key)] = kb * 1024
	}

	total := values["MemTotal"]
	free := values["MemFree"]
	available, ok := values["MemAvailable"]
	if !ok {
		available = free
	}

	// Some virtualized kernels report MemAvailable above MemTotal; the
	// unsigned subtraction must floor at zero, not wrap.
	used := uint64(0)
	if total > available {
		used = total - available
	}

	swapTotal := values["SwapTotal"]
	swapFree := values["SwapFree"]
	swapUsed := uint64(0)
	if swapTotal > swapFree {
		swapUsed = swapTotal - swapFree
	}

	rec := domain.MemoryRecord{
		Total:     total,
		Available: available,
		Used:      used,
		Free:      free,
		SwapTotal: swapTotal,
		SwapUsed:  swapUsed,
		SwapFree:  swapFree,
	}

	if total > 0 {
		rec.Percent = float64(used) / float64(total) * 100
	}
	if swapTotal > 0 {
		rec.SwapPercent = float64(swapUsed) / float64(swapTotal) * 100
	}

	return rec
}
