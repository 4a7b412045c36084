package system

import (
	"os"
	"strconv"
	"strings"
)

func uptimeSeconds() float64 {
	b, err := os.ReadFile("/proc/uptime")
	if err != nil {
		return 0
	}

	fields := strings.Fields(string(b))
	if len(fields) == 0 {
		return 0
	}

	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return secs
}
