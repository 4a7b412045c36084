package cpu

import (
	"os"
	"strconv"
	"strings"

	"gpustat-server/pkg"

	"github.com/shirou/gopsutil/v3/host"
)

var sensorNameHints = []string{"cpu", "core", "package"}

// sensorTemperature picks the first sensor whose key names a CPU-adjacent
// group. No match means the temperature stays unknown.
func sensorTemperature() *float64 {
	temps, err := host.SensorsTemperatures()
	if err != nil {
		return nil
	}

	for _, t := range temps {
		if pkg.ContainsAny(t.SensorKey, sensorNameHints) {
			v := t.Temperature
			return &v
		}
	}

	return nil
}

var thermalZonePaths = []string{
	"/sys/class/thermal/thermal_zone0/temp",
	"/sys/class/thermal/thermal_zone1/temp",
}

// thermalZoneTemperature accepts the first in-range reading; zones report
// millidegrees and anything outside 20-150C is treated as a bogus sensor.
func thermalZoneTemperature() *float64 {
	for _, path := range thermalZonePaths {
		b, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		milli, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
		if err != nil {
			continue
		}

		celsius := milli / 1000
		if celsius >= 20 && celsius <= 150 {
			return &celsius
		}
	}

	return nil
}

func readFreqMHz(path string) float64 {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	khz, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
	if err != nil {
		return 0
	}
	return khz / 1000
}
