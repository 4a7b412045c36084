package cpu

import "testing"

const sampleCPUInfo = `processor	: 0
model name	: AMD Ryzen 9 5950X 16-Core Processor
physical id	: 0
core id		: 0

processor	: 1
model name	: AMD Ryzen 9 5950X 16-Core Processor
physical id	: 0
core id		: 1

processor	: 2
model name	: AMD Ryzen 9 5950X 16-Core Processor
physical id	: 0
core id		: 0

processor	: 3
model name	: AMD Ryzen 9 5950X 16-Core Processor
physical id	: 0
core id		: 1
`

func TestParseModelName(t *testing.T) {
	if got := parseModelName([]byte(sampleCPUInfo)); got != "AMD Ryzen 9 5950X 16-Core Processor" {
		t.Errorf("parseModelName = %q", got)
	}

	if got := parseModelName([]byte("processor: 0\n")); got != "Unknown CPU" {
		t.Errorf("parseModelName without model line = %q, want Unknown CPU", got)
	}
}

func TestParsePhysicalCores(t *testing.T) {
	// Four logical processors over two distinct (physical id, core id)
	// pairs: hyperthreaded dual core.
	if got := parsePhysicalCores([]byte(sampleCPUInfo)); got != 2 {
		t.Errorf("parsePhysicalCores = %d, want 2", got)
	}
}

func TestParsePhysicalCoresMissingTopology(t *testing.T) {
	data := []byte("processor: 0\nmodel name: ARM Cortex-A72\n")
	if got := parsePhysicalCores(data); got != 1 {
		t.Errorf("parsePhysicalCores = %d, want 1 when topology fields absent", got)
	}
}

func TestParseStatLine(t *testing.T) {
	data := []byte(`cpu  100 0 100 800 0 0 0 0 0 0
cpu0 50 0 50 400 0 0 0 0 0 0
`)

	times, err := parseStatLine(data)
	if err != nil {
		t.Fatalf("parseStatLine: %v", err)
	}

	if times.idle != 800 {
		t.Errorf("idle = %d, want 800", times.idle)
	}
	if times.total != 1000 {
		t.Errorf("total = %d, want 1000", times.total)
	}
}

func TestUsageBetween(t *testing.T) {
	tests := []struct {
		name   string
		first  cpuTimes
		second cpuTimes
		want   float64
	}{
		{"half busy", cpuTimes{idle: 0, total: 0}, cpuTimes{idle: 50, total: 100}, 50.0},
		{"fully idle", cpuTimes{idle: 100, total: 100}, cpuTimes{idle: 200, total: 200}, 0.0},
		{"fully busy", cpuTimes{idle: 100, total: 100}, cpuTimes{idle: 100, total: 300}, 100.0},
		{"one decimal place", cpuTimes{idle: 0, total: 0}, cpuTimes{idle: 2, total: 3}, 33.3},
		{"no elapsed time", cpuTimes{idle: 50, total: 100}, cpuTimes{idle: 50, total: 100}, 0.0},
		{"counter wrap clamps", cpuTimes{idle: 0, total: 100}, cpuTimes{idle: 500, total: 200}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usageBetween(tt.first, tt.second)
			if got != tt.want {
				t.Errorf("usageBetween = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("usageBetween = %v, outside [0, 100]", got)
			}
		})
	}
}
