// Package domain
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is one complete, timestamped aggregate of all metric records.
// It is immutable once built and never persisted.
type Snapshot struct {
	Timestamp float64      `json:"timestamp"`
	CPU       CPURecord    `json:"cpu"`
	Memory    MemoryRecord `json:"memory"`
	GPUs      []GPURecord  `json:"gpus"`
	System    SystemRecord `json:"system"`
}

type CPUFrequency struct {
	Current float64 `json:"current"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// CPURecord holds whatever the winning tier of the CPU fallback chain
// produced. Frequency and Temperature are nil when the source had no data.
type CPURecord struct {
	Name          string        `json:"name"`
	CoresPhysical int           `json:"cores_physical"`
	CoresLogical  int           `json:"cores_logical"`
	UsagePercent  float64       `json:"usage_percent"`
	UsagePerCore  []float64     `json:"usage_per_core"`
	Frequency     *CPUFrequency `json:"frequency"`
	Temperature   *float64      `json:"temperature"`
}

type MemoryRecord struct {
	Total       uint64  `json:"total"`
	Available   uint64  `json:"available"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	Percent     float64 `json:"percent"`
	SwapTotal   uint64  `json:"swap_total"`
	SwapUsed    uint64  `json:"swap_used"`
	SwapFree    uint64  `json:"swap_free"`
	SwapPercent float64 `json:"swap_percent"`
}

type GPUVendor string

const (
	VendorNVIDIA GPUVendor = "NVIDIA"
	VendorIntel  GPUVendor = "Intel"
)

// GPURecord carries the common optional-field subset shared by both vendors.
// Index is the position within the merged list, not a hardware slot id.
// Fields a tier could not read stay nil and encode as null.
type GPURecord struct {
	Index             int       `json:"index"`
	Name              string    `json:"name"`
	Vendor            GPUVendor `json:"vendor"`
	Card              string    `json:"card,omitempty"`
	MemoryType        string    `json:"memory_type,omitempty"`
	MemoryTotal       *uint64   `json:"memory_total"`
	MemoryUsed        *uint64   `json:"memory_used"`
	MemoryFree        *uint64   `json:"memory_free"`
	MemoryPercent     *float64  `json:"memory_percent"`
	Temperature       *float64  `json:"temperature"`
	GPUUtilization    *float64  `json:"gpu_utilization"`
	MemoryUtilization *float64  `json:"memory_utilization"`
	PowerUsage        *float64  `json:"power_usage"`
	FanSpeed          *float64  `json:"fan_speed"`
	GraphicsClock     *uint64   `json:"graphics_clock"`
	MemoryClock       *uint64   `json:"memory_clock"`
	DriverVersion     string    `json:"driver_version,omitempty"`
}

type SystemRecord struct {
	InstanceID        uuid.UUID       `json:"instance_id"`
	Platform          string          `json:"platform"`
	PlatformVersion   string          `json:"platform_version"`
	Architecture      string          `json:"architecture"`
	Hostname          string          `json:"hostname"`
	Uptime            float64         `json:"uptime"`
	LinuxDistribution string          `json:"linux_distribution"`
	KernelVersion     string          `json:"kernel_version"`
	MetricsAvailable  bool            `json:"metrics_library_available"`
	MetricsStatus     CapabilityState `json:"metrics_library_status"`
	GPUStatus         GPUStatus       `json:"gpu_status"`
}

// CapabilityState describes whether the high-fidelity metrics library is
// usable on this host. Once Available flips to true it stays true for the
// process lifetime.
type CapabilityState struct {
	Available     bool      `json:"available"`
	StatusMessage string    `json:"status_message"`
	LastChecked   time.Time `json:"last_checked"`
}

// GPUStatus is the lightweight diagnostic record explaining why each GPU
// source was or was not used. Errors are collected, never raised.
type GPUStatus struct {
	NVMLAvailable      bool     `json:"nvml_available"`
	SMIAvailable       bool     `json:"nvidia_smi_available"`
	NvidiaGPUsDetected int      `json:"nvidia_gpus_detected"`
	IntelGPUsDetected  int      `json:"intel_gpus_detected"`
	NvidiaLibrary      string   `json:"nvidia_library,omitempty"`
	Errors             []string `json:"gpu_errors"`
}

// StatusReport is the lightweight diagnostic record served without running
// any slow metric sampling.
type StatusReport struct {
	InstanceID uuid.UUID       `json:"instance_id"`
	Timestamp  float64         `json:"timestamp"`
	Metrics    CapabilityState `json:"metrics_library_status"`
	GPU        GPUStatus       `json:"gpu_status"`
}

func Float(v float64) *float64 { return &v }

func Uint(v uint64) *uint64 { return &v }
