package gpu

import (
	"fmt"

	"gpustat-server/internal/domain"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// readNVML enumerates devices through the management-library binding. The
// library is dlopened at call time, so a missing driver library surfaces
// here as an init error, not at build time. Every attribute is guarded on
// its own: a device that cannot report fan speed still yields a record.
func readNVML() ([]domain.GPURecord, error) {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		if ret == nvml.ERROR_LIB_RM_VERSION_MISMATCH {
			return nil, fmt.Errorf("nvml init: driver/library version mismatch: %s", nvml.ErrorString(ret))
		}
		return nil, fmt.Errorf("nvml init: %s", nvml.ErrorString(ret))
	}
	defer nvml.Shutdown()

	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return nil, fmt.Errorf("nvml device count: %s", nvml.ErrorString(ret))
	}

	driver := ""
	if v, ret := nvml.SystemGetDriverVersion(); ret == nvml.SUCCESS {
		driver = v
	}

	records := make([]domain.GPURecord, 0, count)
	for i := 0; i < count; i++ {
		device, ret := nvml.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			continue
		}
		records = append(records, deviceRecord(device, driver))
	}

	return records, nil
}

func deviceRecord(device nvml.Device, driver string) domain.GPURecord {
	rec := domain.GPURecord{
		Name:          "Unknown",
		Vendor:        domain.VendorNVIDIA,
		DriverVersion: driver,
	}

	if name, ret := device.GetName(); ret == nvml.SUCCESS {
		rec.Name = name
	}

	if info, ret := device.GetMemoryInfo(); ret == nvml.SUCCESS {
		rec.MemoryTotal = domain.Uint(info.Total)
		rec.MemoryUsed = domain.Uint(info.Used)
		rec.MemoryFree = domain.Uint(info.Free)
		if info.Total > 0 {
			rec.MemoryPercent = domain.Float(float64(info.Used) / float64(info.Total) * 100)
		}
	}

	if temp, ret := device.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		rec.Temperature = domain.Float(float64(temp))
	}

	if util, ret := device.GetUtilizationRates(); ret == nvml.SUCCESS {
		rec.GPUUtilization = domain.Float(float64(util.Gpu))
		rec.MemoryUtilization = domain.Float(float64(util.Memory))
	}

	if milliwatts, ret := device.GetPowerUsage(); ret == nvml.SUCCESS {
		rec.PowerUsage = domain.Float(float64(milliwatts) / 1000)
	}

	if fan, ret := device.GetFanSpeed(); ret == nvml.SUCCESS {
		rec.FanSpeed = domain.Float(float64(fan))
	}

	if clock, ret := device.GetClockInfo(nvml.CLOCK_GRAPHICS); ret == nvml.SUCCESS {
		rec.GraphicsClock = domain.Uint(uint64(clock))
	}

	if clock, ret := device.GetClockInfo(nvml.CLOCK_MEM); ret == nvml.SUCCESS {
		rec.MemoryClock = domain.Uint(uint64(clock))
	}

	return rec
}
