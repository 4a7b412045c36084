package gpu

import (
	"context"
	"encoding/xml"
	"strconv"
	"strings"

	"gpustat-server/internal/domain"
)

type smiLog struct {
	XMLName xml.Name `xml:"nvidia_smi_log"`
	GPUs    []smiGPU `xml:"gpu"`
}

type smiGPU struct {
	ProductName string    `xml:"product_name"`
	FanSpeed    string    `xml:"fan_speed"`
	Memory      smiMemory `xml:"fb_memory_usage"`
	Temperature struct {
		GPUTemp string `xml:"gpu_temp"`
	} `xml:"temperature"`
	Utilization struct {
		GPUUtil    string `xml:"gpu_util"`
		MemoryUtil string `xml:"memory_util"`
	} `xml:"utilization"`
	// nvidia-smi renamed the power block across driver generations.
	PowerReadings struct {
		PowerDraw string `xml:"power_draw"`
	} `xml:"power_readings"`
	GPUPowerReadings struct {
		PowerDraw string `xml:"power_draw"`
	} `xml:"gpu_power_readings"`
}

type smiMemory struct {
	Total string `xml:"total"`
	Used  string `xml:"used"`
	Free  string `xml:"free"`
}

func (c *Collector) collectSMI(ctx context.Context) []domain.GPURecord {
	out, err := c.run(ctx, queryTimeout, "nvidia-smi", "-q", "-x")
	if err != nil {
		c.log.Warn("gpu: nvidia-smi XML query failed", "error", err)
		return nil
	}

	records, err := parseSMIXML(out)
	if err != nil {
		c.log.Warn("gpu: nvidia-smi XML parse failed", "error", err)
		return nil
	}

	return records
}

// parseSMIXML builds one record per <gpu> node in document order. Values
// arrive as "15360 MiB" / "45 C" / "23.45 W" strings; a literal N/A means
// the field is unknown, not zero.
func parseSMIXML(data []byte) ([]domain.GPURecord, error) {
	var log smiLog
	if err := xml.Unmarshal(data, &log); err != nil {
		return nil, err
	}

	records := make([]domain.GPURecord, 0, len(log.GPUs))
	for _, g := range log.GPUs {
		rec := domain.GPURecord{
			Name:   "Unknown",
			Vendor: domain.VendorNVIDIA,
		}
		if g.ProductName != "" {
			rec.Name = g.ProductName
		}

		rec.MemoryTotal = mibToBytes(g.Memory.Total)
		rec.MemoryUsed = mibToBytes(g.Memory.Used)
		rec.MemoryFree = mibToBytes(g.Memory.Free)
		if rec.MemoryTotal != nil && *rec.MemoryTotal > 0 && rec.MemoryUsed != nil {
			rec.MemoryPercent = domain.Float(float64(*rec.MemoryUsed) / float64(*rec.MemoryTotal) * 100)
		}

		rec.Temperature = numericField(g.Temperature.GPUTemp)
		rec.GPUUtilization = numericField(g.Utilization.GPUUtil)
		rec.MemoryUtilization = numericField(g.Utilization.MemoryUtil)
		rec.FanSpeed = numericField(g.FanSpeed)

		rec.PowerUsage = numericField(g.GPUPowerReadings.PowerDraw)
		if rec.PowerUsage == nil {
			rec.PowerUsage = numericField(g.PowerReadings.PowerDraw)
		}

		records = append(records, rec)
	}

	return records, nil
}

func firstToken(s string) (string, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 || fields[0] == "N/A" {
		return "", false
	}
	return fields[0], true
}

func mibToBytes(s string) *uint64 {
	tok, ok := firstToken(s)
	if !ok {
		return nil
	}

	mib, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return nil
	}
	return domain.Uint(mib * 1024 * 1024)
}

func numericField(s string) *float64 {
	tok, ok := firstToken(s)
	if !ok {
		return nil
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil
	}
	return domain.Float(v)
}
