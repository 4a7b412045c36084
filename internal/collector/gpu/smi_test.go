package gpu

import "testing"

const sampleSMIXML = `<?xml version="1.0" ?>
<nvidia_smi_log>
	<driver_version>550.54.14</driver_version>
	<attached_gpus>2</attached_gpus>
	<gpu id="00000000:01:00.0">
		<product_name>NVIDIA GeForce RTX 3080</product_name>
		<fb_memory_usage>
			<total>10240 MiB</total>
			<used>512 MiB</used>
			<free>9728 MiB</free>
		</fb_memory_usage>
		<utilization>
			<gpu_util>37 %</gpu_util>
			<memory_util>12 %</memory_util>
		</utilization>
		<temperature>
			<gpu_temp>56 C</gpu_temp>
		</temperature>
		<gpu_power_readings>
			<power_draw>187.32 W</power_draw>
		</gpu_power_readings>
		<fan_speed>43 %</fan_speed>
	</gpu>
	<gpu id="00000000:02:00.0">
		<product_name>NVIDIA A100-PCIE-40GB</product_name>
		<fb_memory_usage>
			<total>40960 MiB</total>
			<used>0 MiB</used>
			<free>40960 MiB</free>
		</fb_memory_usage>
		<utilization>
			<gpu_util>N/A</gpu_util>
			<memory_util>N/A</memory_util>
		</utilization>
		<temperature>
			<gpu_temp>N/A</gpu_temp>
		</temperature>
		<power_readings>
			<power_draw>N/A</power_draw>
		</power_readings>
		<fan_speed>N/A</fan_speed>
	</gpu>
</nvidia_smi_log>
`

func TestParseSMIXML(t *testing.T) {
	records, err := parseSMIXML([]byte(sampleSMIXML))
	if err != nil {
		t.Fatalf("parseSMIXML: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.Name != "NVIDIA GeForce RTX 3080" {
		t.Errorf("Name = %q", first.Name)
	}
	if first.Vendor != "NVIDIA" {
		t.Errorf("Vendor = %q", first.Vendor)
	}
	if first.MemoryTotal == nil || *first.MemoryTotal != 10240*1024*1024 {
		t.Errorf("MemoryTotal = %v, want 10240 MiB in bytes", first.MemoryTotal)
	}
	if first.MemoryUsed == nil || *first.MemoryUsed != 512*1024*1024 {
		t.Errorf("MemoryUsed = %v, want 512 MiB in bytes", first.MemoryUsed)
	}
	if first.MemoryPercent == nil || *first.MemoryPercent != 5.0 {
		t.Errorf("MemoryPercent = %v, want 5.0", first.MemoryPercent)
	}
	if first.Temperature == nil || *first.Temperature != 56 {
		t.Errorf("Temperature = %v, want 56", first.Temperature)
	}
	if first.GPUUtilization == nil || *first.GPUUtilization != 37 {
		t.Errorf("GPUUtilization = %v, want 37", first.GPUUtilization)
	}
	if first.PowerUsage == nil || *first.PowerUsage != 187.32 {
		t.Errorf("PowerUsage = %v, want 187.32", first.PowerUsage)
	}
	if first.FanSpeed == nil || *first.FanSpeed != 43 {
		t.Errorf("FanSpeed = %v, want 43", first.FanSpeed)
	}

	// N/A fields stay unknown, never zero.
	second := records[1]
	if second.Temperature != nil {
		t.Errorf("Temperature = %v, want nil for N/A", second.Temperature)
	}
	if second.GPUUtilization != nil {
		t.Errorf("GPUUtilization = %v, want nil for N/A", second.GPUUtilization)
	}
	if second.PowerUsage != nil {
		t.Errorf("PowerUsage = %v, want nil for N/A", second.PowerUsage)
	}
	if second.FanSpeed != nil {
		t.Errorf("FanSpeed = %v, want nil for N/A", second.FanSpeed)
	}
	if second.MemoryPercent == nil || *second.MemoryPercent != 0 {
		t.Errorf("MemoryPercent = %v, want 0 for an idle card", second.MemoryPercent)
	}
}

func TestParseSMIXMLRejectsGarbage(t *testing.T) {
	if _, err := parseSMIXML([]byte("not xml at all")); err == nil {
		t.Fatal("expected parse error")
	}
}
