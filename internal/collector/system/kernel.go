package system

import (
	"context"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

var kernelVersionRe = regexp.MustCompile(`Linux version (\S+)`)

func kernelVersion(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if out, err := exec.CommandContext(ctx, "uname", "-r").Output(); err == nil {
		if s := strings.TrimSpace(string(out)); s != "" {
			return s
		}
	}

	if data, err := os.ReadFile("/proc/version"); err == nil {
		if m := kernelVersionRe.FindSubmatch(data); m != nil {
			return string(m[1])
		}
	}

	return "Unknown"
}

func platformVersionFromProc() string {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
