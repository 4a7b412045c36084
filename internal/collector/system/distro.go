package system

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
)

// distribution walks the chain of release files modern and legacy systems
// keep, ending with uname when nothing else names the distribution.
func distribution(ctx context.Context) string {
	if data, err := os.ReadFile("/etc/os-release"); err == nil {
		if label := parseOSRelease(data); label != "" {
			return label
		}
	}

	if data, err := os.ReadFile("/etc/lsb-release"); err == nil {
		if label := parseLSBRelease(data); label != "" {
			return label
		}
	}

	releaseFiles := []struct {
		path  string
		label string
	}{
		{"/etc/redhat-release", "RedHat-based"},
		{"/etc/debian_version", "Debian"},
		{"/etc/fedora-release", "Fedora"},
		{"/etc/centos-release", "CentOS"},
		{"/etc/arch-release", "Arch Linux"},
	}

	for _, rf := range releaseFiles {
		data, err := os.ReadFile(rf.path)
		if err != nil {
			continue
		}
		if content := strings.TrimSpace(string(data)); content != "" {
			return content
		}
		return rf.label
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if out, err := exec.CommandContext(ctx, "uname", "-o").Output(); err == nil {
		if s := strings.TrimSpace(string(out)); s != "" {
			return s
		}
	}

	return "Unknown"
}

func parseOSRelease(data []byte) string {
	var name, version string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "PRETTY_NAME="):
			return unquote(line, "PRETTY_NAME=")
		case strings.HasPrefix(line, "NAME="):
			name = unquote(line, "NAME=")
		case strings.HasPrefix(line, "VERSION="):
			version = unquote(line, "VERSION=")
		}
	}

	if name != "" && version != "" {
		return name + " " + version
	}
	return name
}

func parseLSBRelease(data []byte) string {
	var description, id, release string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "DISTRIB_DESCRIPTION="):
			description = unquote(line, "DISTRIB_DESCRIPTION=")
		case strings.HasPrefix(line, "DISTRIB_ID="):
			id = unquote(line, "DISTRIB_ID=")
		case strings.HasPrefix(line, "DISTRIB_RELEASE="):
			release = unquote(line, "DISTRIB_RELEASE=")
		}
	}

	switch {
	case description != "":
		return description
	case id != "" && release != "":
		return id + " " + release
	default:
		return id
	}
}

func unquote(line, prefix string) string {
	return strings.Trim(strings.TrimPrefix(line, prefix), `"`)
}
