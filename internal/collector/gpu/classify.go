package gpu

import "strings"

// isVersionMismatch recognizes the driver/management-library skew that
// follows a driver upgrade without a reboot. The binding exposes a structured
// code for it, but some driver stacks only surface the condition in the
// message text, so the substring heuristic stays alongside the code check.
func isVersionMismatch(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "version mismatch") || strings.Contains(msg, "nvml/rm")
}
