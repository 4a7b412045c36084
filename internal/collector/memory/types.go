package memory

import (
	"gpustat-server/internal/logger"
)

type Collector struct {
	log logger.Logger

	// libUsable reports whether the high-fidelity metrics library passed
	// its capability check.
	libUsable func() bool
}
