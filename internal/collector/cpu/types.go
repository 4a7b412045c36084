package cpu

import (
	"gpustat-server/internal/logger"
)

type Collector struct {
	log       logger.Logger
	libUsable func() bool
}
