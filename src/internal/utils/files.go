package utils

import (
	"io"

	"github.com/lukassup/route-ctl/src/internal/log"
)

// CloseOrWarn closes c and logs a warning on failure.
func CloseOrWarn(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warnf("Failed to close file: %v", err)
	}
}
