// Build information, stamped through -ldflags "-X github.com/nobletooth/chain/pkg/utils.Version=...".
// CAUTION: This file shouldn't be removed or else the linker flags wouldn't be applied.

package utils

import (
	"log/slog"
	"strconv"
	"time"
)

// devVersion is reported by builds that weren't stamped with a version.
const devVersion = "v0.0.0-dev"

var (
	TestMode   string // Should be "true" when building test binaries.
	IsTestMode bool
	Version    string
	Commit     string
	BuildTime  string
	StartTime  time.Time
)

func init() {
	StartTime = time.Now()

	// If build info is not set, make that clear.
	if Version == "" {
		Version = devVersion
	}
	if Commit == "" {
		Commit = "unknown"
	}
	if BuildTime == "" {
		BuildTime = "unknown"
	}
	if len(TestMode) > 0 {
		if isTestMode, err := strconv.ParseBool(TestMode); err == nil {
			IsTestMode = isTestMode
		} else {
			slog.Warn("Failed to parse TestMode build flag, defaulting to false", "error", err)
		}
	}
}
