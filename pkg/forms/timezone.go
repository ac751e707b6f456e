package forms

import (
	"os"
	"strings"
	"time"
)

// ResolveLocalZone returns the zone name for the environment the program is
// running in: the TZ variable when set, otherwise /etc/timezone, otherwise
// the runtime's local zone name when it is a full IANA name. When nothing
// resolves, the configured default zone stands.
func ResolveLocalZone(fallback string) string {
	if tz := strings.TrimSpace(os.Getenv("TZ")); tz != "" {
		return tz
	}
	if data, err := os.ReadFile("/etc/timezone"); err == nil {
		if tz := strings.TrimSpace(string(data)); tz != "" {
			return tz
		}
	}
	if name, _ := time.Now().Zone(); strings.Contains(name, "/") {
		return name
	}
	return fallback
}
