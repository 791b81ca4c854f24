package logging

import (
	"os"
)

// DebugEnabled returns true if debug mode is enabled via PORTAL_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("PORTAL_DEBUG") != ""
}
