//go:build !windows

package native

import "os"

// hostCharsetName returns the narrow charset named by the process locale.
func hostCharsetName() string {
	return CharsetFromLocale(localeFromEnv(os.Getenv))
}
