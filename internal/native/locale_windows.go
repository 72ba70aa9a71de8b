//go:build windows

package native

import "golang.org/x/sys/windows"

// hostCharsetName returns the narrow charset of the active ANSI code page.
func hostCharsetName() string {
	return CharsetFromCodePage(windows.GetACP())
}
