// Package native adapts the host's text environment: the narrow charset
// selected by the process locale (or the ANSI code page on Windows) and
// the platform wide-character form (UTF-32 on Unix-like systems, UTF-16
// on Windows).
//
// The narrow charset is resolved once, by Detect, and can be overridden
// by name. Every narrow conversion is strict; callers that want a
// degraded fallback apply it themselves.
package native
