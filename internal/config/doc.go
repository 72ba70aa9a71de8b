// Package config holds the settings for the ustr command.
//
// Settings are layered: built-in defaults, then an optional TOML or YAML
// file, then UNITEXT_ environment variables. For example
//
//	[native]
//	narrow = "iso-8859-1"
//
//	[log]
//	level = "debug"
//
// is overridden by UNITEXT_NATIVE_NARROW=utf-8.
//
// native.wide is an assertion rather than a selection: the wide form is
// fixed per platform and the key only fails validation when it names a
// different one.
package config
