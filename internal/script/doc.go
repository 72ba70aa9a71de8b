// Package script runs sandboxed Lua scripts with a unitext module.
//
// Scripts see the base, table, string and math libraries only. The global
// unitext table constructs Text values:
//
//	local t = unitext.new("¯\\_(")
//	t:push(0x30C4, "utf-16")
//	t:append(")_/¯")
//	print(t, #t)        --> ¯\_(ツ)_/¯   9
//	print(t:at(4))      --> 12484
//
// Codepoint indices start at 0, as in the Go API. Failed operations raise
// a Lua error carrying the Go error text, so scripts can use pcall.
package script
