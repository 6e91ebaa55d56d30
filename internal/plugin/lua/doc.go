// Package lua embeds the interpreter that runs plugin action bodies.
//
// Each runtime owns one interpreter state with a restricted library
// set: base, table, string and math only. The io, os, debug and
// package libraries are never opened, so a plugin body cannot reach
// the process environment except through the context bridge and the
// injected capability object.
package lua
