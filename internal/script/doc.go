// Package script runs Lua hooks that mutate a scene between frames.
//
// A script is plain Lua 5.1 with the base, table, string and math
// libraries. It talks to the scene through the global ui table:
//
//	ui.label(name)                -> text
//	ui.set_label(name, text)
//	ui.progress(name)             -> value, min, max
//	ui.set_progress(name, value)
//	ui.set_range(name, min, max)
//	ui.quit()
//
// The host calls these optional globals:
//
//	on_tick(frame)  before every rendered frame
//	on_key(name)    for every key press ("escape", "rune", "f1", ...)
//	on_text(text)   for typed characters
package script
