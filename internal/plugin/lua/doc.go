// Package lua runs user-defined line rewrites written in Lua.
//
// Every *.lua file in the plugin directory becomes one command named
// lua.<file name>. A plugin defines a global rewrite function that
// receives the text of one line and a context table, and returns the
// replacement text, a list of lines, or nil to leave the line alone:
//
//	description = "wrap the line in console.log"
//	languages = { "javascript", "typescript" }
//
//	function rewrite(line, ctx)
//	  local body = wonderland.trim(line)
//	  if body == "" then
//	    return nil
//	  end
//	  return ctx.indent .. "console.log(" .. body .. ")"
//	end
//
// The context table carries language, number (0-indexed line), indent,
// trimmed, tab and eol.
//
// # Sandbox
//
// Each plugin gets its own State with only the base, string, table and
// math libraries. dofile, loadfile, load, loadstring and require are
// removed, print writes to the plugin log, and every call runs under a
// deadline so a runaway loop cannot hang the host.
package lua
