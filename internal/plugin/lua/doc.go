// Package lua lets Lua scripts define custom commands for config files.
//
// A script registers commands through the keyrc module:
//
//	keyrc.command {
//	    name = "open",
//	    arg = true,
//	    help = "Open a URL",
//	    run = function(arg, count)
//	        return { url = arg, tabs = count or 1 }
//	    end,
//	}
//
// Factory implements rc.CommandFactory and rc.MetaDataProvider, so a
// parser built with it accepts "open example.com" as a custom command.
// The run function is optional; when present its first return value is
// stored in Command.Data, and returning nil plus a message rejects the
// argument.
//
// Scripts run in a restricted state: only the base, table, string and
// math libraries are opened, the functions that load code from files or
// strings are removed, and every call is bounded by an execution timeout.
package lua
