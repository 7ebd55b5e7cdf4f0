// Package rc parses keyrc configuration files.
//
// A keyrc file is line oriented. Each line holds at most one command:
//
//	# comment
//	set scroll-step = 40
//	include colors.rc
//	nmap <C-O>o :open
//	nunmap <F1>
//	open example.com
//
// The set, include and <mode>map / <mode>unmap keywords are built in.
// Mapping modes and application command names come from Config, and every
// other command is resolved through a CommandFactory supplied by the host
// application.
//
// Parsing never stops at the first problem. Each failing line contributes
// an *Error with the exact line and column, and the remaining lines are
// still parsed. Callers inspect Result.Errors after a parse.
//
// A Parser is not safe for concurrent use.
package rc
