/*
Command lrc is a command line tool for experiments with the LR parser generator
and driver of this module. It works on a built-in grammar for arithmetic
expressions.

	lrc tokens "1 + 2 * -3"          print the token stream
	lrc tables --format dot -o g.dot export the CFSM or the action table
	lrc compile "1 + 2 * -3"         compile, print the tree and evaluate
	lrc repl                         compile expressions interactively

Tracing is written to the console, the level is set with --trace.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrc.cli'
func tracer() tracing.Trace {
	return tracing.Select("lrc.cli")
}
