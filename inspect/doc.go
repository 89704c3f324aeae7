/*
Package inspect renders the contents of sorted vectors for debugging.

Containers are first flattened into a list of Rows, then written in one of
three formats:

	WriteDot      a Graphviz DOT graph of partitions and rows
	WriteConsole  an aligned, optionally colored table for terminals
	WriteHTML     an HTML table

Rows keep the order of the container they were taken from. For single-key
containers Primary carries the key and Secondary is empty.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package inspect

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sortedvec'
func tracer() tracing.Trace {
	return tracing.Select("sortedvec")
}
