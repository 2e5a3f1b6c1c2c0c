// Package mdl reads and writes the ASCII MDL effect-model format: a
// line-oriented text file with one whitespace-tokenized directive per line,
// a fixed preamble, a root dummy node and one `node emitter ... endnode`
// block per emitter. Parsing is forward-compatible: unknown directives
// inside a node are skipped, and numeric fields the writer omits when zero
// default back to zero on load.
package mdl

import (
	"strconv"

	"github.com/varenx/nwn-emitter-editor/internal/emitter"
)

// Model is a named emitter list, the unit of load/save.
type Model struct {
	Name     string
	Emitters []emitter.Node
}

// ftoa formats a float the way the rest of the file expects: shortest
// representation that round-trips at float32 precision.
func ftoa(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func btoi(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
