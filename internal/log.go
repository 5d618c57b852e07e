package internal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Debug is where DebugBlock writes. The CLI only points it at stdout
// when asked to.
var Debug io.Writer = io.Discard

func DebugBlock(title any, value any) (n int, err error) {
	return WriteBlock(Debug, title, value)
}

func WriteBlock(w io.Writer, title any, value any) (n int, err error) {
	delim := strings.Repeat("-", 12)
	return fmt.Fprintf(w, "%s %s %s\n%s\n", delim, title, delim, value)
}

// Dump is spew.Sdump without pointer addresses, so dumps of equal
// trees read the same.
func Dump(v any) string {
	return dumper.Sdump(v)
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// EnableDebug sends debug blocks to stdout.
func EnableDebug() {
	Debug = os.Stdout
}
