// Arbor renders declarative view trees described by YAML scene documents
// onto a terminal-sized grid of cells.
package main

import (
	"os"

	"src.arbor.sh/pkg/prog"
	"src.arbor.sh/pkg/viewer"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(viewer.Program{}, viewer.JournalProgram{})))
}
