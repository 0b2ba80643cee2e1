package viewer

import (
	"fmt"
	"os"

	"src.arbor.sh/pkg/prog"
	"src.arbor.sh/pkg/store"
)

// JournalProgram prints the batches journaled by earlier runs in the journal
// given with -db. It runs when no scene is given.
type JournalProgram struct{}

func (JournalProgram) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if f.DB == "" || len(args) > 0 {
		return prog.ErrNotSuitable
	}
	if _, err := os.Stat(f.DB); err != nil {
		return err
	}
	j, err := store.Open(f.DB)
	if err != nil {
		return err
	}
	defer j.Close()
	batches, err := j.Batches()
	if err != nil {
		return err
	}
	if f.JSON {
		return writeJSON(fds[1], batches)
	}
	for _, b := range batches {
		fmt.Fprintf(fds[1], "batch %d\n", b.Seq)
		for _, r := range b.Records {
			fmt.Fprintf(fds[1], "  %s\n", r)
		}
	}
	return nil
}
