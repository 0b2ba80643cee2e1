package store

import (
	"fmt"
	"sync"

	"src.arbor.sh/pkg/fiber"
)

// Record describes one mutation. Elements are described by their content.
type Record struct {
	Kind     string          `json:"kind"`
	Element  string          `json:"element"`
	Previous string          `json:"previous,omitempty"`
	Parent   string          `json:"parent,omitempty"`
	Index    int             `json:"index,omitempty"`
	Geometry *fiber.Geometry `json:"geometry,omitempty"`
}

func (r Record) String() string {
	s := r.Kind + " " + r.Element
	if r.Previous != "" {
		s += " replacing " + r.Previous
	}
	if r.Parent != "" {
		s += fmt.Sprintf(" in %s at %d", r.Parent, r.Index)
	}
	if r.Geometry != nil {
		s += " at " + r.Geometry.String()
	}
	return s
}

// Records converts a batch of mutations to records. It should be called
// after the batch is committed, since elements are described by their
// current content.
func Records(batch []fiber.Mutation) []Record {
	records := make([]Record, 0, len(batch))
	for _, m := range batch {
		records = append(records, record(m))
	}
	return records
}

func record(m fiber.Mutation) Record {
	switch m := m.(type) {
	case fiber.Insert:
		return Record{Kind: "insert", Element: describe(m.Element), Parent: describe(m.Parent), Index: m.Index}
	case fiber.Remove:
		return Record{Kind: "remove", Element: describe(m.Element), Parent: describe(m.Parent)}
	case fiber.Replace:
		return Record{Kind: "replace", Element: describe(m.Replacement), Previous: describe(m.Previous), Parent: describe(m.Parent)}
	case fiber.Update:
		return Record{Kind: "update", Element: fmt.Sprint(m.Content), Geometry: &m.Geometry}
	case fiber.Layout:
		return Record{Kind: "layout", Element: describe(m.Element), Geometry: &m.Geometry}
	}
	panic(fmt.Sprintf("store: unknown mutation %T", m))
}

func describe(e fiber.Element) string { return fmt.Sprint(e.Content()) }

// Recorder appends every batch it is given to a journal. Its Record method
// can be installed with [fiber.OnCommit]. Empty batches are not journaled.
type Recorder struct {
	journal *Journal

	mu  sync.Mutex
	err error
}

// NewRecorder creates a Recorder appending to j.
func NewRecorder(j *Journal) *Recorder { return &Recorder{journal: j} }

// Record journals a committed batch. After the first error, batches are
// dropped; the error is reported by Err.
func (r *Recorder) Record(batch []fiber.Mutation) {
	if len(batch) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	if _, err := r.journal.Append(Records(batch)); err != nil {
		r.err = err
		logger.Println("dropping batches:", err)
	}
}

// Err returns the first error encountered by Record.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
