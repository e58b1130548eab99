package contacts

import (
	"slices"
	"strings"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Directory maps contact names to records and remembers insertion order
// for display. It is not safe for concurrent use.
type Directory struct {
	records map[Name]*Record
	order   []Name
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{records: make(map[Name]*Record)}
}

// AddRecord stores r under its name. An existing record with the same name
// is replaced and keeps its display position.
func (d *Directory) AddRecord(r *Record) {
	if _, ok := d.records[r.name]; !ok {
		d.order = append(d.order, r.name)
	}
	d.records[r.name] = r
}

// Find looks up a record by exact, case-sensitive name.
func (d *Directory) Find(name Name) (*Record, bool) {
	r, ok := d.records[name]
	return r, ok
}

// Delete removes the record for name if there is one.
func (d *Directory) Delete(name Name) {
	if _, ok := d.records[name]; !ok {
		return
	}
	delete(d.records, name)
	d.order = slices.DeleteFunc(d.order, func(n Name) bool { return n == name })
}

// All returns the records in insertion order.
func (d *Directory) All() []*Record {
	out := make([]*Record, 0, len(d.order))
	for _, n := range d.order {
		out = append(out, d.records[n])
	}
	return out
}

// Len returns the number of records.
func (d *Directory) Len() int { return len(d.order) }

func (d *Directory) String() string {
	lines := make([]string, 0, len(d.order))
	for _, r := range d.All() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, config.LineSeparator)
}
