package metadata

import (
	"slices"
)

// Table is an immutable set of records keyed by tag.
type Table struct {
	records map[Tag]Record
}

// NewTable merges sources into a table. Sources are consulted in order and the
// first one defining a tag wins, so each tag holds at most one record.
func NewTable(sources ...Source) Table {
	records := make(map[Tag]Record)
	for _, src := range sources {
		if src == nil {
			continue
		}
		for tag, values := range src.Entries() {
			if _, taken := records[tag]; taken {
				continue
			}
			records[tag] = New(values...)
		}
	}
	return Table{records: records}
}

// Lookup returns the record for tag. The boolean is false when the build did
// not embed the tag.
func (t Table) Lookup(tag Tag) (Record, bool) {
	r, ok := t.records[tag]
	return r, ok
}

// Tags returns the embedded tags, well-known tags first in their display
// order, then custom tags sorted by name.
func (t Table) Tags() []Tag {
	tags := make([]Tag, 0, len(t.records))
	for _, known := range knownTags {
		if _, ok := t.records[known]; ok {
			tags = append(tags, known)
		}
	}
	var custom []Tag
	for tag := range t.records {
		if !slices.Contains(knownTags, tag) {
			custom = append(custom, tag)
		}
	}
	slices.Sort(custom)
	return append(tags, custom...)
}

// Len returns the number of embedded tags.
func (t Table) Len() int {
	return len(t.records)
}
