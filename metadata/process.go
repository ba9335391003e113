package metadata

import (
	"errors"
	"sync"
)

// ErrAlreadyLoaded is returned by Configure once the process table exists.
var ErrAlreadyLoaded = errors.New("metadata: process table already loaded")

var process struct {
	mu      sync.Mutex
	once    sync.Once
	loaded  bool
	sources []Source
	table   Table
}

// Configure adds sources consulted ahead of the linker and build info when
// the process table is built. It must run before the first Default or Lookup
// call, typically from main with an embedded document.
func Configure(sources ...Source) error {
	process.mu.Lock()
	defer process.mu.Unlock()
	if process.loaded {
		return ErrAlreadyLoaded
	}
	process.sources = append(process.sources, sources...)
	return nil
}

// Default returns the process table, building it on first use. Precedence is
// configured sources, then linker-stamped values, then Go build info.
func Default() Table {
	process.once.Do(func() {
		process.mu.Lock()
		defer process.mu.Unlock()
		sources := append(append([]Source(nil), process.sources...), LinkerSource(), BuildInfoSource())
		process.table = NewTable(sources...)
		process.loaded = true
	})
	return process.table
}

// Lookup returns the process record for tag.
func Lookup(tag Tag) (Record, bool) {
	return Default().Lookup(tag)
}
