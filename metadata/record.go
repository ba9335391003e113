// Package metadata carries build-time version metadata embedded into a binary
// and reads it back by tag.
//
// A Record is built once from the raw text fragments the build stamped for a
// tag. The fragments are concatenated into the canonical version and split
// into segments on '.', '-' and '+':
//
//	r := metadata.New("0.1.2-rev3.4")
//	r.Version()  // "0.1.2-rev3.4"
//	r.Segments() // ["0" "1" "2" "rev3" "4"]
//
// Records are immutable. Every accessor returning a slice returns a copy.
package metadata

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	semver "github.com/blang/semver/v4"
)

// ErrSegmentOutOfRange indicates an index outside [0, Len()).
var ErrSegmentOutOfRange = errors.New("metadata: segment index out of range")

// Record is the immutable carrier for one embedded metadata value.
type Record struct {
	values   []string
	version  string
	segments []string
}

// New concatenates values in order and splits the result into segments.
// It never fails; calling it without values is equivalent to New("").
func New(values ...string) Record {
	version := strings.Join(values, "")
	return Record{
		values:   slices.Clone(values),
		version:  version,
		segments: Split(version),
	}
}

// Version returns the canonical version string.
func (r Record) Version() string {
	return r.version
}

// String implements fmt.Stringer.
func (r Record) String() string {
	return r.version
}

// Values returns the raw fragments the record was built from.
func (r Record) Values() []string {
	return slices.Clone(r.values)
}

// Segments returns a copy of the split version.
func (r Record) Segments() []string {
	return slices.Clone(r.parts())
}

// Len returns the number of segments.
func (r Record) Len() int {
	return len(r.parts())
}

// Segment returns the segment at index i.
func (r Record) Segment(i int) (string, error) {
	parts := r.parts()
	if i < 0 || i >= len(parts) {
		return "", fmt.Errorf("%w: index %d, length %d", ErrSegmentOutOfRange, i, len(parts))
	}
	return parts[i], nil
}

// All yields each segment with its index.
func (r Record) All() iter.Seq2[int, string] {
	parts := r.parts()
	return func(yield func(int, string) bool) {
		for i, s := range parts {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Contains reports whether segment appears in the record.
func (r Record) Contains(segment string) bool {
	return slices.Contains(r.parts(), segment)
}

// IndexOf returns the index of the first matching segment, or -1.
func (r Record) IndexOf(segment string) int {
	return slices.Index(r.parts(), segment)
}

// Equal reports whether both records hold the same segments in the same order.
func (r Record) Equal(other Record) bool {
	return slices.Equal(r.parts(), other.parts())
}

// Compare orders records segment by segment using string comparison.
// The result is -1, 0 or +1.
func (r Record) Compare(other Record) int {
	return slices.Compare(r.parts(), other.parts())
}

// Semver interprets the version as a semantic version. A leading "v" and
// missing minor or patch components are tolerated. Records are never
// validated on construction; this is only a reading aid.
func (r Record) Semver() (semver.Version, error) {
	v, err := semver.ParseTolerant(r.version)
	if err != nil {
		return semver.Version{}, fmt.Errorf("metadata: %q is not a semantic version: %w", r.version, err)
	}
	return v, nil
}

// parts keeps the zero Record consistent with New("").
func (r Record) parts() []string {
	if r.segments == nil {
		return emptyVersion
	}
	return r.segments
}

var emptyVersion = []string{""}
