package metadata

import "strings"

// Tag identifies one embedded metadata record.
type Tag string

const (
	// TagExtendedVersion carries an extended version stamped as a single value.
	TagExtendedVersion Tag = "ExtendedVersion"
	// TagExtendedVersionAttribute carries an extended version stamped as one or
	// more fragments. It is kept apart from TagExtendedVersion so builds that
	// stamp both are read back independently.
	TagExtendedVersionAttribute Tag = "ExtendedVersionAttribute"
	// TagSemVer carries a semantic version string.
	TagSemVer Tag = "SemVer"
	// TagModuleVersion is the main module version recorded by the Go toolchain.
	TagModuleVersion Tag = "ModuleVersion"
	// TagRevision is the VCS revision the binary was built from.
	TagRevision Tag = "Revision"
	// TagBuildTime is the build or commit timestamp.
	TagBuildTime Tag = "BuildTime"
)

var knownTags = []Tag{
	TagExtendedVersion,
	TagExtendedVersionAttribute,
	TagSemVer,
	TagModuleVersion,
	TagRevision,
	TagBuildTime,
}

// KnownTags returns the well-known tags in display order.
func KnownTags() []Tag {
	return append([]Tag(nil), knownTags...)
}

// ParseTag resolves name to a well-known tag ignoring case. Unknown names are
// returned as-is so callers can look up custom tags.
func ParseTag(name string) Tag {
	trimmed := strings.TrimSpace(name)
	for _, t := range knownTags {
		if strings.EqualFold(string(t), trimmed) {
			return t
		}
	}
	return Tag(trimmed)
}

// String implements fmt.Stringer.
func (t Tag) String() string {
	return string(t)
}
