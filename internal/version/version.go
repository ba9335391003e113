package version

// Package version describes the running xver binary using its own embedded metadata.

import (
	"github.com/launchbynttdata/launch-extended-version/metadata"
)

const (
	defaultVersion   = "dev"
	defaultBuildDate = "unknown"
)

// versionTags is the fallback chain for the displayed version.
var versionTags = []metadata.Tag{
	metadata.TagExtendedVersion,
	metadata.TagExtendedVersionAttribute,
	metadata.TagSemVer,
	metadata.TagModuleVersion,
}

// Info is the build metadata of one binary.
type Info struct {
	Version   string
	BuildDate string
	Revision  string
}

// FromTable picks the first version tag present in table.
func FromTable(table metadata.Table) Info {
	info := Info{Version: defaultVersion, BuildDate: defaultBuildDate}
	for _, tag := range versionTags {
		if r, ok := table.Lookup(tag); ok && r.Version() != "" {
			info.Version = r.Version()
			break
		}
	}
	if r, ok := table.Lookup(metadata.TagBuildTime); ok && r.Version() != "" {
		info.BuildDate = r.Version()
	}
	if r, ok := table.Lookup(metadata.TagRevision); ok {
		info.Revision = r.Version()
	}
	return info
}

// Current reads the process table.
func Current() Info {
	return FromTable(metadata.Default())
}

// Summary returns a human-readable description of the build metadata.
func (i Info) Summary() string {
	summary := i.Version + " (built " + i.BuildDate
	if i.Revision != "" {
		summary += ", revision " + i.Revision
	}
	return summary + ")"
}
