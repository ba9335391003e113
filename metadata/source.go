package metadata

import (
	"runtime/debug"
	"strings"
)

// Source supplies raw fragments per tag.
type Source interface {
	Entries() Entries
}

// Entries is a static Source. Each tag maps to the fragments of its record.
type Entries map[Tag][]string

// Entries implements Source.
func (e Entries) Entries() Entries {
	return e
}

// Linker-stamped values. The build sets them with
//
//	go build -ldflags "-X github.com/launchbynttdata/launch-extended-version/metadata.extendedVersion=0.1.2-rev3.4"
//
// An empty variable is treated as not embedded.
var (
	extendedVersion          string
	extendedVersionAttribute string
	semVer                   string
	buildTime                string
)

// LinkerSource returns the values stamped through -ldflags "-X".
func LinkerSource() Source {
	stamped := map[Tag]string{
		TagExtendedVersion:          extendedVersion,
		TagExtendedVersionAttribute: extendedVersionAttribute,
		TagSemVer:                   semVer,
		TagBuildTime:                buildTime,
	}
	entries := make(Entries, len(stamped))
	for tag, value := range stamped {
		if value == "" {
			continue
		}
		entries[tag] = []string{value}
	}
	return entries
}

// BuildInfoSource returns what the Go toolchain recorded about the running
// binary: the main module version and the VCS revision and time.
func BuildInfoSource() Source {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Entries{}
	}
	return buildInfoEntries(info)
}

func buildInfoEntries(info *debug.BuildInfo) Entries {
	entries := Entries{}
	if info == nil {
		return entries
	}
	if v := strings.TrimSpace(info.Main.Version); v != "" && v != "(devel)" {
		entries[TagModuleVersion] = []string{v}
	}
	for _, setting := range info.Settings {
		if setting.Value == "" {
			continue
		}
		switch setting.Key {
		case "vcs.revision":
			entries[TagRevision] = []string{setting.Value}
		case "vcs.time":
			entries[TagBuildTime] = []string{setting.Value}
		}
	}
	return entries
}
