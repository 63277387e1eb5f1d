package version

import (
	"fmt"
	"strings"
	"sync"
)

// validBuildCharacters lists the characters allowed in appBuild
const validBuildCharacters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-."

const (
	appMajor uint = 0
	appMinor uint = 1
	appPatch uint = 0
)

// appBuild can be set at link time with
// -ldflags "-X github.com/argusdag/argusd/version.appBuild=foo".
// A value with characters outside validBuildCharacters is ignored.
var appBuild string

var (
	versionOnce sync.Once
	version     string
)

// Version returns the semantic version of argusd, with the build metadata
// appended when one was set at link time
func Version() string {
	versionOnce.Do(func() {
		version = formatVersion(appMajor, appMinor, appPatch, appBuild)
	})
	return version
}

func formatVersion(major, minor, patch uint, build string) string {
	formatted := fmt.Sprintf("%d.%d.%d", major, minor, patch)
	if build == "" {
		return formatted
	}
	for _, r := range build {
		if !strings.ContainsRune(validBuildCharacters, r) {
			return formatted
		}
	}
	return formatted + "+" + build
}
