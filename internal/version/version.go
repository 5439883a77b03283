// Package version exposes the tool's own version.
package version

import (
	_ "embed"
	"errors"
	"strings"

	"github.com/indaco/version-register/internal/apperrors"
)

// Unknown is printed when the version cannot be determined.
const Unknown = "unknown"

//go:embed .version
var embedded string

// override is set at build time:
//
//	go build -ldflags "-X github.com/indaco/version-register/internal/version.override=1.2.3"
var override string

// Read returns the build-time version, or the embedded .version file.
func Read() (string, error) {
	if v := strings.TrimSpace(override); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(embedded); v != "" {
		return v, nil
	}
	return "", apperrors.VersionInfo(errors.New("embedded .version is empty"))
}

// GetVersion returns the version, or Unknown when it cannot be read.
func GetVersion() string {
	v, err := Read()
	if err != nil {
		return Unknown
	}
	return v
}
