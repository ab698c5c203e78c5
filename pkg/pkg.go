//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// version holds the raw contents of the VERSION file embedded at build time.
//
//go:embed VERSION
var version string

// Version is the semantic version of the sci module with surrounding
// whitespace removed. It is printed by the --version flag.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text, the welcome banner, and default config
	// paths.
	Name = "sci"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Interactive scientific calculator"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
