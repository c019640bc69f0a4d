// Package buildinfo exposes link-time build metadata of the console binary.
//
// Values are injected with -ldflags, e.g.:
//
//	go build -ldflags "-X github.com/sabastianrafa/powergym-ag-system/internal/buildinfo.Version=v1.2.0"
package buildinfo

import (
	"fmt"
	"io"
)

const notAvailable = "N/A"

var (
	Version = notAvailable
	Date    = notAvailable
	Commit  = notAvailable
)

// PrintBuildData writes the build banner to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", orNA(Version))
	fmt.Fprintf(w, "Build date: %s\n", orNA(Date))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(Commit))
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
