// Package buildinfo holds values injected at link time with
//
//	go build -ldflags "-X github.com/dmitrijs2005/deepneumoscan/internal/buildinfo.Version=v1.0.0"
//
// Unset values are reported as "N/A".
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// PrintBuildData writes the build banner to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
