// Yearpaper - year-progress wallpaper generator
//
// Yearpaper renders phone wallpapers that show how far through the calendar
// year the current moment is, in the viewer's own timezone.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"
	_ "time/tzdata" // Embed the IANA database so zone lookups work on minimal hosts.

	"github.com/jmylchreest/yearpaper/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
