// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proginfo describes the running program.
package proginfo

import (
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"strings"

	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
)

// ProgramInfo extracts the Go version, program package path, and program
// version from build info. Development, pseudo and invalid versions are
// reported as "devel".
func ProgramInfo(info *debug.BuildInfo) (goVers, progPath, progVers string) {
	goVers = info.GoVersion
	if strings.Contains(goVers, "devel") || strings.Contains(goVers, "-") {
		goVers = "devel"
	}

	progPath = info.Path
	if progPath == "" {
		progPath = strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
	}

	progVers = info.Main.Version
	if strings.Contains(progVers, "devel") || module.IsPseudoVersion(progVers) {
		progVers = "devel"
	} else if progVers != "" && !semver.IsValid(progVers) {
		progVers = "devel"
	}
	return goVers, progPath, progVers
}

// Name returns the last element of the program path in info, without
// the ".test" suffix of test binaries.
func Name(info *debug.BuildInfo) string {
	_, progPath, _ := ProgramInfo(info)
	return strings.TrimSuffix(path.Base(progPath), ".test")
}

// DefaultName returns the name of the running program, falling back to
// the name of its executable and then to "main".
func DefaultName() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Path != "" {
		return Name(info)
	}
	if exe, err := os.Executable(); err == nil {
		return strings.TrimSuffix(filepath.Base(exe), ".exe")
	}
	return "main"
}
