// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proginfo_test

import (
	"runtime/debug"
	"testing"

	"golang.org/x/progress/internal/proginfo"
	"golang.org/x/progress/internal/testenv"
)

const pumpkins = "golang.org/x/progress/cmd/pumpkins"

func TestProgramInfo(t *testing.T) {
	tests := []struct {
		goVersion, version string
		wantGo, wantVers   string
	}{
		{"go1.22.5", "(devel)", "go1.22.5", "devel"},
		{"go1.22.5", "", "go1.22.5", ""},
		{"go1.23rc1", "v0.3.0", "go1.23rc1", "v0.3.0"},
		{"go1.22.5", "v0.4.0-pre.2", "go1.22.5", "v0.4.0-pre.2"},
		{"go1.22.5", "v0.0.0-20240301120000-3c8b0df0c3fd", "go1.22.5", "devel"},
		{"go1.22.5", "pumpkin-season", "go1.22.5", "devel"},
		{"devel go1.24-4d2b0a3 Fri Mar 1 12:00:00 2024", "v0.3.0", "devel", "v0.3.0"},
		{"go1.22.5-X:rangefunc", "v0.3.0", "devel", "v0.3.0"},
	}
	buildInfo, ok := debug.ReadBuildInfo()
	testenv.NeedsBuildInfo(t, ok)

	for _, tt := range tests {
		in := *buildInfo
		in.GoVersion = tt.goVersion
		in.Path = pumpkins
		in.Main.Version = tt.version
		goVers, progPath, progVers := proginfo.ProgramInfo(&in)
		if goVers != tt.wantGo || progPath != pumpkins || progVers != tt.wantVers {
			t.Errorf("ProgramInfo(%s, %q) = (%q, %q, %q), want (%q, %q, %q)",
				tt.goVersion, tt.version, goVers, progPath, progVers, tt.wantGo, pumpkins, tt.wantVers)
		}
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{pumpkins, "pumpkins"},
		{"golang.org/x/progress.test", "progress"},
		{"golang.org/x/progress/internal/meminfo.test", "meminfo"},
		{"main", "main"},
	}
	for _, tt := range tests {
		in := debug.BuildInfo{Path: tt.path, GoVersion: "go1.22.0"}
		if got := proginfo.Name(&in); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDefaultName(t *testing.T) {
	if got := proginfo.DefaultName(); got == "" {
		t.Error("DefaultName() is empty")
	}
}
