package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spiel0meister/fun/pkg/interpreter"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ManifestFileName)
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
name: hello-world
version: 0.1.0
authors:
  - Ada
  - Grace
exec_mode: stream
targets:
  app: src/main.fun
  remote-demo:
    git: https://example.com/demo.git
    tag: v1.0.0
    main: demo.fun
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest error: %v", err)
	}
	if manifest.Name != "hello_world" {
		t.Fatalf("Name = %q, want hello_world", manifest.Name)
	}
	if manifest.Version != "0.1.0" {
		t.Fatalf("Version = %q", manifest.Version)
	}
	if strings.Join(manifest.Authors, ",") != "Ada,Grace" {
		t.Fatalf("Authors = %v", manifest.Authors)
	}
	if manifest.ExecMode != interpreter.ExecStream {
		t.Fatalf("ExecMode = %q, want stream", manifest.ExecMode)
	}
	if got := strings.Join(manifest.TargetOrder, ","); got != "app,remote_demo" {
		t.Fatalf("TargetOrder = %q", got)
	}
	if manifest.Dir() != filepath.Dir(path) {
		t.Fatalf("Dir = %q, want %q", manifest.Dir(), filepath.Dir(path))
	}

	app, ok := manifest.FindTarget("app")
	if !ok || app.Main != "src/main.fun" || app.IsGit() {
		t.Fatalf("app target = %+v", app)
	}
	remote, ok := manifest.FindTarget("remote-demo")
	if !ok {
		t.Fatalf("expected remote-demo target")
	}
	if !remote.IsGit() || remote.Tag != "v1.0.0" || remote.Main != "demo.fun" {
		t.Fatalf("remote target = %+v", remote)
	}
	if _, ok := manifest.FindTarget("REMOTE-DEMO"); !ok {
		t.Fatalf("FindTarget should match original names case-insensitively")
	}
	if got := manifest.GitTargets(); len(got) != 1 || got[0] != remote {
		t.Fatalf("GitTargets = %v", got)
	}

	def, err := manifest.DefaultTarget()
	if err != nil || def != app {
		t.Fatalf("DefaultTarget = %v, %v", def, err)
	}
}

func TestManifestDefaultsToTreewalker(t *testing.T) {
	manifest, err := LoadManifest(writeManifest(t, "name: demo\ntargets:\n  main: main.fun"))
	if err != nil {
		t.Fatalf("LoadManifest error: %v", err)
	}
	if manifest.ExecMode != interpreter.ExecTreewalker {
		t.Fatalf("ExecMode = %q, want treewalker", manifest.ExecMode)
	}
}

func TestManifestWithoutTargets(t *testing.T) {
	manifest, err := LoadManifest(writeManifest(t, "name: demo"))
	if err != nil {
		t.Fatalf("LoadManifest error: %v", err)
	}
	if _, err := manifest.DefaultTarget(); !errors.Is(err, ErrNoTargets) {
		t.Fatalf("DefaultTarget error = %v, want ErrNoTargets", err)
	}
}

func TestManifestValidationAggregatesIssues(t *testing.T) {
	path := writeManifest(t, `
exec_mode: bytecode
authors: ["", Ada]
targets:
  no-main: {}
  bad-git:
    git: https://example.com/x.git
    main: x.fun
  two-selectors:
    git: https://example.com/y.git
    rev: abc
    branch: main
    main: y.fun
  local-rev:
    main: z.fun
    rev: abc
`)
	_, err := LoadManifest(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %T (%v), want *ValidationError", err, err)
	}
	want := []string{
		"exec_mode: unknown exec mode 'bytecode'",
		"name must be provided",
		"authors[0] must be a non-empty string",
		"targets.no-main: main must be provided",
		"targets.bad-git: git targets require rev, tag, or branch",
		"targets.two-selectors: git targets accept only one of rev, tag, or branch",
		"targets.local-rev: rev, tag, and branch require a git source",
	}
	message := verr.Error()
	if !strings.HasPrefix(message, "manifest validation failed:") {
		t.Fatalf("Error() = %q", message)
	}
	for _, fragment := range want {
		if !strings.Contains(message, fragment) {
			t.Fatalf("validation error missing %q:\n%s", fragment, message)
		}
	}
}

func TestManifestCollidingTargets(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, "name: demo\ntargets:\n  my-app: a.fun\n  my_app: b.fun"))
	if err == nil || !strings.Contains(err.Error(), "collide after sanitization") {
		t.Fatalf("error = %v", err)
	}
}

func TestManifestRejectsUnknownFields(t *testing.T) {
	cases := map[string]string{
		"top-level": "name: demo\nlicense: MIT",
		"target":    "name: demo\ntargets:\n  app:\n    main: a.fun\n    features: [x]",
	}
	for label, contents := range cases {
		if _, err := LoadManifest(writeManifest(t, contents)); err == nil {
			t.Fatalf("%s: expected unknown field error", label)
		}
	}
}

func TestManifestRejectsNonMappingTargets(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, "name: demo\ntargets: [a.fun]"))
	if err == nil || !strings.Contains(err.Error(), "targets must be a mapping") {
		t.Fatalf("error = %v", err)
	}
}

func TestLoadManifestEmptyAndMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("empty manifest error = %v", err)
	}
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("expected error for missing manifest")
	}
	if _, err := LoadManifest(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestParseManifestFromReader(t *testing.T) {
	manifest, err := ParseManifest(strings.NewReader("name: inline\nauthors: Solo\ntargets:\n  app: /abs/app.fun"), "/work/package.yml")
	if err != nil {
		t.Fatalf("ParseManifest error: %v", err)
	}
	if manifest.Dir() != "/work" {
		t.Fatalf("Dir = %q", manifest.Dir())
	}
	if len(manifest.Authors) != 1 || manifest.Authors[0] != "Solo" {
		t.Fatalf("Authors = %v", manifest.Authors)
	}
}
