package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spiel0meister/fun/pkg/ast"
	"github.com/spiel0meister/fun/pkg/driver"
	"github.com/spiel0meister/fun/pkg/interpreter"
	"github.com/spiel0meister/fun/pkg/parser"
)

func runEntry(args []string, opts cliOptions) int {
	return runEntryWithMode(args, modeRun, opts)
}

func runCheck(args []string, opts cliOptions) int {
	return runEntryWithMode(args, modeCheck, opts)
}

func runEntryWithMode(args []string, mode executionMode, opts cliOptions) int {
	label := modeCommandLabel(mode)
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	manifest, manifestErr := loadManifestFrom(".")
	if err := manifestErr; err != nil {
		switch {
		case errors.Is(err, errManifestNotFound):
			// No manifest nearby; fall back to file-based invocation if possible.
			manifest = nil
		case len(args) == 1 && looksLikePathCandidate(args[0]):
			fmt.Fprintf(os.Stderr, "warning: unable to load manifest (%v); falling back to direct file execution\n", err)
			manifest = nil
		default:
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return 1
		}
	}

	if len(args) == 0 {
		if manifest == nil {
			fmt.Fprintf(os.Stderr, "%s requires a manifest target or source file (package.yml not found)\n", label)
			return 1
		}
		target, err := manifest.DefaultTarget()
		if err != nil {
			fmt.Fprintf(os.Stderr, "manifest error: %v\n", err)
			return 1
		}
		return runTarget(manifest, target, mode, opts)
	}

	candidate := args[0]
	if manifest != nil {
		if target, ok := manifest.FindTarget(candidate); ok {
			return runTarget(manifest, target, mode, opts)
		}
	}

	// Treat the argument as a direct source file path; a manifest next to it
	// only contributes its exec_mode.
	// A manifest that already failed to load above has been reported once.
	fileManifest := manifest
	if absCandidate, err := filepath.Abs(candidate); err == nil && !sameBrokenManifest(filepath.Dir(absCandidate), manifestErr) {
		if nearby, err := loadManifestFrom(filepath.Dir(absCandidate)); err == nil {
			fileManifest = nearby
		} else if !errors.Is(err, errManifestNotFound) {
			fmt.Fprintf(os.Stderr, "warning: ignoring manifest for %s: %v\n", candidate, err)
		}
	}
	return executeEntry(driver.FileProvider{Path: candidate}, fileManifest, mode, opts)
}

// sameBrokenManifest reports whether the manifest governing dir is the
// working-directory manifest whose load failed with cwdErr.
func sameBrokenManifest(dir string, cwdErr error) bool {
	if cwdErr == nil || errors.Is(cwdErr, errManifestNotFound) {
		return false
	}
	nearby, err := findManifest(dir)
	if err != nil {
		return false
	}
	cwdManifest, err := findManifest(".")
	return err == nil && nearby == cwdManifest
}

func runTarget(manifest *driver.Manifest, target *driver.TargetSpec, mode executionMode, opts cliOptions) int {
	lock, err := loadLockfileForManifest(manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	var home string
	if target.IsGit() {
		if home, err = resolveFunHome(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to resolve FUN_HOME: %v\n", err)
			return 1
		}
	}
	opts.tracef("target %s from %s", target.OriginalName, manifest.Path)
	return executeEntry(driver.TargetProvider(manifest, target, home, lock), manifest, mode, opts)
}

func executeEntry(provider driver.SourceProvider, manifest *driver.Manifest, mode executionMode, opts cliOptions) int {
	src, err := provider.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return 1
	}
	opts.tracef("loaded %s (%s, sha256 %s)", src.Path, src.Origin, src.Checksum)
	path := displayPath(src.Path)

	if mode == modeCheck {
		module, err := parser.ParseSource(src.Text)
		if err != nil {
			reportError(err, path)
			return 1
		}
		fmt.Fprintf(os.Stdout, "%s: ok (%d statements)\n", path, countStatements(module))
		return 0
	}

	var manifestMode interpreter.ExecMode
	if manifest != nil {
		manifestMode = manifest.ExecMode
	}
	execMode := opts.execMode(manifestMode)
	opts.tracef("executing %s with the %s executor", path, execMode)

	interp := interpreter.New()
	if err := interp.Run(src.Text, execMode); err != nil {
		reportError(err, path)
		return 1
	}
	return 0
}

func countStatements(module *ast.Module) int {
	count := 0
	for _, stmt := range module.Body {
		if _, empty := stmt.(*ast.EmptyStatement); !empty {
			count++
		}
	}
	return count
}

func reportError(err error, path string) {
	fmt.Fprintln(os.Stderr, driver.DescribeDiagnostic(driver.DiagnosticFromError(err, path)))
}

// displayPath shortens paths under the working directory.
func displayPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
