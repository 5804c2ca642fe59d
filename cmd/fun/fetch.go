package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spiel0meister/fun/pkg/driver"
)

// runFetch clones every git target into FUN_HOME and records the resolved
// commits in package.lock. Commits already locked are reused; --update
// re-resolves every selector.
func runFetch(args []string, opts cliOptions) int {
	update := false
	for _, arg := range args {
		if arg != "--update" {
			fmt.Fprintf(os.Stderr, "fun fetch does not take arguments (received %s)\n", strings.Join(args, " "))
			return 1
		}
		update = true
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to determine working directory: %v\n", err)
		return 1
	}
	manifestPath, err := findManifest(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to locate package.yml: %v\n", err)
		return 1
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read manifest: %v\n", err)
		return 1
	}
	home, err := resolveFunHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve FUN_HOME: %v\n", err)
		return 1
	}

	fmt.Fprintf(os.Stdout, "Manifest: %s\n", manifest.Path)
	fmt.Fprintf(os.Stdout, "Cache directory: %s\n", home)

	lockPath := filepath.Join(manifest.Dir(), driver.LockfileName)
	lock, err := driver.LoadLockfile(lockPath)
	lockCreated := false
	switch {
	case err == nil:
		if lock.Root != manifest.Name {
			fmt.Fprintf(os.Stderr, "lockfile root %q does not match manifest name %q\n", lock.Root, manifest.Name)
			return 1
		}
	case errors.Is(err, os.ErrNotExist):
		lock = driver.NewLockfile(manifest.Name, cliToolVersion)
		lockCreated = true
	default:
		fmt.Fprintf(os.Stderr, "failed to read lockfile: %v\n", err)
		return 1
	}

	next := driver.NewLockfile(manifest.Name, cliToolVersion)
	pinned := lock
	if update {
		pinned = nil
	}
	for _, target := range manifest.GitTargets() {
		provider := driver.TargetProvider(manifest, target, home, pinned)
		opts.tracef("fetching %s from %s", target.OriginalName, target.Git)
		src, err := provider.Load(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to fetch target %q: %v\n", target.OriginalName, err)
			return 1
		}
		next.Put(&driver.LockedSource{
			Name:     target.Name,
			Source:   src.Origin,
			Commit:   src.Commit,
			Checksum: src.Checksum,
		})
		fmt.Fprintf(os.Stdout, "Fetched %s %s (%s)\n", target.OriginalName, shortCommit(src.Commit), src.Origin)
	}

	if !lockCreated && sameSources(lock, next) {
		fmt.Fprintf(os.Stdout, "package.lock already up to date: %s\n", lock.Path)
		return 0
	}
	action := "Updated"
	if lockCreated {
		action = "Created"
	}
	if err := driver.WriteLockfile(next, lockPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write lockfile: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "%s package.lock: %s\n", action, next.Path)
	return 0
}

func sameSources(a, b *driver.Lockfile) bool {
	if len(a.Sources) != len(b.Sources) {
		return false
	}
	for _, src := range b.Sources {
		other, ok := a.Find(src.Name)
		if !ok || *other != *src {
			return false
		}
	}
	return true
}

func shortCommit(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}
