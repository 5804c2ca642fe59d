package driver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitProvider loads a program from a git repository checkout. Exactly one of
// Rev, Tag or Branch selects the revision; Locked, when set, pins the commit.
type GitProvider struct {
	Name     string
	URL      string
	Rev      string
	Tag      string
	Branch   string
	Path     string
	CacheDir string
	Locked   string
}

// Origin describes the repository and revision selector, e.g.
// "git+https://host/repo#v1".
func (g *GitProvider) Origin() string {
	_, descriptor, err := g.revision()
	if err != nil {
		return "git+" + g.URL
	}
	return "git+" + g.URL + "#" + descriptor
}

func (g *GitProvider) Load(ctx context.Context) (*Source, error) {
	dir, commit, err := g.Checkout(ctx)
	if err != nil {
		return nil, err
	}
	rel := filepath.Clean(filepath.FromSlash(strings.TrimSpace(g.Path)))
	if rel == "." || filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("source: %s: main %q must name a file inside the repository", g.URL, g.Path)
	}
	path := filepath.Join(dir, rel)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	checksum, err := dirChecksum(dir)
	if err != nil {
		return nil, fmt.Errorf("source: checksum %s: %w", dir, err)
	}
	return &Source{
		Name:     sanitizeSegment(g.Name),
		Path:     path,
		Text:     string(data),
		Origin:   g.Origin(),
		Commit:   commit,
		Checksum: checksum,
	}, nil
}

// Checkout clones the repository into the cache (reusing an existing
// checkout when the commit is already known) and returns the checkout
// directory and resolved commit.
func (g *GitProvider) Checkout(ctx context.Context) (string, string, error) {
	if strings.TrimSpace(g.URL) == "" {
		return "", "", fmt.Errorf("git: missing repository url")
	}
	if strings.TrimSpace(g.CacheDir) == "" {
		return "", "", fmt.Errorf("git: missing cache directory")
	}
	if err := os.MkdirAll(g.CacheDir, 0o755); err != nil {
		return "", "", err
	}

	revision, descriptor, err := g.revision()
	if err != nil {
		return "", "", err
	}

	if locked := strings.TrimSpace(g.Locked); locked != "" {
		existing := filepath.Join(g.CacheDir, sanitizePathSegment(gitPinnedVersion(descriptor, locked)))
		if _, err := os.Stat(existing); err == nil {
			return existing, locked, nil
		}
	}
	// Branches move, so only rev and tag selectors reuse an unlocked checkout.
	if strings.TrimSpace(g.Locked) == "" && strings.TrimSpace(g.Branch) == "" {
		if dir, commit, ok := cachedCheckout(g.CacheDir, descriptor, strings.TrimSpace(g.Rev) != ""); ok {
			return dir, commit, nil
		}
	}

	tmpDir, err := os.MkdirTemp(g.CacheDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	repo, err := git.PlainCloneContext(ctx, tmpDir, false, &git.CloneOptions{
		URL:               g.URL,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git clone %s: %w", g.URL, err)
	}

	var hash plumbing.Hash
	if locked := strings.TrimSpace(g.Locked); locked != "" {
		hash = plumbing.NewHash(locked)
		if _, err := repo.CommitObject(hash); err != nil {
			_ = os.RemoveAll(tmpDir)
			return "", "", fmt.Errorf("locked commit %s not found in %s: %w", locked, g.URL, err)
		}
	} else {
		resolved, err := repo.ResolveRevision(revision)
		if err != nil {
			_ = os.RemoveAll(tmpDir)
			return "", "", fmt.Errorf("resolve revision %s: %w", revision, err)
		}
		hash = *resolved
	}

	version := gitPinnedVersion(descriptor, hash.String())
	targetDir := filepath.Join(g.CacheDir, sanitizePathSegment(version))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return targetDir, hash.String(), nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash:  hash,
		Force: true,
	}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git checkout %s: %w", revision, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	return targetDir, hash.String(), nil
}

// revision maps the selector to a revision valid in a fresh clone, where
// branches other than the default only exist as remote-tracking refs.
func (g *GitProvider) revision() (plumbing.Revision, string, error) {
	if rev := strings.TrimSpace(g.Rev); rev != "" {
		return plumbing.Revision(rev), rev, nil
	}
	if tag := strings.TrimSpace(g.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag, nil
	}
	if branch := strings.TrimSpace(g.Branch); branch != "" {
		return plumbing.Revision("refs/remotes/origin/" + branch), branch, nil
	}
	return "", "", errors.New("git targets require rev, tag, or branch")
}

// cachedCheckout finds a checkout made earlier for descriptor. Checkouts are
// stored as <descriptor>@<commit>; for a rev the descriptor (a full or
// abbreviated hash) must also prefix the checkout's HEAD commit.
func cachedCheckout(cacheDir, descriptor string, isRev bool) (string, string, bool) {
	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		return "", "", false
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(cacheDir, entry.Name())
		commit, err := headCommit(dir)
		if err != nil || (isRev && !strings.HasPrefix(commit, descriptor)) {
			continue
		}
		if entry.Name() == sanitizePathSegment(gitPinnedVersion(descriptor, commit)) {
			return dir, commit, true
		}
	}
	return "", "", false
}

func headCommit(dir string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String(), nil
}

func gitPinnedVersion(descriptor, commit string) string {
	commit = strings.TrimSpace(commit)
	descriptor = strings.TrimSpace(descriptor)
	if commit == "" {
		return descriptor
	}
	if descriptor == "" || descriptor == commit {
		return commit
	}
	return fmt.Sprintf("%s@%s", descriptor, commit)
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "head"
	}
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// dirChecksum hashes file names and contents under path, skipping .git.
func dirChecksum(path string) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		h.Write([]byte(filepath.ToSlash(rel)))
		h.Write(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
