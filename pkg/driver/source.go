package driver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source is a program text together with where it came from.
type Source struct {
	Name     string
	Path     string
	Text     string
	Origin   string
	Commit   string
	Checksum string
}

// SourceProvider loads the text of a program.
type SourceProvider interface {
	Load(ctx context.Context) (*Source, error)
}

// FileProvider reads a program from the local filesystem.
type FileProvider struct {
	Name string
	Path string
}

func (p FileProvider) Load(ctx context.Context) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Path) == "" {
		return nil, fmt.Errorf("source: empty path")
	}
	abs, err := filepath.Abs(p.Path)
	if err != nil {
		return nil, fmt.Errorf("source: resolve %s: %w", p.Path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", abs, err)
	}
	sum := sha256.Sum256(data)
	name := p.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	}
	return &Source{
		Name:     sanitizeSegment(name),
		Path:     abs,
		Text:     string(data),
		Origin:   "path:" + abs,
		Checksum: hex.EncodeToString(sum[:]),
	}, nil
}

// TargetProvider returns the provider for a manifest target. Local targets
// resolve relative to the manifest directory; git targets are cached under
// home/src/<target> and honour a commit pinned in lock.
func TargetProvider(m *Manifest, target *TargetSpec, home string, lock *Lockfile) SourceProvider {
	if !target.IsGit() {
		main := target.Main
		if !filepath.IsAbs(main) {
			main = filepath.Join(m.Dir(), main)
		}
		return FileProvider{Name: target.Name, Path: main}
	}
	provider := &GitProvider{
		Name:     target.Name,
		URL:      target.Git,
		Rev:      target.Rev,
		Tag:      target.Tag,
		Branch:   target.Branch,
		Path:     target.Main,
		CacheDir: filepath.Join(home, "src", sanitizePathSegment(target.Name)),
	}
	if locked, ok := lock.Find(target.Name); ok && locked.Source == provider.Origin() {
		provider.Locked = locked.Commit
	}
	return provider
}
