package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spiel0meister/fun/pkg/interpreter"
)

// ManifestFileName is the name of the package manifest looked up by the CLI.
const ManifestFileName = "package.yml"

// Manifest represents the parsed contents of package.yml.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Authors     []string
	ExecMode    interpreter.ExecMode
	Targets     map[string]*TargetSpec
	TargetOrder []string

	targetEntries []manifestTargetEntry
}

// TargetSpec describes a runnable program declared in the manifest. Local
// targets only carry Main; git targets also name the repository and revision.
type TargetSpec struct {
	Name         string
	OriginalName string
	Main         string
	Git          string
	Rev          string
	Tag          string
	Branch       string
}

type manifestTargetEntry struct {
	sanitized string
	spec      *TargetSpec
}

// IsGit reports whether the target is fetched from a git repository.
func (t *TargetSpec) IsGit() bool {
	return t != nil && t.Git != ""
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses package.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()
	return decodeManifest(file, absPath)
}

// ParseManifest decodes manifest contents that did not come from disk. The
// path is recorded on the manifest and used to resolve relative targets.
func ParseManifest(r io.Reader, path string) (*Manifest, error) {
	return decodeManifest(r, path)
}

func decodeManifest(r io.Reader, path string) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", path)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}

	manifest, issues := raw.toManifest(path)
	issues = append(issues, manifest.validate()...)
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return manifest, nil
}

// Dir returns the directory holding the manifest.
func (m *Manifest) Dir() string {
	if m == nil || m.Path == "" {
		return ""
	}
	return filepath.Dir(m.Path)
}

func (m *Manifest) validate() []string {
	var issues []string
	if m.Name == "" {
		issues = append(issues, "name must be provided")
	}
	for i, author := range m.Authors {
		if author == "" {
			issues = append(issues, fmt.Sprintf("authors[%d] must be a non-empty string", i))
		}
	}

	targetNames := make(map[string]string, len(m.targetEntries))
	for _, entry := range m.targetEntries {
		target := entry.spec
		if target == nil {
			continue
		}
		if other, exists := targetNames[entry.sanitized]; exists {
			issues = append(issues, fmt.Sprintf("targets %q and %q collide after sanitization", other, target.OriginalName))
		} else {
			targetNames[entry.sanitized] = target.OriginalName
		}
		for _, issue := range target.validate() {
			issues = append(issues, fmt.Sprintf("targets.%s: %s", target.OriginalName, issue))
		}
	}
	return issues
}

func (t *TargetSpec) validate() []string {
	var issues []string
	if t.Main == "" {
		issues = append(issues, "main must be provided")
	}
	if !t.IsGit() {
		if t.Rev != "" || t.Tag != "" || t.Branch != "" {
			issues = append(issues, "rev, tag, and branch require a git source")
		}
		return issues
	}
	if filepath.IsAbs(t.Main) {
		issues = append(issues, "main must be relative to the repository root for git targets")
	}
	selectors := 0
	for _, value := range []string{t.Rev, t.Tag, t.Branch} {
		if value != "" {
			selectors++
		}
	}
	switch {
	case selectors == 0:
		issues = append(issues, "git targets require rev, tag, or branch")
	case selectors > 1:
		issues = append(issues, "git targets accept only one of rev, tag, or branch")
	}
	return issues
}

var ErrNoTargets = errors.New("manifest: no targets defined")

// DefaultTarget returns the first target in manifest order.
func (m *Manifest) DefaultTarget() (*TargetSpec, error) {
	if m == nil {
		return nil, ErrNoTargets
	}
	for _, entry := range m.targetEntries {
		if entry.spec != nil {
			return entry.spec, nil
		}
	}
	return nil, ErrNoTargets
}

// FindTarget looks up a target by sanitized or original name.
func (m *Manifest) FindTarget(name string) (*TargetSpec, bool) {
	if m == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if key := sanitizeSegment(name); key != "" {
		if target, ok := m.Targets[key]; ok && target != nil {
			return target, true
		}
	}
	for _, entry := range m.targetEntries {
		if entry.spec != nil && strings.EqualFold(entry.spec.OriginalName, name) {
			return entry.spec, true
		}
	}
	return nil, false
}

// GitTargets returns the git targets in manifest order.
func (m *Manifest) GitTargets() []*TargetSpec {
	if m == nil {
		return nil
	}
	var out []*TargetSpec
	for _, entry := range m.targetEntries {
		if entry.spec.IsGit() {
			out = append(out, entry.spec)
		}
	}
	return out
}

type manifestFile struct {
	Name     string     `yaml:"name"`
	Version  string     `yaml:"version"`
	Authors  stringList `yaml:"authors"`
	ExecMode string     `yaml:"exec_mode"`
	Targets  targetMap  `yaml:"targets"`
}

type targetYAML struct {
	Main   string `yaml:"main"`
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
}

var targetFields = map[string]struct{}{
	"main": {}, "git": {}, "rev": {}, "tag": {}, "branch": {},
}

type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: targets must not use empty keys")
		}
		entry, err := decodeTarget(valueNode)
		if err != nil {
			return fmt.Errorf("manifest: target %q: %w", key, err)
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

// decodeTarget accepts either a bare path or a mapping. Node.Decode does not
// inherit KnownFields, so mapping keys are checked here.
func decodeTarget(value *yaml.Node) (*targetYAML, error) {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			return &targetYAML{}, nil
		}
		return &targetYAML{Main: value.Value}, nil
	case yaml.MappingNode:
		for i := 0; i < len(value.Content); i += 2 {
			field := value.Content[i].Value
			if _, ok := targetFields[field]; !ok {
				return nil, fmt.Errorf("line %d: field %s not found in target", value.Content[i].Line, field)
			}
		}
		entry := new(targetYAML)
		if err := value.Decode(entry); err != nil {
			return nil, err
		}
		return entry, nil
	case yaml.AliasNode:
		return decodeTarget(value.Alias)
	default:
		return nil, fmt.Errorf("expected path or mapping, found %s", value.ShortTag())
	}
}

type stringList []string

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		out = append(out, strings.TrimSpace(item))
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

func (mf manifestFile) toManifest(path string) (*Manifest, []string) {
	var issues []string
	mode, err := interpreter.ParseExecMode(mf.ExecMode)
	if err != nil {
		issues = append(issues, fmt.Sprintf("exec_mode: %v", err))
	}

	targetCapacity := len(mf.Targets.items)
	result := &Manifest{
		Path:          path,
		Name:          sanitizeSegment(mf.Name),
		Version:       strings.TrimSpace(mf.Version),
		Authors:       mf.Authors.Clone(),
		ExecMode:      mode,
		Targets:       make(map[string]*TargetSpec, targetCapacity),
		TargetOrder:   make([]string, 0, targetCapacity),
		targetEntries: make([]manifestTargetEntry, 0, targetCapacity),
	}

	for _, item := range mf.Targets.items {
		target := item.spec
		if target == nil {
			continue
		}
		original := strings.TrimSpace(item.name)
		sanitized := sanitizeSegment(original)
		spec := &TargetSpec{
			Name:         sanitized,
			OriginalName: original,
			Main:         strings.TrimSpace(target.Main),
			Git:          strings.TrimSpace(target.Git),
			Rev:          strings.TrimSpace(target.Rev),
			Tag:          strings.TrimSpace(target.Tag),
			Branch:       strings.TrimSpace(target.Branch),
		}
		if _, exists := result.Targets[sanitized]; !exists {
			result.Targets[sanitized] = spec
			result.TargetOrder = append(result.TargetOrder, sanitized)
		}
		result.targetEntries = append(result.targetEntries, manifestTargetEntry{
			sanitized: sanitized,
			spec:      spec,
		})
	}
	return result, issues
}

func sanitizeSegment(seg string) string {
	seg = strings.TrimSpace(seg)
	seg = strings.ReplaceAll(seg, "-", "_")
	return seg
}
