// Package differ compares two synthesized templates resource by resource.
//
// The provisioning engine owns the diff against deployed state; this differ
// only answers "what changed between two synthesized templates", for
// reviewing declaration changes before they are published.
package differ

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aaa-platform/groundwork"
)

// Compare diffs two templates. Both are normalized through JSON first so
// numeric types and intrinsic forms compare equal regardless of how the
// template was loaded.
func Compare(oldT, newT *groundwork.Template) (*groundwork.TemplateDiff, error) {
	oldRes, err := normalizedResources(oldT)
	if err != nil {
		return nil, err
	}
	newRes, err := normalizedResources(newT)
	if err != nil {
		return nil, err
	}

	diff := &groundwork.TemplateDiff{}

	for _, id := range sortedKeys(newRes) {
		after := newRes[id]
		before, existed := oldRes[id]
		if !existed {
			diff.Added = append(diff.Added, groundwork.DiffEntry{
				Resource: id,
				Type:     resourceType(after),
			})
			continue
		}
		var changes []groundwork.Change
		diffValue("", before, after, &changes)
		if len(changes) > 0 {
			diff.Modified = append(diff.Modified, groundwork.DiffEntry{
				Resource: id,
				Type:     resourceType(after),
				Changes:  changes,
			})
		}
	}

	for _, id := range sortedKeys(oldRes) {
		if _, kept := newRes[id]; !kept {
			diff.Removed = append(diff.Removed, groundwork.DiffEntry{
				Resource: id,
				Type:     resourceType(oldRes[id]),
			})
		}
	}

	return diff, nil
}

// CompareFiles diffs two template files.
func CompareFiles(oldPath, newPath string) (*groundwork.TemplateDiff, error) {
	oldT, err := LoadTemplate(oldPath)
	if err != nil {
		return nil, err
	}
	newT, err := LoadTemplate(newPath)
	if err != nil {
		return nil, err
	}
	return Compare(oldT, newT)
}

// LoadTemplate reads a synthesized template from a JSON or YAML file.
func LoadTemplate(path string) (*groundwork.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	var t groundwork.Template
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	if len(t.Resources) == 0 {
		return nil, fmt.Errorf("%s contains no resources", path)
	}
	return &t, nil
}

// Summarize counts the entries in a diff.
func Summarize(d *groundwork.TemplateDiff) groundwork.DiffSummary {
	s := groundwork.DiffSummary{
		Added:    len(d.Added),
		Removed:  len(d.Removed),
		Modified: len(d.Modified),
	}
	s.Total = s.Added + s.Removed + s.Modified
	return s
}

// HasChanges reports whether the diff is non-empty.
func HasChanges(d *groundwork.TemplateDiff) bool {
	return len(d.Added)+len(d.Removed)+len(d.Modified) > 0
}

// normalizedResources round-trips the template's resources through JSON into
// generic maps.
func normalizedResources(t *groundwork.Template) (map[string]map[string]any, error) {
	data, err := json.Marshal(t.Resources)
	if err != nil {
		return nil, fmt.Errorf("normalizing template: %w", err)
	}
	var out map[string]map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("normalizing template: %w", err)
	}
	return out, nil
}

func resourceType(def map[string]any) string {
	typ, _ := def["Type"].(string)
	return typ
}

// diffValue records property-level changes between two normalized values.
// Paths are dotted, with [i] for slice indices.
func diffValue(path string, before, after any, changes *[]groundwork.Change) {
	switch b := before.(type) {
	case map[string]any:
		a, ok := after.(map[string]any)
		if !ok {
			*changes = append(*changes, groundwork.Change{Path: path, Old: before, New: after})
			return
		}
		keys := map[string]bool{}
		for k := range b {
			keys[k] = true
		}
		for k := range a {
			keys[k] = true
		}
		for _, k := range sortedBoolKeys(keys) {
			diffValue(joinPath(path, k), b[k], a[k], changes)
		}
	case []any:
		a, ok := after.([]any)
		if !ok || len(a) != len(b) {
			*changes = append(*changes, groundwork.Change{Path: path, Old: before, New: after})
			return
		}
		for i := range b {
			diffValue(fmt.Sprintf("%s[%d]", path, i), b[i], a[i], changes)
		}
	default:
		if !reflect.DeepEqual(before, after) {
			*changes = append(*changes, groundwork.Change{Path: path, Old: before, New: after})
		}
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func sortedKeys(m map[string]map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedBoolKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Format renders a diff as human-readable text.
func Format(d *groundwork.TemplateDiff) string {
	if !HasChanges(d) {
		return "no changes\n"
	}
	var sb strings.Builder
	for _, e := range d.Added {
		fmt.Fprintf(&sb, "+ %s (%s)\n", e.Resource, e.Type)
	}
	for _, e := range d.Removed {
		fmt.Fprintf(&sb, "- %s (%s)\n", e.Resource, e.Type)
	}
	for _, e := range d.Modified {
		fmt.Fprintf(&sb, "~ %s (%s)\n", e.Resource, e.Type)
		for _, c := range e.Changes {
			fmt.Fprintf(&sb, "    %s: %v -> %v\n", c.Path, c.Old, c.New)
		}
	}
	return sb.String()
}
