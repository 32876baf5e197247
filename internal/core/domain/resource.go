package domain

import "strings"

type ResourceKind string

const (
	KindElasticsearchDomain ResourceKind = "elasticsearch"
)

// Tag is one Key/Value pair attached to a provider resource. Order is
// preserved as returned by the provider.
type Tag struct {
	Key   string
	Value string
}

// Resource is one provider-side entity as a structured document. Attrs holds
// the raw describe output keyed by provider field name. ARN and Tags are
// assigned during augmentation; a raw enumerated record carries neither.
// Augmentation replaces Tags wholesale, never merges.
type Resource struct {
	Kind ResourceKind
	ARN  string
	Tags []Tag

	Attrs map[string]any
}

// StringAttr returns a top-level string attribute, or "" when absent or not
// a string.
func (r *Resource) StringAttr(key string) string {
	v, ok := r.Attrs[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// StringsAtPath resolves a dotted path like "VPCOptions.SubnetIds" through
// nested map[string]any attributes and returns the string slice at the leaf.
// A missing segment or a leaf of another shape yields nil.
func (r *Resource) StringsAtPath(path string) []string {
	var cur any = r.Attrs
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[seg]
		if !ok {
			return nil
		}
	}
	switch v := cur.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// TagValue returns the value of the first tag with the given key.
func (r *Resource) TagValue(key string) (string, bool) {
	for _, t := range r.Tags {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}
