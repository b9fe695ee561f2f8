package entry

import (
	"encoding/json"
	"strings"
)

// ProjectPrefix marks a bucket that references a kanban project by ID.
const ProjectPrefix = "project:"

// BucketKind distinguishes the two kinds of bucket.
type BucketKind int

const (
	// BucketNamed is a free-text bucket defined in settings
	BucketNamed BucketKind = iota
	// BucketProject references a kanban project
	BucketProject
)

// Bucket is the key time is logged against: either a named bucket or a
// reference to a kanban project. It is stored as a plain string
// ("Meetings" or "project:<id>").
type Bucket struct {
	kind  BucketKind
	value string
}

// Named returns a free-text bucket.
func Named(name string) Bucket {
	return Bucket{kind: BucketNamed, value: name}
}

// ProjectRef returns a bucket referencing the project with the given ID.
func ProjectRef(id string) Bucket {
	return Bucket{kind: BucketProject, value: id}
}

// ParseBucket converts the stored string form back into a Bucket.
func ParseBucket(s string) Bucket {
	if id, ok := strings.CutPrefix(s, ProjectPrefix); ok {
		return ProjectRef(id)
	}
	return Named(s)
}

// Kind reports whether the bucket is named or a project reference.
func (b Bucket) Kind() BucketKind {
	return b.kind
}

// ProjectID returns the referenced project ID, if any.
func (b Bucket) ProjectID() (string, bool) {
	if b.kind != BucketProject {
		return "", false
	}
	return b.value, true
}

// Name returns the free-text name, or "" for project references.
func (b Bucket) Name() string {
	if b.kind != BucketNamed {
		return ""
	}
	return b.value
}

// IsZero reports whether the bucket is empty.
func (b Bucket) IsZero() bool {
	return b.kind == BucketNamed && b.value == ""
}

// String returns the stored form.
func (b Bucket) String() string {
	if b.kind == BucketProject {
		return ProjectPrefix + b.value
	}
	return b.value
}

// Label returns the display label. Project references are resolved through
// nameOf; when nameOf is nil or the project is unknown the stored key is used.
func (b Bucket) Label(nameOf func(id string) (string, bool)) string {
	if id, ok := b.ProjectID(); ok && nameOf != nil {
		if name, found := nameOf(id); found {
			return name
		}
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler so buckets work as JSON map keys.
func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bucket) UnmarshalText(text []byte) error {
	*b = ParseBucket(string(text))
	return nil
}

// MarshalJSON encodes the bucket as a JSON string.
func (b Bucket) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON decodes a JSON string. Non-string values decode to the zero bucket.
func (b *Bucket) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*b = Bucket{}
		return nil
	}
	*b = ParseBucket(s)
	return nil
}
