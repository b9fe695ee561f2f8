package entry

import (
	"encoding/json"
	"testing"
)

func TestParseBucket(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		kind      BucketKind
		projectID string
		named     string
	}{
		{name: "named bucket", input: "Meetings", kind: BucketNamed, named: "Meetings"},
		{name: "named with slash", input: "Tinkering/Research", kind: BucketNamed, named: "Tinkering/Research"},
		{name: "project reference", input: "project:abc-123", kind: BucketProject, projectID: "abc-123"},
		{name: "prefix only", input: "project:", kind: BucketProject, projectID: ""},
		{name: "prefix not at start", input: "my project:x", kind: BucketNamed, named: "my project:x"},
		{name: "empty", input: "", kind: BucketNamed, named: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ParseBucket(tt.input)
			if b.Kind() != tt.kind {
				t.Errorf("Kind() = %v, expected %v", b.Kind(), tt.kind)
			}
			if id, ok := b.ProjectID(); ok != (tt.kind == BucketProject) || id != tt.projectID {
				t.Errorf("ProjectID() = (%q, %v), expected %q", id, ok, tt.projectID)
			}
			if b.Name() != tt.named {
				t.Errorf("Name() = %q, expected %q", b.Name(), tt.named)
			}
			if b.String() != tt.input {
				t.Errorf("String() = %q, expected %q", b.String(), tt.input)
			}
		})
	}
}

func TestBucket_Label(t *testing.T) {
	names := map[string]string{"p1": "Website"}
	nameOf := func(id string) (string, bool) {
		n, ok := names[id]
		return n, ok
	}

	tests := []struct {
		name     string
		bucket   Bucket
		nameOf   func(string) (string, bool)
		expected string
	}{
		{name: "named", bucket: Named("Email"), nameOf: nameOf, expected: "Email"},
		{name: "known project", bucket: ProjectRef("p1"), nameOf: nameOf, expected: "Website"},
		{name: "deleted project falls back to key", bucket: ProjectRef("gone"), nameOf: nameOf, expected: "project:gone"},
		{name: "nil resolver", bucket: ProjectRef("p1"), nameOf: nil, expected: "project:p1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bucket.Label(tt.nameOf); got != tt.expected {
				t.Errorf("Label() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestBucket_IsZero(t *testing.T) {
	if !(Bucket{}).IsZero() {
		t.Error("zero value should be zero")
	}
	if Named("x").IsZero() {
		t.Error("named bucket should not be zero")
	}
	if ProjectRef("").IsZero() {
		t.Error("project reference should not be zero even with empty id")
	}
}

func TestBucket_MapKey(t *testing.T) {
	totals := map[Bucket]int{Named("Email"): 60, ProjectRef("p1"): 120}

	data, err := json.Marshal(totals)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[Bucket]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded[Named("Email")] != 60 || decoded[ProjectRef("p1")] != 120 {
		t.Errorf("unexpected decoded map: %v", decoded)
	}
}

func TestBucket_UnmarshalNonString(t *testing.T) {
	var b Bucket
	if err := json.Unmarshal([]byte(`42`), &b); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !b.IsZero() {
		t.Errorf("expected zero bucket, got %q", b)
	}
}
