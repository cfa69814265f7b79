package fieldpath

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	errspkg "github.com/drblury/protostamp/internal/runtime/errors"
)

// fakeNode is an in-memory tree standing in for a decoded message.
type fakeNode struct {
	subs    map[string]*fakeNode
	scalars map[string]uint64
}

func (n *fakeNode) Sub(field string) (Node, error) {
	sub, ok := n.subs[field]
	if !ok {
		if _, scalar := n.scalars[field]; scalar {
			return nil, &errspkg.TypeMismatchError{Field: field, Kind: "uint64", Want: "message"}
		}
		return nil, &errspkg.FieldNotFoundError{Field: field, Message: "fake"}
	}
	return sub, nil
}

func (n *fakeNode) Uint64(field string) (uint64, error) {
	v, ok := n.scalars[field]
	if !ok {
		if _, sub := n.subs[field]; sub {
			return 0, &errspkg.TypeMismatchError{Field: field, Kind: "message", Want: "uint64 scalar"}
		}
		return 0, &errspkg.FieldNotFoundError{Field: field, Message: "fake"}
	}
	return v, nil
}

func nestedTree(ts uint64) *fakeNode {
	return &fakeNode{
		subs: map[string]*fakeNode{
			"level1": {
				subs: map[string]*fakeNode{
					"level2": {
						scalars: map[string]uint64{"ts": ts},
					},
				},
			},
		},
		scalars: map[string]uint64{"top": 7},
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		sep  string
		want []string
	}{
		{"single element", "ts", "", []string{"ts"}},
		{"default separator", "level1.level2.ts", "", []string{"level1", "level2", "ts"}},
		{"explicit separator", "level1/level2/ts", "/", []string{"level1", "level2", "ts"}},
		{"dot names with slash separator", "a.b/c", "/", []string{"a.b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.raw, tt.sep)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, p.Elems()); diff != "" {
				t.Fatalf("unexpected elements (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		sep  string
	}{
		{"empty path", "", ""},
		{"leading separator", ".ts", ""},
		{"trailing separator", "ts.", ""},
		{"doubled separator", "a..b", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw, tt.sep)
			var cfgErr *errspkg.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
		})
	}
}

func TestNavigate(t *testing.T) {
	root := nestedTree(42)

	p, err := Parse("level1.level2.ts", "")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got, err := Navigate(root, p)
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if got != 42 {
		t.Fatalf("Navigate = %d, want 42", got)
	}

	// Changing the separator must not change the result.
	p, err = Parse("level1/level2/ts", "/")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got, err = Navigate(root, p)
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if got != 42 {
		t.Fatalf("Navigate = %d, want 42", got)
	}
}

func TestNavigateSingleElement(t *testing.T) {
	root := nestedTree(42)

	p, err := Parse("top", "")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got, err := Navigate(root, p)
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if got != 7 {
		t.Fatalf("Navigate = %d, want 7", got)
	}
}

func TestNavigateMissingField(t *testing.T) {
	root := nestedTree(42)

	tests := []struct {
		name string
		path string
	}{
		{"missing intermediate", "nope.level2.ts"},
		{"missing leaf", "level1.level2.nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.path, "")
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			_, err = Navigate(root, p)
			var notFound *errspkg.FieldNotFoundError
			if !errors.As(err, &notFound) {
				t.Fatalf("expected FieldNotFoundError, got %v", err)
			}
		})
	}
}

func TestNavigateTypeMismatch(t *testing.T) {
	root := nestedTree(42)

	// Scalar used as an intermediate step.
	p, err := Parse("top.ts", "")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	_, err = Navigate(root, p)
	var mismatch *errspkg.TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}

	// Message used as the leaf.
	p, err = Parse("level1.level2", "")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	_, err = Navigate(root, p)
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
}
