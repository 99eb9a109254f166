package selection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseIDs(t *testing.T) {
	known := map[string]bool{"id1": true, "id2": true, "id4": true, "q-10": true}

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"mixed commas", "id1, id2，id3", []string{"id1", "id2"}},
		{"ideographic comma", "id4、id1", []string{"id4", "id1"}},
		{"whitespace and newlines", "id2\nid1\tid4", []string{"id2", "id1", "id4"}},
		{"duplicates dropped", "id1,id1, id2 ,id1", []string{"id1", "id2"}},
		{"quoted and bracketed", `["id1", "id2"]`, []string{"id1", "id2"}},
		{"numbered prose", "1. q-10\n2. id4.", []string{"q-10", "id4"}},
		{"backticks", "`id2`,`id4`", []string{"id2", "id4"}},
		{"unknown only", "foo, bar", []string{}},
		{"empty", "", []string{}},
		{"separators only", " ,，、\n ", []string{}},
		{"case sensitive", "ID1, Id2", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIDs(tt.raw, known)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseIDs(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestParseIDs_CandidateIndex(t *testing.T) {
	index := map[string]Candidate{"a": {ID: "a"}, "b": {ID: "b"}}
	got := ParseIDs("b，a，c", index)
	if diff := cmp.Diff([]string{"b", "a"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
