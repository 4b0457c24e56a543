package match

import (
	"reflect"
	"testing"
)

func TestKeywords_Normalization(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "lowercase and split",
			query: "What Is The Capital",
			want:  []string{"what", "the", "capital"},
		},
		{
			name:  "punctuation stripped",
			query: "routing, layer? (seven)",
			want:  []string{"routing", "layer", "seven"},
		},
		{
			name:  "short tokens dropped after stripping",
			query: "what 2+2",
			want:  []string{"what"},
		},
		{
			name:  "duplicates collapse",
			query: "test test TEST testing",
			want:  []string{"test", "testing"},
		},
		{
			name:  "whitespace runs",
			query: "  alpha \t beta\n gamma  ",
			want:  []string{"alpha", "beta", "gamma"},
		},
		{
			name:  "nothing survives",
			query: "a of 2+2 !!",
			want:  nil,
		},
		{
			name:  "empty query",
			query: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Keywords(tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keywords(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
