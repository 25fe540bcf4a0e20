package cmd

import "testing"

func Test_defaultStructureFile(t *testing.T) {
	tests := []struct {
		query  string
		format string
		want   string
	}{
		{"pdb:1abc", "pdb", "1ABC.pdb"},
		{"pdb:1ABC", "pdb", "1ABC.pdb"},
		{"cid:2244", "sdf", "2244.sdf"},
	}

	for _, tt := range tests {
		if got := defaultStructureFile(tt.query, tt.format); got != tt.want {
			t.Errorf("defaultStructureFile(%q, %q) = %q, want %q", tt.query, tt.format, got, tt.want)
		}
	}
}
