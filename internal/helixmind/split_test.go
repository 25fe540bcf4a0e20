package helixmind

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestFASTA writes count records to a new FASTA file and
// returns its path
func writeTestFASTA(t *testing.T, dir string, count int) string {
	t.Helper()

	var b strings.Builder
	for i := 1; i <= count; i++ {
		fmt.Fprintf(&b, ">seq_%d test record\n", i)
		fmt.Fprintf(&b, "ATGCATGCATGC\n")
		fmt.Fprintf(&b, "GGGCCCAAATTT\n")
	}

	path := filepath.Join(dir, "input.fasta")
	if err := os.WriteFile(path, []byte(b.String()), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func Test_splitFASTA(t *testing.T) {
	tests := []struct {
		name       string
		seqCount   int
		chunkSize  int
		wantChunks int
	}{
		{"even split", 4, 2, 2},
		{"remainder chunk", 3, 2, 2},
		{"single chunk", 2, 500, 1},
		{"one per chunk", 3, 1, 3},
		{"empty input", 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := writeTestFASTA(t, dir, tt.seqCount)

			chunks, err := splitFASTA(input, dir, tt.chunkSize)
			if err != nil {
				t.Errorf("splitFASTA() error = %v", err)
				return
			}
			if len(chunks) != tt.wantChunks {
				t.Errorf("splitFASTA() produced %d chunks, want %d", len(chunks), tt.wantChunks)
				return
			}

			// every chunk holds at most chunkSize sequences and the
			// concatenation reproduces the original order
			var allIDs []string
			for _, chunk := range chunks {
				records, err := ReadFASTA(chunk)
				if err != nil {
					t.Errorf("failed to re-read chunk %s: %v", chunk, err)
					return
				}
				if len(records) > tt.chunkSize {
					t.Errorf("chunk %s has %d sequences, max is %d", chunk, len(records), tt.chunkSize)
				}
				for _, r := range records {
					allIDs = append(allIDs, r.ID)
				}
			}

			for i, id := range allIDs {
				want := fmt.Sprintf("seq_%d test record", i+1)
				if id != want {
					t.Errorf("sequence %d out of order: got %q, want %q", i, id, want)
				}
			}
			if len(allIDs) != tt.seqCount {
				t.Errorf("chunks hold %d sequences total, want %d", len(allIDs), tt.seqCount)
			}
		})
	}
}

func Test_splitFASTA_preservesLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"trailing newline", ">a first\nATGC\nGGGG\n>b second\nTTTT\n"},
		{"no trailing newline", ">a first\nATGC\nGGGG\n>b second\nTTTT"},
		{"crlf line endings", ">a first\r\nATGC\r\n>b second\r\nTTTT\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := filepath.Join(dir, "in.fasta")
			if err := os.WriteFile(input, []byte(tt.content), 0666); err != nil {
				t.Fatal(err)
			}

			chunks, err := splitFASTA(input, dir, 500)
			if err != nil {
				t.Fatalf("splitFASTA() error = %v", err)
			}
			if len(chunks) != 1 {
				t.Fatalf("splitFASTA() produced %d chunks, want 1", len(chunks))
			}

			out, err := os.ReadFile(chunks[0])
			if err != nil {
				t.Fatal(err)
			}
			if string(out) != tt.content {
				t.Errorf("chunk content = %q, want original %q", out, tt.content)
			}
		})
	}
}
