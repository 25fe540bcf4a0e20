// Package helixmind holds the sequence toolkit behind the helixmind
// commands: FASTA reading and stats, chunked local BLAST execution,
// and clients for the KEGG, Entrez, structure and chat endpoints.
package helixmind

import (
	"fmt"
	"os"
	"strings"

	"github.com/bebop/poly/checks"
)

// SequenceRecord is a single FASTA record
type SequenceRecord struct {
	// the text of the header line, without the leading ">"
	ID string

	// the record's sequence with line breaks removed
	Seq string
}

// GCContent returns the record's GC percentage (0-100).
// An empty sequence has 0 GC content.
func (r SequenceRecord) GCContent() float64 {
	if len(r.Seq) == 0 {
		return 0
	}
	return checks.GcContent(strings.ToUpper(r.Seq)) * 100
}

// Stats summarizes the records read from one FASTA file
type Stats struct {
	// number of records in the file
	Total int `json:"total_sequences"`

	// length of the shortest record, 0 if the file is empty
	Shortest int `json:"shortest"`

	// length of the longest record, 0 if the file is empty
	Longest int `json:"longest"`

	// integer average of the record lengths
	Average int `json:"average"`

	// number of records matching the exact-length filter
	FilteredCount int `json:"filtered_count"`
}

// ReadFASTA reads a FASTA file to a slice of SequenceRecords.
// Any line starting with ">" begins a new record, its following
// lines are joined into the record's sequence.
func ReadFASTA(path string) ([]SequenceRecord, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read FASTA file %s: %w", path, err)
	}

	lines := strings.Split(string(dat), "\n")

	// find the header lines
	var headerIndices []int
	var ids []string
	for i, line := range lines {
		if strings.HasPrefix(line, ">") {
			headerIndices = append(headerIndices, i)
			ids = append(ids, strings.TrimSpace(line[1:]))
		}
	}

	// accumulate the sequences from between the headers
	var seqs []string
	for i, headerIndex := range headerIndices {
		nextLine := len(lines)
		if i < len(headerIndices)-1 {
			nextLine = headerIndices[i+1]
		}

		var b strings.Builder
		for _, seqLine := range lines[headerIndex+1 : nextLine] {
			b.WriteString(strings.TrimSpace(seqLine))
		}
		seqs = append(seqs, b.String())
	}

	records := make([]SequenceRecord, 0, len(ids))
	for i, id := range ids {
		records = append(records, SequenceRecord{
			ID:  id,
			Seq: seqs[i],
		})
	}
	return records, nil
}

// Summarize computes Stats over records. If desiredLength is greater
// than zero, the returned slice holds only records of exactly that
// length and FilteredCount is their number; otherwise all records are
// returned unchanged.
func Summarize(records []SequenceRecord, desiredLength int) ([]SequenceRecord, Stats) {
	stats := Stats{Total: len(records)}

	sum := 0
	for i, r := range records {
		l := len(r.Seq)
		sum += l
		if i == 0 || l < stats.Shortest {
			stats.Shortest = l
		}
		if l > stats.Longest {
			stats.Longest = l
		}
	}
	if len(records) > 0 {
		stats.Average = sum / len(records)
	}

	if desiredLength <= 0 {
		return records, stats
	}

	filtered := []SequenceRecord{}
	for _, r := range records {
		if len(r.Seq) == desiredLength {
			filtered = append(filtered, r)
		}
	}
	stats.FilteredCount = len(filtered)
	return filtered, stats
}
