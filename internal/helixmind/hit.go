package helixmind

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxHitLine allows very long output lines (subject titles can be big)
const maxHitLine = 64 * 1024 * 1024

// HitRecord is a single alignment hit from one line of tabular output
type HitRecord struct {
	// id of the query sequence
	QueryID string `json:"qseqid"`

	// id of the matched database entry
	SubjectID string `json:"sseqid"`

	// title of the matched database entry
	SubjectTitle string `json:"stitle"`

	// percent identity of the alignment (0-100)
	PercentIdentity float64 `json:"pident"`

	// length of the alignment in residues
	AlignmentLength int `json:"length"`

	// statistical significance of the hit
	EValue float64 `json:"evalue"`

	// bit score of the alignment
	BitScore float64 `json:"bitscore"`
}

// ParseHits reads merged tabular BLAST output into HitRecords.
// A line is accepted only if it splits into at least 7 tab-separated
// fields; shorter and empty lines are skipped.
func ParseHits(r io.Reader) ([]HitRecord, error) {
	var hits []HitRecord

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxHitLine)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < 7 {
			continue
		}

		pident, _ := strconv.ParseFloat(cols[3], 64)
		length, _ := strconv.Atoi(cols[4])
		evalue, _ := strconv.ParseFloat(cols[5], 64)
		bitscore, _ := strconv.ParseFloat(strings.TrimSpace(cols[6]), 64)

		hits = append(hits, HitRecord{
			QueryID:         cols[0],
			SubjectID:       cols[1],
			SubjectTitle:    cols[2],
			PercentIdentity: pident,
			AlignmentLength: length,
			EValue:          evalue,
			BitScore:        bitscore,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read BLAST output: %w", err)
	}

	return hits, nil
}

// ParseHitsFile reads the tabular output file at path into HitRecords
func ParseHitsFile(path string) ([]HitRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open BLAST output %s: %w", path, err)
	}
	defer f.Close()

	return ParseHits(f)
}
