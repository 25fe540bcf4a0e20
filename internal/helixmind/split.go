package helixmind

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// splitFASTA reads the FASTA file at path line by line and writes its
// records into chunk files of at most chunkSize sequences each, under
// dir. Line content and order are preserved byte for byte, including
// a last line without a trailing newline. The returned paths are in
// the order the chunks were written.
//
// A file with zero records produces zero chunk files.
func splitFASTA(path, dir string, chunkSize int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FASTA file %s: %w", path, err)
	}
	defer f.Close()

	var (
		chunkFiles []string
		chunk      []string
		seqCount   = 0
		chunkIndex = 1
	)

	flush := func() error {
		name := filepath.Join(dir, fmt.Sprintf("chunk_%d.fasta", chunkIndex))
		if err := os.WriteFile(name, []byte(strings.Join(chunk, "")), 0666); err != nil {
			return fmt.Errorf("failed to write chunk file %s: %w", name, err)
		}
		chunkFiles = append(chunkFiles, name)
		chunkIndex++
		return nil
	}

	reader := bufio.NewReader(f)
	for {
		// lines keep their newline so chunks are byte-exact slices
		// of the input
		line, readErr := reader.ReadString('\n')
		if line != "" {
			if strings.HasPrefix(line, ">") {
				seqCount++
				if seqCount > chunkSize {
					// the header that overflowed the chunk starts the next one
					if err := flush(); err != nil {
						return nil, err
					}
					chunk = nil
					seqCount = 1
				}
			}
			chunk = append(chunk, line)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read FASTA file %s: %w", path, readErr)
		}
	}

	// write the last chunk, unless no record was ever started
	if len(chunk) > 0 && seqCount > 0 {
		if err := flush(); err != nil {
			return nil, err
		}
	}

	return chunkFiles, nil
}
