package helixmind

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// blastOutFormat is the tabular column layout passed to the BLAST+
// binary. It is a contract with the tool and with ParseHits; the
// columns are query id, subject id, subject title, percent identity,
// alignment length, e-value and bit score.
const blastOutFormat = "6 qseqid sseqid stitle pident length evalue bitscore"

// dbExtensions are the index files a nucleotide BLAST database
// prefix must have before any search can run
var dbExtensions = []string{".nin", ".nhr", ".nsq"}

// BlastInvocation is the whole-run parameters for RunBlast.
// Validated once at entry and immutable for the run's duration.
type BlastInvocation struct {
	// path to the input FASTA file
	Query string

	// the BLAST+ program to run (blastn, blastp, etc)
	Program string

	// path prefix of the BLAST database
	DB string

	// e-value threshold for reported hits
	EValue float64

	// worker pool cap, also passed per invocation as -num_threads
	Threads int

	// maximum number of sequences per chunk
	ChunkSize int

	// path the combined output is written to
	Out string

	// directory for chunk files; a unique one is created when empty
	WorkDir string

	// leave chunk input/output files on disk after the run
	KeepChunks bool
}

// MissingDBError is returned when the database index files are
// not all present at the configured prefix. No searches are run.
type MissingDBError struct {
	// every missing index file path
	Missing []string
}

func (e *MissingDBError) Error() string {
	return fmt.Sprintf("missing BLAST DB files: %s", strings.Join(e.Missing, ", "))
}

// ChunkError is returned when the external tool exits non-zero for
// one chunk. It carries the chunk file and the tool's stderr.
type ChunkError struct {
	// path of the chunk input file that failed
	Chunk string

	// captured stderr of the failed invocation
	Output string

	// the underlying exec error
	Err error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("BLAST failed on %s: %v\n%s", e.Chunk, e.Err, e.Output)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// chunkExec is one external search invocation over a single chunk
type chunkExec struct {
	// the program to execute
	program string

	// path to the chunk's FASTA input
	in string

	// path the invocation writes its tabular output to
	out string

	// the database prefix searched against
	db string

	// e-value threshold for this invocation
	evalue float64

	// -num_threads for this invocation
	threads int
}

// run calls the external binary and waits on it to finish.
// A non-zero exit becomes a ChunkError with the captured stderr.
func (b *chunkExec) run(ctx context.Context) error {
	// https://www.ncbi.nlm.nih.gov/books/NBK279684/
	cmd := exec.CommandContext(
		ctx,
		b.program,
		"-query", b.in,
		"-db", b.db,
		"-evalue", strconv.FormatFloat(b.evalue, 'g', -1, 64),
		"-outfmt", blastOutFormat,
		"-num_threads", strconv.Itoa(b.threads),
		"-out", b.out,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &ChunkError{
			Chunk:  b.in,
			Output: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return nil
}

// RunBlast runs a local BLAST search over the query file, splitting it
// into chunks of at most ChunkSize sequences and searching the chunks
// in parallel with a worker pool of min(chunk count, Threads). On full
// success the chunks' outputs are concatenated, in chunk order, into
// inv.Out and its path is returned.
//
// The first failing chunk fails the whole run: already-completed chunk
// outputs are discarded, nothing is merged.
func RunBlast(ctx context.Context, inv BlastInvocation) (string, error) {
	if inv.Threads < 1 {
		inv.Threads = 1
	}
	if inv.ChunkSize < 1 {
		inv.ChunkSize = 1
	}

	// make sure the db index files exist before spawning anything
	var missing []string
	for _, ext := range dbExtensions {
		if _, err := os.Stat(inv.DB + ext); os.IsNotExist(err) {
			missing = append(missing, inv.DB+ext)
		}
	}
	if len(missing) > 0 {
		return "", &MissingDBError{Missing: missing}
	}

	workDir := inv.WorkDir
	if workDir == "" {
		// unique per run so concurrent runs never share chunk files
		workDir = filepath.Join("blast_chunks", uuid.NewString())
	}
	if err := os.MkdirAll(workDir, 0777); err != nil {
		return "", fmt.Errorf("failed to create work dir %s: %w", workDir, err)
	}

	chunkFiles, err := splitFASTA(inv.Query, workDir, inv.ChunkSize)
	if err != nil {
		return "", err
	}

	// one output path per chunk, in submission order
	outputs := make([]string, len(chunkFiles))
	for i, chunkFile := range chunkFiles {
		base := strings.TrimSuffix(filepath.Base(chunkFile), ".fasta")
		outputs[i] = filepath.Join(workDir, base+"_out.txt")
	}

	if !inv.KeepChunks {
		if inv.WorkDir == "" {
			defer os.Remove(filepath.Dir(workDir)) // shared parent, only if empty
		}
		defer removeChunks(workDir, chunkFiles, outputs)
	}

	// search every chunk with a bounded worker pool. all submitted
	// work is waited on before any error is reported
	workers := inv.Threads
	if len(chunkFiles) < workers {
		workers = len(chunkFiles)
	}

	errs := make([]error, len(chunkFiles))
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				b := &chunkExec{
					program: inv.Program,
					in:      chunkFiles[i],
					out:     outputs[i],
					db:      inv.DB,
					evalue:  inv.EValue,
					threads: inv.Threads,
				}
				errs[i] = b.run(ctx)
			}
		}()
	}
	for i := range chunkFiles {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return "", err
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// merge the chunk outputs in submission order
	combined, err := os.Create(inv.Out)
	if err != nil {
		return "", fmt.Errorf("failed to create output file %s: %w", inv.Out, err)
	}
	defer combined.Close()

	for _, outFile := range outputs {
		f, err := os.Open(outFile)
		if err != nil {
			return "", fmt.Errorf("failed to open chunk output %s: %w", outFile, err)
		}
		if _, err := io.Copy(combined, f); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to merge chunk output %s: %w", outFile, err)
		}
		f.Close()
	}

	return inv.Out, nil
}

// removeChunks deletes the chunk input and output files and the work
// dir if it's left empty. Best-effort: failures are ignored so cleanup
// never masks the run's result.
func removeChunks(workDir string, chunkFiles, outputs []string) {
	for _, f := range append(append([]string{}, chunkFiles...), outputs...) {
		os.Remove(f)
	}
	os.Remove(workDir) // fails, silently, unless empty
}
