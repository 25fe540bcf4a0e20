package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/biostackaryan/helixmind/config"
	"github.com/biostackaryan/helixmind/internal/helixmind"
)

var (
	blastQuery   string
	blastDB      string
	blastOut     string
	blastWorkDir string
)

// blastCmd runs a chunked local BLAST search over a FASTA file
var blastCmd = &cobra.Command{
	Use:   "blast",
	Short: "Run a local BLAST search, splitting large FASTA files into parallel chunks",
	Long: `Run a local BLAST+ search against a prebuilt database.

The input FASTA file is split into chunks of at most --chunk-size
sequences, one external search runs per chunk (at most --threads at a
time), and the chunks' tabular outputs are concatenated, in order,
into --out. The database prefix must already have its .nin/.nhr/.nsq
index files (see 'makeblastdb').`,
	Run: runBlastCmd,
}

func runBlastCmd(cmd *cobra.Command, args []string) {
	c := config.New()

	out := blastOut
	if out == "" {
		out = "blast_output.txt"
	}

	merged, err := helixmind.RunBlast(context.Background(), helixmind.BlastInvocation{
		Query:      blastQuery,
		Program:    c.Blast.Program,
		DB:         blastDB,
		EValue:     c.Blast.EValue,
		Threads:    c.Blast.Threads,
		ChunkSize:  c.Blast.ChunkSize,
		Out:        out,
		WorkDir:    blastWorkDir,
		KeepChunks: c.Blast.KeepChunks,
	})
	if err != nil {
		var missingErr *helixmind.MissingDBError
		if errors.As(err, &missingErr) {
			logger.Fatal("BLAST database is incomplete", "missing", missingErr.Missing)
		}
		logger.Fatal(err)
	}

	hits, err := helixmind.ParseHitsFile(merged)
	if err != nil {
		logger.Fatal(err)
	}

	logger.Info("BLAST completed", "hits", len(hits), "results", merged)
}

func init() {
	blastCmd.Flags().StringVarP(&blastQuery, "query", "q", "", "path to the FASTA file to search with")
	blastCmd.Flags().StringVarP(&blastDB, "db", "d", "", "path prefix of the BLAST database")
	blastCmd.Flags().StringVarP(&blastOut, "out", "o", "", "path to write the combined tabular output to")
	blastCmd.Flags().StringVarP(&blastWorkDir, "work-dir", "w", "", "directory for chunk files (default: a unique dir under blast_chunks)")
	blastCmd.Flags().StringP("program", "p", "blastn", "BLAST+ program to run")
	blastCmd.Flags().Float64P("evalue", "e", 0.001, "e-value threshold for reported hits")
	blastCmd.Flags().IntP("threads", "t", 4, "max parallel searches, also -num_threads per search")
	blastCmd.Flags().IntP("chunk-size", "c", 500, "max sequences per chunk")
	blastCmd.Flags().BoolP("keep-chunks", "k", false, "leave chunk files on disk after the run")

	blastCmd.MarkFlagRequired("query")
	blastCmd.MarkFlagRequired("db")

	viper.BindPFlag("blast.program", blastCmd.Flags().Lookup("program"))
	viper.BindPFlag("blast.evalue", blastCmd.Flags().Lookup("evalue"))
	viper.BindPFlag("blast.threads", blastCmd.Flags().Lookup("threads"))
	viper.BindPFlag("blast.chunk-size", blastCmd.Flags().Lookup("chunk-size"))
	viper.BindPFlag("blast.keep-chunks", blastCmd.Flags().Lookup("keep-chunks"))

	rootCmd.AddCommand(blastCmd)
}
