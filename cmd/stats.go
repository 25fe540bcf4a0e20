package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/biostackaryan/helixmind/internal/helixmind"
)

var statsLength int

// statsCmd summarizes the records of a FASTA file
var statsCmd = &cobra.Command{
	Use:   "stats [fasta]",
	Short: "Summarize a FASTA file: counts, length range and per-record GC content",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		records, err := helixmind.ReadFASTA(args[0])
		if err != nil {
			logger.Fatal(err)
		}

		filtered, stats := helixmind.Summarize(records, statsLength)

		fmt.Printf("sequences: %d\n", stats.Total)
		fmt.Printf("shortest:  %d\n", stats.Shortest)
		fmt.Printf("longest:   %d\n", stats.Longest)
		fmt.Printf("average:   %d\n", stats.Average)
		if statsLength > 0 {
			fmt.Printf("matching length %d: %d\n", statsLength, stats.FilteredCount)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
		fmt.Fprintf(w, "\nid\tlength\tGC%%\t\n")
		for _, r := range filtered {
			fmt.Fprintf(w, "%s\t%d\t%.1f\t\n", r.ID, len(r.Seq), r.GCContent())
		}
		w.Flush()
	},
}

func init() {
	statsCmd.Flags().IntVarP(&statsLength, "length", "l", 0, "only list records of exactly this length")

	rootCmd.AddCommand(statsCmd)
}
