package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/biostackaryan/helixmind/config"
	"github.com/biostackaryan/helixmind/internal/helixmind"
)

// pubmedCmd searches PubMed through Entrez
var pubmedCmd = &cobra.Command{
	Use:     "pubmed [query]",
	Short:   "Search PubMed articles by gene name or keyword",
	Example: "  helixmind pubmed \"BRCA1 breast cancer\"",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := config.New()

		cache, err := helixmind.OpenCache(c.CacheDir)
		if err != nil {
			logger.Debug("response cache unavailable", "err", err)
			cache = nil
		}
		defer cache.Close()

		client := helixmind.NewPubMedClient(c.Entrez.URL, time.Duration(c.Entrez.TimeoutSeconds)*time.Second, cache)
		articles, err := client.Search(args[0], c.Entrez.MaxResults)
		if err != nil {
			logger.Fatal(err)
		}
		if len(articles) == 0 {
			logger.Info("no articles matched", "query", args[0])
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
		fmt.Fprintf(w, "pmid\ttitle\tsource\tdate\t\n")
		for _, a := range articles {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", a.ID, a.Title, a.Source, a.PubDate)
		}
		w.Flush()
	},
}

func init() {
	pubmedCmd.Flags().IntP("max-results", "m", 5, "max number of articles to list")
	viper.BindPFlag("entrez.max-results", pubmedCmd.Flags().Lookup("max-results"))

	rootCmd.AddCommand(pubmedCmd)
}
