package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/biostackaryan/helixmind/config"
	"github.com/biostackaryan/helixmind/internal/helixmind"
)

// keggCmd groups the KEGG REST lookups
var keggCmd = &cobra.Command{
	Use:   "kegg",
	Short: "Look up enzymes and pathways in the KEGG REST API",
}

// keggEnzymeCmd fetches and parses a KEGG enzyme record
var keggEnzymeCmd = &cobra.Command{
	Use:     "enzyme [ec-number]",
	Short:   "Fetch a KEGG enzyme record by its EC number",
	Example: "  helixmind kegg enzyme 1.1.1.1",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, closeCache := newKEGGClient()
		defer closeCache()

		rec, err := client.Enzyme(args[0])
		if err != nil {
			logger.Fatal(err)
		}

		b, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			logger.Fatal(err)
		}
		fmt.Println(string(b))
	},
}

// keggFindCmd searches pathways by keyword
var keggFindCmd = &cobra.Command{
	Use:     "find [query]",
	Short:   "Search KEGG pathways by name or keyword",
	Example: "  helixmind kegg find glycolysis",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, closeCache := newKEGGClient()
		defer closeCache()

		matches, err := client.FindPathways(args[0])
		if err != nil {
			logger.Fatal(err)
		}
		if len(matches) == 0 {
			logger.Info("no pathways matched", "query", args[0])
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
		fmt.Fprintf(w, "id\tdescription\t\n")
		for _, m := range matches {
			fmt.Fprintf(w, "%s\t%s\t\n", m.ID, m.Description)
		}
		w.Flush()
	},
}

// keggGetCmd fetches any KEGG record verbatim
var keggGetCmd = &cobra.Command{
	Use:     "get [id]",
	Short:   "Fetch a raw KEGG record by its id",
	Example: "  helixmind kegg get path:map00010",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, closeCache := newKEGGClient()
		defer closeCache()

		body, err := client.Get(args[0])
		if err != nil {
			logger.Fatal(err)
		}
		fmt.Print(body)
	},
}

// newKEGGClient builds a client from settings, with the on-disk cache
// when it can be opened. The second return value closes the cache.
func newKEGGClient() (*helixmind.KEGGClient, func()) {
	c := config.New()

	cache, err := helixmind.OpenCache(c.CacheDir)
	if err != nil {
		logger.Debug("response cache unavailable", "err", err)
		cache = nil
	}

	client := helixmind.NewKEGGClient(c.KEGG.URL, time.Duration(c.KEGG.TimeoutSeconds)*time.Second, cache)
	return client, func() { cache.Close() }
}

func init() {
	keggCmd.AddCommand(keggEnzymeCmd)
	keggCmd.AddCommand(keggFindCmd)
	keggCmd.AddCommand(keggGetCmd)

	rootCmd.AddCommand(keggCmd)
}
