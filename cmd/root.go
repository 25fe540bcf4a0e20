// Package cmd is for command line interactions with the helixmind application
package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/biostackaryan/helixmind/config"
)

// logger writes structured status lines to stderr
var logger = log.New(os.Stderr)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "helixmind",
	Short: `Bioinformatics toolkit: chunked local BLAST, FASTA statistics,
KEGG and PubMed lookups, 3D structure downloads and a chat assistant`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Setup()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}
