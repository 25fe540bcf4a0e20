package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docsDir string

// docsCmd outputs Markdown documentation files for every command
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Generate Markdown documentation for the helixmind commands",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		if err := doc.GenMarkdownTree(rootCmd, docsDir); err != nil {
			logger.Fatal(err)
		}
		logger.Info("documentation generated", "dir", docsDir)
	},
}

func init() {
	docsCmd.Flags().StringVarP(&docsDir, "dir", "d", "./docs", "directory to write the Markdown files to")

	rootCmd.AddCommand(docsCmd)
}
