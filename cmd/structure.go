package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/biostackaryan/helixmind/internal/helixmind"
)

var structureOut string

// structureCmd downloads a 3D structure file from RCSB or PubChem
var structureCmd = &cobra.Command{
	Use:   "structure [pdb:ID | cid:N]",
	Short: "Download a 3D structure from the PDB or PubChem",
	Long: `Download a 3D structure file for viewing in an external viewer.

Queries are prefixed with their repository: "pdb:1ABC" fetches a PDB
file from RCSB, "cid:2244" fetches a 3D SDF from PubChem.`,
	Example: "  helixmind structure pdb:1ABC\n  helixmind structure cid:2244 -o aspirin.sdf",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := helixmind.NewStructureClient(30 * time.Second)

		data, format, err := client.Fetch(args[0])
		if err != nil {
			logger.Fatal(err)
		}

		out := structureOut
		if out == "" {
			out = defaultStructureFile(args[0], format)
		}
		if err := os.WriteFile(out, []byte(data), 0666); err != nil {
			logger.Fatal(err)
		}

		logger.Info("structure saved", "format", format, "file", out)
	},
}

// defaultStructureFile names the output file after the query's id.
// PDB ids are uppercased to match the id the file was fetched under.
func defaultStructureFile(query, format string) string {
	_, id, _ := strings.Cut(query, ":")
	if format == "pdb" {
		id = strings.ToUpper(id)
	}
	return fmt.Sprintf("%s.%s", id, format)
}

func init() {
	structureCmd.Flags().StringVarP(&structureOut, "out", "o", "", "file to save the structure to")

	rootCmd.AddCommand(structureCmd)
}
