package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/biostackaryan/helixmind/config"
	"github.com/biostackaryan/helixmind/internal/helixmind"
)

var chatAPIKey string

// chatCmd forwards a prompt to the hosted assistant
var chatCmd = &cobra.Command{
	Use:     "chat [prompt]",
	Short:   "Ask the bioinformatics chat assistant",
	Example: "  helixmind chat \"explain what an e-value means\"",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := config.New()

		key := chatAPIKey
		if key == "" {
			key = os.Getenv(c.Chat.APIKeyEnv)
		}

		client, err := helixmind.NewChatClient(c.Chat.URL, c.Chat.Model, key, time.Duration(c.Chat.TimeoutSeconds)*time.Second)
		if err != nil {
			logger.Fatal(err)
		}

		reply, err := client.Ask(context.Background(), strings.Join(args, " "))
		if err != nil {
			logger.Fatal(err)
		}

		fmt.Println(reply)
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatAPIKey, "api-key", "a", "", "API key (overrides the TOGETHER_API_KEY env variable)")

	rootCmd.AddCommand(chatCmd)
}
