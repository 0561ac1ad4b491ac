package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host    string
	steamID string
	dryRun  bool
)

var rootCmd = &cobra.Command{
	Use:   "gleague-cli",
	Short: "A CLI to interact with the gleague server",
	Long: `A command-line interface for making requests to the various endpoints
of the gleague application.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&steamID, "steam-id", os.Getenv("GLEAGUE_STEAM_ID"), "Steam ID sent as X-Steam-ID")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Ask the server to compute without persisting")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
