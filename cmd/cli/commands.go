package main

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	amount int
	offset int
	page   int
	hero   string
)

func init() {
	matchesCmd.Flags().IntVar(&amount, "amount", 10, "Matches per page")
	matchesCmd.Flags().IntVar(&offset, "offset", 0, "Page number, starting at 0")
	historyCmd.Flags().IntVar(&page, "page", 1, "History page")
	historyCmd.Flags().StringVar(&hero, "hero", "", "Only show matches on this hero")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(ratingsCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(seasonsCmd)
	rootCmd.AddCommand(newSeasonCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(uploadCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List settled matches, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(fmt.Sprintf("/matches?amount=%d&offset=%d", amount, offset))
	},
}

var matchCmd = &cobra.Command{
	Use:   "match [match id]",
	Short: "Show a settled match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches/" + url.PathEscape(args[0]))
	},
}

var ratingsCmd = &cobra.Command{
	Use:   "ratings [match id]",
	Short: "Show the ratings of a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches/" + url.PathEscape(args[0]) + "/ratings")
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate [match id] [stats id] [rating]",
	Short: "Rate a player's performance in a match you played",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := fmt.Sprintf("/matches/%s/ratings/%s?rating=%s", url.PathEscape(args[0]), url.PathEscape(args[1]), url.QueryEscape(args[2]))
		return performPostRequest(endpoint, "", nil)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the current season leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/seasons/current/standings")
	},
}

var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "List all seasons",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/seasons")
	},
}

var newSeasonCmd = &cobra.Command{
	Use:   "new-season",
	Short: "Close the current season and open the next one (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/seasons", "", nil)
	},
}

var playerCmd = &cobra.Command{
	Use:   "player [steam id]",
	Short: "Show a player's overview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players/" + url.PathEscape(args[0]))
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [steam id]",
	Short: "Show a player's match history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		q.Set("page", fmt.Sprint(page))
		if hero != "" {
			q.Set("hero", hero)
		}
		return performGetRequest("/players/" + url.PathEscape(args[0]) + "/matches?" + q.Encode())
	},
}

var importCmd = &cobra.Command{
	Use:   "import [match.json]",
	Short: "Settle a match from a JSON payload (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
		return performPostRequest("/matches", "application/json", bytes.NewReader(data))
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload [replay.dem]",
	Short: "Upload a replay to be converted and settled (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open replay: %w", err)
		}
		defer f.Close()

		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		part, err := w.CreateFormFile("replay", filepath.Base(args[0]))
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, f); err != nil {
			return fmt.Errorf("failed to read replay: %w", err)
		}
		if err := w.Close(); err != nil {
			return err
		}
		return performPostRequest("/matches/replay", w.FormDataContentType(), &body)
	},
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint, "", nil)
}

func performPostRequest(endpoint, contentType string, body io.Reader) error {
	return performRequest(http.MethodPost, endpoint, contentType, body)
}

func performRequest(method, endpoint, contentType string, body io.Reader) error {
	u, err := url.Parse(host + endpoint)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if dryRun {
		q := u.Query()
		q.Set("dry_run", "true")
		u.RawQuery = q.Encode()
	}
	fmt.Printf("Making request to %s\n", u)

	req, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if steamID != "" {
		req.Header.Set("X-Steam-ID", steamID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
