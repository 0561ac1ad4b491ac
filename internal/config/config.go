package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
// It exits the process when a required variable is missing.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %s", err)
	}
	return cfg
}

// FromEnv builds a Config using lookup to read variables.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	// A helper function to get a required env var.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	getEnvOr := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	var invalid []string
	getInt := func(key string, fallback int) int {
		raw := getEnvOr(key, "")
		if raw == "" {
			return fallback
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return fallback
		}
		return v
	}

	rps, err := strconv.ParseFloat(getEnvOr("STEAM_REQUESTS_PER_SECOND", "5"), 64)
	if err != nil || rps <= 0 {
		invalid = append(invalid, "STEAM_REQUESTS_PER_SECOND")
	}
	heroTTL, err := time.ParseDuration(getEnvOr("STEAM_HERO_CACHE_TTL", "24h"))
	if err != nil {
		invalid = append(invalid, "STEAM_HERO_CACHE_TTL")
	}

	admins, err := parseSteamIDs(getEnvOr("ADMIN_STEAM_IDS", ""))
	if err != nil {
		invalid = append(invalid, "ADMIN_STEAM_IDS")
	}

	cfg := Config{
		DBName: getEnvOr("DB_NAME", "gleague.db"),
		Port:   getEnvOr("PORT", "8080"),
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		Steam: SteamConfig{
			APIKey:            getEnv("STEAM_API_KEY"),
			BaseURL:           getEnvOr("STEAM_API_URL", "https://api.steampowered.com"),
			HeroCacheTTL:      heroTTL,
			RequestsPerSecond: rps,
		},
		Slack: SlackConfig{
			Token:         getEnvOr("SLACK_BOT_TOKEN", ""),
			ChannelID:     getEnvOr("SLACK_CHANNEL_ID", ""),
			SigningSecret: getEnvOr("SLACK_SIGNING_SECRET", ""),
		},
		League: LeagueConfig{
			BasePtsDiff:           getInt("MATCH_BASE_PTS_DIFF", 20),
			SeasonBasePts:         getInt("SEASON_BASE_PTS", 1000),
			PlayerHistoryPerPage:  getInt("PLAYER_HISTORY_MATCHES_PER_PAGE", 20),
			PlayerOverviewMatches: getInt("PLAYER_OVERVIEW_MATCHES", 8),
		},
		AdminSteamIDs:      admins,
		Dem2JSONPath:       getEnvOr("DEM2JSON_PATH", "./dem2json/dem2json"),
		ProjectID:          getEnvOr("GCP_PROJECT", ""),
		CORSAllowedOrigins: splitList(getEnvOr("CORS_ALLOWED_ORIGINS", "*")),
	}

	if cfg.League.BasePtsDiff <= 5 {
		invalid = append(invalid, "MATCH_BASE_PTS_DIFF")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}

func parseSteamIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range splitList(raw) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
