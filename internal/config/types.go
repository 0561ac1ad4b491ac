package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName string
	Port   string
	Turso  TursoConfig
	Steam  SteamConfig
	Slack  SlackConfig
	League LeagueConfig
	// AdminSteamIDs may ingest matches and start seasons.
	AdminSteamIDs      []int64
	Dem2JSONPath       string
	ProjectID          string
	CORSAllowedOrigins []string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SteamConfig struct {
	APIKey       string
	BaseURL      string
	HeroCacheTTL time.Duration
	// RequestsPerSecond throttles outgoing Steam Web API calls.
	RequestsPerSecond float64
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// Enabled reports whether result notifications can be posted.
func (c SlackConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}

type LeagueConfig struct {
	BasePtsDiff           int
	SeasonBasePts         int
	PlayerHistoryPerPage  int
	PlayerOverviewMatches int
}

// IsAdmin reports whether steamID is listed in ADMIN_STEAM_IDS.
func (c Config) IsAdmin(steamID int64) bool {
	for _, id := range c.AdminSteamIDs {
		if id == steamID {
			return true
		}
	}
	return false
}
