package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := FromEnv(lookupFrom(map[string]string{"STEAM_API_KEY": "key"}))
		require.NoError(t, err)

		assert.Equal(t, "gleague.db", cfg.DBName)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 20, cfg.League.BasePtsDiff)
		assert.Equal(t, 1000, cfg.League.SeasonBasePts)
		assert.Equal(t, 20, cfg.League.PlayerHistoryPerPage)
		assert.Equal(t, 24*time.Hour, cfg.Steam.HeroCacheTTL)
		assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
		assert.False(t, cfg.Slack.Enabled())
		assert.Empty(t, cfg.AdminSteamIDs)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := FromEnv(lookupFrom(map[string]string{
			"STEAM_API_KEY":       "key",
			"MATCH_BASE_PTS_DIFF": "30",
			"ADMIN_STEAM_IDS":     "76561197960265729, 76561197960265730",
			"SLACK_BOT_TOKEN":     "xoxb",
			"SLACK_CHANNEL_ID":    "C1",
		}))
		require.NoError(t, err)

		assert.Equal(t, 30, cfg.League.BasePtsDiff)
		assert.Equal(t, []int64{76561197960265729, 76561197960265730}, cfg.AdminSteamIDs)
		assert.True(t, cfg.IsAdmin(76561197960265730))
		assert.False(t, cfg.IsAdmin(1))
		assert.True(t, cfg.Slack.Enabled())
	})

	t.Run("missing steam key", func(t *testing.T) {
		_, err := FromEnv(lookupFrom(map[string]string{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "STEAM_API_KEY")
	})

	t.Run("invalid numbers", func(t *testing.T) {
		_, err := FromEnv(lookupFrom(map[string]string{
			"STEAM_API_KEY":       "key",
			"MATCH_BASE_PTS_DIFF": "five",
			"ADMIN_STEAM_IDS":     "abc",
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ADMIN_STEAM_IDS")
	})

	t.Run("base diff must exceed the handicap floor", func(t *testing.T) {
		_, err := FromEnv(lookupFrom(map[string]string{
			"STEAM_API_KEY":       "key",
			"MATCH_BASE_PTS_DIFF": "5",
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MATCH_BASE_PTS_DIFF")
	})
}
