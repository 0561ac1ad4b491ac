package match

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameModeName(t *testing.T) {
	assert.Equal(t, "All Pick", GameModeName(1))
	assert.Equal(t, "Captains Mode", GameModeName(2))
	assert.Equal(t, "Ranked All Pick", GameModeName(22))
	assert.Equal(t, "unknown", GameModeName(23))
}

func TestMatchPresentation(t *testing.T) {
	m := Match{RadiantWin: false, Duration: 2405, GameMode: 16}
	assert.Equal(t, "Dire", m.WinnerString())
	assert.Equal(t, "40:05", m.DurationString())
	assert.Equal(t, "Captains Draft", m.GameModeString())

	m.RadiantWin = true
	assert.Equal(t, "Radiant", m.WinnerString())
}

func TestRawMatchDecoding(t *testing.T) {
	payload := `{
		"match_id": 7123456789,
		"radiant_win": true,
		"duration": 1800,
		"game_mode": 2,
		"start_time": 1700000000,
		"players": [{
			"account_id": 86745912, "kills": 10, "deaths": 2, "assists": 7, "hero_id": 1,
			"hero_damage": 20000, "tower_damage": 3000, "last_hits": 300, "denies": 12,
			"level": 25, "xp_per_min": 700, "gold_per_min": 650, "damage_taken": 15000,
			"player_slot": 0
		}]
	}`

	var raw RawMatch
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	assert.Equal(t, int64(7123456789), raw.MatchID)
	require.Len(t, raw.Players, 1)
	p := raw.Players[0]
	assert.True(t, p.IsRadiant())
	assert.Nil(t, p.HeroHealing, "missing optional counters stay nil")
	require.NotNil(t, p.TowerDamage)
	assert.Equal(t, 3000, *p.TowerDamage)
}

func TestHistoryHelpers(t *testing.T) {
	e := HistoryEntry{PlayerStats: PlayerStats{PlayerSlot: 7}, RadiantWin: false}
	assert.True(t, e.Won())
	e.RadiantWin = true
	assert.False(t, e.Won())

	assert.Equal(t, 3, HistoryPage{Total: 41, PerPage: 20}.Pages())
	assert.Equal(t, 0, HistoryPage{Total: 0, PerPage: 20}.Pages())
}
