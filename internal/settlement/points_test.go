package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandicapMagnitude(t *testing.T) {
	tests := []struct {
		name          string
		radiant, dire int
		baseDiff      int
		expected      float64
	}{
		{"equal totals", 5000, 5000, 20, 0},
		{"radiant ahead", 5200, 5000, 20, 10},
		{"dire ahead", 5000, 5200, 20, 10},
		{"fractional", 5010, 5000, 20, 0.5},
		{"capped at base minus five", 6000, 5000, 20, 15},
		{"cap follows base", 6000, 5000, 10, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, HandicapMagnitude(tt.radiant, tt.dire, tt.baseDiff), 1e-9)
		})
	}
}

func TestTeamDeltas(t *testing.T) {
	tests := []struct {
		name           string
		radiantFavored bool
		radiantWon     bool
		magnitude      float64
		radiant        int
	}{
		{"radiant favored and wins", true, true, 10, 10},
		{"radiant favored and loses", true, false, 10, -30},
		{"dire favored and radiant wins", false, true, 10, 30},
		{"dire favored and wins", false, false, 10, -10},
		{"favored win truncates toward zero", true, true, 0.5, 19},
		{"favored loss truncates toward zero", true, false, 0.5, -20},
		{"underdog win truncates toward zero", false, true, 0.5, 20},
		{"underdog loss truncates toward zero", false, false, 0.5, -19},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			radiant, dire := TeamDeltas(tt.radiantFavored, tt.radiantWon, 20, tt.magnitude)
			assert.Equal(t, tt.radiant, radiant)
			assert.Equal(t, -radiant, dire, "deltas must be zero-sum")
		})
	}
}

func TestTeamDeltas_Scenarios(t *testing.T) {
	t.Run("favored radiant wins", func(t *testing.T) {
		m := HandicapMagnitude(5200, 5000, 20)
		radiant, dire := TeamDeltas(5200 > 5000, true, 20, m)
		assert.Equal(t, 10, radiant)
		assert.Equal(t, -10, dire)
	})

	t.Run("equal totals resolve to dire favored", func(t *testing.T) {
		m := HandicapMagnitude(5000, 5000, 20)
		radiant, dire := TeamDeltas(5000 > 5000, true, 20, m)
		assert.Equal(t, 20, radiant)
		assert.Equal(t, -20, dire)
	})
}
