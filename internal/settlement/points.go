package settlement

import "math"

// handicapDivisor scales the gap between team point totals into the handicap.
const handicapDivisor = 20

// HandicapMagnitude shrinks or grows the base swing according to how lopsided
// the teams were. It never exceeds baseDiff-5.
func HandicapMagnitude(radiantTotal, direTotal, baseDiff int) float64 {
	magnitude := math.Abs(float64(radiantTotal-direTotal)) / handicapDivisor
	if limit := float64(baseDiff - 5); magnitude > limit {
		magnitude = limit
	}
	return magnitude
}

// TeamDeltas returns the points each Radiant and each Dire player receive.
// The favored team gains less for a win and loses more for a loss. Deltas
// are truncated toward zero and always sum to zero across the teams.
func TeamDeltas(radiantFavored, radiantWon bool, baseDiff int, magnitude float64) (radiant, dire int) {
	base := float64(baseDiff)
	switch {
	case radiantFavored && radiantWon:
		radiant = int(base - magnitude)
	case radiantFavored && !radiantWon:
		radiant = -int(base + magnitude)
	case !radiantFavored && radiantWon:
		radiant = int(base + magnitude)
	default:
		radiant = -int(base - magnitude)
	}
	return radiant, -radiant
}
