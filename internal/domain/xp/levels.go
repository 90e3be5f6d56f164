package xp

// levelThresholds is the cumulative lifetime-XP required to reach each
// level; index i holds the threshold for level i+1. The table is strictly
// increasing, which makes LevelFromXP monotonic by construction.
var levelThresholds = []int64{
	0,      // level 1
	100,    // level 2
	250,    // level 3
	500,    // level 4
	900,    // level 5
	1400,   // level 6
	2100,   // level 7
	3000,   // level 8
	4200,   // level 9
	5800,   // level 10
	8000,   // level 11
	11000,  // level 12
	15000,  // level 13
	20000,  // level 14
	26000,  // level 15
	33000,  // level 16
	41000,  // level 17
	50000,  // level 18
	60000,  // level 19
	75000,  // level 20
}

// MaxLevel is the highest defined level.
func MaxLevel() int {
	return len(levelThresholds)
}

// LevelFromXP maps cumulative lifetime XP to a discrete level, starting at
// level 1 for zero XP. Negative input is treated as zero.
func LevelFromXP(totalXP int64) int {
	if totalXP < 0 {
		totalXP = 0
	}

	level := 1
	for i := len(levelThresholds) - 1; i >= 0; i-- {
		if totalXP >= levelThresholds[i] {
			level = i + 1
			break
		}
	}
	return level
}

// LevelProgress returns the fractional progress from the current level's
// threshold toward the next, in [0, 1). At the max level it returns 0.
func LevelProgress(totalXP int64) float64 {
	if totalXP < 0 {
		totalXP = 0
	}

	level := LevelFromXP(totalXP)
	if level >= MaxLevel() {
		return 0
	}

	current := levelThresholds[level-1]
	next := levelThresholds[level]
	return float64(totalXP-current) / float64(next-current)
}

// XPToNextLevel returns the remaining XP gap to the next level, or 0 at the
// max defined level.
func XPToNextLevel(totalXP int64) int64 {
	if totalXP < 0 {
		totalXP = 0
	}

	level := LevelFromXP(totalXP)
	if level >= MaxLevel() {
		return 0
	}
	return levelThresholds[level] - totalXP
}
