package streak

// Milestone is a streak length that grants a one-time flat XP bonus.
type Milestone struct {
	Days    int
	BonusXP int
}

// milestones is the fixed milestone table, ascending by length. Bonuses are
// flat amounts; the XP economy never applies the streak multiplier to them.
var milestones = []Milestone{
	{Days: 7, BonusXP: 50},
	{Days: 14, BonusXP: 100},
	{Days: 30, BonusXP: 250},
	{Days: 60, BonusXP: 500},
	{Days: 100, BonusXP: 1000},
	{Days: 365, BonusXP: 5000},
}

// CheckMilestone returns the milestone matching exactly the given streak
// length, if any. Callers fire it only on the day-bootstrap transition, so a
// streak sitting at or above a threshold cannot re-trigger the bonus.
func CheckMilestone(streakLength int) (Milestone, bool) {
	for _, m := range milestones {
		if m.Days == streakLength {
			return m, true
		}
	}
	return Milestone{}, false
}

// Milestones returns a copy of the milestone table.
func Milestones() []Milestone {
	out := make([]Milestone, len(milestones))
	copy(out, milestones)
	return out
}
