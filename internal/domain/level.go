package domain

// Level maps a cumulative XP threshold to a level number and title.
type Level struct {
	Level      int    `json:"level"`
	XPRequired int64  `json:"xp_required"`
	Title      string `json:"title"`
}

// levelTable is the static level ladder, sorted ascending by XPRequired.
// Level for a given XP is the greatest entry whose threshold is ≤ XP.
var levelTable = []Level{
	{1, 0, "Newcomer"},
	{2, 100, "Beginner"},
	{3, 250, "Consistent"},
	{4, 500, "Dedicated"},
	{5, 1000, "Committed"},
	{6, 1750, "Enthusiast"},
	{7, 2750, "Regular"},
	{8, 4000, "Devoted"},
	{9, 5500, "Expert"},
	{10, 7500, "Master"},
	{11, 10000, "Grandmaster"},
	{12, 13000, "Flexibility Sage"},
	{13, 16500, "Stretch Legend"},
	{14, 20500, "Wellness Guru"},
	{15, 25000, "Transcendent"},
}

// LevelTable returns a copy of the level ladder.
func LevelTable() []Level {
	out := make([]Level, len(levelTable))
	copy(out, levelTable)
	return out
}

// MaxLevel is the highest attainable level.
func MaxLevel() int { return levelTable[len(levelTable)-1].Level }

// LevelTitle returns the title for a level number, or "" if out of range.
func LevelTitle(level int) string {
	for _, l := range levelTable {
		if l.Level == level {
			return l.Title
		}
	}
	return ""
}

// LevelForXP returns the level for a cumulative XP total.
// Monotonic: for xp1 < xp2, LevelForXP(xp1) ≤ LevelForXP(xp2).
func LevelForXP(xp int64) Level {
	current := levelTable[0]
	for _, l := range levelTable {
		if xp >= l.XPRequired {
			current = l
		} else {
			break
		}
	}
	return current
}

// XPToNextLevel returns XP remaining until the next level, or 0 at max level.
func XPToNextLevel(xp int64) int64 {
	cur := LevelForXP(xp)
	if cur.Level >= MaxLevel() {
		return 0
	}
	remaining := levelTable[cur.Level].XPRequired - xp
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// LevelProgressPct returns progress toward the next level (0.0–100.0).
func LevelProgressPct(xp int64) float64 {
	cur := LevelForXP(xp)
	if cur.Level >= MaxLevel() {
		return 100.0
	}
	next := levelTable[cur.Level]
	span := next.XPRequired - cur.XPRequired
	if span <= 0 {
		return 100.0
	}
	pct := float64(xp-cur.XPRequired) / float64(span) * 100.0
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}
