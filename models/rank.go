package models

// RankTier holds the structure for a gamification level unlocked at an experience threshold
type RankTier struct {
	Name          string `json:"name"`
	MinExperience int    `json:"minExperience"`
	Color         string `json:"color"`
	Background    string `json:"background"`
}

// RankStanding is the resolved rank for a given experience value
type RankStanding struct {
	Current    RankTier  `json:"current"`
	Next       *RankTier `json:"next,omitempty"`
	Progress   float64   `json:"progress"`
	Remaining  int       `json:"remaining"`
	Level      int       `json:"level"`
	Experience int       `json:"experience"`
}

// MaxLevel reports whether there is no higher tier left to unlock
func (r RankStanding) MaxLevel() bool {
	return r.Next == nil
}
