// Package rank maps accumulated experience onto the gamification tiers.
package rank

import (
	"math"
	"sort"

	"github.com/linesmerrill/fiscal-cidadao/models"
)

// ExperiencePerLevel is how much experience one profile level spans
const ExperiencePerLevel = 50

// Resolve returns the highest tier whose MinExperience does not exceed xp, the next tier up
// and the progress towards it. When no tier qualifies the lowest tier is current. tiers need
// not be sorted.
func Resolve(tiers []models.RankTier, xp int) models.RankStanding {
	standing := models.RankStanding{Experience: xp, Level: Level(xp)}
	if len(tiers) == 0 {
		return standing
	}

	sorted := make([]models.RankTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinExperience < sorted[j].MinExperience
	})

	standing.Current = sorted[0]
	for i := range sorted {
		t := sorted[i]
		if t.MinExperience <= xp {
			standing.Current = t
			continue
		}
		standing.Next = &t
		break
	}

	if standing.Next != nil {
		standing.Remaining = standing.Next.MinExperience - xp
		standing.Progress = Progress(xp, standing.Next.MinExperience)
	}
	return standing
}

// Progress is xp as a percentage of target, capped at 100
func Progress(xp, target int) float64 {
	if target <= 0 {
		return 100
	}
	return math.Min(100, float64(xp)/float64(target)*100)
}

// Level is the profile level shown next to the rank name
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/ExperiencePerLevel + 1
}
