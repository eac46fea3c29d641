package databases

import (
	"context"

	"github.com/linesmerrill/fiscal-cidadao/models"
)

// rankTiers is ordered by ascending MinExperience
var rankTiers = []models.RankTier{
	{Name: "Agente Jr.", MinExperience: 0, Color: "text-gray-500", Background: "bg-gray-100"},
	{Name: "Agente Pleno", MinExperience: 100, Color: "text-blue-500", Background: "bg-blue-100"},
	{Name: "Agente Sênior", MinExperience: 300, Color: "text-purple-500", Background: "bg-purple-100"},
	{Name: "Comandante", MinExperience: 600, Color: "text-yellow-500", Background: "bg-yellow-100"},
}

// RankTierDatabase contains the methods to use with the rank thresholds
type RankTierDatabase interface {
	Find(ctx context.Context) ([]models.RankTier, error)
}

type rankTierDatabase struct {
	tiers []models.RankTier
}

// NewRankTierDatabase initializes the static rank table
func NewRankTierDatabase() RankTierDatabase {
	return &rankTierDatabase{tiers: rankTiers}
}

func (r *rankTierDatabase) Find(ctx context.Context) ([]models.RankTier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.RankTier, len(r.tiers))
	copy(out, r.tiers)
	return out, nil
}
