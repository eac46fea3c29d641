package databases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/linesmerrill/fiscal-cidadao/models"
)

const leaderboardSize = 5

var rivalNames = []string{"Souza", "Santos", "Oliveira", "Lima"}

// LeaderboardDatabase contains the methods to use with the monthly ranking
type LeaderboardDatabase interface {
	Find(ctx context.Context, agentName string) ([]models.LeaderboardEntry, error)
}

type leaderboardDatabase struct{}

// NewLeaderboardDatabase initializes the mock regional ranking
func NewLeaderboardDatabase() LeaderboardDatabase {
	return &leaderboardDatabase{}
}

// Find returns the top agents of the region. The requesting agent always holds first place.
func (l *leaderboardDatabase) Find(ctx context.Context, agentName string) ([]models.LeaderboardEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries := make([]models.LeaderboardEntry, 0, leaderboardSize)
	for pos := 1; pos <= leaderboardSize; pos++ {
		e := models.LeaderboardEntry{
			Position:   pos,
			Experience: 1500 - pos*120,
			Earnings:   decimal.NewFromInt(int64(4500 - pos*300)),
		}
		if pos == 1 {
			e.AgentName = fmt.Sprintf("%s (Você)", agentName)
			e.IsYou = true
		} else {
			e.AgentName = "Agente " + rivalNames[pos-2]
		}
		entries = append(entries, e)
	}
	return entries, nil
}
