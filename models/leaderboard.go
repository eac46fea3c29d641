package models

import "github.com/shopspring/decimal"

// LeaderboardEntry holds the structure for a row of the monthly ranking
type LeaderboardEntry struct {
	Position   int             `json:"position"`
	AgentName  string          `json:"agentName"`
	Experience int             `json:"experience"`
	Earnings   decimal.Decimal `json:"earnings"`
	IsYou      bool            `json:"isYou"`
}
