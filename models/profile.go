package models

import "github.com/shopspring/decimal"

// Profile holds the structure for the reporter identity shown on the profile screen
type Profile struct {
	AgentName    string       `json:"agentName"`
	Registration string       `json:"registration"`
	AppVersion   string       `json:"appVersion"`
	Standing     RankStanding `json:"standing"`
	DarkMode     bool         `json:"darkMode"`
}

// Wallet holds the structure returned for the wallet screen
type Wallet struct {
	Balance   decimal.Decimal `json:"balance"`
	Statement []Report        `json:"statement"`
}
