package databases

import "github.com/linesmerrill/fiscal-cidadao/models"

// Identity of the single mock reporter
const (
	AgentName    = "Agente Silva"
	Registration = "Cadastro #4092-BR"
	AppVersion   = "2.1.0 (Beta)"
)

// AgentProfile builds the profile of the mock reporter for a resolved standing
func AgentProfile(standing models.RankStanding, darkMode bool) models.Profile {
	return models.Profile{
		AgentName:    AgentName,
		Registration: Registration,
		AppVersion:   AppVersion,
		Standing:     standing,
		DarkMode:     darkMode,
	}
}

// Weekly figures shown on the dashboard. They are fixed in the mock.
const (
	WeeklyInfractions = 14
	WeeklyPoints      = 58
)
