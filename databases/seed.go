package databases

import (
	"github.com/shopspring/decimal"

	"github.com/linesmerrill/fiscal-cidadao/models"
)

// Seed returns the state a fresh session starts from
func Seed() models.AppState {
	return models.AppState{
		View: models.ViewDashboard,
		Reports: []models.Report{
			{
				ID:            101,
				Plate:         "ABC-1234",
				ViolationName: "Avançar Sinal Vermelho",
				DateCreated:   "18/01/2026",
				Location:      "Av. Paulista, 1000",
				Status:        models.ReportStatusApproved,
				PointPenalty:  7,
				Bonus:         decimal.RequireFromString("30.00"),
				Experience:    20,
			},
			{
				ID:            102,
				Plate:         "XYZ-9876",
				ViolationName: "Estacionamento Proibido",
				DateCreated:   "19/01/2026",
				Location:      "Rua Augusta, 500",
				Status:        models.ReportStatusUnderReview,
				PointPenalty:  0,
				Bonus:         decimal.Zero,
				Experience:    0,
			},
		},
		Balance:    decimal.RequireFromString("145.50"),
		Experience: 85,
	}
}
