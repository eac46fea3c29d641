package databases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/linesmerrill/fiscal-cidadao/models"
)

var violationTypes = []models.ViolationType{
	{ID: 1, Name: "Estacionamento Proibido", PointPenalty: 4, Bonus: decimal.RequireFromString("15.00"), Severity: models.SeverityMedia},
	{ID: 2, Name: "Avançar Sinal Vermelho", PointPenalty: 7, Bonus: decimal.RequireFromString("30.00"), Severity: models.SeverityGravissima},
	{ID: 3, Name: "Uso de Celular", PointPenalty: 7, Bonus: decimal.RequireFromString("25.00"), Severity: models.SeverityGravissima},
	{ID: 4, Name: "Sem Cinto de Segurança", PointPenalty: 5, Bonus: decimal.RequireFromString("20.00"), Severity: models.SeverityGrave},
	{ID: 5, Name: "Excesso de Velocidade", PointPenalty: 4, Bonus: decimal.RequireFromString("35.00"), Severity: models.SeverityMedia},
	{ID: 6, Name: "Dirigir na Contramão", PointPenalty: 7, Bonus: decimal.RequireFromString("40.00"), Severity: models.SeverityGravissima},
}

// ViolationTypeDatabase contains the methods to use with the violation catalog
type ViolationTypeDatabase interface {
	Find(ctx context.Context) ([]models.ViolationType, error)
	FindOne(ctx context.Context, id int) (*models.ViolationType, error)
}

type violationTypeDatabase struct {
	types []models.ViolationType
}

// NewViolationTypeDatabase initializes the static violation catalog
func NewViolationTypeDatabase() ViolationTypeDatabase {
	return &violationTypeDatabase{types: violationTypes}
}

func (v *violationTypeDatabase) Find(ctx context.Context) ([]models.ViolationType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.ViolationType, len(v.types))
	copy(out, v.types)
	return out, nil
}

func (v *violationTypeDatabase) FindOne(ctx context.Context, id int) (*models.ViolationType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, t := range v.types {
		if t.ID == id {
			found := t
			return &found, nil
		}
	}
	return nil, fmt.Errorf("violation type %d: %w", id, ErrNotFound)
}
