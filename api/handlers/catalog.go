package handlers

import (
	"context"
	"net/http"

	"github.com/linesmerrill/fiscal-cidadao/api"
	"github.com/linesmerrill/fiscal-cidadao/config"
	"github.com/linesmerrill/fiscal-cidadao/databases"
	"github.com/linesmerrill/fiscal-cidadao/models"
	"github.com/linesmerrill/fiscal-cidadao/rank"
	"github.com/linesmerrill/fiscal-cidadao/session"
	templates "github.com/linesmerrill/fiscal-cidadao/templates/html"
)

// Catalog exported for testing purposes
type Catalog struct {
	Violations  databases.ViolationTypeDatabase
	RankTiers   databases.RankTierDatabase
	Leaderboard databases.LeaderboardDatabase
}

// ViolationTypesHandler returns the violation catalog
func (c Catalog) ViolationTypesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.Violations.Find(ctx)
	if err != nil {
		config.ErrorStatus("failed to get violation types", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, dbResp)
}

// RankTiersHandler returns the rank thresholds
func (c Catalog) RankTiersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.RankTiers.Find(ctx)
	if err != nil {
		config.ErrorStatus("failed to get rank tiers", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, dbResp)
}

func (c Catalog) standing(ctx context.Context, xp int) (models.RankStanding, error) {
	tiers, err := c.RankTiers.Find(ctx)
	if err != nil {
		return models.RankStanding{}, err
	}
	return rank.Resolve(tiers, xp), nil
}

// page gathers everything the screen of st needs
func (c Catalog) page(ctx context.Context, s *session.Session, st models.AppState) (templates.Page, error) {
	standing, err := c.standing(ctx, st.Experience)
	if err != nil {
		return templates.Page{}, err
	}
	p := templates.Page{
		State:    st,
		Standing: standing,
		Profile:  databases.AgentProfile(standing, st.DarkMode),
		Recent:   st.RecentReports(3),
		Wallet:   models.Wallet{Balance: st.Balance, Statement: st.ApprovedReports()},
		Weekly:   templates.WeeklyStats{Infractions: databases.WeeklyInfractions, Points: databases.WeeklyPoints},
	}
	if r, ok := st.SelectedReport(); ok {
		p.Selected = &r
	}

	switch st.View {
	case models.ViewNewReport:
		if p.Violations, err = c.Violations.Find(ctx); err != nil {
			return templates.Page{}, err
		}
		if fix, ok := s.Location(); ok {
			p.MapURL = fix.EmbedURL()
		}
	case models.ViewRanking:
		if p.Leaderboard, err = c.Leaderboard.Find(ctx, databases.AgentName); err != nil {
			return templates.Page{}, err
		}
	}
	return p, nil
}
