package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/fiscal-cidadao/databases"
	"github.com/linesmerrill/fiscal-cidadao/geolocation"
	"github.com/linesmerrill/fiscal-cidadao/models"
	"github.com/linesmerrill/fiscal-cidadao/rank"
)

func seedPage(t *testing.T, view models.View) Page {
	t.Helper()
	ctx := context.Background()
	state := databases.Seed()
	state.View = view

	tiers, err := databases.NewRankTierDatabase().Find(ctx)
	require.NoError(t, err)
	violations, err := databases.NewViolationTypeDatabase().Find(ctx)
	require.NoError(t, err)
	leaders, err := databases.NewLeaderboardDatabase().Find(ctx, databases.AgentName)
	require.NoError(t, err)

	standing := rank.Resolve(tiers, state.Experience)
	return Page{
		State:       state,
		Standing:    standing,
		Profile:     databases.AgentProfile(standing, state.DarkMode),
		Violations:  violations,
		Leaderboard: leaders,
		Recent:      state.RecentReports(3),
		Wallet:      models.Wallet{Balance: state.Balance, Statement: state.ApprovedReports()},
		Weekly:      WeeklyStats{Infractions: databases.WeeklyInfractions, Points: databases.WeeklyPoints},
	}
}

func render(t *testing.T, p Page) string {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, p))
	return buf.String()
}

func TestRender_Dashboard(t *testing.T) {
	out := render(t, seedPage(t, models.ViewDashboard))

	assert.Contains(t, out, "R$ 145.50")
	assert.Contains(t, out, "Agente Jr.")
	assert.Contains(t, out, "Faltam 15 XP para Agente Pleno")
	assert.Contains(t, out, "width: 85%")
	assert.Contains(t, out, "ABC-1234")
	assert.Contains(t, out, `href="/view/historico"`)
}

func TestRender_NewReport(t *testing.T) {
	p := seedPage(t, models.ViewNewReport)
	p.State.Draft = models.FormDraft{
		Plate:           "abc-1234",
		ViolationTypeID: 2,
		Location:        geolocation.MockFix.Address,
		Submitting:      true,
		Evidence: []models.EvidenceItem{
			{Token: "t1", URL: "/evidence/t1", ThumbnailURL: "/evidence/t1/thumbnail", Kind: models.MediaKindImage, FileName: "foto.jpg"},
			{Token: "t2", URL: "/evidence/t2", Kind: models.MediaKindVideo, FileName: "clip.mp4"},
		},
	}
	p.MapURL = geolocation.MockFix.EmbedURL()
	out := render(t, p)

	assert.Contains(t, out, "Processando...")
	assert.Contains(t, out, "Av. Brigadeiro Faria Lima, 3450 - SP")
	assert.Contains(t, out, "openstreetmap.org")
	assert.Contains(t, out, `value="2" checked`)
	assert.Contains(t, out, `/draft/evidence/1/remove`)
	assert.Contains(t, out, `<video src="/evidence/t2"`)
	assert.Contains(t, out, "Dirigir na Contramão")
	assert.Contains(t, out, "7 Pts • Gravíssima")
	assert.Contains(t, out, "4 Pts • Média")
}

func TestRender_Ranking(t *testing.T) {
	out := render(t, seedPage(t, models.ViewRanking))

	assert.Contains(t, out, "Ranking Mensal")
	assert.Contains(t, out, "Agente Silva (Você)")
	assert.Contains(t, out, "1380 XP")
	assert.Contains(t, out, "R$ 4200.00")
	assert.Contains(t, out, "Agente Lima")
}

func TestRender_WalletListsApprovedOnly(t *testing.T) {
	p := seedPage(t, models.ViewWallet)
	out := render(t, p)

	assert.Contains(t, out, "Sacar Pix")
	assert.Contains(t, out, "+R$ 30.00")
	assert.Len(t, p.Wallet.Statement, 1)
}

func TestRender_ProfileHidesTopBar(t *testing.T) {
	p := seedPage(t, models.ViewProfile)
	p.State.DarkMode = true
	p.Profile.DarkMode = true
	out := render(t, p)

	assert.Contains(t, out, "Agente Silva")
	assert.Contains(t, out, "Cadastro #4092-BR")
	assert.Contains(t, out, "2.1.0 (Beta)")
	assert.Contains(t, out, `class="dark"`)
	assert.NotContains(t, out, "<header")
}

func TestRender_DetailAndToast(t *testing.T) {
	p := seedPage(t, models.ViewHistory)
	selected := p.State.Reports[1]
	p.Selected = &selected
	p.State.Notification = &models.Notification{Token: 1, Message: "Preencha todos os campos e anexe provas!", Kind: models.NotificationError}
	out := render(t, p)

	assert.Contains(t, out, "Denúncia #102")
	assert.Contains(t, out, "Em Análise")
	assert.Contains(t, out, "bg-red-600")
	assert.Contains(t, out, "Preencha todos os campos e anexe provas!")
}

func TestRender_MaxLevelHidesProgress(t *testing.T) {
	p := seedPage(t, models.ViewDashboard)
	tiers, err := databases.NewRankTierDatabase().Find(context.Background())
	require.NoError(t, err)
	p.State.Experience = 700
	p.Standing = rank.Resolve(tiers, 700)
	out := render(t, p)

	assert.Contains(t, out, "Comandante")
	assert.Contains(t, out, "Nível máximo alcançado!")
	assert.NotContains(t, out, "width:")
	assert.NotContains(t, out, "bg-blue-900")
	assert.NotContains(t, out, "Faltam")
}

func TestRender_DarkModeReachesOverlay(t *testing.T) {
	p := seedPage(t, models.ViewHistory)
	selected := p.State.Reports[0]
	p.Selected = &selected

	light := render(t, p)
	assert.Contains(t, light, "bg-white text-gray-800")
	assert.NotContains(t, light, "bg-slate-800")
	assert.Contains(t, light, "bg-gray-50 text-gray-900")

	p.State.DarkMode = true
	p.Profile.DarkMode = true
	dark := render(t, p)
	assert.Contains(t, dark, "Denúncia #101")
	assert.Contains(t, dark, "bg-slate-800 text-white")
	assert.NotContains(t, dark, "bg-white text-gray-800")
	assert.Contains(t, dark, "bg-gray-900 text-gray-100")
	assert.Contains(t, dark, `<header class="sticky top-0 z-10 bg-gray-800`)
}

func TestRender_DetailWithoutLocation(t *testing.T) {
	p := seedPage(t, models.ViewHistory)
	selected := p.State.Reports[0]
	selected.Location = ""
	p.Selected = &selected
	out := render(t, p)

	assert.Contains(t, out, "Localização não disponível · 18/01/2026")
}
