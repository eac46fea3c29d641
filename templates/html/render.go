// Package templates renders the screens of the app as server side HTML.
package templates

import (
	"fmt"
	"html/template"
	"io"

	"github.com/shopspring/decimal"

	"github.com/linesmerrill/fiscal-cidadao/models"
)

// Page is everything a screen needs to render
type Page struct {
	State       models.AppState
	Standing    models.RankStanding
	Profile     models.Profile
	Violations  []models.ViolationType
	Leaderboard []models.LeaderboardEntry
	Recent      []models.Report
	Wallet      models.Wallet
	Selected    *models.Report
	MapURL      string
	Weekly      WeeklyStats
}

// WeeklyStats are the counters of the dashboard stat cards
type WeeklyStats struct {
	Infractions int
	Points      int
}

// navViews are the screens reachable from the bottom navigation. The wallet is reached from
// the balance pill.
var navViews = []models.View{
	models.ViewDashboard,
	models.ViewHistory,
	models.ViewNewReport,
	models.ViewRanking,
	models.ViewProfile,
}

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return "R$ " + d.StringFixed(2)
	},
	"width": func(f float64) template.CSS {
		return template.CSS(fmt.Sprintf("width: %.0f%%", f))
	},
	"statusClass": func(s models.ReportStatus) string {
		if s == models.ReportStatusApproved {
			return "bg-green-100 text-green-700"
		}
		return "bg-yellow-100 text-yellow-700"
	},
	"toastClass": func(k models.NotificationKind) string {
		if k == models.NotificationError {
			return "bg-red-600"
		}
		return "bg-green-600"
	},
	"nav":    func() []models.View { return navViews },
	"is":     func(a, b models.View) bool { return a == b },
	"viewIs": func(v models.View, slug string) bool { return v.String() == slug },
}

// Renderer executes the parsed screen templates
type Renderer struct {
	tpl *template.Template
}

// New parses every screen template
func New() (*Renderer, error) {
	tpl := template.New("layout").Funcs(funcs)
	for name, src := range sources {
		if _, err := tpl.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
	}
	if _, err := tpl.Parse(layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Render writes the full page for the active view of p.State
func (r *Renderer) Render(w io.Writer, p Page) error {
	return r.tpl.ExecuteTemplate(w, "layout", p)
}
