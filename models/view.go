package models

import "fmt"

// View is one of the mutually exclusive screens of the app
type View int

// Screens, in bottom navigation order where applicable
const (
	ViewDashboard View = iota
	ViewNewReport
	ViewWallet
	ViewHistory
	ViewRanking
	ViewProfile
)

var viewSlugs = [...]string{
	ViewDashboard: "dashboard",
	ViewNewReport: "nova-multa",
	ViewWallet:    "carteira",
	ViewHistory:   "historico",
	ViewRanking:   "ranking",
	ViewProfile:   "perfil",
}

var viewLabels = [...]string{
	ViewDashboard: "Início",
	ViewNewReport: "Nova Multa",
	ViewWallet:    "Carteira",
	ViewHistory:   "Histórico",
	ViewRanking:   "Ranking",
	ViewProfile:   "Perfil",
}

// Views lists every screen
func Views() []View {
	return []View{ViewDashboard, ViewNewReport, ViewWallet, ViewHistory, ViewRanking, ViewProfile}
}

// ParseView resolves a slug such as "nova-multa" into a View
func ParseView(slug string) (View, error) {
	for i, s := range viewSlugs {
		if s == slug {
			return View(i), nil
		}
	}
	return ViewDashboard, fmt.Errorf("unknown view %q", slug)
}

// IsValid reports whether v is a known screen
func (v View) IsValid() bool {
	return v >= ViewDashboard && v <= ViewProfile
}

// String returns the slug used in URLs
func (v View) String() string {
	if !v.IsValid() {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewSlugs[v]
}

// Label returns the navigation label of the screen
func (v View) Label() string {
	if !v.IsValid() {
		return ""
	}
	return viewLabels[v]
}

// MarshalText encodes the view as its slug
func (v View) MarshalText() ([]byte, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("unknown view %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText decodes a slug into the view
func (v *View) UnmarshalText(b []byte) error {
	parsed, err := ParseView(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
