package handlers

import (
	"fmt"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/fiscal-cidadao/api"
	"github.com/linesmerrill/fiscal-cidadao/config"
	"github.com/linesmerrill/fiscal-cidadao/databases"
	"github.com/linesmerrill/fiscal-cidadao/geolocation"
	"github.com/linesmerrill/fiscal-cidadao/session"
	templates "github.com/linesmerrill/fiscal-cidadao/templates/html"
)

// App stores the router and the shared in-memory stores, so they can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Sessions *session.Manager
	Evidence databases.EvidenceDatabase
	Locator  geolocation.Locator
	Hub      *Hub

	catalog  Catalog
	renderer *templates.Renderer
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()
	r.Use(api.MetricsMiddleware, api.TimeoutMiddleware(a.Config.RequestTimeout, "/ws"))

	sc := Screen{Catalog: a.catalog, Renderer: a.renderer, MaxUploadBytes: a.Config.MaxUploadBytes}
	ag := Agent{Catalog: a.catalog, MaxUploadBytes: a.Config.MaxUploadBytes}
	ev := Evidence{DB: a.Evidence}

	// healthchex
	r.HandleFunc("/health", api.HealthCheckHandler).Methods("GET")
	r.Handle("/metrics", api.MetricsHandler()).Methods("GET")

	app := r.PathPrefix("/").Subrouter()
	app.Use(api.SessionMiddleware(a.Sessions, a.Config.BaseUrl))

	apiCreate := app.PathPrefix("/api/v1").Subrouter()
	apiCreate.HandleFunc("/state", ag.StateHandler).Methods("GET")
	apiCreate.HandleFunc("/view", ag.ViewHandler).Methods("PUT")
	apiCreate.HandleFunc("/theme", ag.ThemeHandler).Methods("POST")
	apiCreate.HandleFunc("/draft", ag.DraftHandler).Methods("PUT")
	apiCreate.HandleFunc("/draft/evidence", ag.AttachEvidenceHandler).Methods("POST")
	apiCreate.HandleFunc("/draft/evidence/{index}", ag.RemoveEvidenceHandler).Methods("DELETE")
	apiCreate.HandleFunc("/draft/locate", ag.LocateHandler).Methods("POST")
	apiCreate.HandleFunc("/draft/location", ag.LocationHandler).Methods("GET")
	apiCreate.HandleFunc("/draft/submit", ag.SubmitHandler).Methods("POST")
	apiCreate.HandleFunc("/reports", ag.ReportsHandler).Methods("GET")
	apiCreate.HandleFunc("/reports/{report_id}", ag.ReportByIDHandler).Methods("GET")
	apiCreate.HandleFunc("/selection", ag.SelectHandler).Methods("PUT")
	apiCreate.HandleFunc("/selection", ag.DeselectHandler).Methods("DELETE")
	apiCreate.HandleFunc("/wallet", ag.WalletHandler).Methods("GET")
	apiCreate.HandleFunc("/ranking", ag.RankingHandler).Methods("GET")
	apiCreate.HandleFunc("/profile", ag.ProfileHandler).Methods("GET")
	apiCreate.HandleFunc("/violation-types", a.catalog.ViolationTypesHandler).Methods("GET")
	apiCreate.HandleFunc("/rank-tiers", a.catalog.RankTiersHandler).Methods("GET")

	app.HandleFunc("/evidence/{token}", ev.EvidenceHandler).Methods("GET")
	app.HandleFunc("/evidence/{token}/thumbnail", ev.ThumbnailHandler).Methods("GET")
	app.HandleFunc("/ws", a.Hub.StateWebSocketHandler).Methods("GET")

	app.HandleFunc("/", sc.IndexHandler).Methods("GET")
	app.HandleFunc("/view/{view}", sc.ViewHandler).Methods("GET")
	app.HandleFunc("/theme", sc.ThemeHandler).Methods("POST")
	app.HandleFunc("/draft", sc.DraftHandler).Methods("POST")
	app.HandleFunc("/draft/evidence/{index:[0-9]+}/remove", sc.RemoveEvidenceHandler).Methods("POST")
	app.HandleFunc("/draft/locate", sc.LocateHandler).Methods("POST")
	app.HandleFunc("/draft/submit", sc.SubmitHandler).Methods("POST")
	app.HandleFunc("/reports/close", sc.CloseReportHandler).Methods("POST")
	app.HandleFunc("/reports/{report_id:[0-9]+}", sc.ReportHandler).Methods("GET")

	return r
}

// Initialize is invoked by main to build the in-memory stores and create a router
func (a *App) Initialize() error {
	renderer, err := templates.New()
	if err != nil {
		zap.S().Errorw("failed to parse templates", "error", err)
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	a.renderer = renderer

	a.catalog = Catalog{
		Violations:  databases.NewViolationTypeDatabase(),
		RankTiers:   databases.NewRankTierDatabase(),
		Leaderboard: databases.NewLeaderboardDatabase(),
	}
	if a.Evidence == nil {
		a.Evidence = databases.NewEvidenceDatabase()
	}
	if a.Locator == nil {
		a.Locator = geolocation.NewMockLocator(a.Config.GeolocationDelay)
	}
	if a.Hub == nil {
		a.Hub = NewHub()
	}
	a.Sessions = session.NewManager(databases.Seed, session.Options{
		SubmissionDelay:     a.Config.SubmissionDelay,
		NotificationTTL:     a.Config.NotificationTTL,
		ExperiencePerReport: a.Config.ExperiencePerReport,
	}, session.Deps{
		Violations: a.catalog.Violations,
		Evidence:   a.Evidence,
		Locator:    a.Locator,
	})
	zap.S().Infow("fiscal-cidadao stores initialized", "geolocationDelay", a.Config.GeolocationDelay, "submissionDelay", a.Config.SubmissionDelay)

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// Close disconnects websocket clients and closes every session
func (a *App) Close() {
	if a.Hub != nil {
		a.Hub.Close()
	}
	if a.Sessions != nil {
		a.Sessions.Close()
	}
}
