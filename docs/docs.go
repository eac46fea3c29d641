// Package docs Fiscal Cidadão API.
//
// Documentation of the Fiscal Cidadão JSON API. Every call is scoped to the session named by
// the fc_session cookie, which is issued on first contact.
//
//     Schemes: https
//     BasePath: /
//     Version: 2.1.0
//     Host: fiscal-cidadao.herokuapp.com
//
//     Consumes:
//     - application/json
//     - multipart/form-data
//
//     Produces:
//     - application/json
//     - application/geo+json
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/fiscal-cidadao/api/handlers"
	"github.com/linesmerrill/fiscal-cidadao/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body struct {
		Alive bool `json:"alive"`
	}
}

// swagger:route GET /api/v1/state state stateEndpointID
// Gets the whole app state of the session.
// responses:
//   200: stateResponse

// swagger:route POST /api/v1/draft/submit draft submitDraft
// Submits the draft. The report is committed after the submission delay.
// responses:
//   202: stateResponse
//   409: errorResponse
//   422: errorResponse

// The app state of the session
// swagger:response stateResponse
type stateResponseWrapper struct {
	// in:body
	Body models.AppState
}

// swagger:route PUT /api/v1/draft draft editDraft
// Edits the plate and/or violation type of the draft.
// responses:
//   200: draftResponse
//   400: errorResponse
//   409: errorResponse

// swagger:parameters editDraft
type editDraftParamsWrapper struct {
	// in:body
	Body handlers.DraftRequest
}

// The report creation form
// swagger:response draftResponse
type draftResponseWrapper struct {
	// in:body
	Body models.FormDraft
}

// swagger:route PUT /api/v1/view view changeView
// Switches the active screen.
// responses:
//   200: stateResponse
//   404: errorResponse

// swagger:parameters changeView
type changeViewParamsWrapper struct {
	// in:body
	Body handlers.ViewRequest
}

// swagger:route GET /api/v1/wallet wallet walletEndpointID
// Gets the balance and the statement of credited bonuses.
// responses:
//   200: walletResponse

// swagger:response walletResponse
type walletResponseWrapper struct {
	// in:body
	Body models.Wallet
}

// swagger:route GET /api/v1/ranking ranking rankingEndpointID
// Gets the monthly leaderboard.
// responses:
//   200: rankingResponse

// swagger:response rankingResponse
type rankingResponseWrapper struct {
	// in:body
	Body []models.LeaderboardEntry
}

// swagger:route GET /api/v1/violation-types catalog violationTypes
// Lists the violation catalog.
// responses:
//   200: violationTypesResponse

// swagger:response violationTypesResponse
type violationTypesResponseWrapper struct {
	// in:body
	Body []models.ViolationType
}

// Error body shared by every failing call
// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
