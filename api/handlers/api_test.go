package handlers

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/fiscal-cidadao/api"
	"github.com/linesmerrill/fiscal-cidadao/config"
	"github.com/linesmerrill/fiscal-cidadao/geolocation"
	"github.com/linesmerrill/fiscal-cidadao/models"
)

var a App

func testConfig() config.Config {
	return config.Config{
		Port:                "8080",
		Env:                 "local",
		GeolocationDelay:    10 * time.Millisecond,
		SubmissionDelay:     10 * time.Millisecond,
		NotificationTTL:     time.Minute,
		SessionIdleTimeout:  time.Hour,
		SweepSchedule:       "@every 1h",
		RequestTimeout:      5 * time.Second,
		MaxUploadBytes:      1 << 20,
		ExperiencePerReport: 15,
	}
}

func setup(t *testing.T) {
	t.Helper()
	a = App{Config: testConfig(), Locator: geolocation.NewMockLocator(10 * time.Millisecond)}
	require.NoError(t, a.Initialize())
	t.Cleanup(a.Close)
}

func executeRequest(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func checkResponseCode(t *testing.T, expected, actual int) {
	if expected != actual {
		t.Errorf("Expected response code %d. Got %d\n", expected, actual)
	}
}

// newSession opens a session and returns its cookie
func newSession(t *testing.T) *http.Cookie {
	t.Helper()
	req, _ := http.NewRequest("GET", "/api/v1/state", nil)
	response := executeRequest(req)
	checkResponseCode(t, http.StatusOK, response.Code)
	for _, c := range response.Result().Cookies() {
		if c.Name == api.SessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func request(t *testing.T, cookie *http.Cookie, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return executeRequest(req)
}

func state(t *testing.T, cookie *http.Cookie) models.AppState {
	t.Helper()
	response := request(t, cookie, "GET", "/api/v1/state", nil)
	checkResponseCode(t, http.StatusOK, response.Code)
	var st models.AppState
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &st))
	return st
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for x := 0; x < 640; x++ {
		img.Set(x, x%480, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uploadRequest(t *testing.T, cookie *http.Cookie, url string, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, data := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, evidenceField, name))
		if strings.HasSuffix(name, ".mp4") {
			h.Set("Content-Type", "video/mp4")
		} else {
			h.Set("Content-Type", "application/octet-stream")
		}
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest("POST", url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)
	return executeRequest(req)
}

func TestUnknownRoute(t *testing.T) {
	setup(t)
	req, _ := http.NewRequest("GET", "/asdf", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusNotFound, response.Code)
}

func TestHealthCheckRoute(t *testing.T) {
	setup(t)
	req, _ := http.NewRequest("GET", "/health", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)

	if !strings.Contains(response.Body.String(), "alive") {
		t.Errorf("Expected 'alive' in the reponse. Got '%s'", response.Body.String())
	}
	assert.Empty(t, response.Result().Cookies())
}

func TestMetricsRoute(t *testing.T) {
	setup(t)
	newSession(t)

	req, _ := http.NewRequest("GET", "/metrics", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "fiscal_http_requests_total")
	assert.Contains(t, response.Body.String(), "fiscal_sessions_active")
}

func TestSessionCookieIsReused(t *testing.T) {
	setup(t)
	cookie := newSession(t)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)

	response := request(t, cookie, "GET", "/api/v1/state", nil)
	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Empty(t, response.Result().Cookies())
	assert.Equal(t, 1, a.Sessions.Len())
}

func TestStateHandler_Seed(t *testing.T) {
	setup(t)
	st := state(t, newSession(t))

	assert.Equal(t, models.ViewDashboard, st.View)
	assert.True(t, decimal.RequireFromString("145.50").Equal(st.Balance))
	assert.Equal(t, 85, st.Experience)
	require.Len(t, st.Reports, 2)
	assert.Equal(t, 101, st.Reports[0].ID)
}

func TestViewHandler(t *testing.T) {
	setup(t)
	cookie := newSession(t)

	response := request(t, cookie, "PUT", "/api/v1/view", ViewRequest{View: "carteira"})
	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Equal(t, models.ViewWallet, state(t, cookie).View)

	response = request(t, cookie, "PUT", "/api/v1/view", ViewRequest{View: "garagem"})
	checkResponseCode(t, http.StatusNotFound, response.Code)

	response = request(t, cookie, "PUT", "/api/v1/view", map[string]string{})
	checkResponseCode(t, http.StatusBadRequest, response.Code)
}

func TestViewHandler_NewReportLocates(t *testing.T) {
	setup(t)
	cookie := newSession(t)

	response := request(t, cookie, "PUT", "/api/v1/view", ViewRequest{View: "nova-multa"})
	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Equal(t, models.LocatingPlaceholder, state(t, cookie).Draft.Location)

	assert.Eventually(t, func() bool {
		return state(t, cookie).Draft.Location == geolocation.MockFix.Address
	}, 2*time.Second, 5*time.Millisecond)

	response = request(t, cookie, "GET", "/api/v1/draft/location", nil)
	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `"Point"`)
	assert.Contains(t, response.Body.String(), geolocation.MockFix.Address)
}

func TestLocateHandler(t *testing.T) {
	setup(t)
	cookie := newSession(t)

	response := request(t, cookie, "GET", "/api/v1/draft/location", nil)
	checkResponseCode(t, http.StatusNotFound, response.Code)

	response = request(t, cookie, "POST", "/api/v1/draft/locate", nil)
	checkResponseCode(t, http.StatusAccepted, response.Code)

	response = request(t, cookie, "POST", "/api/v1/draft/locate", nil)
	checkResponseCode(t, http.StatusConflict, response.Code)
}

func TestThemeHandler(t *testing.T) {
	setup(t)
	cookie := newSession(t)

	response := request(t, cookie, "POST", "/api/v1/theme", nil)
	checkResponseCode(t, http.StatusOK, response.Code)
	assert.True(t, state(t, cookie).DarkMode)

	other := newSession(t)
	assert.False(t, state(t, other).DarkMode)
}

func TestDraftHandler(t *testing.T) {
	setup(t)
	cookie := newSession(t)

	response := request(t, cookie, "PUT", "/api/v1/draft", map[string]interface{}{"plate": " abc-1234 ", "violationTypeId": 3})
	checkResponseCode(t, http.StatusOK, response.Code)

	var draft models.FormDraft
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &draft))
	assert.Equal(t, "abc-1234", draft.Plate)
	assert.Equal(t, 3, draft.ViolationTypeID)

	response = request(t, cookie, "PUT", "/api/v1/draft", map[string]interface{}{"violationTypeId": 42})
	checkResponseCode(t, http.StatusBadRequest, response.Code)

	response = request(t, cookie, "PUT", "/api/v1/draft", map[string]interface{}{"plate": strings.Repeat("A", 40)})
	checkResponseCode(t, http.StatusBadRequest, response.Code)
}

func TestSubmitHandler_Incomplete(t *testing.T) {
	setup(t)
	cookie := newSession(t)

	response := request(t, cookie, "POST", "/api/v1/draft/submit", nil)
	checkResponseCode(t, http.StatusUnprocessableEntity, response.Code)

	var body models.ErrorMessageResponse
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))
	assert.Equal(t, "failed to submit report", body.Response.Message)

	st := state(t, cookie)
	require.NotNil(t, st.Notification)
	assert.Equal(t, "Preencha todos os campos e anexe provas!", st.Notification.Message)
	assert.Len(t, st.Reports, 2)
}

func TestSubmitHandler_Commits(t *testing.T) {
	setup(t)
	cookie := newSession(t)

	response := request(t, cookie, "PUT", "/api/v1/draft", map[string]interface{}{"plate": "abc-1234", "violationTypeId": 2})
	checkResponseCode(t, http.StatusOK, response.Code)

	response = uploadRequest(t, cookie, "/api/v1/draft/evidence", map[string][]byte{"foto.png": pngBytes(t)})
	checkResponseCode(t, http.StatusCreated, response.Code)

	response = request(t, cookie, "POST", "/api/v1/draft/submit", nil)
	checkResponseCode(t, http.StatusAccepted, response.Code)

	assert.Eventually(t, func() bool { return len(state(t, cookie).Reports) == 3 }, 2*time.Second, 5*time.Millisecond)
	st := state(t, cookie)
	assert.Equal(t, "ABC-1234", st.Reports[0].Plate)
	assert.True(t, decimal.RequireFromString("175.50").Equal(st.Balance))
	assert.Equal(t, 100, st.Experience)
	require.NotNil(t, st.Notification)
	assert.Equal(t, "Sucesso! +R$ 30.00 | +15 XP", st.Notification.Message)

	response = request(t, cookie, "GET", "/api/v1/wallet", nil)
	checkResponseCode(t, http.StatusOK, response.Code)
	var wallet models.Wallet
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &wallet))
	assert.Len(t, wallet.Statement, 2)

	response = request(t, cookie, "GET", "/api/v1/profile", nil)
	checkResponseCode(t, http.StatusOK, response.Code)
	var profile models.Profile
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &profile))
	assert.Equal(t, "Agente Pleno", profile.Standing.Current.Name)
	assert.Equal(t, 3, profile.Standing.Level)
}

func TestEvidenceHandlers(t *testing.T) {
	setup(t)
	cookie := newSession(t)

	response := uploadRequest(t, cookie, "/api/v1/draft/evidence", map[string][]byte{"foto.png": pngBytes(t)})
	checkResponseCode(t, http.StatusCreated, response.Code)
	var items []models.EvidenceItem
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, models.MediaKindImage, items[0].Kind)

	response = request(t, cookie, "GET", items[0].URL, nil)
	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Equal(t, "image/png", response.Header().Get("Content-Type"))

	response = request(t, cookie, "GET", items[0].ThumbnailURL, nil)
	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Equal(t, "image/jpeg", response.Header().Get("Content-Type"))

	stranger := newSession(t)
	response = request(t, stranger, "GET", items[0].URL, nil)
	checkResponseCode(t, http.StatusNotFound, response.Code)

	response = request(t, cookie, "DELETE", "/api/v1/draft/evidence/0", nil)
	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Empty(t, state(t, cookie).Draft.Evidence)

	response = request(t, cookie, "GET", items[0].URL, nil)
	checkResponseCode(t, http.StatusNotFound, response.Code)

	response = request(t, cookie, "DELETE", "/api/v1/draft/evidence/0", nil)
	checkResponseCode(t, http.StatusBadRequest, response.Code)
}

func TestReportHandlers(t *testing.T) {
	setup(t)
	cookie := newSession(t)

	response := request(t, cookie, "GET", "/api/v1/reports", nil)
	checkResponseCode(t, http.StatusOK, response.Code)
	var reports []models.Report
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &reports))
	assert.Len(t, reports, 2)

	response = request(t, cookie, "GET", "/api/v1/reports/102", nil)
	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "XYZ-9876")

	response = request(t, cookie, "GET", "/api/v1/reports/9", nil)
	checkResponseCode(t, http.StatusNotFound, response.Code)

	response = request(t, cookie, "PUT", "/api/v1/selection", map[string]int{"reportId": 101})
	checkResponseCode(t, http.StatusOK, response.Code)
	require.NotNil(t, state(t, cookie).SelectedReportID)

	response = request(t, cookie, "PUT", "/api/v1/selection", map[string]int{"reportId": 9})
	checkResponseCode(t, http.StatusNotFound, response.Code)

	response = request(t, cookie, "PUT", "/api/v1/selection", map[string]int{})
	checkResponseCode(t, http.StatusBadRequest, response.Code)

	response = request(t, cookie, "DELETE", "/api/v1/selection", nil)
	checkResponseCode(t, http.StatusNoContent, response.Code)
	assert.Nil(t, state(t, cookie).SelectedReportID)
}

func TestCatalogHandlers(t *testing.T) {
	setup(t)
	cookie := newSession(t)

	response := request(t, cookie, "GET", "/api/v1/violation-types", nil)
	checkResponseCode(t, http.StatusOK, response.Code)
	var types []models.ViolationType
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &types))
	assert.Len(t, types, 6)

	response = request(t, cookie, "GET", "/api/v1/rank-tiers", nil)
	checkResponseCode(t, http.StatusOK, response.Code)
	var tiers []models.RankTier
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &tiers))
	assert.Len(t, tiers, 4)

	response = request(t, cookie, "GET", "/api/v1/ranking", nil)
	checkResponseCode(t, http.StatusOK, response.Code)
	var ranking []models.LeaderboardEntry
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &ranking))
	require.Len(t, ranking, 5)
	assert.Equal(t, "Agente Silva (Você)", ranking[0].AgentName)
	assert.Equal(t, 1380, ranking[0].Experience)
}
