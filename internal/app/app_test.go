package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-dashboard/internal/config"
)

// TestResponse wraps the API envelope for assertions.
type TestResponse struct {
	Code    int
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
	Header http.Header
}

func (r TestResponse) IsSuccess() bool {
	return r.Status == "success"
}

func (r TestResponse) Object(t *testing.T) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Data, &m))
	return m
}

func (r TestResponse) List(t *testing.T) []map[string]interface{} {
	t.Helper()
	var l []map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Data, &l))
	return l
}

func (r TestResponse) GetString(t *testing.T, key string) string {
	v, _ := r.Object(t)[key].(string)
	return v
}

type testServer struct {
	*httptest.Server
	app *App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  mode: test
ratelimit:
  enabled: false
schedule:
  timezone: UTC
email:
  address: admin@dentalclinic.com
  password: secret123
  smtp_server: smtp.gmail.com
`), 0o600))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	a, err := New(cfg, nil)
	require.NoError(t, err)

	srv := httptest.NewServer(a.Router.Engine())
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, app: a}
}

func (s *testServer) makeRequest(t *testing.T, method, path string, body interface{}) TestResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.URL+"/api/v1"+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "req-"+strings.ReplaceAll(strings.Trim(path, "/"), "/", "-"))

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := TestResponse{Code: resp.StatusCode, Header: resp.Header}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return out
}

func TestPatientFlow(t *testing.T) {
	s := newTestServer(t)

	createResp := s.makeRequest(t, http.MethodPost, "/patients", map[string]interface{}{
		"name":  "Liam Carter",
		"email": "lcarter@example.com",
		"age":   11,
	})
	require.Equal(t, http.StatusCreated, createResp.Code, createResp.Message)
	id := createResp.GetString(t, "id")
	assert.NotEmpty(t, id)

	apptResp := s.makeRequest(t, http.MethodPost, "/appointments", map[string]interface{}{
		"patient_id":       id,
		"date":             "2023-06-15",
		"time":             "01:00 PM",
		"duration_minutes": 30,
		"type":             "Consultation",
	})
	require.Equal(t, http.StatusCreated, apptResp.Code, apptResp.Message)
	assert.Equal(t, "13:00", apptResp.GetString(t, "time"))

	renameResp := s.makeRequest(t, http.MethodPatch, "/patients/"+id+"/name", map[string]string{"name": "Liam Carter-Reyes"})
	require.True(t, renameResp.IsSuccess(), renameResp.Message)

	listResp := s.makeRequest(t, http.MethodGet, "/appointments?patient_id="+id, nil)
	require.True(t, listResp.IsSuccess())
	appts := listResp.List(t)
	require.Len(t, appts, 1)
	assert.Equal(t, "Liam Carter-Reyes", appts[0]["patient_name"])

	lookupResp := s.makeRequest(t, http.MethodGet, "/patients/lookup?q=reyes", nil)
	require.True(t, lookupResp.IsSuccess())
	assert.Len(t, lookupResp.List(t), 1)
}

func TestPatientErrors(t *testing.T) {
	s := newTestServer(t)

	notFound := s.makeRequest(t, http.MethodGet, "/patients/P999", nil)
	assert.Equal(t, http.StatusNotFound, notFound.Code)
	assert.Equal(t, "error", notFound.Status)

	invalid := s.makeRequest(t, http.MethodPost, "/patients", map[string]interface{}{"name": "", "email": "nope"})
	assert.Equal(t, http.StatusUnprocessableEntity, invalid.Code)
	assert.NotEmpty(t, invalid.Errors)

	badBody := s.makeRequest(t, http.MethodPost, "/patients", "not an object")
	assert.Equal(t, http.StatusBadRequest, badBody.Code)
}

func TestScheduleRoutes(t *testing.T) {
	s := newTestServer(t)

	dayResp := s.makeRequest(t, http.MethodGet, "/schedule/day?date=2023-06-15", nil)
	require.True(t, dayResp.IsSuccess(), dayResp.Message)
	buckets, _ := dayResp.Object(t)["buckets"].([]interface{})
	assert.Len(t, buckets, 11)

	var ids []string
	for _, b := range buckets {
		appts, _ := b.(map[string]interface{})["appointments"].([]interface{})
		for _, a := range appts {
			ids = append(ids, a.(map[string]interface{})["id"].(string))
		}
	}
	assert.Equal(t, []string{"A001", "A004"}, ids)

	weekResp := s.makeRequest(t, http.MethodGet, "/schedule/week?date=2023-06-15", nil)
	require.True(t, weekResp.IsSuccess())
	week := weekResp.Object(t)
	assert.Equal(t, "2023-06-11", week["start"])
	assert.Equal(t, "2023-06-17", week["end"])

	navResp := s.makeRequest(t, http.MethodGet, "/schedule/navigate?date=2023-06-15&mode=week&dir=next", nil)
	require.True(t, navResp.IsSuccess())
	assert.Equal(t, "2023-06-22", navResp.GetString(t, "date"))

	badDate := s.makeRequest(t, http.MethodGet, "/schedule/day?date=15/06/2023", nil)
	assert.Equal(t, http.StatusBadRequest, badDate.Code)

	badMode := s.makeRequest(t, http.MethodGet, "/schedule/navigate?mode=month", nil)
	assert.Equal(t, http.StatusBadRequest, badMode.Code)

	calResp := s.makeRequest(t, http.MethodGet, "/schedule/calendar", nil)
	require.True(t, calResp.IsSuccess())
	assert.NotEmpty(t, calResp.List(t))
}

func TestRadiographyCaptureFlow(t *testing.T) {
	s := newTestServer(t)

	start := s.makeRequest(t, http.MethodPost, "/radiographies/sessions", map[string]string{
		"patient_id": "P001",
		"type":       "panoramic",
	})
	require.Equal(t, http.StatusCreated, start.Code, start.Message)
	id := start.GetString(t, "id")
	assert.Equal(t, "idle", start.GetString(t, "state"))

	capture := s.makeRequest(t, http.MethodPost, "/radiographies/sessions/"+id+"/capture", nil)
	require.True(t, capture.IsSuccess())
	assert.Equal(t, "capturing", capture.GetString(t, "state"))

	complete := s.makeRequest(t, http.MethodPost, "/radiographies/sessions/"+id+"/complete", nil)
	require.True(t, complete.IsSuccess())
	assert.Equal(t, "complete", complete.GetString(t, "state"))

	back := s.makeRequest(t, http.MethodPost, "/radiographies/sessions/"+id+"/back", nil)
	assert.Equal(t, http.StatusConflict, back.Code)

	search := s.makeRequest(t, http.MethodGet, "/radiographies?q=sarah", nil)
	require.True(t, search.IsSuccess())
	assert.Len(t, search.List(t), 1)
}

func TestSettingsMaskPassword(t *testing.T) {
	s := newTestServer(t)

	resp := s.makeRequest(t, http.MethodGet, "/settings/email", nil)
	require.True(t, resp.IsSuccess())
	assert.Equal(t, "******", resp.GetString(t, "password"))

	invalid := s.makeRequest(t, http.MethodPut, "/settings/email", map[string]string{
		"email":       "admin@dentalclinic.com",
		"password":    "123",
		"smtp_server": "smtp.gmail.com",
		"smtp_port":   "587",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, invalid.Code)
}

func TestAuditCarriesRequestID(t *testing.T) {
	s := newTestServer(t)

	resp := s.makeRequest(t, http.MethodPost, "/contacts", map[string]string{
		"name":  "Dr. Patel",
		"email": "patel@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Message)
	assert.Equal(t, "req-contacts", resp.Header.Get("X-Request-ID"))

	logs := s.makeRequest(t, http.MethodGet, "/audit/logs?entity_type=contact", nil)
	require.True(t, logs.IsSuccess())
	entries := logs.List(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "req-contacts", entries[0]["request_id"])
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	live, err := s.Client().Get(s.URL + "/api/v1/health/live")
	require.NoError(t, err)
	live.Body.Close()
	assert.Equal(t, http.StatusOK, live.StatusCode)

	ready, err := s.Client().Get(s.URL + "/api/v1/health/ready")
	require.NoError(t, err)
	ready.Body.Close()
	assert.Equal(t, http.StatusOK, ready.StatusCode)

	s.makeRequest(t, http.MethodGet, "/patients", nil)

	resp, err := s.Client().Get(s.URL + "/api/v1/health/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `clinic_requests_total{method="GET",path="/api/v1/patients",status="200"} 1`)
	assert.Contains(t, string(body), `clinic_store_records{entity="patient"}`)
}
