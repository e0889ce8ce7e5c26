package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/charleschoi123/bazi-destiny/bazi"
	"github.com/charleschoi123/bazi-destiny/geocode"
	"github.com/charleschoi123/bazi-destiny/models"
	"github.com/charleschoi123/bazi-destiny/store"
)

type fakeSearcher struct {
	place geocode.Place
	err   error
}

func (f *fakeSearcher) Search(ctx context.Context, city, country string) (geocode.Place, error) {
	return f.place, f.err
}

type fakeLLM struct {
	deltas []string
	err    error
	user   string
}

func (f *fakeLLM) Name() string { return "Fake" }

func (f *fakeLLM) Stream(ctx context.Context, system, user string) (<-chan string, <-chan error) {
	f.user = user
	out := make(chan string, len(f.deltas))
	errc := make(chan error, 1)
	for _, d := range f.deltas {
		out <- d
	}
	close(out)
	if f.err != nil {
		errc <- f.err
	}
	close(errc)
	return out, errc
}

type env struct {
	srv    http.Handler
	store  *store.Store
	search *fakeSearcher
	llm    *fakeLLM
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	log := zaptest.NewLogger(t)
	search := &fakeSearcher{place: geocode.Place{Lat: 34.39, Lon: 132.46, CountryCode: "JP", Display: "Hiroshima, Japan"}}
	llm := &fakeLLM{deltas: []string{"Earth ", "steadies."}}
	h := New(Deps{
		Calculator: bazi.New(),
		Geocoder:   geocode.NewService(search, st, log),
		Cache:      st,
		LLM:        llm,
		Logger:     log,
	})
	return &env{srv: h.Routes(), store: st, search: search, llm: llm}
}

func (e *env) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestChart(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/api/chart",
		`{"name":"Lin","gender":"female","date":"2024-02-03","time":"12:00","city":"Shanghai","country":"China"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[models.ChartResponse](t, rec)
	assert.True(t, resp.OK)
	gz := make([]string, 0, 4)
	for _, p := range resp.Pillars {
		gz = append(gz, p.GZ)
	}
	assert.Equal(t, []string{"癸卯", "乙丑", "丁酉", "丙午"}, gz)
	assert.Equal(t, "Fire", resp.MainElement)
	assert.Equal(t, "Challenger (Seven Killings)", resp.TenGods.YearStem)
	assert.Equal(t, "2024-02-03T12:00:00+08:00", resp.Input.BeijingISO)
	assert.Equal(t, "city", resp.Input.TimezoneSource)
	assert.Len(t, resp.LuckCycles, bazi.DefaultLuckCycles)

	items, err := e.store.List()
	require.NoError(t, err)
	assert.Empty(t, items, "gazetteer hits are not geocoded")
}

func TestChartIsRepeatable(t *testing.T) {
	e := newEnv(t)
	body := `{"date":"2023-12-31","time":"23:30","city":"Hong Kong","country":"Hong Kong"}`
	first := e.do(t, http.MethodPost, "/api/chart", body)
	second := e.do(t, http.MethodPost, "/api/chart", body)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestChartGeocodesUnknownPlace(t *testing.T) {
	e := newEnv(t)
	e.search.place = geocode.Place{Lat: -22.91, Lon: -47.06, CountryCode: "BR", Display: "Campinas, Brasil"}
	rec := e.do(t, http.MethodPost, "/api/chart",
		`{"date":"2024-02-03","time":"12:00","city":"Campinas","country":"Brazil"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[models.ChartResponse](t, rec)
	assert.Equal(t, "America/Sao_Paulo", resp.Input.Timezone)
	assert.Equal(t, "geocoded", resp.Input.TimezoneSource)
	assert.False(t, resp.Input.TimezoneFallback)
	require.NotNil(t, resp.Input.Lat)
	assert.Equal(t, -22.91, *resp.Input.Lat)
	assert.Equal(t, "2024-02-03T23:00:00+08:00", resp.Input.BeijingISO)

	_, err := e.store.Get(geocode.Key("Campinas", "Brazil"))
	assert.NoError(t, err, "geocode result is cached")
}

func TestChartSkipsGeocodingForSingleZoneCountry(t *testing.T) {
	e := newEnv(t)
	e.search.err = errors.New("must not be called")
	rec := e.do(t, http.MethodPost, "/api/chart",
		`{"date":"2024-02-03","time":"12:00","city":"Onomichi","country":"Japan"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[models.ChartResponse](t, rec)
	assert.Equal(t, "country", resp.Input.TimezoneSource)
	assert.Nil(t, resp.Input.Lat)
}

func TestChartFallsBackWhenGeocodingFails(t *testing.T) {
	e := newEnv(t)
	e.search.err = errors.New("upstream down")
	rec := e.do(t, http.MethodPost, "/api/chart",
		`{"date":"2024-02-03","time":"12:00","city":"Atlantis","country":"Nowhere"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[models.ChartResponse](t, rec)
	assert.True(t, resp.Input.TimezoneFallback)
	assert.Equal(t, "UTC+00:00", resp.Input.UTCOffset)
	assert.Equal(t, "2024-02-03T20:00:00+08:00", resp.Input.BeijingISO)
}

func TestChartTimezoneOverride(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/api/chart",
		`{"date":"2024-07-01","time":"09:00","timezone":"Europe/Berlin"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[models.ChartResponse](t, rec)
	assert.Equal(t, "explicit", resp.Input.TimezoneSource)
	assert.Equal(t, "UTC+02:00", resp.Input.UTCOffset)
	assert.Equal(t, "2024-07-01T15:00:00+08:00", resp.Input.BeijingISO)
}

func TestChartBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"malformed json", `{"date":`, "invalid JSON body"},
		{"missing time", `{"date":"2024-01-01","city":"Tokyo","country":"Japan"}`, "date and time"},
		{"missing place", `{"date":"2024-01-01","time":"10:00"}`, "city, and country"},
		{"bad date", `{"date":"2024-13-01","time":"10:00","city":"Tokyo","country":"Japan"}`, "invalid birth date/time"},
		{"twelve hour clock", `{"date":"2024-01-01","time":"10pm","city":"Tokyo","country":"Japan"}`, "invalid birth date/time"},
		{"outside table", `{"date":"1850-06-01","time":"10:00","city":"Tokyo","country":"Japan"}`, "solar term"},
	}
	e := newEnv(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(t, http.MethodPost, "/api/chart", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decode[models.ErrorResponse](t, rec)
			assert.False(t, resp.OK)
			assert.Contains(t, resp.Error, tt.msg)
		})
	}
}

func TestInterpretStream(t *testing.T) {
	e := newEnv(t)
	chart := e.do(t, http.MethodPost, "/api/chart",
		`{"date":"2024-02-03","time":"12:00","city":"Shanghai","country":"China"}`)
	require.Equal(t, http.StatusOK, chart.Code)

	body := `{"name":"Lin","previous":"## Personality","chart":` + chart.Body.String() + `}`
	rec := e.do(t, http.MethodPost, "/api/interpret_stream", body)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "Fake", rec.Header().Get("X-AI-Source"))
	assert.Equal(t,
		"data: {\"delta\":\"Earth \"}\n\ndata: {\"delta\":\"steadies.\"}\n\ndata: [DONE]\n\n",
		rec.Body.String())
	assert.Contains(t, e.llm.user, "Person's name: Lin.")
	assert.Contains(t, e.llm.user, "## Personality")
}

func TestInterpretStreamUpstreamError(t *testing.T) {
	e := newEnv(t)
	e.llm.deltas = []string{"Half"}
	e.llm.err = errors.New("upstream reset")

	rec := e.do(t, http.MethodPost, "/api/interpret_stream", `{"chart":{"ok":true}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"data: {\"delta\":\"Half\"}\n\ndata: {\"error\":\"upstream reset\"}\n\ndata: [DONE]\n\n",
		rec.Body.String())
}

func TestInterpretStreamRequiresChart(t *testing.T) {
	e := newEnv(t)
	for _, body := range []string{`{}`, `{"chart":{"ok":false}}`, `nope`} {
		rec := e.do(t, http.MethodPost, "/api/interpret_stream", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestOversizedBodyRejected(t *testing.T) {
	e := newEnv(t)
	e.llm.deltas = []string{"never"}
	previous := strings.Repeat("水", maxBodyBytes/3+1)
	body := `{"chart":{"ok":true},"name":"Lin","previous":"` + previous + `"}`

	rec := e.do(t, http.MethodPost, "/api/interpret_stream", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "request body too large", decode[models.ErrorResponse](t, rec).Error)
	assert.Empty(t, e.llm.user, "upstream is not called")

	rec = e.do(t, http.MethodPost, "/api/chart", `{"name":"`+strings.Repeat("a", maxBodyBytes)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestInterpretStreamNotice(t *testing.T) {
	h := New(Deps{})
	req := httptest.NewRequest(http.MethodPost, "/api/interpret_stream", strings.NewReader(`{"chart":{"ok":true}}`))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "data: {\"delta\":\"[No language model configured]\\n\"}\n\ndata: [DONE]\n\n", rec.Body.String())
}

func TestGeocodeAdmin(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/api/geocodes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = e.do(t, http.MethodPost, "/api/geocodes/refresh", `{"city":"Kure","country":"Japan"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "true", rec.Header().Get("X-Idempotency-Write"))
	entry := decode[models.GeocodeEntry](t, rec)
	assert.Equal(t, "kure|japan", entry.Key)

	rec = e.do(t, http.MethodPost, "/api/geocodes/refresh", `{"city":"Kure","country":"Japan"}`)
	assert.Equal(t, "false", rec.Header().Get("X-Idempotency-Write"))

	rec = e.do(t, http.MethodGet, "/api/geocodes", "")
	items := decode[[]models.GeocodeEntry](t, rec)
	require.Len(t, items, 1)

	for i := 0; i < 2; i++ {
		rec = e.do(t, http.MethodDelete, "/api/geocodes/kure%7Cjapan", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"deleted":"kure|japan"}`, rec.Body.String())
	}

	rec = e.do(t, http.MethodGet, "/api/geocodes", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGeocodeRefreshErrors(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/api/geocodes/refresh", `{"country":"Japan"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	e.search.err = errors.New("upstream down")
	rec = e.do(t, http.MethodPost, "/api/geocodes/refresh", `{"city":"Kure","country":"Japan"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGeocodeAdminDisabled(t *testing.T) {
	srv := New(Deps{}).Routes()
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/geocodes"},
		{http.MethodDelete, "/api/geocodes/x"},
		{http.MethodPost, "/api/geocodes/refresh"},
	} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, tc.path)
	}
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMiddleware(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodOptions, "/api/chart", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "X-Idempotency-Write")

	rec = e.do(t, http.MethodGet, "/healthz", "")
	_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
	assert.NoError(t, err, "a request id is generated")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	rec = httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	assert.Equal(t, "trace-42", rec.Header().Get("X-Request-ID"))

	rec = e.do(t, http.MethodGet, "/api/chart", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
