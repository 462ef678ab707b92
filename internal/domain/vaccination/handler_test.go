package vaccination

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/officura/officura/internal/platform/aigateway"
)

func newTestServer(t *testing.T, gateway *aigateway.Client) *echo.Echo {
	t.Helper()
	e := echo.New()
	h := NewHandler(NewService(gateway, zerolog.Nop()))
	h.RegisterRoutes(e.Group("/api/v1/vaccinations"))
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var parsed map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("invalid JSON response: %v\nbody: %s", err, rec.Body.String())
		}
	}
	return rec, parsed
}

func TestListVaccines(t *testing.T) {
	e := newTestServer(t, nil)
	rec, body := doJSON(t, e, http.MethodGet, "/api/v1/vaccinations/vaccines", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, ok := body["data"].([]interface{})
	if !ok || len(data) != len(schedule) {
		t.Fatalf("expected %d vaccines, got %v", len(schedule), body["data"])
	}
}

func TestAnalyze_RequiresAge(t *testing.T) {
	e := newTestServer(t, nil)
	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/vaccinations/analyze", `{"completed_vaccines":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without age, got %d", rec.Code)
	}
}

func TestAnalyze_RejectsOutOfRangeAge(t *testing.T) {
	e := newTestServer(t, nil)
	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/vaccinations/analyze", `{"age":-1}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative age, got %d", rec.Code)
	}
	rec, _ = doJSON(t, e, http.MethodPost, "/api/v1/vaccinations/analyze", `{"age":150}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for age 150, got %d", rec.Code)
	}
}

func TestAnalyze_ReturnsPartitions(t *testing.T) {
	e := newTestServer(t, nil)
	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/vaccinations/analyze",
		`{"age":30,"completed_vaccines":["dtcp","ror"]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body["success"] != true {
		t.Error("expected success flag")
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	for _, key := range []string{"enRetard", "aVenir", "nonRattrapables", "recommandations"} {
		if _, has := data[key]; !has {
			t.Errorf("expected partition %q in response", key)
		}
	}
}

func TestAnalyze_AgeZeroIsValid(t *testing.T) {
	e := newTestServer(t, nil)
	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/vaccinations/analyze", `{"age":0}`)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for age 0, got %d", rec.Code)
	}
}

func TestAnalyze_GatewayEnrichmentAppendsAdvice(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"recommandations\":[\"conseil gateway\"]}"}}]}`))
	}))
	defer upstream.Close()

	gateway := aigateway.New(upstream.URL, "key", "model")
	e := newTestServer(t, gateway)

	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/vaccinations/analyze", `{"age":40}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := body["data"].(map[string]interface{})
	recs := data["recommandations"].([]interface{})

	found := false
	for _, r := range recs {
		if r == "conseil gateway" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected gateway advice appended, got %v", recs)
	}
}

func TestAnalyze_GatewayFailureDoesNotFailAnalysis(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	gateway := aigateway.New(upstream.URL, "key", "model")
	e := newTestServer(t, gateway)

	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/vaccinations/analyze", `{"age":40}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite gateway failure, got %d", rec.Code)
	}
	data := body["data"].(map[string]interface{})
	if _, has := data["recommandations"]; !has {
		t.Error("expected deterministic recommendations to survive gateway failure")
	}
}
