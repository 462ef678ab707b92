package medication

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

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	return NewCatalog([]string{
		"DOLIPRANE 500 mg, comprimé",
		"DOLIPRANE 1000 mg, comprimé",
		"SPASFON, comprimé",
		"AMOXICILLINE 1 g, comprimé",
	})
}

// newGatewayStub returns a gateway whose chat endpoint is driven by handler.
func newGatewayStub(t *testing.T, handler http.HandlerFunc) *aigateway.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return aigateway.New(srv.URL, "test-key", "test-model", aigateway.WithRetries(0, 0))
}

// unusedGateway returns a gateway that fails the test if reached.
func unusedGateway(t *testing.T) *aigateway.Client {
	t.Helper()
	return newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected gateway call")
	})
}

// toolCallResponse writes an OpenAI-style response whose first choice carries
// one tool call with the given arguments.
func toolCallResponse(t *testing.T, w http.ResponseWriter, name string, args interface{}) {
	t.Helper()
	raw, err := json.Marshal(args)
	if err != nil {
		t.Fatal(err)
	}
	body := map[string]interface{}{
		"choices": []map[string]interface{}{{
			"message": map[string]interface{}{
				"tool_calls": []map[string]interface{}{{
					"function": map[string]interface{}{
						"name":      name,
						"arguments": string(raw),
					},
				}},
			},
		}},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Fatal(err)
	}
}

func newTestHandler(t *testing.T, gateway *aigateway.Client) *echo.Echo {
	t.Helper()
	e := echo.New()
	svc := NewService(testCatalog(t), gateway, zerolog.Nop())
	NewHandler(svc).RegisterRoutes(e.Group("/medications"))
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSearchCatalog(t *testing.T) {
	e := newTestHandler(t, newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("search must not call the gateway")
	}))

	rec := doJSON(t, e, http.MethodGet, "/medications?q=doliprane", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var resp struct {
		Data  []string `json:"data"`
		Total int      `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 || len(resp.Data) != 2 {
		t.Errorf("got %d/%d results, want 2/2: %v", len(resp.Data), resp.Total, resp.Data)
	}
}

func TestSearchCatalog_Paginated(t *testing.T) {
	e := newTestHandler(t, unusedGateway(t))

	rec := doJSON(t, e, http.MethodGet, "/medications?q=doliprane&limit=1&offset=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data    []string `json:"data"`
		Total   int      `json:"total"`
		HasMore bool     `json:"has_more"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 1 || resp.Total != 2 {
		t.Errorf("got %d/%d results, want 1/2", len(resp.Data), resp.Total)
	}
	if resp.HasMore {
		t.Error("second page of two should not have more")
	}
}

func TestSearchCatalog_RequiresQuery(t *testing.T) {
	e := newTestHandler(t, unusedGateway(t))
	if rec := doJSON(t, e, http.MethodGet, "/medications", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestInfo_ReturnsReport(t *testing.T) {
	gateway := newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Tools []struct {
				Function struct {
					Name string `json:"name"`
				} `json:"function"`
			} `json:"tools"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if len(req.Tools) != 1 || req.Tools[0].Function.Name != "extract_pregnancy_info" {
			t.Errorf("unexpected tool for pregnancy mode: %+v", req.Tools)
		}
		toolCallResponse(t, w, "extract_pregnancy_info", map[string]interface{}{
			"severity": "medium",
			"summary":  []string{"Utilisation possible avec précautions"},
			"details":  []map[string]string{{"title": "Trimestres", "content": "Éviter au premier trimestre"}},
		})
	})
	e := newTestHandler(t, gateway)

	rec := doJSON(t, e, http.MethodPost, "/medications/info", `{"medicationName":"DOLIPRANE 500 mg","mode":"grossesse"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var resp struct {
		Data aigateway.Report `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Severity != aigateway.SeverityMedium {
		t.Errorf("severity = %q, want medium", resp.Data.Severity)
	}
	if len(resp.Data.Details) != 1 || resp.Data.Details[0].Title != "Trimestres" {
		t.Errorf("unexpected details: %+v", resp.Data.Details)
	}
}

func TestInfo_DefaultsToContraindications(t *testing.T) {
	gateway := newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Tools []struct {
				Function struct {
					Name string `json:"name"`
				} `json:"function"`
			} `json:"tools"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Tools[0].Function.Name != "extract_contraindications" {
			t.Errorf("tool = %q, want extract_contraindications", req.Tools[0].Function.Name)
		}
		toolCallResponse(t, w, "extract_contraindications", map[string]interface{}{
			"severity": "safe",
			"summary":  []string{"Pas de contre-indication connue"},
		})
	})
	e := newTestHandler(t, gateway)

	rec := doJSON(t, e, http.MethodPost, "/medications/info", `{"medicationName":"SPASFON"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
}

func TestInfo_UnknownMode(t *testing.T) {
	e := newTestHandler(t, unusedGateway(t))
	rec := doJSON(t, e, http.MethodPost, "/medications/info", `{"medicationName":"SPASFON","mode":"homeopathie"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestInfo_RequiresName(t *testing.T) {
	e := newTestHandler(t, unusedGateway(t))
	rec := doJSON(t, e, http.MethodPost, "/medications/info", `{"mode":"grossesse"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestInteractions_ReturnsReport(t *testing.T) {
	gateway := newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		toolCallResponse(t, w, "extract_interactions", map[string]interface{}{
			"severity": "high",
			"summary":  []string{"Association déconseillée"},
		})
	})
	e := newTestHandler(t, gateway)

	rec := doJSON(t, e, http.MethodPost, "/medications/interactions",
		`{"medication1":"PREVISCAN","medication2":"ASPIRINE"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var resp struct {
		Data aigateway.Report `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Severity != aigateway.SeverityHigh {
		t.Errorf("severity = %q, want high", resp.Data.Severity)
	}
}

func TestInteractions_RequiresBothNames(t *testing.T) {
	e := newTestHandler(t, unusedGateway(t))
	for _, body := range []string{
		`{"medication1":"PREVISCAN"}`,
		`{"medication2":"ASPIRINE"}`,
		`{}`,
	} {
		if rec := doJSON(t, e, http.MethodPost, "/medications/interactions", body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestPhytoInteractions_ReturnsReport(t *testing.T) {
	gateway := newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		toolCallResponse(t, w, "extract_phytotherapy_interactions", map[string]interface{}{
			"severity": "critical",
			"summary":  []string{"Millepertuis contre-indiqué avec les anticoagulants"},
		})
	})
	e := newTestHandler(t, gateway)

	rec := doJSON(t, e, http.MethodPost, "/medications/phyto-interactions",
		`{"medication":"PREVISCAN","plant":"Millepertuis"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
}

func TestDosage_ReturnsTable(t *testing.T) {
	gateway := newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		toolCallResponse(t, w, "extract_dosages", map[string]interface{}{
			"dosages": []map[string]string{{
				"age":          "Adulte",
				"poids":        "> 50 kg",
				"voie":         "Orale",
				"dosePrise":    "500 mg à 1 g",
				"frequence":    "Toutes les 4 à 6 heures",
				"doseMaxPrise": "1 g",
				"doseMax24h":   "3 g",
				"notes":        "Espacer les prises de 4 heures minimum",
			}},
		})
	})
	e := newTestHandler(t, gateway)

	rec := doJSON(t, e, http.MethodPost, "/medications/dosage", `{"medicationName":"DOLIPRANE"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var resp struct {
		Data DosageResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data.Dosages) != 1 || resp.Data.Dosages[0].DoseMax24h != "3 g" {
		t.Errorf("unexpected dosages: %+v", resp.Data.Dosages)
	}
}

func TestEquivalence_ReturnsAnalysis(t *testing.T) {
	gateway := newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		toolCallResponse(t, w, "display_equivalences", map[string]interface{}{
			"medicationAnalysis": map[string]string{
				"originalName": "DOLIPRANE 500 mg",
				"dci":          "Paracétamol",
				"dosage":       "500 mg",
				"form":         "comprimé",
			},
			"generics":              []map[string]string{{"name": "PARACETAMOL ARROW 500 mg"}},
			"brandEquivalents":      []map[string]string{{"name": "DAFALGAN 500 mg", "form": "gélule"}},
			"indicationEquivalents": []map[string]string{},
			"excipientWarnings":     []string{},
			"summary":               []string{"Même DCI, même dosage"},
			"substitutionAdvice":    "Substitution possible en officine",
			"verificationNote":      "Synthèse fondée sur les référentiels cliniques reconnus",
		})
	})
	e := newTestHandler(t, gateway)

	rec := doJSON(t, e, http.MethodPost, "/medications/equivalence", `{"medicationName":"DOLIPRANE 500 mg"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var resp struct {
		Data EquivalenceResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.MedicationAnalysis.DCI != "Paracétamol" {
		t.Errorf("dci = %q, want Paracétamol", resp.Data.MedicationAnalysis.DCI)
	}
	if len(resp.Data.Generics) != 1 {
		t.Errorf("generics = %+v, want one entry", resp.Data.Generics)
	}
}

func TestGatewayErrors_MapToStatuses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantStatus int
	}{
		{"rate limited", http.StatusTooManyRequests, http.StatusTooManyRequests},
		{"payment required", http.StatusPaymentRequired, http.StatusPaymentRequired},
		{"upstream failure", http.StatusInternalServerError, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			e := newTestHandler(t, gateway)

			rec := doJSON(t, e, http.MethodPost, "/medications/dosage", `{"medicationName":"DOLIPRANE"}`)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestGatewayNotConfigured_Returns503(t *testing.T) {
	e := echo.New()
	svc := NewService(testCatalog(t), aigateway.New("http://unused", "", "test-model"), zerolog.Nop())
	NewHandler(svc).RegisterRoutes(e.Group("/medications"))

	rec := doJSON(t, e, http.MethodPost, "/medications/dosage", `{"medicationName":"DOLIPRANE"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
