package planner

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func newTestApp(svc *Service) *fiber.App {
	app := fiber.New()
	app.Get("/attractions/nearby", NearbyHandler(svc))
	RegisterRoutes(app.Group("/itineraries"), svc)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	return resp
}

func TestGenerateHandler(t *testing.T) {
	f := newFixture(t, nil)
	rows := pgxmock.NewRows(attractionColumns)
	addAttractionRow(rows, "a1", "kyoto", floatPtr(35.0), floatPtr(135.77))
	f.mock.ExpectQuery(`FROM attractions`).WithArgs([]string{"kyoto"}).WillReturnRows(rows)

	app := newTestApp(f.svc)
	resp := postJSON(t, app, "/itineraries/generate", map[string]any{
		"cityId":         "kyoto",
		"numDays":        2,
		"departureDate":  "2025-06-01",
		"outboundFlight": map[string]string{"arrivalTime": "11:00"},
		"returnFlight":   map[string]string{"departureTime": "16:00"},
		"style":          "culture",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	var out struct {
		Success        bool              `json:"success"`
		Source         string            `json:"source"`
		DailyItinerary []json.RawMessage `json:"dailyItinerary"`
		Stats          struct {
			TotalAttractions int `json:"totalAttractions"`
		} `json:"stats"`
	}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Success || out.Source != SourceRules || len(out.DailyItinerary) != 2 || out.Stats.TotalAttractions != 1 {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestGenerateHandlerValidation(t *testing.T) {
	f := newFixture(t, nil)
	app := newTestApp(f.svc)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing city", map[string]any{"numDays": 2, "departureDate": "2025-06-01"}},
		{"zero days", map[string]any{"cityId": "kyoto", "numDays": 0, "departureDate": "2025-06-01"}},
		{"bad style", map[string]any{"cityId": "kyoto", "numDays": 2, "departureDate": "2025-06-01", "style": "party"}},
		{"bad accommodation", map[string]any{"cityId": "kyoto", "numDays": 2, "departureDate": "2025-06-01",
			"accommodations": []map[string]any{{"nights": 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, app, "/itineraries/generate", tc.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/itineraries/generate", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad json: %v", err)
	}
}

func TestGenerateHandlerTourNotFound(t *testing.T) {
	f := newFixture(t, nil)
	f.mock.ExpectQuery(`FROM attractions`).WithArgs([]string{"kyoto"}).WillReturnRows(pgxmock.NewRows(attractionColumns))
	f.mock.ExpectExec(`UPDATE tours SET daily_itinerary`).WithArgs("missing", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	resp := postJSON(t, newTestApp(f.svc), "/itineraries/generate", map[string]any{
		"cityId": "kyoto", "numDays": 1, "departureDate": "2025-06-01", "tourId": "missing",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestAIHandler(t *testing.T) {
	f := newFixture(t, []string{"k1"})
	app := newTestApp(f.svc)
	body := map[string]any{"destination": "京都", "numDays": 1, "departureDate": "2025-06-01"}

	resp := postJSON(t, app, "/itineraries/ai", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	f.ai.text = "not json"
	resp = postJSON(t, app, "/itineraries/ai", body)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(raw, []byte(`"success":false`)) {
		t.Fatalf("unexpected body: %s", raw)
	}

	resp = postJSON(t, app, "/itineraries/ai", map[string]any{"numDays": 1, "departureDate": "2025-06-01"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSlotsHandler(t *testing.T) {
	f := newFixture(t, nil)
	app := newTestApp(f.svc)

	resp := postJSON(t, app, "/itineraries/slots", map[string]any{
		"cityId": "kyoto", "numDays": 3, "departureDate": "2025-06-01",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var slots []SlotPlan
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(slots) != 3 || slots[2].DayNumber != 3 || slots[1].UsableMinutes != 600 {
		t.Fatalf("unexpected slots: %+v", slots)
	}
}

func TestNearbyHandler(t *testing.T) {
	f := newFixture(t, nil)
	rows := pgxmock.NewRows(attractionColumns)
	addAttractionRow(rows, "near", "kyoto", floatPtr(35.001), floatPtr(135.77))
	f.mock.ExpectQuery(`ST_DWithin`).WithArgs(135.77, 35.0, 2000.0).WillReturnRows(rows)

	app := newTestApp(f.svc)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/attractions/nearby?lat=35&lng=135.77&radius_km=2", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("nearby status: %v %v", resp.StatusCode, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(raw, []byte(`"distance_from_previous"`)) {
		t.Fatalf("expected distances: %s", raw)
	}

	for _, q := range []string{"lat=abc&lng=1", "lat=91&lng=1", "lat=1", "lat=1&lng=1&radius_km=-1"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/attractions/nearby?"+q, nil))
		if err != nil || resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", q, resp.StatusCode)
		}
	}
}
