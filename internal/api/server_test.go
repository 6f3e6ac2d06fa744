package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"charter/internal/config"
	"charter/internal/game"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(config.APIConfig{}, nil, game.NewService(nil, nil))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	if code := doJSON(t, http.MethodGet, ts.URL+"/healthz", nil, nil); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	ts := newTestServer(t)

	var created game.SessionView
	code := doJSON(t, http.MethodPost, ts.URL+"/v1/sessions",
		map[string]any{"players": []string{"Ada", "Bo"}}, &created)
	if code != http.StatusCreated {
		t.Fatalf("create session: status = %d, want 201", code)
	}
	if created.ID == "" || len(created.Players) != 2 {
		t.Fatalf("created = %+v", created)
	}

	base := fmt.Sprintf("%s/v1/sessions/%s", ts.URL, created.ID)

	code = doJSON(t, http.MethodPost, base+"/companies",
		map[string]any{"company": "Tin Creek Mine", "player": "Ada"}, nil)
	if code != http.StatusOK {
		t.Fatalf("assign company: status = %d, want 200", code)
	}

	var corp game.CorporationView
	code = doJSON(t, http.MethodPost, base+"/corporations",
		map[string]any{"charter": "Eagle", "player": "Ada", "company": "Tin Creek Mine", "cell_index": 1}, &corp)
	if code != http.StatusCreated {
		t.Fatalf("form corporation: status = %d, want 201", code)
	}
	if corp.Name != "Eagle" || corp.Price != 5 || corp.President != "Ada" {
		t.Fatalf("corp = %+v", corp)
	}

	code = doJSON(t, http.MethodPost, base+"/corporations/Eagle/buy",
		map[string]any{"player": "Bo"}, &corp)
	if code != http.StatusOK {
		t.Fatalf("buy share: status = %d, want 200", code)
	}
	if corp.Price != 6 {
		t.Fatalf("price after buy = %d, want 6", corp.Price)
	}

	var income struct {
		Income int `json:"income"`
	}
	code = doJSON(t, http.MethodGet, base+"/corporations/Eagle/income?base=7", nil, &income)
	if code != http.StatusOK || income.Income != 7 {
		t.Fatalf("income: status = %d, income = %d", code, income.Income)
	}

	var market struct {
		Market []game.MarketRow `json:"market"`
	}
	if code := doJSON(t, http.MethodGet, base+"/market", nil, &market); code != http.StatusOK {
		t.Fatalf("market: status = %d, want 200", code)
	}
	if len(market.Market) != len(game.DefaultLadderPrices) {
		t.Fatalf("market rows = %d, want %d", len(market.Market), len(game.DefaultLadderPrices))
	}

	var log struct {
		Log []string `json:"log"`
	}
	if code := doJSON(t, http.MethodGet, base+"/log", nil, &log); code != http.StatusOK || len(log.Log) == 0 {
		t.Fatalf("log: status = %d, lines = %d", code, len(log.Log))
	}
}

func TestDomainErrorStatuses(t *testing.T) {
	ts := newTestServer(t)

	var created game.SessionView
	if code := doJSON(t, http.MethodPost, ts.URL+"/v1/sessions",
		map[string]any{"players": []string{"Ada", "Bo"}}, &created); code != http.StatusCreated {
		t.Fatalf("create session: status = %d", code)
	}
	base := fmt.Sprintf("%s/v1/sessions/%s", ts.URL, created.ID)
	if code := doJSON(t, http.MethodPost, base+"/companies",
		map[string]any{"company": "Tin Creek Mine", "player": "Ada"}, nil); code != http.StatusOK {
		t.Fatalf("assign company: status = %d", code)
	}

	tests := []struct {
		name   string
		method string
		url    string
		body   any
		want   int
	}{
		{"unknown session", http.MethodGet, ts.URL + "/v1/sessions/nope", nil, http.StatusNotFound},
		{"unknown corporation", http.MethodGet, base + "/corporations/Bear/", nil, http.StatusNotFound},
		{"bad charter name", http.MethodPost, base + "/corporations",
			map[string]any{"charter": "Acme", "player": "Ada", "company": "Tin Creek Mine", "cell_index": 1}, http.StatusBadRequest},
		{"company not owned", http.MethodPost, base + "/corporations",
			map[string]any{"charter": "Eagle", "player": "Bo", "company": "Tin Creek Mine", "cell_index": 1}, http.StatusForbidden},
		{"bad founding price", http.MethodPost, base + "/corporations",
			map[string]any{"charter": "Eagle", "player": "Ada", "company": "Tin Creek Mine", "cell_index": 10}, http.StatusBadRequest},
	}
	for _, tc := range tests {
		if code := doJSON(t, tc.method, tc.url, tc.body, nil); code != tc.want {
			t.Fatalf("%s: status = %d, want %d", tc.name, code, tc.want)
		}
	}

	if code := doJSON(t, http.MethodPost, base+"/corporations",
		map[string]any{"charter": "Eagle", "player": "Ada", "company": "Tin Creek Mine", "cell_index": 1}, nil); code != http.StatusCreated {
		t.Fatalf("form corporation: status = %d", code)
	}
	if code := doJSON(t, http.MethodPost, base+"/corporations",
		map[string]any{"charter": "Eagle", "player": "Ada", "company": "Tin Creek Mine", "cell_index": 2}, nil); code != http.StatusConflict {
		t.Fatalf("charter taken: status = %d, want 409", code)
	}
	if code := doJSON(t, http.MethodPost, base+"/corporations/Eagle/dividend",
		map[string]any{"amount": -1}, nil); code != http.StatusBadRequest {
		t.Fatalf("negative dividend: status = %d, want 400", code)
	}
}
