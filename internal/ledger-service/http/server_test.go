package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/clutchcall/ledger-platform/internal/ledger-service/bankroll"
	"github.com/clutchcall/ledger-platform/internal/ledger-service/dto"
	"github.com/clutchcall/ledger-platform/internal/ledger-service/settlement"
	"github.com/clutchcall/ledger-platform/internal/ledger-service/store"
)

func newTestServer() *httptest.Server {
	log := zap.NewNop()
	kv := store.NewMemoryKV()
	history := store.NewHistory(kv, "clutchcall_bet_history_v2", log)
	bank := bankroll.NewLocal(kv, "clutchcall_bankroll_v1", 5000, log)
	svc := settlement.New(log, history, bank, nil)
	return httptest.NewServer(NewServer(log, svc).Router())
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	res, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return res
}

func placeBody(stake float64) map[string]any {
	return map[string]any{
		"legs": []map[string]any{
			{"id": "l1", "sport": "NBA", "game": "LAL @ BOS", "betType": "moneyline", "selection": "BOS", "odds": 150},
			{"id": "l2", "sport": "NFL", "game": "KC @ BUF", "betType": "spread", "selection": "BUF -2.5", "odds": -120},
		},
		"stake": stake,
	}
}

func TestPlaceBetEndpoint(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	res := postJSON(t, srv.URL+"/tickets", placeBody(100))
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", res.StatusCode)
	}

	var out dto.PlaceBetResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Ticket.ID == "" || out.Ticket.Status != "pending" {
		t.Errorf("unexpected ticket: %+v", out.Ticket)
	}
	if out.NewBalance != 4900 {
		t.Errorf("new balance = %f, want 4900", out.NewBalance)
	}
}

func TestPlaceBetRejectionsEndpoint(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	cases := []struct {
		name     string
		body     map[string]any
		wantCode int
	}{
		{"empty slip", map[string]any{"legs": []any{}, "stake": 100}, http.StatusBadRequest},
		{"zero stake", placeBody(0), http.StatusBadRequest},
		{"over bankroll", placeBody(9999), http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := postJSON(t, srv.URL+"/tickets", tc.body)
			defer res.Body.Close()
			if res.StatusCode != tc.wantCode {
				t.Errorf("status = %d, want %d", res.StatusCode, tc.wantCode)
			}
			var out dto.ErrorResponse
			if err := json.NewDecoder(res.Body).Decode(&out); err != nil || out.Message == "" {
				t.Errorf("rejection must carry a message: %v %v", out, err)
			}
		})
	}
}

func TestStatusAndBankrollEndpoints(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	res := postJSON(t, srv.URL+"/tickets", placeBody(100))
	var placed dto.PlaceBetResponse
	_ = json.NewDecoder(res.Body).Decode(&placed)
	res.Body.Close()

	// Liquida como won
	res = postJSON(t, srv.URL+"/tickets/"+placed.Ticket.ID+"/status", map[string]any{"status": "won"})
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("set status = %d, want 200", res.StatusCode)
	}

	// Bankroll creditado com o payout
	res, err := http.Get(srv.URL + "/bankroll")
	if err != nil {
		t.Fatalf("get bankroll: %v", err)
	}
	var bank dto.BankrollResponse
	_ = json.NewDecoder(res.Body).Decode(&bank)
	res.Body.Close()

	want := 4900 + placed.Ticket.TotalPayout
	if diff := bank.CurrentBalance - want; diff > 0.01 || diff < -0.01 {
		t.Errorf("bankroll = %f, want %f", bank.CurrentBalance, want)
	}

	// Status inválido é 400
	res = postJSON(t, srv.URL+"/tickets/"+placed.Ticket.ID+"/status", map[string]any{"status": "maybe"})
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid status = %d, want 400", res.StatusCode)
	}

	// Id desconhecido é no-op 200
	res = postJSON(t, srv.URL+"/tickets/nope/status", map[string]any{"status": "won"})
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("unknown id = %d, want 200", res.StatusCode)
	}
}

func TestQuoteEndpoint(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	res := postJSON(t, srv.URL+"/quote", placeBody(100))
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("quote = %d, want 200", res.StatusCode)
	}

	var out dto.QuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.TotalOddsAmerican < 357 || out.TotalOddsAmerican > 359 {
		t.Errorf("quote odds = %f, want ~+358", out.TotalOddsAmerican)
	}
}

func TestClearHistoryEndpoint(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	res := postJSON(t, srv.URL+"/tickets", placeBody(100))
	res.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/tickets", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Errorf("clear = %d, want 204", res.StatusCode)
	}

	res, _ = http.Get(srv.URL + "/tickets")
	var hist dto.HistoryResponse
	_ = json.NewDecoder(res.Body).Decode(&hist)
	res.Body.Close()
	if len(hist.Tickets) != 0 {
		t.Errorf("history not empty after clear: %v", hist.Tickets)
	}
}
