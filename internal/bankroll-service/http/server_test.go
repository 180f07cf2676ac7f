package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/clutchcall/ledger-platform/internal/bankroll-service/dto"
)

// fakeRepo guarda o saldo em memória para os testes do handler
type fakeRepo struct {
	balance float64
	created bool
}

func (f *fakeRepo) GetOrCreate(context.Context) (float64, error) {
	if !f.created {
		f.created = true
		f.balance = 5000
	}
	return f.balance, nil
}

func (f *fakeRepo) SetBalance(_ context.Context, balance float64, _ string) (float64, error) {
	if balance < 0 {
		balance = 0
	}
	f.created = true
	f.balance = balance
	return f.balance, nil
}

func TestGetBankrollCreatesDefault(t *testing.T) {
	srv := httptest.NewServer(NewServer(zap.NewNop(), &fakeRepo{}).Router())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/bankroll")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var out dto.BankrollResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.CurrentBalance != 5000 {
		t.Errorf("balance = %f, want default 5000", out.CurrentBalance)
	}
}

func TestPutBankroll(t *testing.T) {
	repo := &fakeRepo{}
	srv := httptest.NewServer(NewServer(zap.NewNop(), repo).Router())
	defer srv.Close()

	body, _ := json.Marshal(dto.UpdateBankrollRequest{CurrentBalance: 4900})
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/bankroll", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var out dto.BankrollResponse
	_ = json.NewDecoder(res.Body).Decode(&out)
	if out.CurrentBalance != 4900 {
		t.Errorf("balance = %f, want 4900", out.CurrentBalance)
	}

	// Saldo negativo é clampado em zero
	body, _ = json.Marshal(dto.UpdateBankrollRequest{CurrentBalance: -50})
	req, _ = http.NewRequest(http.MethodPut, srv.URL+"/api/bankroll", bytes.NewReader(body))
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	defer res.Body.Close()

	_ = json.NewDecoder(res.Body).Decode(&out)
	if out.CurrentBalance != 0 {
		t.Errorf("balance = %f, want 0", out.CurrentBalance)
	}
}

func TestBankrollMethodNotAllowed(t *testing.T) {
	srv := httptest.NewServer(NewServer(zap.NewNop(), &fakeRepo{}).Router())
	defer srv.Close()

	res, err := http.Post(srv.URL+"/api/bankroll", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", res.StatusCode)
	}
}
