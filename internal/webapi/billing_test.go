package webapi

import (
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAddressesAndCards(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.registerAndLogin("renter@example.com", "renter")
	agentToken, _ := s.registerAndLogin("agent@example.com", "agent")

	addRenterCard(t, s, token, "5500000000000004")

	var cards []struct {
		Number           string `json:"number"`
		BillingAddressID string `json:"billing_address_id"`
	}
	rec := s.do(request{method: http.MethodGet, path: "/api/v1/cards", token: token})
	decode(t, rec, http.StatusOK, &cards)
	if len(cards) != 1 || cards[0].Number != "************0004" || cards[0].BillingAddressID == "" {
		t.Fatalf("unexpected cards %+v", cards)
	}

	var addrs []struct {
		ID string `json:"id"`
	}
	rec = s.do(request{method: http.MethodGet, path: "/api/v1/addresses", token: token})
	decode(t, rec, http.StatusOK, &addrs)
	if len(addrs) != 1 {
		t.Fatalf("expected one address, got %+v", addrs)
	}

	rec = s.do(request{method: http.MethodDelete, path: "/api/v1/addresses/" + addrs[0].ID, token: token})
	if env := decode(t, rec, http.StatusBadRequest, nil); env.Code != "ADDRESS_IN_USE" {
		t.Fatalf("expected ADDRESS_IN_USE, got %s", env.Code)
	}

	rec = s.do(request{method: http.MethodPost, path: "/api/v1/cards", token: agentToken, body: map[string]string{
		"number": "4111111111111111", "exp_date": "2030-12-31", "cvv": "123", "billing_address_id": addrs[0].ID,
	}})
	decode(t, rec, http.StatusForbidden, nil)

	rec = s.do(request{method: http.MethodDelete, path: "/api/v1/cards/5500000000000004", token: token})
	decode(t, rec, http.StatusOK, nil)
	rec = s.do(request{method: http.MethodDelete, path: "/api/v1/addresses/" + addrs[0].ID, token: token})
	decode(t, rec, http.StatusOK, nil)
}

func TestRequestLogOmitsCardNumber(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	s := newTestServer(t)
	token, _ := s.registerAndLogin("renter@example.com", "renter")
	addRenterCard(t, s, token, "5500000000000004")

	rec := s.do(request{method: http.MethodDelete, path: "/api/v1/cards/5500000000000004", token: token})
	decode(t, rec, http.StatusOK, nil)

	var routes []string
	for _, entry := range logs.All() {
		for k, v := range entry.ContextMap() {
			if str, ok := v.(string); ok && strings.Contains(str, "5500000000000004") {
				t.Fatalf("log %q field %s leaks the card number: %s", entry.Message, k, str)
			}
		}
		if route, ok := entry.ContextMap()["route"].(string); ok {
			routes = append(routes, route)
		}
	}
	found := false
	for _, r := range routes {
		if r == "/api/v1/cards/:number" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the card route pattern in the request log, got %v", routes)
	}
}
