package webapi

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/talkincode/estatehub/internal/domain"
	"github.com/talkincode/estatehub/internal/rental"
)

type propertyOut struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	City     string `json:"city"`
	Price    string `json:"price"`
	Bedrooms *int   `json:"bedrooms"`
}

type bookingOut struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	TotalCost  string `json:"total_cost"`
	Card       string `json:"card"`
}

func createListing(t *testing.T, s *testServer, token string, body map[string]interface{}) propertyOut {
	t.Helper()
	var p propertyOut
	rec := s.do(request{method: http.MethodPost, path: "/api/v1/properties", token: token, body: body})
	decode(t, rec, http.StatusCreated, &p)
	return p
}

func addRenterCard(t *testing.T, s *testServer, token, number string) {
	t.Helper()
	var addr struct {
		ID string `json:"id"`
	}
	rec := s.do(request{method: http.MethodPost, path: "/api/v1/addresses", token: token, body: map[string]string{
		"street": "9 Oak Ave", "city": "Chicago", "state": "IL", "zip_code": "60601",
	}})
	decode(t, rec, http.StatusCreated, &addr)

	var card struct {
		Number string `json:"number"`
	}
	rec = s.do(request{method: http.MethodPost, path: "/api/v1/cards", token: token, body: map[string]string{
		"number": number, "exp_date": "2030-12-31", "cvv": "123", "billing_address_id": addr.ID,
	}})
	decode(t, rec, http.StatusCreated, &card)
	if !strings.HasSuffix(card.Number, number[len(number)-4:]) || strings.Contains(card.Number, number[:6]) {
		t.Fatalf("card number must be masked, got %q", card.Number)
	}
}

func TestBookingLifecycle(t *testing.T) {
	s := newTestServer(t)
	agentToken, _ := s.registerAndLogin("agent@example.com", "agent")
	renterToken, _ := s.registerAndLogin("renter@example.com", "renter")

	loft := createListing(t, s, agentToken, map[string]interface{}{
		"type": "apartment", "street": "1 Lake Shore Dr", "city": "Chicago", "state": "IL",
		"price": "1500.50", "available_from": "2024-01-01", "available_to": "2024-12-31",
		"bedrooms": 2, "building_type": "high-rise",
	})
	createListing(t, s, agentToken, map[string]interface{}{
		"type": "house", "street": "7 Elm St", "city": "Evanston", "state": "IL",
		"price": 900, "available_from": "2024-01-01", "available_to": "2024-12-31",
		"bedrooms": 3,
	})
	addRenterCard(t, s, renterToken, "4111111111111111")

	var found []propertyOut
	rec := s.do(request{method: http.MethodGet, path: "/api/v1/search?location=il&date=2024-02-15&order_by=price", token: renterToken})
	decode(t, rec, http.StatusOK, &found)
	if len(found) != 2 || found[0].City != "Evanston" || found[1].ID != loft.ID {
		t.Fatalf("unexpected search result %+v", found)
	}

	var booking bookingOut
	rec = s.do(request{method: http.MethodPost, path: "/api/v1/properties/" + loft.ID + "/bookings", token: renterToken, body: map[string]string{
		"start_date": "2024-02-10", "end_date": "2024-03-05", "card_number": "4111111111111111",
	}})
	decode(t, rec, http.StatusCreated, &booking)
	want := rental.Quote(decimal.RequireFromString("1500.50"), domain.NewDateRange(domain.Date(2024, 2, 10), domain.Date(2024, 3, 5)))
	if got := decimal.RequireFromString(booking.TotalCost); !got.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, got)
	}
	if booking.Card != "************1111" {
		t.Fatalf("unexpected masked card %q", booking.Card)
	}

	// the booked apartment disappears from search on a booked date
	rec = s.do(request{method: http.MethodGet, path: "/api/v1/search?location=Chicago&date=2024-02-20", token: renterToken})
	decode(t, rec, http.StatusOK, &found)
	if len(found) != 0 {
		t.Fatalf("booked property must be excluded, got %+v", found)
	}

	// overlapping range is refused at commit time
	rec = s.do(request{method: http.MethodPost, path: "/api/v1/properties/" + loft.ID + "/bookings", token: renterToken, body: map[string]string{
		"start_date": "2024-03-01", "end_date": "2024-03-20", "card_number": "4111111111111111",
	}})
	if env := decode(t, rec, http.StatusBadRequest, nil); env.Code != domain.CodeDateRangeUnavailable {
		t.Fatalf("expected %s, got %s", domain.CodeDateRangeUnavailable, env.Code)
	}

	var mine []bookingOut
	rec = s.do(request{method: http.MethodGet, path: "/api/v1/bookings", token: renterToken})
	decode(t, rec, http.StatusOK, &mine)
	if len(mine) != 1 || mine[0].ID != booking.ID {
		t.Fatalf("unexpected renter bookings %+v", mine)
	}

	rec = s.do(request{method: http.MethodGet, path: "/api/v1/agent/bookings?format=csv", token: agentToken})
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("expected csv export, got %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	lines, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(lines) != 2 || lines[0][0] != "booking_id" || lines[1][0] != booking.ID || lines[1][2] != "renter@example.com" {
		t.Fatalf("unexpected csv %v", lines)
	}

	rec = s.do(request{method: http.MethodDelete, path: "/api/v1/bookings/" + booking.ID, token: agentToken})
	decode(t, rec, http.StatusOK, nil)

	rec = s.do(request{method: http.MethodGet, path: "/api/v1/agent/bookings", token: agentToken})
	var left []bookingOut
	decode(t, rec, http.StatusOK, &left)
	if len(left) != 0 {
		t.Fatalf("booking must be canceled, got %+v", left)
	}
}

func TestBookingErrors(t *testing.T) {
	s := newTestServer(t)
	agentToken, _ := s.registerAndLogin("agent@example.com", "agent")
	renterToken, _ := s.registerAndLogin("renter@example.com", "renter")
	otherToken, _ := s.registerAndLogin("other@example.com", "renter")

	p := createListing(t, s, agentToken, map[string]interface{}{
		"type": "commercial", "city": "Chicago", "price": "4000",
		"available_from": "2024-01-01", "available_to": "2024-06-30", "business_type": "retail",
	})
	addRenterCard(t, s, renterToken, "4111111111111111")

	for _, tc := range []struct {
		name   string
		token  string
		path   string
		body   map[string]string
		status int
		code   string
	}{
		{"agent cannot book", agentToken, "/api/v1/properties/" + p.ID + "/bookings",
			map[string]string{"start_date": "2024-02-01", "end_date": "2024-02-10", "card_number": "4111111111111111"},
			http.StatusForbidden, domain.CodeRoleRequired},
		{"reversed range", renterToken, "/api/v1/properties/" + p.ID + "/bookings",
			map[string]string{"start_date": "2024-03-01", "end_date": "2024-02-01", "card_number": "4111111111111111"},
			http.StatusBadRequest, domain.CodeDateRangeInvalid},
		{"outside window", renterToken, "/api/v1/properties/" + p.ID + "/bookings",
			map[string]string{"start_date": "2024-06-01", "end_date": "2024-07-15", "card_number": "4111111111111111"},
			http.StatusBadRequest, domain.CodeDateRangeInvalid},
		{"someone else's card", otherToken, "/api/v1/properties/" + p.ID + "/bookings",
			map[string]string{"start_date": "2024-02-01", "end_date": "2024-02-10", "card_number": "4111111111111111"},
			http.StatusNotFound, "CARD_NOT_FOUND"},
		{"unknown property", renterToken, "/api/v1/properties/42/bookings",
			map[string]string{"start_date": "2024-02-01", "end_date": "2024-02-10", "card_number": "4111111111111111"},
			http.StatusNotFound, "PROPERTY_NOT_FOUND"},
		{"bad date", renterToken, "/api/v1/properties/" + p.ID + "/bookings",
			map[string]string{"start_date": "someday", "end_date": "2024-02-10", "card_number": "4111111111111111"},
			http.StatusBadRequest, "INVALID_DATE"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(request{method: http.MethodPost, path: tc.path, token: tc.token, body: tc.body})
			env := decode(t, rec, tc.status, nil)
			if env.Code != tc.code {
				t.Fatalf("expected %s, got %s", tc.code, env.Code)
			}
		})
	}

	var b bookingOut
	rec := s.do(request{method: http.MethodPost, path: "/api/v1/properties/" + p.ID + "/bookings", token: renterToken, body: map[string]string{
		"start_date": "2024-02-01", "end_date": "2024-02-10", "card_number": "4111111111111111",
	}})
	decode(t, rec, http.StatusCreated, &b)

	rec = s.do(request{method: http.MethodDelete, path: "/api/v1/bookings/" + b.ID, token: otherToken})
	if env := decode(t, rec, http.StatusForbidden, nil); env.Code != domain.CodeNotOwner {
		t.Fatalf("expected %s, got %s", domain.CodeNotOwner, env.Code)
	}
	rec = s.do(request{method: http.MethodDelete, path: "/api/v1/bookings/" + b.ID, token: renterToken})
	decode(t, rec, http.StatusOK, nil)
	rec = s.do(request{method: http.MethodDelete, path: "/api/v1/bookings/" + b.ID, token: renterToken})
	decode(t, rec, http.StatusNotFound, nil)
}

func TestSearchValidation(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.registerAndLogin("renter@example.com", "renter")

	for _, tc := range []struct {
		query string
		code  string
	}{
		{"location=Chicago", "MISSING_DATE"},
		{"location=Chicago&date=not-a-date", "INVALID_DATE"},
		{"date=2024-01-01", "MISSING_LOCATION"},
		{"location=Chicago&date=2024-01-01&property_type=castle", domain.CodeInvalidFilter},
		{"location=Chicago&date=2024-01-01&min_price=abc", domain.CodeInvalidFilter},
		{"location=Chicago&date=2024-01-01&order_by=size", domain.CodeInvalidFilter},
	} {
		rec := s.do(request{method: http.MethodGet, path: "/api/v1/search?" + tc.query, token: token})
		env := decode(t, rec, http.StatusBadRequest, nil)
		if env.Code != tc.code {
			t.Errorf("search %q: expected %s, got %s", tc.query, tc.code, env.Code)
		}
	}
}
