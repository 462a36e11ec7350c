package rental

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/talkincode/estatehub/internal/domain"
	"github.com/talkincode/estatehub/internal/metrics"
)

type OrderBy string

const (
	OrderByPrice    OrderBy = "price"
	OrderByBedrooms OrderBy = "bedrooms"
)

// Filters are the optional search constraints
type Filters struct {
	Category    domain.Category
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	MinBedrooms *int
	OrderBy     OrderBy
}

// RawFilters carries filter values exactly as the caller sent them
type RawFilters struct {
	PropertyType string
	MinPrice     string
	MaxPrice     string
	MinBedrooms  string
	OrderBy      string
}

type SearchRequest struct {
	Location string
	Date     time.Time
	Filters  Filters
}

// ParseFilters validates raw filter input. Blank values mean "not set".
func ParseFilters(raw RawFilters) (Filters, error) {
	var f Filters

	if c := domain.ParseCategory(raw.PropertyType); c != "" {
		f.Category = c
		if !f.Category.Valid() {
			return f, domain.Validation(domain.CodeInvalidFilter, "Property type must be house, apartment or commercial")
		}
	}

	var err error
	if f.MinPrice, err = parsePrice(raw.MinPrice, "Min price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePrice(raw.MaxPrice, "Max price"); err != nil {
		return f, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return f, domain.Validation("INVALID_PRICE_RANGE", "Min price must not exceed max price")
	}

	if v := strings.TrimSpace(raw.MinBedrooms); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, domain.Validation(domain.CodeInvalidFilter, "Min bedrooms must be a non-negative integer")
		}
		f.MinBedrooms = &n
	}

	switch strings.ToLower(strings.TrimSpace(raw.OrderBy)) {
	case "", string(OrderByPrice):
		f.OrderBy = OrderByPrice
	case string(OrderByBedrooms), "rooms":
		f.OrderBy = OrderByBedrooms
	default:
		return f, domain.Validation(domain.CodeInvalidFilter, "Order by must be price or bedrooms")
	}
	return f, nil
}

func parsePrice(v, label string) (*decimal.Decimal, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return nil, domain.Validation(domain.CodeInvalidFilter, label+" must be a non-negative number")
	}
	return &d, nil
}

// Search returns the properties available on req.Date that match the
// location and filters, in the requested order.
func (s *Service) Search(ctx context.Context, req SearchRequest) ([]*domain.Property, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, domain.Validation("MISSING_LOCATION", "Location is required")
	}
	if req.Date.IsZero() {
		return nil, domain.Validation("MISSING_DATE", "Date is required")
	}

	candidates, err := s.repo.FindAvailable(ctx, AvailabilityQuery{
		Location: location,
		Date:     req.Date,
		Category: req.Filters.Category,
	})
	if err != nil {
		return nil, err
	}
	result := Refine(candidates, req.Filters)
	metrics.ObserveSearch(len(result))
	return result, nil
}

// Refine applies the price and bedroom filters and sorts the result.
// The input slice is not modified.
func Refine(props []*domain.Property, f Filters) []*domain.Property {
	out := make([]*domain.Property, 0, len(props))
	for _, p := range props {
		if matchesFilters(p, f) {
			out = append(out, p)
		}
	}
	SortProperties(out, f.OrderBy)
	return out
}

func matchesFilters(p *domain.Property, f Filters) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.MinBedrooms != nil {
		n, ok := p.BedroomCount()
		if !ok || n < *f.MinBedrooms {
			return false
		}
	}
	return true
}

// SortProperties orders by price, or by bedroom count with unknown counts
// last. Ties fall back to the property id.
func SortProperties(props []*domain.Property, order OrderBy) {
	sort.SliceStable(props, func(i, j int) bool {
		a, b := props[i], props[j]
		if order == OrderByBedrooms {
			an, aok := a.BedroomCount()
			bn, bok := b.BedroomCount()
			if aok != bok {
				return aok
			}
			if aok && an != bn {
				return an < bn
			}
		} else if c := a.Price.Cmp(b.Price); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
}
