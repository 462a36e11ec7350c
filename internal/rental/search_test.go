package rental

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/talkincode/estatehub/internal/domain"
)

func prop(id int64, price int64, ext domain.Extension) *domain.Property {
	p := &domain.Property{ID: id, Price: decimal.NewFromInt(price)}
	p.SetExtension(ext)
	return p
}

func TestSortPropertiesBedroomsNullsLast(t *testing.T) {
	props := []*domain.Property{
		prop(1, 100, domain.HouseDetails{Bedrooms: intPtr(3)}),
		prop(2, 100, domain.CommercialDetails{}),
		prop(3, 100, domain.ApartmentDetails{Bedrooms: intPtr(1)}),
		prop(4, 100, domain.HouseDetails{}),
		prop(5, 100, domain.ApartmentDetails{Bedrooms: intPtr(1)}),
	}
	SortProperties(props, OrderByBedrooms)
	if want := []int64{3, 5, 1, 2, 4}; !sameIDs(ids(props), want) {
		t.Fatalf("got %v, want %v", ids(props), want)
	}
}

func TestSortPropertiesByPriceTieBreak(t *testing.T) {
	props := []*domain.Property{
		prop(9, 200, domain.CommercialDetails{}),
		prop(2, 100, domain.CommercialDetails{}),
		prop(1, 200, domain.CommercialDetails{}),
	}
	SortProperties(props, OrderByPrice)
	if want := []int64{2, 1, 9}; !sameIDs(ids(props), want) {
		t.Fatalf("got %v, want %v", ids(props), want)
	}
}

func TestRefineMinBedroomsExcludesCommercial(t *testing.T) {
	props := []*domain.Property{
		prop(1, 100, domain.CommercialDetails{}),
		prop(2, 100, domain.HouseDetails{Bedrooms: intPtr(0)}),
	}
	got := Refine(props, Filters{MinBedrooms: intPtr(0), OrderBy: OrderByPrice})
	if !sameIDs(ids(got), []int64{2}) {
		t.Fatalf("got %v", ids(got))
	}
	if len(props) != 2 || props[0].ID != 1 {
		t.Fatalf("input slice modified")
	}
}

func TestParseFilters(t *testing.T) {
	f, err := ParseFilters(RawFilters{PropertyType: "House", MinPrice: "10.5", MaxPrice: "", MinBedrooms: "2", OrderBy: "rooms"})
	if err != nil {
		t.Fatalf("ParseFilters: %v", err)
	}
	if f.Category != domain.CategoryHouse || f.MaxPrice != nil || *f.MinBedrooms != 2 || f.OrderBy != OrderByBedrooms {
		t.Fatalf("unexpected filters %+v", f)
	}
	if !f.MinPrice.Equal(decimal.RequireFromString("10.5")) {
		t.Fatalf("unexpected min price %s", f.MinPrice)
	}

	f, err = ParseFilters(RawFilters{})
	if err != nil || f.OrderBy != OrderByPrice {
		t.Fatalf("empty filters: %+v %v", f, err)
	}

	bad := []RawFilters{
		{MinPrice: "cheap"},
		{MaxPrice: "-1"},
		{MinBedrooms: "two"},
		{MinBedrooms: "-1"},
		{PropertyType: "castle"},
		{OrderBy: "size"},
		{MinPrice: "10", MaxPrice: "5"},
	}
	for _, raw := range bad {
		if _, err := ParseFilters(raw); !domain.IsKind(err, domain.KindValidation) {
			t.Errorf("ParseFilters(%+v) expected validation error, got %v", raw, err)
		}
	}
}
