package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/estatehub/internal/rental"
	"github.com/talkincode/estatehub/internal/webserver"
)

func registerSearchRoutes() {
	webserver.ApiGET("/search", searchProperties)
}

// searchProperties handles GET /search?location=&date=&property_type=
// &min_price=&max_price=&min_bedrooms=&order_by=
func searchProperties(c echo.Context) error {
	rawDate := c.QueryParam("date")
	if rawDate == "" {
		return fail(c, http.StatusBadRequest, "MISSING_DATE", "Date is required", nil)
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Invalid date", err.Error())
	}

	minBedrooms := c.QueryParam("min_bedrooms")
	if minBedrooms == "" {
		minBedrooms = c.QueryParam("rooms")
	}
	filters, err := rental.ParseFilters(rental.RawFilters{
		PropertyType: c.QueryParam("property_type"),
		MinPrice:     c.QueryParam("min_price"),
		MaxPrice:     c.QueryParam("max_price"),
		MinBedrooms:  minBedrooms,
		OrderBy:      c.QueryParam("order_by"),
	})
	if err != nil {
		return handleError(c, err)
	}

	rows, err := getApp(c).Rentals().Search(c.Request().Context(), rental.SearchRequest{
		Location: c.QueryParam("location"),
		Date:     date,
		Filters:  filters,
	})
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, rows)
}
