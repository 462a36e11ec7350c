package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/talkincode/estatehub/internal/domain"
	"github.com/talkincode/estatehub/internal/rental"
	"github.com/talkincode/estatehub/internal/webserver"
)

type propertyPayload struct {
	Type          string          `json:"type" validate:"required"`
	Street        string          `json:"street" validate:"max=255"`
	City          string          `json:"city" validate:"required,max=100"`
	State         string          `json:"state" validate:"max=50"`
	Price         decimal.Decimal `json:"price"`
	AvailableFrom string          `json:"available_from" validate:"required"`
	AvailableTo   string          `json:"available_to" validate:"required"`
	SqrFootage    int             `json:"sqr_footage"`
	Description   string          `json:"description"`
	Bedrooms      *int            `json:"bedrooms"`
	BuildingType  string          `json:"building_type" validate:"max=100"`
	BusinessType  string          `json:"business_type" validate:"max=100"`
}

func (p propertyPayload) input() (rental.PropertyInput, error) {
	from, err := parseDate(p.AvailableFrom)
	if err != nil {
		return rental.PropertyInput{}, err
	}
	to, err := parseDate(p.AvailableTo)
	if err != nil {
		return rental.PropertyInput{}, err
	}
	return rental.PropertyInput{
		Category:      domain.Category(p.Type),
		Street:        p.Street,
		City:          p.City,
		State:         p.State,
		Price:         p.Price,
		AvailableFrom: from,
		AvailableTo:   to,
		SqrFootage:    p.SqrFootage,
		Description:   p.Description,
		Bedrooms:      p.Bedrooms,
		BuildingType:  p.BuildingType,
		BusinessType:  p.BusinessType,
	}, nil
}

func registerPropertyRoutes() {
	webserver.ApiGET("/properties", listProperties)
	webserver.ApiPOST("/properties", createProperty)
	webserver.ApiGET("/properties/:id", getProperty)
	webserver.ApiPUT("/properties/:id", updateProperty)
	webserver.ApiDELETE("/properties/:id", deleteProperty)
}

// listProperties returns the calling agent's listings
func listProperties(c echo.Context) error {
	rows, err := getApp(c).Rentals().AgentProperties(c.Request().Context(), actorOf(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, rows)
}

func getProperty(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID", nil)
	}
	p, err := getApp(c).Rentals().GetProperty(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, p)
}

func createProperty(c echo.Context) error {
	var payload propertyPayload
	if err := bindPayload(c, &payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
	}
	in, err := payload.input()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Invalid availability date", err.Error())
	}
	p, err := getApp(c).Rentals().CreateProperty(c.Request().Context(), actorOf(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return created(c, p)
}

func updateProperty(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID", nil)
	}
	var payload propertyPayload
	if err := bindPayload(c, &payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
	}
	in, err := payload.input()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Invalid availability date", err.Error())
	}
	p, err := getApp(c).Rentals().UpdateProperty(c.Request().Context(), actorOf(c), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, p)
}

func deleteProperty(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID", nil)
	}
	if err := getApp(c).Rentals().DeleteProperty(c.Request().Context(), actorOf(c), id); err != nil {
		return handleError(c, err)
	}
	return ok(c, map[string]bool{"deleted": true})
}
