package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/talkincode/estatehub/internal/account"
	"github.com/talkincode/estatehub/internal/webserver"
)

type profilePayload struct {
	FullName          *string          `json:"full_name"`
	JobTitle          *string          `json:"job_title"`
	AgencyName        *string          `json:"agency_name"`
	ContactInfo       *string          `json:"contact_info"`
	DesiredMoveIn     *string          `json:"desired_move_in"`
	PreferredLocation *string          `json:"preferred_location"`
	Budget            *decimal.Decimal `json:"budget"`
}

func registerProfileRoutes() {
	webserver.ApiGET("/profile", getProfile)
	webserver.ApiPUT("/profile", updateProfile)
}

func getProfile(c echo.Context) error {
	a, err := getApp(c).Accounts().Profile(c.Request().Context(), actorOf(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, a)
}

func updateProfile(c echo.Context) error {
	var payload profilePayload
	if err := bindPayload(c, &payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
	}
	moveIn, err := parseOptionalDate(payload.DesiredMoveIn)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Invalid desired move-in date", err.Error())
	}
	a, err := getApp(c).Accounts().UpdateProfile(c.Request().Context(), actorOf(c), account.ProfilePatch{
		FullName:          payload.FullName,
		JobTitle:          payload.JobTitle,
		AgencyName:        payload.AgencyName,
		ContactInfo:       payload.ContactInfo,
		DesiredMoveIn:     moveIn,
		PreferredLocation: payload.PreferredLocation,
		Budget:            payload.Budget,
	})
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, a)
}
