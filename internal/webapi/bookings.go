package webapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/talkincode/estatehub/internal/domain"
	"github.com/talkincode/estatehub/internal/rental"
	"github.com/talkincode/estatehub/internal/webserver"
	"github.com/talkincode/estatehub/pkg/common"
	"go.uber.org/zap"
)

type bookingPayload struct {
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
	CardNumber string `json:"card_number" validate:"required"`
}

type bookingView struct {
	*domain.Booking
	Card string `json:"card"`
}

func newBookingView(b *domain.Booking) bookingView {
	return bookingView{Booking: b, Card: common.MaskCardNumber(b.CardNumber)}
}

func newBookingViews(rows []*domain.Booking) []bookingView {
	views := make([]bookingView, 0, len(rows))
	for _, b := range rows {
		views = append(views, newBookingView(b))
	}
	return views
}

// bookingCSVRow is one line of the agent booking export
type bookingCSVRow struct {
	BookingID   string `csv:"booking_id"`
	PropertyID  string `csv:"property_id"`
	RenterEmail string `csv:"renter_email"`
	StartDate   string `csv:"start_date"`
	EndDate     string `csv:"end_date"`
	TotalCost   string `csv:"total_cost"`
	Card        string `csv:"card"`
	CreatedAt   string `csv:"created_at"`
}

func registerBookingRoutes() {
	webserver.ApiPOST("/properties/:id/bookings", createBooking)
	webserver.ApiGET("/bookings", listBookings)
	webserver.ApiGET("/agent/bookings", listAgentBookings)
	webserver.ApiDELETE("/bookings/:id", cancelBooking)
}

func createBooking(c echo.Context) error {
	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID", nil)
	}
	var payload bookingPayload
	if err := bindPayload(c, &payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
	}
	start, err := parseDate(payload.StartDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Invalid start date", err.Error())
	}
	end, err := parseDate(payload.EndDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Invalid end date", err.Error())
	}
	b, err := getApp(c).Rentals().Book(c.Request().Context(), actorOf(c), rental.BookingRequest{
		PropertyID: propertyID,
		StartDate:  start,
		EndDate:    end,
		CardNumber: payload.CardNumber,
	})
	if err != nil {
		return handleError(c, err)
	}
	return created(c, newBookingView(b))
}

func listBookings(c echo.Context) error {
	rows, err := getApp(c).Rentals().RenterBookings(c.Request().Context(), actorOf(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, newBookingViews(rows))
}

// listAgentBookings returns bookings on the agent's properties; format=csv
// streams them as an attachment
func listAgentBookings(c echo.Context) error {
	rows, err := getApp(c).Rentals().AgentBookings(c.Request().Context(), actorOf(c))
	if err != nil {
		return handleError(c, err)
	}
	if c.QueryParam("format") != "csv" {
		return ok(c, newBookingViews(rows))
	}

	records := make([]bookingCSVRow, 0, len(rows))
	for _, b := range rows {
		records = append(records, bookingCSVRow{
			BookingID:   strconv.FormatInt(b.ID, 10),
			PropertyID:  strconv.FormatInt(b.PropertyID, 10),
			RenterEmail: b.RenterEmail,
			StartDate:   b.StartDate.Format("2006-01-02"),
			EndDate:     b.EndDate.Format("2006-01-02"),
			TotalCost:   b.TotalCost.StringFixed(2),
			Card:        common.MaskCardNumber(b.CardNumber),
			CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	filename := fmt.Sprintf("bookings-%s.csv", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().WriteHeader(http.StatusOK)
	if err := gocsv.Marshal(records, c.Response()); err != nil {
		zap.L().Error("booking export failed", zap.Error(err))
		return err
	}
	return nil
}

func cancelBooking(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID", nil)
	}
	if err := getApp(c).Rentals().Cancel(c.Request().Context(), actorOf(c), id); err != nil {
		return handleError(c, err)
	}
	return ok(c, map[string]bool{"canceled": true})
}
