package webapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/estatehub/internal/account"
	"github.com/talkincode/estatehub/internal/domain"
	"github.com/talkincode/estatehub/internal/webserver"
	"github.com/talkincode/estatehub/pkg/common"
)

type addressPayload struct {
	Street  string `json:"street" validate:"max=255"`
	City    string `json:"city" validate:"max=100"`
	State   string `json:"state" validate:"max=50"`
	ZipCode string `json:"zip_code" validate:"max=20"`
}

type cardPayload struct {
	Number           string `json:"number" validate:"required"`
	ExpDate          string `json:"exp_date" validate:"required"`
	CVV              string `json:"cvv" validate:"required"`
	BillingAddressID string `json:"billing_address_id" validate:"required"`
}

// cardView never exposes the full number or the CVV
type cardView struct {
	Number           string    `json:"number"`
	ExpDate          time.Time `json:"exp_date"`
	BillingAddressID int64     `json:"billing_address_id,string"`
	CreatedAt        time.Time `json:"created_at"`
}

func newCardView(card *domain.PaymentCard) cardView {
	return cardView{
		Number:           common.MaskCardNumber(card.Number),
		ExpDate:          card.ExpDate,
		BillingAddressID: card.BillingAddressID,
		CreatedAt:        card.CreatedAt,
	}
}

func registerBillingRoutes() {
	webserver.ApiGET("/addresses", listAddresses)
	webserver.ApiPOST("/addresses", createAddress)
	webserver.ApiDELETE("/addresses/:id", deleteAddress)
	webserver.ApiGET("/cards", listCards)
	webserver.ApiPOST("/cards", createCard)
	webserver.ApiDELETE("/cards/:number", deleteCard)
}

func listAddresses(c echo.Context) error {
	rows, err := getApp(c).Accounts().Addresses(c.Request().Context(), actorOf(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, rows)
}

func createAddress(c echo.Context) error {
	var payload addressPayload
	if err := bindPayload(c, &payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
	}
	addr, err := getApp(c).Accounts().AddAddress(c.Request().Context(), actorOf(c), account.AddressInput{
		Street:  payload.Street,
		City:    payload.City,
		State:   payload.State,
		ZipCode: payload.ZipCode,
	})
	if err != nil {
		return handleError(c, err)
	}
	return created(c, addr)
}

func deleteAddress(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid address ID", nil)
	}
	if err := getApp(c).Accounts().DeleteAddress(c.Request().Context(), actorOf(c), id); err != nil {
		return handleError(c, err)
	}
	return ok(c, map[string]bool{"deleted": true})
}

func listCards(c echo.Context) error {
	cards, err := getApp(c).Accounts().Cards(c.Request().Context(), actorOf(c))
	if err != nil {
		return handleError(c, err)
	}
	views := make([]cardView, 0, len(cards))
	for _, card := range cards {
		views = append(views, newCardView(card))
	}
	return ok(c, views)
}

func createCard(c echo.Context) error {
	var payload cardPayload
	if err := bindPayload(c, &payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
	}
	exp, err := parseDate(payload.ExpDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Invalid expiry date", err.Error())
	}
	addrID, err := strconv.ParseInt(payload.BillingAddressID, 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid billing address ID", nil)
	}
	card, err := getApp(c).Accounts().AddCard(c.Request().Context(), actorOf(c), account.CardInput{
		Number:           payload.Number,
		ExpDate:          exp,
		CVV:              payload.CVV,
		BillingAddressID: addrID,
	})
	if err != nil {
		return handleError(c, err)
	}
	return created(c, newCardView(card))
}

func deleteCard(c echo.Context) error {
	if err := getApp(c).Accounts().DeleteCard(c.Request().Context(), actorOf(c), c.Param("number")); err != nil {
		return handleError(c, err)
	}
	return ok(c, map[string]bool{"deleted": true})
}
