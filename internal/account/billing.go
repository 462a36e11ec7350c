package account

import (
	"context"
	"strings"
	"time"

	"github.com/talkincode/estatehub/internal/domain"
	"github.com/talkincode/estatehub/pkg/common"
	"go.uber.org/zap"
)

type AddressInput struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

func (s *Service) AddAddress(ctx context.Context, actor domain.Actor, in AddressInput) (*domain.Address, error) {
	addr := &domain.Address{
		ID:           common.UUIDint64(),
		AccountEmail: actor.Email,
		Street:       strings.TrimSpace(in.Street),
		City:         strings.TrimSpace(in.City),
		State:        strings.TrimSpace(in.State),
		ZipCode:      strings.TrimSpace(in.ZipCode),
		CreatedAt:    time.Now(),
	}
	if addr.Street == "" && addr.City == "" {
		return nil, domain.Validation("EMPTY_ADDRESS", "Street or city is required")
	}
	if err := s.repo.CreateAddress(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *Service) Addresses(ctx context.Context, actor domain.Actor) ([]*domain.Address, error) {
	return s.repo.ListAddresses(ctx, actor.Email)
}

// DeleteAddress is refused while any card uses the address for billing
func (s *Service) DeleteAddress(ctx context.Context, actor domain.Actor, id int64) error {
	return s.repo.Transaction(ctx, func(repo Repository) error {
		addr, err := repo.GetAddress(ctx, id)
		if err != nil {
			return err
		}
		if addr.AccountEmail != actor.Email {
			return domain.Unauthorized(domain.CodeNotOwner, "Not your address")
		}
		n, err := repo.CountCardsByAddress(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.Validation("ADDRESS_IN_USE", "Address is the billing address of a payment card")
		}
		return repo.DeleteAddress(ctx, id)
	})
}

type CardInput struct {
	Number           string
	ExpDate          time.Time
	CVV              string
	BillingAddressID int64
}

func (s *Service) AddCard(ctx context.Context, actor domain.Actor, in CardInput) (*domain.PaymentCard, error) {
	if !actor.IsRenter() {
		return nil, domain.Unauthorized(domain.CodeRoleRequired, "Only renters can add cards")
	}
	number := strings.ReplaceAll(strings.TrimSpace(in.Number), " ", "")
	switch {
	case !common.IsDigits(number) || len(number) < 12 || len(number) > 20:
		return nil, domain.Validation("INVALID_CARD_NUMBER", "Card number must be 12 to 20 digits")
	case len(in.CVV) != 3 || !common.IsDigits(in.CVV):
		return nil, domain.Validation("INVALID_CVV", "CVV must be 3 digits")
	case in.ExpDate.IsZero():
		return nil, domain.Validation("MISSING_EXP_DATE", "Expiry date is required")
	}

	var card *domain.PaymentCard
	err := s.repo.Transaction(ctx, func(repo Repository) error {
		addr, err := repo.GetAddress(ctx, in.BillingAddressID)
		if err != nil {
			return err
		}
		if addr.AccountEmail != actor.Email {
			return domain.NotFound("ADDRESS_NOT_FOUND", "Address not found")
		}
		if _, err := repo.GetCard(ctx, number); err == nil {
			return domain.Validation("CARD_EXISTS", "Card already registered")
		} else if !domain.IsKind(err, domain.KindNotFound) {
			return err
		}
		card = &domain.PaymentCard{
			Number:           number,
			RenterEmail:      actor.Email,
			ExpDate:          domain.DateOf(in.ExpDate),
			CVV:              in.CVV,
			BillingAddressID: addr.ID,
			CreatedAt:        time.Now(),
		}
		return repo.CreateCard(ctx, card)
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("payment card added", zap.String("renter", actor.Email), zap.String("card", common.MaskCardNumber(number)))
	return card, nil
}

func (s *Service) Cards(ctx context.Context, actor domain.Actor) ([]*domain.PaymentCard, error) {
	return s.repo.ListCards(ctx, actor.Email)
}

// DeleteCard is refused while bookings reference the card
func (s *Service) DeleteCard(ctx context.Context, actor domain.Actor, number string) error {
	return s.repo.Transaction(ctx, func(repo Repository) error {
		card, err := repo.GetCard(ctx, number)
		if err != nil {
			return err
		}
		if card.RenterEmail != actor.Email {
			return domain.NotFound("CARD_NOT_FOUND", "Payment card not found")
		}
		n, err := repo.CountBookingsByCard(ctx, number)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.Validation("CARD_IN_USE", "Card is referenced by bookings")
		}
		return repo.DeleteCard(ctx, number)
	})
}
