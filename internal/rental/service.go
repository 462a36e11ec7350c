package rental

import (
	"context"
	"time"

	"github.com/talkincode/estatehub/internal/domain"
	"github.com/talkincode/estatehub/internal/metrics"
	"github.com/talkincode/estatehub/pkg/common"
	"go.uber.org/zap"
)

// Options tunes booking commit rules
type Options struct {
	// RejectOverlap makes Book refuse a range that intersects an existing
	// booking of the same property. When false, only search-time exclusion
	// applies and concurrent overlapping bookings can both succeed.
	RejectOverlap bool
}

// Service implements availability search, booking and listing management
type Service struct {
	repo Repository
	opts Options
}

func NewService(repo Repository, opts Options) *Service {
	return &Service{repo: repo, opts: opts}
}

// BookingRequest is a renter's request to reserve a property
type BookingRequest struct {
	PropertyID int64
	StartDate  time.Time
	EndDate    time.Time
	CardNumber string
}

// Book validates the requested range, prices it and persists the booking.
func (s *Service) Book(ctx context.Context, actor domain.Actor, req BookingRequest) (*domain.Booking, error) {
	if !actor.IsRenter() {
		metrics.IncBookingCreated("rejected")
		return nil, domain.Unauthorized(domain.CodeRoleRequired, "Only renters can book")
	}
	rng := domain.NewDateRange(req.StartDate, req.EndDate)

	var booking *domain.Booking
	err := s.repo.Transaction(ctx, func(repo Repository) error {
		p, err := repo.GetPropertyForUpdate(ctx, req.PropertyID)
		if err != nil {
			return err
		}
		if err := ValidateRange(p, rng); err != nil {
			return err
		}

		card, err := repo.GetCard(ctx, req.CardNumber)
		if err != nil {
			return err
		}
		if card.RenterEmail != actor.Email {
			return domain.NotFound("CARD_NOT_FOUND", "Payment card not found")
		}

		if s.opts.RejectOverlap {
			overlap, err := repo.HasOverlap(ctx, p.ID, rng)
			if err != nil {
				return err
			}
			if overlap {
				return domain.Validation(domain.CodeDateRangeUnavailable, "Property is already booked for part of this range")
			}
		}

		booking = &domain.Booking{
			ID:          common.UUIDint64(),
			PropertyID:  p.ID,
			RenterEmail: actor.Email,
			CardNumber:  card.Number,
			StartDate:   rng.Start,
			EndDate:     rng.End,
			TotalCost:   Quote(p.Price, rng),
			CreatedAt:   time.Now(),
		}
		return repo.CreateBooking(ctx, booking)
	})
	if err != nil {
		metrics.IncBookingCreated("rejected")
		return nil, err
	}

	metrics.IncBookingCreated("created")
	zap.L().Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("property_id", booking.PropertyID),
		zap.String("renter", booking.RenterEmail),
		zap.String("total_cost", booking.TotalCost.StringFixed(2)))
	return booking, nil
}

// Cancel deletes a booking. Only the renter who made it or the agent owning
// the property may cancel. The refund is simulated.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, bookingID int64) error {
	err := s.repo.Transaction(ctx, func(repo Repository) error {
		b, err := repo.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		p, err := repo.GetProperty(ctx, b.PropertyID)
		if err != nil {
			return err
		}
		ownBooking := actor.IsRenter() && b.RenterEmail == actor.Email
		if !ownBooking && !p.OwnedBy(actor) {
			return domain.Unauthorized(domain.CodeNotOwner, "Not authorized to cancel this booking")
		}
		return repo.DeleteBooking(ctx, b.ID)
	})
	if err != nil {
		return err
	}

	metrics.IncBookingCanceled(string(actor.Role))
	zap.L().Info("booking canceled, refund simulated",
		zap.Int64("booking_id", bookingID),
		zap.String("actor", actor.Email),
		zap.String("role", string(actor.Role)))
	return nil
}

// RenterBookings lists the caller's own bookings
func (s *Service) RenterBookings(ctx context.Context, actor domain.Actor) ([]*domain.Booking, error) {
	if !actor.IsRenter() {
		return nil, domain.Unauthorized(domain.CodeRoleRequired, "Only renters have bookings")
	}
	return s.repo.ListRenterBookings(ctx, actor.Email)
}

// AgentBookings lists bookings made on the caller's properties
func (s *Service) AgentBookings(ctx context.Context, actor domain.Actor) ([]*domain.Booking, error) {
	if !actor.IsAgent() {
		return nil, domain.Unauthorized(domain.CodeRoleRequired, "Only agents can list property bookings")
	}
	return s.repo.ListAgentBookings(ctx, actor.Email)
}
