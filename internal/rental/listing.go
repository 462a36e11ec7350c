package rental

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/talkincode/estatehub/internal/domain"
	"github.com/talkincode/estatehub/pkg/common"
	"go.uber.org/zap"
)

// PropertyInput carries the agent-editable fields of a listing
type PropertyInput struct {
	Category      domain.Category
	Street        string
	City          string
	State         string
	Price         decimal.Decimal
	AvailableFrom time.Time
	AvailableTo   time.Time
	SqrFootage    int
	Description   string
	Bedrooms      *int
	BuildingType  string
	BusinessType  string
}

func (in PropertyInput) extension() domain.Extension {
	switch in.Category {
	case domain.CategoryHouse:
		return domain.HouseDetails{Bedrooms: in.Bedrooms}
	case domain.CategoryApartment:
		return domain.ApartmentDetails{Bedrooms: in.Bedrooms, BuildingType: strings.TrimSpace(in.BuildingType)}
	default:
		return domain.CommercialDetails{BusinessType: strings.TrimSpace(in.BusinessType)}
	}
}

func (in PropertyInput) validate() error {
	switch {
	case !in.Category.Valid():
		return domain.Validation("INVALID_CATEGORY", "Type must be house, apartment or commercial")
	case strings.TrimSpace(in.City) == "":
		return domain.Validation("MISSING_CITY", "City is required")
	case in.Price.IsNegative():
		return domain.Validation("INVALID_PRICE", "Price must be >= 0")
	case in.AvailableFrom.IsZero() || in.AvailableTo.IsZero():
		return domain.Validation("MISSING_AVAILABILITY", "Availability dates are required")
	case !domain.NewDateRange(in.AvailableFrom, in.AvailableTo).Ordered():
		return domain.Validation(domain.CodeDateRangeInvalid, "Available from must not be after available to")
	case in.SqrFootage < 0:
		return domain.Validation("INVALID_SQR_FOOTAGE", "Square footage must be >= 0")
	case in.Bedrooms != nil && *in.Bedrooms < 0:
		return domain.Validation("INVALID_BEDROOMS", "Bedrooms must be >= 0")
	}
	return nil
}

func (in PropertyInput) apply(p *domain.Property) {
	p.Street = strings.TrimSpace(in.Street)
	p.City = strings.TrimSpace(in.City)
	p.State = strings.TrimSpace(in.State)
	p.Price = in.Price.Round(2)
	p.AvailableFrom = domain.DateOf(in.AvailableFrom)
	p.AvailableTo = domain.DateOf(in.AvailableTo)
	p.SqrFootage = in.SqrFootage
	p.Description = strings.TrimSpace(in.Description)
	p.SetExtension(in.extension())
}

func (s *Service) CreateProperty(ctx context.Context, actor domain.Actor, in PropertyInput) (*domain.Property, error) {
	if !actor.IsAgent() {
		return nil, domain.Unauthorized(domain.CodeRoleRequired, "Only agents can add properties")
	}
	in.Category = domain.ParseCategory(string(in.Category))
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &domain.Property{
		ID:         common.UUIDint64(),
		AgentEmail: actor.Email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	in.apply(p)
	if err := s.repo.CreateProperty(ctx, p); err != nil {
		return nil, err
	}
	zap.L().Info("property created", zap.Int64("property_id", p.ID), zap.String("agent", actor.Email))
	return p, nil
}

// UpdateProperty replaces the listing fields, swapping the category variant
// in the same transaction.
func (s *Service) UpdateProperty(ctx context.Context, actor domain.Actor, id int64, in PropertyInput) (*domain.Property, error) {
	in.Category = domain.ParseCategory(string(in.Category))
	if err := in.validate(); err != nil {
		return nil, err
	}
	var p *domain.Property
	err := s.repo.Transaction(ctx, func(repo Repository) error {
		var err error
		if p, err = repo.GetPropertyForUpdate(ctx, id); err != nil {
			return err
		}
		if !p.OwnedBy(actor) {
			return domain.Unauthorized(domain.CodeNotOwner, "Only the owning agent can edit this property")
		}
		in.apply(p)
		p.UpdatedAt = time.Now()
		return repo.UpdateProperty(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProperty removes a listing together with its bookings
func (s *Service) DeleteProperty(ctx context.Context, actor domain.Actor, id int64) error {
	err := s.repo.Transaction(ctx, func(repo Repository) error {
		p, err := repo.GetPropertyForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !p.OwnedBy(actor) {
			return domain.Unauthorized(domain.CodeNotOwner, "Only the owning agent can delete this property")
		}
		return repo.DeleteProperty(ctx, id)
	})
	if err != nil {
		return err
	}
	zap.L().Info("property deleted", zap.Int64("property_id", id), zap.String("agent", actor.Email))
	return nil
}

func (s *Service) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	return s.repo.GetProperty(ctx, id)
}

func (s *Service) AgentProperties(ctx context.Context, actor domain.Actor) ([]*domain.Property, error) {
	if !actor.IsAgent() {
		return nil, domain.Unauthorized(domain.CodeRoleRequired, "Only agents have listings")
	}
	return s.repo.ListAgentProperties(ctx, actor.Email)
}
