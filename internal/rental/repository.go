package rental

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/talkincode/estatehub/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AvailabilityQuery is the part of a search evaluated by the store
type AvailabilityQuery struct {
	Location string
	Date     time.Time
	Category domain.Category // empty means any
}

// Repository handles database operations for listings and bookings
type Repository interface {
	// Transaction runs fn against a repository bound to one transaction
	Transaction(ctx context.Context, fn func(repo Repository) error) error

	CreateProperty(ctx context.Context, p *domain.Property) error
	UpdateProperty(ctx context.Context, p *domain.Property) error
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)

	// GetPropertyForUpdate loads a property and locks its row until the
	// surrounding transaction ends (no-op lock on sqlite)
	GetPropertyForUpdate(ctx context.Context, id int64) (*domain.Property, error)

	ListAgentProperties(ctx context.Context, agentEmail string) ([]*domain.Property, error)

	// DeleteProperty removes the property and all of its bookings
	DeleteProperty(ctx context.Context, id int64) error

	// FindAvailable returns properties whose window contains q.Date, whose
	// city, state or street contains q.Location, and which have no booking
	// covering q.Date
	FindAvailable(ctx context.Context, q AvailabilityQuery) ([]*domain.Property, error)

	CreateBooking(ctx context.Context, b *domain.Booking) error
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	ListRenterBookings(ctx context.Context, renterEmail string) ([]*domain.Booking, error)
	ListAgentBookings(ctx context.Context, agentEmail string) ([]*domain.Booking, error)

	// HasOverlap reports whether any booking of the property intersects r
	HasOverlap(ctx context.Context, propertyID int64, r domain.DateRange) (bool, error)

	GetCard(ctx context.Context, number string) (*domain.PaymentCard, error)
}

// GormRepository is the GORM implementation of Repository
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new GORM-based repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

func (r *GormRepository) CreateProperty(ctx context.Context, p *domain.Property) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(p).Error, "create property")
}

func (r *GormRepository) UpdateProperty(ctx context.Context, p *domain.Property) error {
	// Save writes zero values too, so cleared variant columns are persisted
	return errors.Wrap(r.db.WithContext(ctx).Save(p).Error, "update property")
}

func (r *GormRepository) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	var p domain.Property
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFoundOr(err, "PROPERTY_NOT_FOUND", "Property not found")
	}
	return &p, nil
}

func (r *GormRepository) GetPropertyForUpdate(ctx context.Context, id int64) (*domain.Property, error) {
	var p domain.Property
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, notFoundOr(err, "PROPERTY_NOT_FOUND", "Property not found")
	}
	return &p, nil
}

func (r *GormRepository) ListAgentProperties(ctx context.Context, agentEmail string) ([]*domain.Property, error) {
	var rows []*domain.Property
	err := r.db.WithContext(ctx).
		Where("agent_email = ?", agentEmail).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, errors.Wrap(err, "list agent properties")
}

func (r *GormRepository) DeleteProperty(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("property_id = ?", id).Delete(&domain.Booking{}).Error; err != nil {
		return errors.Wrap(err, "delete property bookings")
	}
	return errors.Wrap(db.Where("id = ?", id).Delete(&domain.Property{}).Error, "delete property")
}

func (r *GormRepository) FindAvailable(ctx context.Context, q AvailabilityQuery) ([]*domain.Property, error) {
	date := domain.DateOf(q.Date)
	db := r.db.WithContext(ctx).Model(&domain.Property{}).
		Where("available_from <= ? AND available_to >= ?", date, date)

	pattern := "%" + escapeLike(strings.ToLower(q.Location)) + "%"
	if strings.EqualFold(r.db.Name(), "postgres") {
		db = db.Where(`(city ILIKE ? ESCAPE '\' OR state ILIKE ? ESCAPE '\' OR street ILIKE ? ESCAPE '\')`,
			pattern, pattern, pattern)
	} else {
		db = db.Where(`(LOWER(city) LIKE ? ESCAPE '\' OR LOWER(state) LIKE ? ESCAPE '\' OR LOWER(street) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern)
	}

	// search-time exclusion of already booked dates
	db = db.Where("NOT EXISTS (SELECT 1 FROM booking b WHERE b.property_id = property.id AND b.start_date <= ? AND b.end_date >= ?)",
		date, date)

	if q.Category != "" {
		db = db.Where("category = ?", q.Category)
	}

	var rows []*domain.Property
	if err := db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "find available properties")
	}
	return rows, nil
}

func (r *GormRepository) CreateBooking(ctx context.Context, b *domain.Booking) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(b).Error, "create booking")
}

func (r *GormRepository) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, notFoundOr(err, "BOOKING_NOT_FOUND", "Booking not found")
	}
	return &b, nil
}

func (r *GormRepository) DeleteBooking(ctx context.Context, id int64) error {
	return errors.Wrap(r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Booking{}).Error, "delete booking")
}

func (r *GormRepository) ListRenterBookings(ctx context.Context, renterEmail string) ([]*domain.Booking, error) {
	var rows []*domain.Booking
	err := r.db.WithContext(ctx).
		Where("renter_email = ?", renterEmail).
		Order("start_date ASC, id ASC").
		Find(&rows).Error
	return rows, errors.Wrap(err, "list renter bookings")
}

func (r *GormRepository) ListAgentBookings(ctx context.Context, agentEmail string) ([]*domain.Booking, error) {
	var rows []*domain.Booking
	err := r.db.WithContext(ctx).
		Joins("JOIN property ON property.id = booking.property_id").
		Where("property.agent_email = ?", agentEmail).
		Order("booking.start_date ASC, booking.id ASC").
		Find(&rows).Error
	return rows, errors.Wrap(err, "list agent bookings")
}

func (r *GormRepository) HasOverlap(ctx context.Context, propertyID int64, rng domain.DateRange) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("property_id = ? AND start_date <= ? AND end_date >= ?", propertyID, rng.End, rng.Start).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "check booking overlap")
	}
	return count > 0, nil
}

func (r *GormRepository) GetCard(ctx context.Context, number string) (*domain.PaymentCard, error) {
	var c domain.PaymentCard
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&c).Error; err != nil {
		return nil, notFoundOr(err, "CARD_NOT_FOUND", "Payment card not found")
	}
	return &c, nil
}

func notFoundOr(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound(code, message)
	}
	return errors.Wrap(err, strings.ToLower(message))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
