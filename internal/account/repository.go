package account

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/talkincode/estatehub/internal/domain"
	"gorm.io/gorm"
)

// Repository handles database operations for accounts, addresses and cards
type Repository interface {
	Transaction(ctx context.Context, fn func(repo Repository) error) error

	CreateAccount(ctx context.Context, a *domain.Account) error
	UpdateAccount(ctx context.Context, a *domain.Account) error
	GetAccount(ctx context.Context, email string) (*domain.Account, error)
	TouchLogin(ctx context.Context, email string) error

	CreateAddress(ctx context.Context, addr *domain.Address) error
	GetAddress(ctx context.Context, id int64) (*domain.Address, error)
	ListAddresses(ctx context.Context, email string) ([]*domain.Address, error)
	DeleteAddress(ctx context.Context, id int64) error
	CountCardsByAddress(ctx context.Context, addressID int64) (int64, error)

	CreateCard(ctx context.Context, card *domain.PaymentCard) error
	GetCard(ctx context.Context, number string) (*domain.PaymentCard, error)
	ListCards(ctx context.Context, email string) ([]*domain.PaymentCard, error)
	DeleteCard(ctx context.Context, number string) error
	CountBookingsByCard(ctx context.Context, number string) (int64, error)
}

// GormRepository is the GORM implementation of Repository
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

func (r *GormRepository) CreateAccount(ctx context.Context, a *domain.Account) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(a).Error, "create account")
}

func (r *GormRepository) UpdateAccount(ctx context.Context, a *domain.Account) error {
	return errors.Wrap(r.db.WithContext(ctx).Save(a).Error, "update account")
}

func (r *GormRepository) GetAccount(ctx context.Context, email string) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("ACCOUNT_NOT_FOUND", "Account not found")
		}
		return nil, errors.Wrap(err, "query account")
	}
	return &a, nil
}

func (r *GormRepository) TouchLogin(ctx context.Context, email string) error {
	err := r.db.WithContext(ctx).Model(&domain.Account{}).
		Where("email = ?", email).
		Update("last_login", time.Now()).Error
	return errors.Wrap(err, "update last login")
}

func (r *GormRepository) CreateAddress(ctx context.Context, addr *domain.Address) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(addr).Error, "create address")
}

func (r *GormRepository) GetAddress(ctx context.Context, id int64) (*domain.Address, error) {
	var addr domain.Address
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&addr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("ADDRESS_NOT_FOUND", "Address not found")
		}
		return nil, errors.Wrap(err, "query address")
	}
	return &addr, nil
}

func (r *GormRepository) ListAddresses(ctx context.Context, email string) ([]*domain.Address, error) {
	var rows []*domain.Address
	err := r.db.WithContext(ctx).Where("account_email = ?", email).Order("created_at ASC, id ASC").Find(&rows).Error
	return rows, errors.Wrap(err, "list addresses")
}

func (r *GormRepository) DeleteAddress(ctx context.Context, id int64) error {
	return errors.Wrap(r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Address{}).Error, "delete address")
}

func (r *GormRepository) CountCardsByAddress(ctx context.Context, addressID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.PaymentCard{}).Where("billing_address_id = ?", addressID).Count(&count).Error
	return count, errors.Wrap(err, "count cards by address")
}

func (r *GormRepository) CreateCard(ctx context.Context, card *domain.PaymentCard) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(card).Error, "create card")
}

func (r *GormRepository) GetCard(ctx context.Context, number string) (*domain.PaymentCard, error) {
	var card domain.PaymentCard
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("CARD_NOT_FOUND", "Payment card not found")
		}
		return nil, errors.Wrap(err, "query card")
	}
	return &card, nil
}

func (r *GormRepository) ListCards(ctx context.Context, email string) ([]*domain.PaymentCard, error) {
	var rows []*domain.PaymentCard
	err := r.db.WithContext(ctx).Where("renter_email = ?", email).Order("created_at ASC").Find(&rows).Error
	return rows, errors.Wrap(err, "list cards")
}

func (r *GormRepository) DeleteCard(ctx context.Context, number string) error {
	return errors.Wrap(r.db.WithContext(ctx).Where("number = ?", number).Delete(&domain.PaymentCard{}).Error, "delete card")
}

func (r *GormRepository) CountBookingsByCard(ctx context.Context, number string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("card_number = ?", number).Count(&count).Error
	return count, errors.Wrap(err, "count bookings by card")
}
