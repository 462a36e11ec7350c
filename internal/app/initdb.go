package app

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/talkincode/estatehub/internal/account"
	"github.com/talkincode/estatehub/internal/domain"
	"github.com/talkincode/estatehub/internal/rental"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	demoAgentEmail  = "agent@estatehub.local"
	demoRenterEmail = "renter@estatehub.local"
	demoPassword    = "estatehub"
	demoCardNumber  = "4111111111111111"
)

// seedDemoData creates a demo agent, renter and listings when they are missing
func (a *Application) seedDemoData() {
	ctx := context.Background()
	agent, created := a.checkDemoAccount(ctx, demoAgentEmail, "Demo Agent", domain.RoleAgent)
	renter, _ := a.checkDemoAccount(ctx, demoRenterEmail, "Demo Renter", domain.RoleRenter)
	if agent == nil || renter == nil {
		return
	}
	if created {
		a.checkDemoProperties(ctx, agent.Actor())
	}
	a.checkDemoCard(ctx, renter.Actor())
}

func (a *Application) checkDemoAccount(ctx context.Context, email, name string, role domain.Role) (*domain.Account, bool) {
	var acct domain.Account
	err := a.gormDB.Where("email = ?", email).First(&acct).Error
	switch {
	case err == nil:
		return &acct, false
	case !errors.Is(err, gorm.ErrRecordNotFound):
		zap.L().Error("failed to query demo account", zap.String("email", email), zap.Error(err))
		return nil, false
	}

	created, err := a.accounts.Register(ctx, account.Registration{
		Email:    email,
		FullName: name,
		Password: demoPassword,
		Role:     role,
	})
	if err != nil {
		zap.L().Error("failed to create demo account", zap.String("email", email), zap.Error(err))
		return nil, false
	}
	zap.L().Info("initialized demo account", zap.String("email", email), zap.String("role", string(role)))
	return created, true
}

func (a *Application) checkDemoProperties(ctx context.Context, agent domain.Actor) {
	year := time.Now().Year()
	from, to := domain.Date(year, 1, 1), domain.Date(year+1, 12, 31)
	three, one := 3, 1

	listings := []rental.PropertyInput{
		{
			Category: domain.CategoryHouse, Street: "12 Oak Lane", City: "Springfield", State: "IL",
			Price: decimal.NewFromInt(1800), AvailableFrom: from, AvailableTo: to, SqrFootage: 1600,
			Description: "Family house with a garden", Bedrooms: &three,
		},
		{
			Category: domain.CategoryApartment, Street: "400 Lake Shore Dr", City: "Chicago", State: "IL",
			Price: decimal.NewFromInt(1450), AvailableFrom: from, AvailableTo: to, SqrFootage: 700,
			Description: "Lakeside studio", Bedrooms: &one, BuildingType: "high-rise",
		},
		{
			Category: domain.CategoryCommercial, Street: "88 Market St", City: "Springfield", State: "IL",
			Price: decimal.NewFromInt(3200), AvailableFrom: from, AvailableTo: to, SqrFootage: 2400,
			Description: "Corner retail unit", BusinessType: "retail",
		},
	}
	for _, in := range listings {
		if _, err := a.rentals.CreateProperty(ctx, agent, in); err != nil {
			zap.L().Error("failed to create demo property", zap.String("city", in.City), zap.Error(err))
		}
	}
}

func (a *Application) checkDemoCard(ctx context.Context, renter domain.Actor) {
	var count int64
	a.gormDB.Model(&domain.PaymentCard{}).Where("number = ?", demoCardNumber).Count(&count)
	if count > 0 {
		return
	}
	addr, err := a.accounts.AddAddress(ctx, renter, account.AddressInput{
		Street: "1 Demo Way", City: "Springfield", State: "IL", ZipCode: "62701",
	})
	if err != nil {
		zap.L().Error("failed to create demo address", zap.Error(err))
		return
	}
	if _, err := a.accounts.AddCard(ctx, renter, account.CardInput{
		Number:           demoCardNumber,
		ExpDate:          domain.Date(time.Now().Year()+3, 12, 31),
		CVV:              "123",
		BillingAddressID: addr.ID,
	}); err != nil {
		zap.L().Error("failed to create demo card", zap.Error(err))
	}
}
