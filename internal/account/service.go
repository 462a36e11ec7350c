package account

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/talkincode/estatehub/internal/domain"
	"github.com/talkincode/estatehub/pkg/common"
	"go.uber.org/zap"
)

const minPasswordLength = 6

// Service manages accounts and the billing data attached to them
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Registration struct {
	Email    string
	FullName string
	Password string
	Role     domain.Role
}

func (s *Service) Register(ctx context.Context, reg Registration) (*domain.Account, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))
	if parsed, err := mail.ParseAddress(email); err != nil || parsed.Address != email || len(email) > 100 {
		return nil, domain.Validation("INVALID_EMAIL", "A valid email is required")
	}
	fullName := strings.TrimSpace(reg.FullName)
	if fullName == "" || len(fullName) > 200 {
		return nil, domain.Validation("INVALID_NAME", "Full name is required (max 200 chars)")
	}
	if len(reg.Password) < minPasswordLength {
		return nil, domain.Validation("WEAK_PASSWORD", "Password must be at least 6 characters")
	}
	if !reg.Role.Valid() {
		return nil, domain.Validation("INVALID_ROLE", "Role must be agent or renter")
	}

	if _, err := s.repo.GetAccount(ctx, email); err == nil {
		return nil, domain.Validation("EMAIL_TAKEN", "Email already registered")
	} else if !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}

	hash, err := common.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	a := &domain.Account{
		Email:        email,
		FullName:     fullName,
		Role:         reg.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}
	zap.L().Info("account registered", zap.String("email", email), zap.String("role", string(reg.Role)))
	return a, nil
}

// Authenticate checks credentials. Unknown email and wrong password produce
// the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	invalid := domain.Unauthorized("INVALID_CREDENTIALS", "Invalid credentials")
	a, err := s.repo.GetAccount(ctx, strings.ToLower(strings.TrimSpace(email)))
	if domain.IsKind(err, domain.KindNotFound) {
		return nil, invalid
	} else if err != nil {
		return nil, err
	}
	if !common.CheckPassword(a.PasswordHash, password) {
		zap.L().Warn("login failed", zap.String("email", a.Email))
		return nil, invalid
	}
	if err := s.repo.TouchLogin(ctx, a.Email); err != nil {
		zap.L().Warn("failed to record last login", zap.String("email", a.Email), zap.Error(err))
	}
	return a, nil
}

func (s *Service) Profile(ctx context.Context, actor domain.Actor) (*domain.Account, error) {
	return s.repo.GetAccount(ctx, actor.Email)
}

// ProfilePatch holds optional profile changes; nil means unchanged
type ProfilePatch struct {
	FullName          *string
	JobTitle          *string
	AgencyName        *string
	ContactInfo       *string
	DesiredMoveIn     *time.Time
	PreferredLocation *string
	Budget            *decimal.Decimal
}

func (s *Service) UpdateProfile(ctx context.Context, actor domain.Actor, patch ProfilePatch) (*domain.Account, error) {
	a, err := s.repo.GetAccount(ctx, actor.Email)
	if err != nil {
		return nil, err
	}
	if patch.FullName != nil {
		name := strings.TrimSpace(*patch.FullName)
		if name == "" {
			return nil, domain.Validation("INVALID_NAME", "Full name is required")
		}
		a.FullName = name
	}

	agentFields := patch.JobTitle != nil || patch.AgencyName != nil || patch.ContactInfo != nil
	renterFields := patch.DesiredMoveIn != nil || patch.PreferredLocation != nil || patch.Budget != nil
	if (agentFields && a.Role != domain.RoleAgent) || (renterFields && a.Role != domain.RoleRenter) {
		return nil, domain.Validation("PROFILE_ROLE_MISMATCH", "Profile fields do not match the account role")
	}

	if patch.JobTitle != nil {
		a.JobTitle = strings.TrimSpace(*patch.JobTitle)
	}
	if patch.AgencyName != nil {
		a.AgencyName = strings.TrimSpace(*patch.AgencyName)
	}
	if patch.ContactInfo != nil {
		a.ContactInfo = strings.TrimSpace(*patch.ContactInfo)
	}
	if patch.DesiredMoveIn != nil {
		d := domain.DateOf(*patch.DesiredMoveIn)
		a.DesiredMoveIn = &d
	}
	if patch.PreferredLocation != nil {
		a.PreferredLocation = strings.TrimSpace(*patch.PreferredLocation)
	}
	if patch.Budget != nil {
		if patch.Budget.IsNegative() {
			return nil, domain.Validation("INVALID_BUDGET", "Budget must be >= 0")
		}
		a.Budget = decimal.NewNullDecimal(patch.Budget.Round(2))
	}
	a.UpdatedAt = time.Now()
	if err := s.repo.UpdateAccount(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
