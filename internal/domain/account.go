package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAgent  Role = "agent"
	RoleRenter Role = "renter"
)

func (r Role) Valid() bool {
	return r == RoleAgent || r == RoleRenter
}

// Account is a registered user. Agent and renter profile fields share the row;
// only the ones matching Role are meaningful.
type Account struct {
	Email        string    `gorm:"primaryKey;size:100" json:"email"`
	FullName     string    `gorm:"size:200;not null" json:"full_name"`
	Role         Role      `gorm:"size:20;not null;index" json:"role"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	LastLogin    time.Time `json:"last_login"`

	// agent profile
	JobTitle    string `gorm:"size:100" json:"job_title,omitempty"`
	AgencyName  string `gorm:"size:100" json:"agency_name,omitempty"`
	ContactInfo string `gorm:"size:255" json:"contact_info,omitempty"`

	// renter profile
	DesiredMoveIn     *time.Time          `gorm:"type:date" json:"desired_move_in,omitempty"`
	PreferredLocation string              `gorm:"size:255" json:"preferred_location,omitempty"`
	Budget            decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"budget"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Account) TableName() string {
	return "account"
}

// Actor identifies the caller of an operation. It is passed explicitly to every
// operation that needs it.
type Actor struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (a Actor) IsAgent() bool  { return a.Role == RoleAgent }
func (a Actor) IsRenter() bool { return a.Role == RoleRenter }

func (a Account) Actor() Actor {
	return Actor{Email: a.Email, Role: a.Role}
}

type Address struct {
	ID           int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	AccountEmail string    `gorm:"size:100;not null;index" json:"account_email"`
	Street       string    `gorm:"size:255" json:"street"`
	City         string    `gorm:"size:100" json:"city"`
	State        string    `gorm:"size:50" json:"state"`
	ZipCode      string    `gorm:"size:20" json:"zip_code"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Address) TableName() string {
	return "address"
}

// PaymentCard is a renter's payment instrument
type PaymentCard struct {
	Number           string    `gorm:"primaryKey;size:20" json:"-"`
	RenterEmail      string    `gorm:"size:100;not null;index" json:"renter_email"`
	ExpDate          time.Time `gorm:"type:date" json:"exp_date"`
	CVV              string    `gorm:"size:3" json:"-"`
	BillingAddressID int64     `gorm:"not null;index" json:"billing_address_id,string"`
	CreatedAt        time.Time `json:"created_at"`
}

func (PaymentCard) TableName() string {
	return "payment_card"
}
