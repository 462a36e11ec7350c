package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID          int64           `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	PropertyID  int64           `gorm:"not null;index" json:"property_id,string"`
	RenterEmail string          `gorm:"size:100;not null;index" json:"renter_email"`
	CardNumber  string          `gorm:"size:20;not null;index" json:"-"`
	StartDate   time.Time       `gorm:"type:date;not null;index" json:"start_date"`
	EndDate     time.Time       `gorm:"type:date;not null;index" json:"end_date"`
	TotalCost   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_cost"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Booking) TableName() string {
	return "booking"
}
