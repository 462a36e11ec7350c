package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryHouse      Category = "house"
	CategoryApartment  Category = "apartment"
	CategoryCommercial Category = "commercial"
)

// ParseCategory normalises user input; the result still needs Valid
func ParseCategory(s string) Category {
	return Category(strings.ToLower(strings.TrimSpace(s)))
}

func (c Category) Valid() bool {
	switch c {
	case CategoryHouse, CategoryApartment, CategoryCommercial:
		return true
	}
	return false
}

// Extension is the category specific payload of a property
type Extension interface {
	Category() Category
}

type HouseDetails struct {
	Bedrooms *int `json:"bedrooms"`
}

type ApartmentDetails struct {
	Bedrooms     *int   `json:"bedrooms"`
	BuildingType string `json:"building_type"`
}

type CommercialDetails struct {
	BusinessType string `json:"business_type"`
}

func (HouseDetails) Category() Category      { return CategoryHouse }
func (ApartmentDetails) Category() Category  { return CategoryApartment }
func (CommercialDetails) Category() Category { return CategoryCommercial }

// Property is a listing. The extension columns are owned by the variant
// accessors below and must not be set directly.
type Property struct {
	ID            int64           `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	AgentEmail    string          `gorm:"size:100;not null;index" json:"agent_email"`
	Category      Category        `gorm:"size:20;not null;index" json:"category"`
	Description   string          `gorm:"type:text" json:"description"`
	Street        string          `gorm:"size:255" json:"street"`
	City          string          `gorm:"size:100;not null" json:"city"`
	State         string          `gorm:"size:50" json:"state"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"` // per month
	AvailableFrom time.Time       `gorm:"type:date;not null;index" json:"available_from"`
	AvailableTo   time.Time       `gorm:"type:date;not null;index" json:"available_to"`
	SqrFootage    int             `json:"sqr_footage"`

	Bedrooms     *int   `json:"bedrooms,omitempty"`
	BuildingType string `gorm:"size:100" json:"building_type,omitempty"`
	BusinessType string `gorm:"size:100" json:"business_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Property) TableName() string {
	return "property"
}

// Extension returns the variant payload for the property's category
func (p *Property) Extension() Extension {
	switch p.Category {
	case CategoryHouse:
		return HouseDetails{Bedrooms: p.Bedrooms}
	case CategoryApartment:
		return ApartmentDetails{Bedrooms: p.Bedrooms, BuildingType: p.BuildingType}
	default:
		return CommercialDetails{BusinessType: p.BusinessType}
	}
}

// SetExtension replaces the variant, clearing fields of any previous category
func (p *Property) SetExtension(ext Extension) {
	p.Bedrooms = nil
	p.BuildingType = ""
	p.BusinessType = ""
	p.Category = ext.Category()
	switch v := ext.(type) {
	case HouseDetails:
		p.Bedrooms = v.Bedrooms
	case ApartmentDetails:
		p.Bedrooms = v.Bedrooms
		p.BuildingType = v.BuildingType
	case CommercialDetails:
		p.BusinessType = v.BusinessType
	}
}

// BedroomCount resolves the bedroom count through the variant. Commercial
// properties never have one.
func (p *Property) BedroomCount() (int, bool) {
	switch v := p.Extension().(type) {
	case HouseDetails:
		if v.Bedrooms != nil {
			return *v.Bedrooms, true
		}
	case ApartmentDetails:
		if v.Bedrooms != nil {
			return *v.Bedrooms, true
		}
	}
	return 0, false
}

// Window is the availability window
func (p *Property) Window() DateRange {
	return NewDateRange(p.AvailableFrom, p.AvailableTo)
}

func (p *Property) OwnedBy(actor Actor) bool {
	return actor.IsAgent() && p.AgentEmail == actor.Email
}
