package company

import (
	"strings"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
)

// Size classifies a company by headcount band
type Size string

const (
	SizeMicro  Size = "micro"
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Profile is the root record of a registered company. One profile per user
// is expected but not enforced here.
type Profile struct {
	shared.BaseEntity
	UserID            string  `gorm:"type:varchar(64);not null;index" json:"userId" validate:"notblank"`
	CompanyName       string  `gorm:"type:varchar(200);not null" json:"company_name" validate:"notblank"`
	CompanyType       *string `gorm:"type:varchar(100);index" json:"company_type"`
	CompanySize       *Size   `gorm:"type:varchar(20);index" json:"company_size" validate:"omitempty,oneof=micro small medium large"`
	IncorporationYear *int    `json:"incorporation_year"`
	Country           *string `gorm:"type:varchar(100);index" json:"country"`
	State             *string `gorm:"type:varchar(100);index" json:"state"`
	Website           *string `gorm:"type:varchar(500)" json:"website"`
	Description       *string `gorm:"type:text" json:"description"`
}

// TableName returns the table name for GORM
func (Profile) TableName() string {
	return "company_profiles"
}

// NewProfile creates a company profile owned by userID
func NewProfile(userID, companyName string) *Profile {
	return &Profile{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      strings.TrimSpace(userID),
		CompanyName: strings.TrimSpace(companyName),
	}
}

// Validate checks required fields and enum values
func (p *Profile) Validate() error {
	return shared.Validate(p)
}

// ValidateSize checks a size supplied outside a full profile, as in updates
func ValidateSize(s Size) error {
	return shared.ValidateValue("company_size", string(s), "oneof=micro small medium large")
}
