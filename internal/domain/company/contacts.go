package company

import (
	"strings"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
)

// Contacts holds the contact details of a company.
// CompanyID references a Profile but is not checked for existence.
type Contacts struct {
	shared.BaseEntity
	CompanyID      string  `gorm:"type:varchar(36);not null;index" json:"companyId" validate:"notblank"`
	ContactPerson  *string `gorm:"type:varchar(200)" json:"contact_person"`
	ContactEmail   *string `gorm:"type:varchar(200)" json:"contact_email"`
	ContactPhone   *string `gorm:"type:varchar(50)" json:"contact_phone"`
	AlternatePhone *string `gorm:"type:varchar(50)" json:"alternate_phone"`
	Address        *string `gorm:"type:text" json:"address"`
}

// TableName returns the table name for GORM
func (Contacts) TableName() string {
	return "company_contacts"
}

// NewContacts creates an empty contacts record for a company
func NewContacts(companyID string) *Contacts {
	return &Contacts{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  strings.TrimSpace(companyID),
	}
}

// Validate checks required fields
func (c *Contacts) Validate() error {
	return shared.Validate(c)
}
