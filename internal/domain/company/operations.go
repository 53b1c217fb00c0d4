package company

import (
	"strings"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
)

// Operations describes how and where a company operates
type Operations struct {
	shared.BaseEntity
	CompanyID          string  `gorm:"type:varchar(36);not null;index" json:"companyId" validate:"notblank"`
	EmployeeCount      *int    `json:"employee_count"`
	OperationalAddress *string `gorm:"type:text" json:"operational_address"`
	BusinessActivities *string `gorm:"type:text" json:"business_activities"`
}

// TableName returns the table name for GORM
func (Operations) TableName() string {
	return "company_operations"
}

// NewOperations creates an empty operations record for a company
func NewOperations(companyID string) *Operations {
	return &Operations{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  strings.TrimSpace(companyID),
	}
}

// Validate checks required fields
func (o *Operations) Validate() error {
	return shared.Validate(o)
}
