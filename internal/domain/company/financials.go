package company

import (
	"strings"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Financials holds the headline financial figures of a company
type Financials struct {
	shared.BaseEntity
	CompanyID     string           `gorm:"type:varchar(36);not null;index" json:"companyId" validate:"notblank"`
	AnnualRevenue *decimal.Decimal `gorm:"type:decimal(20,2)" json:"annual_revenue"`
	NetWorth      *decimal.Decimal `gorm:"type:decimal(20,2)" json:"net_worth"`
	CreditRating  *string          `gorm:"type:varchar(20);index" json:"credit_rating"`
	// SuccessRate is a percentage; the range is only enforced by clients.
	SuccessRate *float64 `json:"success_rate"`
}

// TableName returns the table name for GORM
func (Financials) TableName() string {
	return "company_financials"
}

// NewFinancials creates an empty financials record for a company
func NewFinancials(companyID string) *Financials {
	return &Financials{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  strings.TrimSpace(companyID),
	}
}

// Validate checks required fields
func (f *Financials) Validate() error {
	return shared.Validate(f)
}
