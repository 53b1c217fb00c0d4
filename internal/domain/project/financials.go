package project

import (
	"strings"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Financials holds the investment figures of a project
type Financials struct {
	shared.BaseEntity
	ProjectID        string           `gorm:"type:varchar(36);not null;index" json:"projectId" validate:"notblank"`
	TotalInvestment  *decimal.Decimal `gorm:"type:decimal(20,2)" json:"total_investment"`
	SubsidyRequested *decimal.Decimal `gorm:"type:decimal(20,2)" json:"subsidy_requested"`
	FundingSource    *string          `gorm:"type:varchar(200)" json:"funding_source"`
	ExpectedROI      *float64         `gorm:"column:expected_roi" json:"expected_roi"`
}

// TableName returns the table name for GORM
func (Financials) TableName() string {
	return "project_financials"
}

// NewFinancials creates an empty financials record for a project
func NewFinancials(projectID string) *Financials {
	return &Financials{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  strings.TrimSpace(projectID),
	}
}

// Validate checks required fields
func (f *Financials) Validate() error {
	return shared.Validate(f)
}
