package project

import (
	"strings"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
)

// Production describes the output of a project
type Production struct {
	shared.BaseEntity
	ProjectID         string   `gorm:"type:varchar(36);not null;index" json:"projectId" validate:"notblank"`
	InstalledCapacity *float64 `json:"installed_capacity"`
	AnnualProduction  *float64 `json:"annual_production"`
	ProductionUnit    *string  `gorm:"type:varchar(50)" json:"production_unit"`
	// CapacityUtilization is a percentage; clients enforce 0-100.
	CapacityUtilization *float64 `json:"capacity_utilization"`
}

// TableName returns the table name for GORM
func (Production) TableName() string {
	return "project_production"
}

// NewProduction creates an empty production record for a project
func NewProduction(projectID string) *Production {
	return &Production{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  strings.TrimSpace(projectID),
	}
}

// Validate checks required fields
func (p *Production) Validate() error {
	return shared.Validate(p)
}
