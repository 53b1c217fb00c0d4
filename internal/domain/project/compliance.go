package project

import (
	"strings"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
)

// Compliance records the regulatory standing of a project.
// At most one record exists per project; the unique index on project_id
// makes concurrent duplicate inserts fail.
type Compliance struct {
	shared.BaseEntity
	ProjectID              string  `gorm:"type:varchar(36);not null;uniqueIndex:idx_project_compliance_project" json:"projectId" validate:"notblank"`
	EnvironmentalClearance bool    `gorm:"not null;default:false" json:"environmental_clearance"`
	SafetyCertification    bool    `gorm:"not null;default:false" json:"safety_certification"`
	RegulatoryApproval     bool    `gorm:"not null;default:false" json:"regulatory_approval"`
	ISOCertified           bool    `gorm:"column:iso_certified;not null;default:false" json:"iso_certified"`
	ComplianceNotes        *string `gorm:"type:text" json:"compliance_notes"`
}

// TableName returns the table name for GORM
func (Compliance) TableName() string {
	return "project_compliance"
}

// NewCompliance creates a compliance record with every flag unset
func NewCompliance(projectID string) *Compliance {
	return &Compliance{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  strings.TrimSpace(projectID),
	}
}

// Validate checks required fields
func (c *Compliance) Validate() error {
	return shared.Validate(c)
}
