package project

import (
	"strings"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
)

// OwnershipType describes who owns a project
type OwnershipType string

const (
	OwnershipPrivate      OwnershipType = "private"
	OwnershipPublic       OwnershipType = "public"
	OwnershipJointVenture OwnershipType = "joint_venture"
	OwnershipCooperative  OwnershipType = "cooperative"
)

// Project is a subsidy-eligible undertaking of a company.
// CompanyID references a company profile but is not checked for existence.
type Project struct {
	shared.BaseEntity
	CompanyID         string         `gorm:"type:varchar(36);not null;index" json:"companyId" validate:"notblank"`
	ProjectName       string         `gorm:"type:varchar(200);not null" json:"project_name" validate:"notblank"`
	Sector            *string        `gorm:"type:varchar(100);index" json:"sector"`
	Location          *string        `gorm:"type:varchar(200)" json:"location"`
	State             *string        `gorm:"type:varchar(100);index" json:"state"`
	OwnershipType     *OwnershipType `gorm:"type:varchar(20);index" json:"ownership_type" validate:"omitempty,oneof=private public joint_venture cooperative"`
	CommissioningYear *int           `json:"commissioning_year"`
	Description       *string        `gorm:"type:text" json:"description"`
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// NewProject creates a project belonging to companyID
func NewProject(companyID, projectName string) *Project {
	return &Project{
		BaseEntity:  shared.NewBaseEntity(),
		CompanyID:   strings.TrimSpace(companyID),
		ProjectName: strings.TrimSpace(projectName),
	}
}

// Validate checks required fields and enum values
func (p *Project) Validate() error {
	return shared.Validate(p)
}

// ValidateOwnershipType checks an ownership type supplied on its own
func ValidateOwnershipType(o OwnershipType) error {
	return shared.ValidateValue("ownership_type", string(o), "oneof=private public joint_venture cooperative")
}
