package persistence

import (
	"context"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/project"
	"gorm.io/gorm"
)

var projectKey = map[string]string{"projectId": "project_id"}

// GormProjectRepository implements project.Repository
type GormProjectRepository struct {
	*GormRepository[project.Project]
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{NewGormRepository[project.Project](db, TableDef{
		Resource: "project",
		FilterColumns: map[string]string{
			"companyId":      "company_id",
			"sector":         "sector",
			"state":          "state",
			"ownership_type": "ownership_type",
		},
		SortFields: NewSortWhitelist("project_name", "commissioning_year"),
	})}
}

// GormComplianceRepository implements project.ComplianceRepository
type GormComplianceRepository struct {
	*GormRepository[project.Compliance]
}

// NewGormComplianceRepository creates a new GormComplianceRepository
func NewGormComplianceRepository(db *gorm.DB) *GormComplianceRepository {
	return &GormComplianceRepository{NewGormRepository[project.Compliance](db, TableDef{
		Resource:      "project compliance",
		FilterColumns: projectKey,
	})}
}

// ExistsForProject reports whether the project already has a compliance record
func (r *GormComplianceRepository) ExistsForProject(ctx context.Context, projectID string) (bool, error) {
	return r.Exists(ctx, "project_id", projectID)
}

// GormProjectFinancialsRepository implements project.FinancialsRepository
type GormProjectFinancialsRepository struct {
	*GormRepository[project.Financials]
}

// NewGormProjectFinancialsRepository creates a new GormProjectFinancialsRepository
func NewGormProjectFinancialsRepository(db *gorm.DB) *GormProjectFinancialsRepository {
	return &GormProjectFinancialsRepository{NewGormRepository[project.Financials](db, TableDef{
		Resource:      "project financials",
		FilterColumns: projectKey,
		SortFields:    NewSortWhitelist("total_investment", "subsidy_requested"),
	})}
}

// GormProductionRepository implements project.ProductionRepository
type GormProductionRepository struct {
	*GormRepository[project.Production]
}

// NewGormProductionRepository creates a new GormProductionRepository
func NewGormProductionRepository(db *gorm.DB) *GormProductionRepository {
	return &GormProductionRepository{NewGormRepository[project.Production](db, TableDef{
		Resource:      "project production",
		FilterColumns: projectKey,
		SortFields:    NewSortWhitelist("installed_capacity", "annual_production"),
	})}
}

// GormVerificationRepository implements project.VerificationRepository
type GormVerificationRepository struct {
	*GormRepository[project.Verification]
}

// NewGormVerificationRepository creates a new GormVerificationRepository
func NewGormVerificationRepository(db *gorm.DB) *GormVerificationRepository {
	return &GormVerificationRepository{NewGormRepository[project.Verification](db, TableDef{
		Resource: "project verification",
		FilterColumns: map[string]string{
			"projectId":           "project_id",
			"verification_status": "verification_status",
		},
		SortFields: NewSortWhitelist("verified_at"),
	})}
}

var (
	_ project.Repository             = (*GormProjectRepository)(nil)
	_ project.ComplianceRepository   = (*GormComplianceRepository)(nil)
	_ project.FinancialsRepository   = (*GormProjectFinancialsRepository)(nil)
	_ project.ProductionRepository   = (*GormProductionRepository)(nil)
	_ project.VerificationRepository = (*GormVerificationRepository)(nil)
)
