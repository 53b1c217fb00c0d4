package persistence

import (
	"context"
	"fmt"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/company"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/insurance"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/project"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/subsidy"
	"gorm.io/gorm"
)

// Models returns every persisted entity in migration order.
func Models() []any {
	return []any{
		&company.Profile{},
		&company.Contacts{},
		&company.Financials{},
		&company.Operations{},
		&project.Project{},
		&project.Compliance{},
		&project.Financials{},
		&project.Production{},
		&project.Verification{},
		&insurance.Policy{},
		&subsidy.Subsidy{},
	}
}

// TableNames returns the table of every persisted entity.
func TableNames() []string {
	models := Models()
	names := make([]string, 0, len(models))
	for _, m := range models {
		if t, ok := m.(interface{ TableName() string }); ok {
			names = append(names, t.TableName())
		}
	}
	return names
}

// AutoMigrate creates or alters the entity tables to match the models.
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Repositories bundles one repository per entity table.
type Repositories struct {
	Profiles       *GormCompanyProfileRepository
	Contacts       *GormCompanyContactsRepository
	Financials     *GormCompanyFinancialsRepository
	Operations     *GormCompanyOperationsRepository
	Projects       *GormProjectRepository
	Compliance     *GormComplianceRepository
	ProjectFinance *GormProjectFinancialsRepository
	Production     *GormProductionRepository
	Verification   *GormVerificationRepository
	Policies       *GormPolicyRepository
	Subsidies      *GormSubsidyRepository
}

// NewRepositories builds every repository over db.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Profiles:       NewGormCompanyProfileRepository(db),
		Contacts:       NewGormCompanyContactsRepository(db),
		Financials:     NewGormCompanyFinancialsRepository(db),
		Operations:     NewGormCompanyOperationsRepository(db),
		Projects:       NewGormProjectRepository(db),
		Compliance:     NewGormComplianceRepository(db),
		ProjectFinance: NewGormProjectFinancialsRepository(db),
		Production:     NewGormProductionRepository(db),
		Verification:   NewGormVerificationRepository(db),
		Policies:       NewGormPolicyRepository(db),
		Subsidies:      NewGormSubsidyRepository(db),
	}
}
