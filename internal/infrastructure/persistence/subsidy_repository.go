package persistence

import (
	"github.com/Graviton17/TrustChain-sub001/internal/domain/subsidy"
	"gorm.io/gorm"
)

// GormSubsidyRepository implements subsidy.Repository
type GormSubsidyRepository struct {
	*GormRepository[subsidy.Subsidy]
}

// NewGormSubsidyRepository creates a new GormSubsidyRepository
func NewGormSubsidyRepository(db *gorm.DB) *GormSubsidyRepository {
	return &GormSubsidyRepository{NewGormRepository[subsidy.Subsidy](db, TableDef{
		Resource: "subsidy",
		FilterColumns: map[string]string{
			"country":      "country",
			"program_type": "program_type",
			"status":       "status",
		},
		SortFields: NewSortWhitelist("name", "country"),
	})}
}

var _ subsidy.Repository = (*GormSubsidyRepository)(nil)
