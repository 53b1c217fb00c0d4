package persistence

import (
	"github.com/Graviton17/TrustChain-sub001/internal/domain/insurance"
	"gorm.io/gorm"
)

// GormPolicyRepository implements insurance.PolicyRepository.
// Search matches policy_name or description and overrides the filters.
type GormPolicyRepository struct {
	*GormRepository[insurance.Policy]
}

// NewGormPolicyRepository creates a new GormPolicyRepository
func NewGormPolicyRepository(db *gorm.DB) *GormPolicyRepository {
	return &GormPolicyRepository{NewGormRepository[insurance.Policy](db, TableDef{
		Resource: "insurance policy",
		FilterColumns: map[string]string{
			"providerId":  "provider_id",
			"policy_type": "policy_type",
			"region":      "region",
		},
		SearchColumns: []string{"policy_name", "description"},
		SortFields:    NewSortWhitelist("policy_name", "policy_type", "outlay"),
	})}
}

var _ insurance.PolicyRepository = (*GormPolicyRepository)(nil)
