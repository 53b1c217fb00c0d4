// Package insurance wires the insurance policy collection.
package insurance

import (
	"github.com/Graviton17/TrustChain-sub001/internal/application/resource"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/insurance"
)

// Service is the policy CRUD flow. Search is resolved by the repository.
type Service struct {
	Policies *resource.Service[insurance.Policy]
}

// NewService creates a new insurance Service
func NewService(repo insurance.PolicyRepository) *Service {
	return &Service{Policies: resource.NewService[insurance.Policy](repo, "insurance policy")}
}
