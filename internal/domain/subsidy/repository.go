package subsidy

import (
	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
)

// Repository defines the interface for subsidy persistence
type Repository interface {
	shared.Repository[Subsidy]
}
