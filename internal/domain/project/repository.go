package project

import (
	"context"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
)

// Repository defines the interface for project persistence
type Repository interface {
	shared.Repository[Project]
}

// ComplianceRepository defines the interface for compliance persistence
type ComplianceRepository interface {
	shared.Repository[Compliance]

	// ExistsForProject reports whether a compliance record exists for the project
	ExistsForProject(ctx context.Context, projectID string) (bool, error)
}

// FinancialsRepository defines the interface for project financials persistence
type FinancialsRepository interface {
	shared.Repository[Financials]
}

// ProductionRepository defines the interface for project production persistence
type ProductionRepository interface {
	shared.Repository[Production]
}

// VerificationRepository defines the interface for project verification persistence
type VerificationRepository interface {
	shared.Repository[Verification]
}
