package company

import (
	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
)

// ProfileRepository defines the interface for company profile persistence
type ProfileRepository interface {
	shared.Repository[Profile]
}

// ContactsRepository defines the interface for company contacts persistence
type ContactsRepository interface {
	shared.Repository[Contacts]
}

// FinancialsRepository defines the interface for company financials persistence
type FinancialsRepository interface {
	shared.Repository[Financials]
}

// OperationsRepository defines the interface for company operations persistence
type OperationsRepository interface {
	shared.Repository[Operations]
}
