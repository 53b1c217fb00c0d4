package insurance

import (
	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
)

// PolicyRepository defines the interface for insurance policy persistence.
// FindAll and Count honor Filter.Search as a case-insensitive substring
// match over policy_name OR description; when Search is set, equality
// filters are ignored.
type PolicyRepository interface {
	shared.Repository[Policy]
}
