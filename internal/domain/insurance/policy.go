package insurance

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Policy is an insurance product offered by a provider
type Policy struct {
	shared.BaseEntity
	ProviderID  string           `gorm:"type:varchar(64);not null;index" json:"providerId" validate:"notblank"`
	PolicyName  string           `gorm:"type:varchar(200);not null" json:"policy_name" validate:"notblank"`
	PolicyType  string           `gorm:"type:varchar(100);not null;index" json:"policy_type" validate:"notblank"`
	Region      *string          `gorm:"type:varchar(100);index" json:"region"`
	Description *string          `gorm:"type:text" json:"description"`
	Outlay      *decimal.Decimal `gorm:"type:decimal(20,2)" json:"outlay"`
	Eligibility *string          `gorm:"type:text" json:"eligibility"`
	TermsURL    *string          `gorm:"column:terms_url;type:varchar(500)" json:"terms_url"`
}

// TableName returns the table name for GORM
func (Policy) TableName() string {
	return "insurance_policies"
}

// NewPolicy creates a policy offered by providerID
func NewPolicy(providerID, policyName, policyType string) *Policy {
	return &Policy{
		BaseEntity: shared.NewBaseEntity(),
		ProviderID: strings.TrimSpace(providerID),
		PolicyName: strings.TrimSpace(policyName),
		PolicyType: strings.TrimSpace(policyType),
	}
}

// Validate checks required fields and normalizes terms_url in place
func (p *Policy) Validate() error {
	if err := shared.Validate(p); err != nil {
		return err
	}
	if p.TermsURL != nil {
		normalized, err := NormalizeTermsURL(*p.TermsURL)
		if err != nil {
			return err
		}
		p.TermsURL = normalized
	}
	return nil
}

var termsURLPattern = regexp.MustCompile(`(?i)^https?://[^\s/$.?#][^\s]*$`)

// NormalizeTermsURL prefixes a scheme-less URL with https:// and checks the
// result looks like an http(s) URL with a host. The scheme is matched in any
// case and stored lowercase. Blank input yields nil.
func NormalizeTermsURL(raw string) (*string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		trimmed = "https://" + trimmed
	}
	if !termsURLPattern.MatchString(trimmed) {
		return nil, shared.NewValidationError("terms_url must be a valid URL")
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return nil, shared.NewValidationError("terms_url must be a valid URL")
	}
	// url.Parse lowercases the scheme; the rest is kept as given.
	normalized := u.Scheme + trimmed[len(u.Scheme):]
	return &normalized, nil
}
