package insurance

import (
	"github.com/Graviton17/TrustChain-sub001/internal/domain/insurance"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreatePolicyRequest represents a request to publish an insurance policy
type CreatePolicyRequest struct {
	ProviderID  string           `json:"providerId"`
	PolicyName  string           `json:"policy_name"`
	PolicyType  string           `json:"policy_type"`
	Region      *string          `json:"region"`
	Description *string          `json:"description"`
	Outlay      *decimal.Decimal `json:"outlay"`
	Eligibility *string          `json:"eligibility"`
	TermsURL    *string          `json:"terms_url"`
}

// Entity builds the policy. terms_url is normalized during validation.
func (r CreatePolicyRequest) Entity() *insurance.Policy {
	p := insurance.NewPolicy(r.ProviderID, r.PolicyName, r.PolicyType)
	p.Region = r.Region
	p.Description = r.Description
	p.Outlay = r.Outlay
	p.Eligibility = r.Eligibility
	p.TermsURL = r.TermsURL
	return p
}

// UpdatePolicyRequest represents a partial policy update
type UpdatePolicyRequest struct {
	ProviderID  *string          `json:"providerId"`
	PolicyName  *string          `json:"policy_name"`
	PolicyType  *string          `json:"policy_type"`
	Region      *string          `json:"region"`
	Description *string          `json:"description"`
	Outlay      *decimal.Decimal `json:"outlay"`
	Eligibility *string          `json:"eligibility"`
	TermsURL    *string          `json:"terms_url"`
}

// Changes returns the columns present in the request. A blank terms_url
// clears the stored link.
func (r UpdatePolicyRequest) Changes() (shared.Changes, error) {
	c := shared.Changes{}
	if err := shared.SetRequiredString(c, "providerId", "provider_id", r.ProviderID); err != nil {
		return nil, err
	}
	if err := shared.SetRequiredString(c, "policy_name", "policy_name", r.PolicyName); err != nil {
		return nil, err
	}
	if err := shared.SetRequiredString(c, "policy_type", "policy_type", r.PolicyType); err != nil {
		return nil, err
	}
	if r.TermsURL != nil {
		normalized, err := insurance.NormalizeTermsURL(*r.TermsURL)
		if err != nil {
			return nil, err
		}
		c.Set("terms_url", normalized)
	}
	shared.SetIfPresent(c, "region", r.Region)
	shared.SetIfPresent(c, "description", r.Description)
	shared.SetIfPresent(c, "outlay", r.Outlay)
	shared.SetIfPresent(c, "eligibility", r.Eligibility)
	return c, nil
}
