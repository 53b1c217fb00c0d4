package company

import (
	"context"

	"github.com/Graviton17/TrustChain-sub001/internal/application/resource"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/company"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
)

// Service groups the CRUD services of the four company collections and
// assembles the complete company view.
type Service struct {
	Profiles   *resource.Service[company.Profile]
	Contacts   *resource.Service[company.Contacts]
	Financials *resource.Service[company.Financials]
	Operations *resource.Service[company.Operations]
}

// NewService creates a new company Service
func NewService(
	profiles company.ProfileRepository,
	contacts company.ContactsRepository,
	financials company.FinancialsRepository,
	operations company.OperationsRepository,
) *Service {
	return &Service{
		Profiles:   resource.NewService[company.Profile](profiles, "company profile"),
		Contacts:   resource.NewService[company.Contacts](contacts, "company contacts"),
		Financials: resource.NewService[company.Financials](financials, "company financials"),
		Operations: resource.NewService[company.Operations](operations, "company operations"),
	}
}

// CompleteCompany is a company profile with its related records. Each part
// is nil when no record exists.
type CompleteCompany struct {
	Profile       *company.Profile    `json:"profile"`
	Contacts      *company.Contacts   `json:"contacts"`
	Financials    *company.Financials `json:"financials"`
	Operations    *company.Operations `json:"operations"`
	PartialErrors map[string]string   `json:"partial_errors,omitempty"`
}

// CompleteCompany loads the profile and its related records concurrently.
// Parts that fail are listed in PartialErrors instead of failing the call.
func (s *Service) CompleteCompany(ctx context.Context, companyID string) (*CompleteCompany, error) {
	if err := shared.RequireID(companyID); err != nil {
		return nil, err
	}

	out := &CompleteCompany{}
	partial, err := resource.Assemble(ctx, "company", companyID,
		resource.Part{Name: "profile", Fetch: func(ctx context.Context) (bool, error) {
			p, err := s.Profiles.Get(ctx, companyID)
			out.Profile = p
			return p != nil, err
		}},
		resource.Part{Name: "contacts", Fetch: func(ctx context.Context) (bool, error) {
			c, err := s.Contacts.First(ctx, "companyId", companyID)
			out.Contacts = c
			return c != nil, err
		}},
		resource.Part{Name: "financials", Fetch: func(ctx context.Context) (bool, error) {
			f, err := s.Financials.First(ctx, "companyId", companyID)
			out.Financials = f
			return f != nil, err
		}},
		resource.Part{Name: "operations", Fetch: func(ctx context.Context) (bool, error) {
			o, err := s.Operations.First(ctx, "companyId", companyID)
			out.Operations = o
			return o != nil, err
		}},
	)
	if err != nil {
		return nil, err
	}
	out.PartialErrors = partial
	return out, nil
}
