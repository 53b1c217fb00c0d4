package subsidy

import (
	"encoding/json"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/subsidy"
)

// CreateSubsidyRequest represents a request to publish a subsidy program.
// IncentiveDetails accepts an object or a string holding one.
type CreateSubsidyRequest struct {
	Name             string          `json:"name"`
	Country          string          `json:"country"`
	ProgramType      *string         `json:"program_type"`
	Status           *subsidy.Status `json:"status"`
	Description      *string         `json:"description"`
	IncentiveDetails json.RawMessage `json:"incentiveDetails"`
}

// Entity builds the subsidy. A payload that cannot be encoded is kept as
// received so that validation rejects it.
func (r CreateSubsidyRequest) Entity() *subsidy.Subsidy {
	s := subsidy.NewSubsidy(r.Name, r.Country)
	s.ProgramType = r.ProgramType
	if r.Status != nil && *r.Status != "" {
		s.Status = r.Status
	}
	s.Description = r.Description
	stored, err := subsidy.EncodeIncentiveDetails(r.IncentiveDetails)
	if err != nil {
		raw := string(r.IncentiveDetails)
		stored = &raw
	}
	s.IncentiveDetails = stored
	return s
}

// UpdateSubsidyRequest represents a partial subsidy update
type UpdateSubsidyRequest struct {
	Name             *string         `json:"name"`
	Country          *string         `json:"country"`
	ProgramType      *string         `json:"program_type"`
	Status           *subsidy.Status `json:"status"`
	Description      *string         `json:"description"`
	IncentiveDetails json.RawMessage `json:"incentiveDetails"`
}

// Changes returns the columns present in the request
func (r UpdateSubsidyRequest) Changes() (shared.Changes, error) {
	c := shared.Changes{}
	if err := shared.SetRequiredString(c, "name", "name", r.Name); err != nil {
		return nil, err
	}
	if err := shared.SetRequiredString(c, "country", "country", r.Country); err != nil {
		return nil, err
	}
	if r.Status != nil {
		if err := subsidy.ValidateStatus(*r.Status); err != nil {
			return nil, err
		}
	}
	stored, err := subsidy.EncodeIncentiveDetails(r.IncentiveDetails)
	if err != nil {
		return nil, shared.NewValidationError("incentiveDetails must be a JSON object")
	}
	shared.SetIfPresent(c, "incentive_details", stored)
	shared.SetIfPresent(c, "program_type", r.ProgramType)
	shared.SetIfPresent(c, "status", r.Status)
	shared.SetIfPresent(c, "description", r.Description)
	return c, nil
}
