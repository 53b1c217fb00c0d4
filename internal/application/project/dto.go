package project

import (
	"time"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/project"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest represents a request to register a project
type CreateProjectRequest struct {
	CompanyID         string                 `json:"companyId"`
	ProjectName       string                 `json:"project_name"`
	Sector            *string                `json:"sector"`
	Location          *string                `json:"location"`
	State             *string                `json:"state"`
	OwnershipType     *project.OwnershipType `json:"ownership_type"`
	CommissioningYear *int                   `json:"commissioning_year"`
	Description       *string                `json:"description"`
}

// Entity builds the project
func (r CreateProjectRequest) Entity() *project.Project {
	p := project.NewProject(r.CompanyID, r.ProjectName)
	p.Sector = r.Sector
	p.Location = r.Location
	p.State = r.State
	p.OwnershipType = r.OwnershipType
	p.CommissioningYear = r.CommissioningYear
	p.Description = r.Description
	return p
}

// UpdateProjectRequest represents a partial project update
type UpdateProjectRequest struct {
	CompanyID         *string                `json:"companyId"`
	ProjectName       *string                `json:"project_name"`
	Sector            *string                `json:"sector"`
	Location          *string                `json:"location"`
	State             *string                `json:"state"`
	OwnershipType     *project.OwnershipType `json:"ownership_type"`
	CommissioningYear *int                   `json:"commissioning_year"`
	Description       *string                `json:"description"`
}

// Changes returns the columns present in the request
func (r UpdateProjectRequest) Changes() (shared.Changes, error) {
	c := shared.Changes{}
	if err := shared.SetRequiredString(c, "companyId", "company_id", r.CompanyID); err != nil {
		return nil, err
	}
	if err := shared.SetRequiredString(c, "project_name", "project_name", r.ProjectName); err != nil {
		return nil, err
	}
	if r.OwnershipType != nil {
		if err := project.ValidateOwnershipType(*r.OwnershipType); err != nil {
			return nil, err
		}
	}
	shared.SetIfPresent(c, "sector", r.Sector)
	shared.SetIfPresent(c, "location", r.Location)
	shared.SetIfPresent(c, "state", r.State)
	shared.SetIfPresent(c, "ownership_type", r.OwnershipType)
	shared.SetIfPresent(c, "commissioning_year", r.CommissioningYear)
	shared.SetIfPresent(c, "description", r.Description)
	return c, nil
}

// CreateComplianceRequest represents a request to record project compliance.
// Flags left out of the request are stored as false.
type CreateComplianceRequest struct {
	ProjectID              string  `json:"projectId"`
	EnvironmentalClearance *bool   `json:"environmental_clearance"`
	SafetyCertification    *bool   `json:"safety_certification"`
	RegulatoryApproval     *bool   `json:"regulatory_approval"`
	ISOCertified           *bool   `json:"iso_certified"`
	ComplianceNotes        *string `json:"compliance_notes"`
}

// Entity builds the compliance record
func (r CreateComplianceRequest) Entity() *project.Compliance {
	c := project.NewCompliance(r.ProjectID)
	c.EnvironmentalClearance = flag(r.EnvironmentalClearance)
	c.SafetyCertification = flag(r.SafetyCertification)
	c.RegulatoryApproval = flag(r.RegulatoryApproval)
	c.ISOCertified = flag(r.ISOCertified)
	c.ComplianceNotes = r.ComplianceNotes
	return c
}

func flag(b *bool) bool {
	return b != nil && *b
}

// UpdateComplianceRequest represents a partial compliance update
type UpdateComplianceRequest struct {
	ProjectID              *string `json:"projectId"`
	EnvironmentalClearance *bool   `json:"environmental_clearance"`
	SafetyCertification    *bool   `json:"safety_certification"`
	RegulatoryApproval     *bool   `json:"regulatory_approval"`
	ISOCertified           *bool   `json:"iso_certified"`
	ComplianceNotes        *string `json:"compliance_notes"`
}

// Changes returns the columns present in the request
func (r UpdateComplianceRequest) Changes() (shared.Changes, error) {
	c := shared.Changes{}
	if err := shared.SetRequiredString(c, "projectId", "project_id", r.ProjectID); err != nil {
		return nil, err
	}
	shared.SetIfPresent(c, "environmental_clearance", r.EnvironmentalClearance)
	shared.SetIfPresent(c, "safety_certification", r.SafetyCertification)
	shared.SetIfPresent(c, "regulatory_approval", r.RegulatoryApproval)
	shared.SetIfPresent(c, "iso_certified", r.ISOCertified)
	shared.SetIfPresent(c, "compliance_notes", r.ComplianceNotes)
	return c, nil
}

// CreateFinancialsRequest represents a request to record project financials
type CreateFinancialsRequest struct {
	ProjectID        string           `json:"projectId"`
	TotalInvestment  *decimal.Decimal `json:"total_investment"`
	SubsidyRequested *decimal.Decimal `json:"subsidy_requested"`
	FundingSource    *string          `json:"funding_source"`
	ExpectedROI      *float64         `json:"expected_roi"`
}

// Entity builds the financials record
func (r CreateFinancialsRequest) Entity() *project.Financials {
	f := project.NewFinancials(r.ProjectID)
	f.TotalInvestment = r.TotalInvestment
	f.SubsidyRequested = r.SubsidyRequested
	f.FundingSource = r.FundingSource
	f.ExpectedROI = r.ExpectedROI
	return f
}

// UpdateFinancialsRequest represents a partial financials update
type UpdateFinancialsRequest struct {
	ProjectID        *string          `json:"projectId"`
	TotalInvestment  *decimal.Decimal `json:"total_investment"`
	SubsidyRequested *decimal.Decimal `json:"subsidy_requested"`
	FundingSource    *string          `json:"funding_source"`
	ExpectedROI      *float64         `json:"expected_roi"`
}

// Changes returns the columns present in the request
func (r UpdateFinancialsRequest) Changes() (shared.Changes, error) {
	c := shared.Changes{}
	if err := shared.SetRequiredString(c, "projectId", "project_id", r.ProjectID); err != nil {
		return nil, err
	}
	shared.SetIfPresent(c, "total_investment", r.TotalInvestment)
	shared.SetIfPresent(c, "subsidy_requested", r.SubsidyRequested)
	shared.SetIfPresent(c, "funding_source", r.FundingSource)
	shared.SetIfPresent(c, "expected_roi", r.ExpectedROI)
	return c, nil
}

// CreateProductionRequest represents a request to record project production
type CreateProductionRequest struct {
	ProjectID           string   `json:"projectId"`
	InstalledCapacity   *float64 `json:"installed_capacity"`
	AnnualProduction    *float64 `json:"annual_production"`
	ProductionUnit      *string  `json:"production_unit"`
	CapacityUtilization *float64 `json:"capacity_utilization"`
}

// Entity builds the production record
func (r CreateProductionRequest) Entity() *project.Production {
	p := project.NewProduction(r.ProjectID)
	p.InstalledCapacity = r.InstalledCapacity
	p.AnnualProduction = r.AnnualProduction
	p.ProductionUnit = r.ProductionUnit
	p.CapacityUtilization = r.CapacityUtilization
	return p
}

// UpdateProductionRequest represents a partial production update
type UpdateProductionRequest struct {
	ProjectID           *string  `json:"projectId"`
	InstalledCapacity   *float64 `json:"installed_capacity"`
	AnnualProduction    *float64 `json:"annual_production"`
	ProductionUnit      *string  `json:"production_unit"`
	CapacityUtilization *float64 `json:"capacity_utilization"`
}

// Changes returns the columns present in the request
func (r UpdateProductionRequest) Changes() (shared.Changes, error) {
	c := shared.Changes{}
	if err := shared.SetRequiredString(c, "projectId", "project_id", r.ProjectID); err != nil {
		return nil, err
	}
	shared.SetIfPresent(c, "installed_capacity", r.InstalledCapacity)
	shared.SetIfPresent(c, "annual_production", r.AnnualProduction)
	shared.SetIfPresent(c, "production_unit", r.ProductionUnit)
	shared.SetIfPresent(c, "capacity_utilization", r.CapacityUtilization)
	return c, nil
}

// CreateVerificationRequest represents a request to record a verification
type CreateVerificationRequest struct {
	ProjectID          string                      `json:"projectId"`
	VerificationStatus *project.VerificationStatus `json:"verification_status"`
	VerifierName       *string                     `json:"verifier_name"`
	VerifiedAt         *time.Time                  `json:"verified_at"`
	Remarks            *string                     `json:"remarks"`
}

// Entity builds the verification record. An empty status is stored as
// null.
func (r CreateVerificationRequest) Entity() *project.Verification {
	v := project.NewVerification(r.ProjectID)
	if r.VerificationStatus != nil && *r.VerificationStatus != "" {
		v.VerificationStatus = r.VerificationStatus
	}
	v.VerifierName = r.VerifierName
	v.VerifiedAt = r.VerifiedAt
	v.Remarks = r.Remarks
	return v
}

// UpdateVerificationRequest represents a partial verification update
type UpdateVerificationRequest struct {
	ProjectID          *string                     `json:"projectId"`
	VerificationStatus *project.VerificationStatus `json:"verification_status"`
	VerifierName       *string                     `json:"verifier_name"`
	VerifiedAt         *time.Time                  `json:"verified_at"`
	Remarks            *string                     `json:"remarks"`
}

// Changes returns the columns present in the request. An empty status
// clears the stored one.
func (r UpdateVerificationRequest) Changes() (shared.Changes, error) {
	c := shared.Changes{}
	if err := shared.SetRequiredString(c, "projectId", "project_id", r.ProjectID); err != nil {
		return nil, err
	}
	switch {
	case r.VerificationStatus == nil:
	case *r.VerificationStatus == "":
		c.Set("verification_status", nil)
	default:
		if err := project.ValidateStatus(*r.VerificationStatus); err != nil {
			return nil, err
		}
		c.Set("verification_status", *r.VerificationStatus)
	}
	shared.SetIfPresent(c, "verifier_name", r.VerifierName)
	shared.SetIfPresent(c, "verified_at", r.VerifiedAt)
	shared.SetIfPresent(c, "remarks", r.Remarks)
	return c, nil
}
