package handler

import (
	appcompany "github.com/Graviton17/TrustChain-sub001/internal/application/company"
	appinsurance "github.com/Graviton17/TrustChain-sub001/internal/application/insurance"
	appproject "github.com/Graviton17/TrustChain-sub001/internal/application/project"
	appsubsidy "github.com/Graviton17/TrustChain-sub001/internal/application/subsidy"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/company"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/insurance"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/project"
	"github.com/gin-gonic/gin"
)

// Services bundles the application services exposed over HTTP
type Services struct {
	Company   *appcompany.Service
	Project   *appproject.Service
	Insurance *appinsurance.Service
	Subsidy   *appsubsidy.Service
}

// Registrar mounts a group of routes
type Registrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// APIHandlers returns one registrar per collection plus the composite views.
func APIHandlers(s Services, opts Options) []Registrar {
	return []Registrar{
		NewResourceHandler[company.Profile, appcompany.CreateProfileRequest, appcompany.UpdateProfileRequest](
			s.Company.Profiles, ResourceConfig{
				Path:    "/company-profiles",
				Label:   "Company profile",
				Filters: []string{"userId", "company_type", "company_size", "country", "state"},
			}, opts),
		NewResourceHandler[company.Contacts, appcompany.CreateContactsRequest, appcompany.UpdateContactsRequest](
			s.Company.Contacts, ResourceConfig{
				Path:    "/company-contacts",
				Label:   "Company contacts",
				Filters: []string{"companyId"},
			}, opts),
		NewResourceHandler[company.Financials, appcompany.CreateFinancialsRequest, appcompany.UpdateFinancialsRequest](
			s.Company.Financials, ResourceConfig{
				Path:    "/company-financials",
				Label:   "Company financials",
				Filters: []string{"companyId", "credit_rating"},
			}, opts),
		NewResourceHandler[company.Operations, appcompany.CreateOperationsRequest, appcompany.UpdateOperationsRequest](
			s.Company.Operations, ResourceConfig{
				Path:    "/company-operations",
				Label:   "Company operations",
				Filters: []string{"companyId"},
			}, opts),
		NewResourceHandler[project.Project, appproject.CreateProjectRequest, appproject.UpdateProjectRequest](
			s.Project.Projects, ResourceConfig{
				Path:    "/projects",
				Label:   "Project",
				Filters: []string{"companyId", "sector", "state", "ownership_type"},
			}, opts),
		NewResourceHandler[project.Compliance, appproject.CreateComplianceRequest, appproject.UpdateComplianceRequest](
			s.Project.Compliance, ResourceConfig{
				Path:    "/project-compliance",
				Label:   "Project compliance",
				Filters: []string{"projectId"},
			}, opts),
		NewResourceHandler[project.Financials, appproject.CreateFinancialsRequest, appproject.UpdateFinancialsRequest](
			s.Project.Financials, ResourceConfig{
				Path:    "/project-financials",
				Label:   "Project financials",
				Filters: []string{"projectId"},
			}, opts),
		NewResourceHandler[project.Production, appproject.CreateProductionRequest, appproject.UpdateProductionRequest](
			s.Project.Production, ResourceConfig{
				Path:    "/project-production",
				Label:   "Project production",
				Filters: []string{"projectId"},
			}, opts),
		NewResourceHandler[project.Verification, appproject.CreateVerificationRequest, appproject.UpdateVerificationRequest](
			s.Project.Verification, ResourceConfig{
				Path:    "/project-verification",
				Label:   "Project verification",
				Filters: []string{"projectId", "verification_status"},
			}, opts),
		NewResourceHandler[insurance.Policy, appinsurance.CreatePolicyRequest, appinsurance.UpdatePolicyRequest](
			s.Insurance.Policies, ResourceConfig{
				Path:    "/insurance-policies",
				Label:   "Insurance policy",
				Filters: []string{"providerId", "policy_type", "region"},
				Search:  true,
			}, opts),
		NewSubsidyHandler(s.Subsidy, opts),
		NewCompositeHandler(s.Company, s.Project, opts),
	}
}
