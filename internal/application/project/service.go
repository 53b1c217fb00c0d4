package project

import (
	"context"
	"fmt"

	"github.com/Graviton17/TrustChain-sub001/internal/application/resource"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/project"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Service groups the CRUD services of the five project collections and
// assembles the complete project view.
type Service struct {
	Projects     *resource.Service[project.Project]
	Compliance   *ComplianceService
	Financials   *resource.Service[project.Financials]
	Production   *resource.Service[project.Production]
	Verification *resource.Service[project.Verification]
}

// NewService creates a new project Service
func NewService(
	projects project.Repository,
	compliance project.ComplianceRepository,
	financials project.FinancialsRepository,
	production project.ProductionRepository,
	verification project.VerificationRepository,
) *Service {
	return &Service{
		Projects:     resource.NewService[project.Project](projects, "project"),
		Compliance:   NewComplianceService(compliance),
		Financials:   resource.NewService[project.Financials](financials, "project financials"),
		Production:   resource.NewService[project.Production](production, "project production"),
		Verification: resource.NewService[project.Verification](verification, "project verification"),
	}
}

// ComplianceService is the compliance CRUD flow with the one-record-per-project
// rule applied on create.
type ComplianceService struct {
	*resource.Service[project.Compliance]
	repo project.ComplianceRepository
}

// NewComplianceService creates a new ComplianceService
func NewComplianceService(repo project.ComplianceRepository) *ComplianceService {
	return &ComplianceService{
		Service: resource.NewService[project.Compliance](repo, "project compliance"),
		repo:    repo,
	}
}

// Create rejects a second compliance record for the same project. The
// unique index on project_id catches concurrent creators the pre-check misses.
func (s *ComplianceService) Create(ctx context.Context, c *project.Compliance) (*project.Compliance, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsForProject(ctx, c.ProjectID)
	if err != nil {
		logger.L(ctx).Error("Compliance pre-check failed",
			zap.String("project_id", c.ProjectID),
			zap.Error(err),
		)
		return nil, err
	}
	if exists {
		return nil, complianceConflict(c.ProjectID)
	}

	created, err := s.Service.Create(ctx, c)
	if err != nil && shared.CodeOf(err) == shared.CodeConflict {
		return nil, complianceConflict(c.ProjectID)
	}
	return created, err
}

// CreateFrom builds the compliance record from req and creates it.
func (s *ComplianceService) CreateFrom(ctx context.Context, req resource.CreateRequest[project.Compliance]) (*project.Compliance, error) {
	return s.Create(ctx, req.Entity())
}

func complianceConflict(projectID string) error {
	return shared.NewConflictError(fmt.Sprintf("project %s already has compliance data; use Update instead", projectID))
}

// CompleteProject is a project with its related records. Each part is nil
// when no record exists.
type CompleteProject struct {
	Project       *project.Project      `json:"project"`
	Compliance    *project.Compliance   `json:"compliance"`
	Financials    *project.Financials   `json:"financials"`
	Production    *project.Production   `json:"production"`
	Verification  *project.Verification `json:"verification"`
	PartialErrors map[string]string     `json:"partial_errors,omitempty"`
}

// CompleteProject loads the project and its related records concurrently.
func (s *Service) CompleteProject(ctx context.Context, projectID string) (*CompleteProject, error) {
	if err := shared.RequireID(projectID); err != nil {
		return nil, err
	}

	out := &CompleteProject{}
	partial, err := resource.Assemble(ctx, "project", projectID,
		resource.Part{Name: "project", Fetch: func(ctx context.Context) (bool, error) {
			p, err := s.Projects.Get(ctx, projectID)
			out.Project = p
			return p != nil, err
		}},
		resource.Part{Name: "compliance", Fetch: func(ctx context.Context) (bool, error) {
			c, err := s.Compliance.First(ctx, "projectId", projectID)
			out.Compliance = c
			return c != nil, err
		}},
		resource.Part{Name: "financials", Fetch: func(ctx context.Context) (bool, error) {
			f, err := s.Financials.First(ctx, "projectId", projectID)
			out.Financials = f
			return f != nil, err
		}},
		resource.Part{Name: "production", Fetch: func(ctx context.Context) (bool, error) {
			p, err := s.Production.First(ctx, "projectId", projectID)
			out.Production = p
			return p != nil, err
		}},
		resource.Part{Name: "verification", Fetch: func(ctx context.Context) (bool, error) {
			v, err := s.Verification.First(ctx, "projectId", projectID)
			out.Verification = v
			return v != nil, err
		}},
	)
	if err != nil {
		return nil, err
	}
	out.PartialErrors = partial
	return out, nil
}
