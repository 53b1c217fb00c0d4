// Package subsidy serves subsidy programs with their incentive payload
// decoded.
package subsidy

import (
	"context"

	"github.com/Graviton17/TrustChain-sub001/internal/application/resource"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/subsidy"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Metrics receives malformed-record observations
type Metrics interface {
	RecordMalformedSubsidy(ctx context.Context)
}

type noopMetrics struct{}

func (noopMetrics) RecordMalformedSubsidy(context.Context) {}

// ViewPage is one page of decoded subsidies. Total counts stored matches,
// Skipped the records on this page whose payload could not be decoded.
type ViewPage struct {
	Items   []subsidy.View `json:"items"`
	Total   int64          `json:"total"`
	Skipped int            `json:"skipped"`
}

// Service wraps the subsidy CRUD flow and returns views.
type Service struct {
	crud    *resource.Service[subsidy.Subsidy]
	metrics Metrics
}

// NewService creates a new subsidy Service. metrics may be nil.
func NewService(repo subsidy.Repository, metrics Metrics) *Service {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		crud:    resource.NewService[subsidy.Subsidy](repo, "subsidy"),
		metrics: metrics,
	}
}

// List returns decoded subsidies. Records whose payload fails to decode are
// left out of Items and counted in Skipped.
func (s *Service) List(ctx context.Context, filter shared.Filter) (*ViewPage, error) {
	page, err := s.crud.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := &ViewPage{Items: make([]subsidy.View, 0, len(page.Items)), Total: page.Total}
	for i := range page.Items {
		view, err := page.Items[i].View()
		if err != nil {
			out.Skipped++
			s.metrics.RecordMalformedSubsidy(ctx)
			logger.L(ctx).Warn("Skipping subsidy with malformed incentiveDetails",
				zap.String("subsidy_id", page.Items[i].ID),
				zap.Error(err),
			)
			continue
		}
		out.Items = append(out.Items, *view)
	}
	return out, nil
}

// Get returns one decoded subsidy. A malformed payload is MALFORMED_DATA.
func (s *Service) Get(ctx context.Context, id string) (*subsidy.View, error) {
	entity, err := s.crud.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, entity)
}

// Create validates and stores a subsidy
func (s *Service) Create(ctx context.Context, req CreateSubsidyRequest) (*subsidy.View, error) {
	entity, err := s.crud.CreateFrom(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, entity)
}

// Update applies the supplied fields and returns the stored subsidy
func (s *Service) Update(ctx context.Context, id string, req UpdateSubsidyRequest) (*subsidy.View, error) {
	entity, err := s.crud.UpdateFrom(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, entity)
}

// Delete removes a subsidy
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.crud.Delete(ctx, id)
}

func (s *Service) view(ctx context.Context, entity *subsidy.Subsidy) (*subsidy.View, error) {
	v, err := entity.View()
	if err != nil {
		s.metrics.RecordMalformedSubsidy(ctx)
		logger.L(ctx).Warn("Subsidy has malformed incentiveDetails",
			zap.String("subsidy_id", entity.ID),
			zap.Error(err),
		)
		return nil, err
	}
	return v, nil
}
