// Package resource provides the create/list/get/update/delete use case
// shared by every entity collection.
package resource

import (
	"context"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/logger"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CreateRequest builds a new, not yet validated entity from a request body.
type CreateRequest[T any] interface {
	Entity() *T
}

// UpdateRequest turns a partial request body into the columns to write.
type UpdateRequest interface {
	Changes() (shared.Changes, error)
}

type validatable interface {
	Validate() error
}

// Service implements the generic CRUD flow over a repository.
type Service[T any] struct {
	repo shared.Repository[T]
	name string
}

// NewService creates a Service; name is used in log entries.
func NewService[T any](repo shared.Repository[T], name string) *Service[T] {
	return &Service[T]{repo: repo, name: name}
}

// Create validates entity and persists it. Nothing reaches the repository
// when validation fails.
func (s *Service[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if err := validate(entity); err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, s.name, "create")
	defer span.End()

	if err := s.repo.Create(ctx, entity); err != nil {
		telemetry.RecordError(span, err)
		return nil, s.logFailure(ctx, "create", err)
	}
	if e, ok := any(entity).(shared.Entity); ok {
		span.SetAttributes(telemetry.AttrRecordID.String(e.EntityID()))
	}
	return entity, nil
}

// List returns one page of records plus the total number of matches.
func (s *Service[T]) List(ctx context.Context, filter shared.Filter) (*shared.Page[T], error) {
	filter, err := filter.Normalize()
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, s.name, "list")
	defer span.End()

	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, s.logFailure(ctx, "list", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, s.logFailure(ctx, "count", err)
	}
	span.SetAttributes(telemetry.AttrResultCount.Int(len(items)))
	return &shared.Page[T]{Items: items, Total: total}, nil
}

// Get returns the record with the given id
func (s *Service[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := shared.RequireID(id); err != nil {
		return nil, err
	}
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.logFailure(ctx, "get", err)
	}
	return entity, nil
}

// Update writes the supplied columns and returns the stored record.
func (s *Service[T]) Update(ctx context.Context, id string, changes shared.Changes) (*T, error) {
	if err := shared.RequireID(id); err != nil {
		return nil, err
	}
	if changes.IsEmpty() {
		return nil, shared.NewValidationError("nothing to update")
	}

	ctx, span := telemetry.StartServiceSpan(ctx, s.name, "update", telemetry.AttrRecordID.String(id))
	defer span.End()

	if err := s.repo.Update(ctx, id, changes); err != nil {
		telemetry.RecordError(span, err)
		return nil, s.logFailure(ctx, "update", err)
	}
	return s.Get(ctx, id)
}

// Delete removes the record with the given id. Dependent records are left
// in place.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	if err := shared.RequireID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.logFailure(ctx, "delete", err)
	}
	return nil
}

// CreateFrom builds the entity from req and creates it.
func (s *Service[T]) CreateFrom(ctx context.Context, req CreateRequest[T]) (*T, error) {
	return s.Create(ctx, req.Entity())
}

// UpdateFrom converts req into changes and applies them. A missing id is
// reported before anything in the body is looked at.
func (s *Service[T]) UpdateFrom(ctx context.Context, id string, req UpdateRequest) (*T, error) {
	if err := shared.RequireID(id); err != nil {
		return nil, err
	}
	changes, err := req.Changes()
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, id, changes)
}

// First returns the newest record whose field equals value, or nil.
func (s *Service[T]) First(ctx context.Context, field string, value any) (*T, error) {
	filter := shared.DefaultFilter().Where(field, value)
	filter.Limit = 1
	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func validate(entity any) error {
	if v, ok := entity.(validatable); ok {
		return v.Validate()
	}
	return shared.Validate(entity)
}

// logFailure logs upstream failures; expected outcomes pass through quietly.
func (s *Service[T]) logFailure(ctx context.Context, op string, err error) error {
	if shared.CodeOf(err) == shared.CodeUpstream {
		logger.L(ctx).Error("Persistence call failed",
			zap.String("resource", s.name),
			zap.String("op", op),
			zap.Error(err),
		)
	}
	return err
}
