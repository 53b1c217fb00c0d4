package persistence

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"gorm.io/gorm"
)

// TableDef describes how list queries map onto one table.
type TableDef struct {
	// Resource names the entity in not-found and conflict messages.
	Resource string
	// FilterColumns maps public filter keys to column names. Keys outside
	// the map are ignored.
	FilterColumns map[string]string
	// SearchColumns are matched case-insensitively with OR when
	// Filter.Search is set. Empty means the table has no search.
	SearchColumns []string
	// SortFields whitelists Filter.OrderBy.
	SortFields SortWhitelist
}

// GormRepository implements shared.Repository[T] for any gorm model.
type GormRepository[T any] struct {
	db  *gorm.DB
	def TableDef
}

// NewGormRepository creates a GormRepository for T
func NewGormRepository[T any](db *gorm.DB, def TableDef) *GormRepository[T] {
	if def.SortFields == nil {
		def.SortFields = NewSortWhitelist()
	}
	return &GormRepository[T]{db: db, def: def}
}

// FindByID finds a record by its ID
func (r *GormRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(r.def.Resource, id)
		}
		return nil, r.translate("find", err)
	}
	return &entity, nil
}

// FindAll finds all records matching the filter
func (r *GormRepository[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	items := make([]T, 0)
	query := r.applyFilter(r.db.WithContext(ctx).Model(new(T)), filter)

	if err := query.Find(&items).Error; err != nil {
		return nil, r.translate("list", err)
	}
	return items, nil
}

// Count counts records matching the filter, ignoring pagination
func (r *GormRepository[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(new(T)), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, r.translate("count", err)
	}
	return count, nil
}

// Create inserts a new record
func (r *GormRepository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return r.translate("create", err)
	}
	return nil
}

// Update writes only the columns in changes and bumps updated_at.
func (r *GormRepository[T]) Update(ctx context.Context, id string, changes shared.Changes) error {
	values := make(map[string]any, len(changes)+1)
	for col, v := range changes {
		values[col] = v
	}
	values["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return r.translate("update", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(r.def.Resource, id)
	}
	return nil
}

// Delete removes a record by ID
func (r *GormRepository[T]) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return r.translate("delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(r.def.Resource, id)
	}
	return nil
}

// Exists reports whether any record matches column = value.
func (r *GormRepository[T]) Exists(ctx context.Context, column string, value any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(new(T)).
		Where(column+" = ?", value).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, r.translate("check", err)
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormRepository[T]) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	for _, term := range r.def.SortFields.OrderBy(filter.OrderBy, filter.OrderDir) {
		query = query.Order(term)
	}

	return query
}

// likeEscaper makes a search term match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applyFilterWithoutPagination applies search or equality filters.
// A search term replaces the structured filters entirely.
func (r *GormRepository[T]) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" && len(r.def.SearchColumns) > 0 {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		clauses := make([]string, len(r.def.SearchColumns))
		args := make([]any, len(r.def.SearchColumns))
		for i, col := range r.def.SearchColumns {
			clauses[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
			args[i] = pattern
		}
		return query.Where(strings.Join(clauses, " OR "), args...)
	}

	for _, key := range slices.Sorted(maps.Keys(filter.Filters)) {
		col, ok := r.def.FilterColumns[key]
		if !ok {
			continue
		}
		query = query.Where(col+" = ?", filter.Filters[key])
	}

	return query
}

// translate maps driver errors onto the domain taxonomy.
func (r *GormRepository[T]) translate(op string, err error) error {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &shared.DomainError{
			Code:    shared.CodeConflict,
			Message: fmt.Sprintf("%s already exists", r.def.Resource),
			Err:     err,
		}
	}
	return shared.NewUpstreamError(fmt.Sprintf("failed to %s %s", op, r.def.Resource), err)
}
