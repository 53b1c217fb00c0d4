package shared

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	BaseEntity
	Name string
}

func TestNewBaseEntity(t *testing.T) {
	a, b := NewBaseEntity(), NewBaseEntity()

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
	assert.Equal(t, "UTC", a.CreatedAt.Location().String())
	assert.NotNil(t, a.Permissions)
	assert.Empty(t, a.Permissions)
}

func TestEntityThroughEmbedding(t *testing.T) {
	r := &record{BaseEntity: NewBaseEntity(), Name: "x"}

	var e any = r
	got, ok := e.(Entity)
	require.True(t, ok)
	assert.Equal(t, r.ID, got.EntityID())
}
