package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is satisfied by every record type through its embedded BaseEntity.
type Entity interface {
	EntityID() string
}

// BaseEntity is the envelope every stored record carries. ID and the
// timestamps are assigned by the server; Permissions is an opaque ACL that
// is stored and returned untouched.
type BaseEntity struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"$id"`
	CreatedAt   time.Time `gorm:"not null;index" json:"$createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"$updatedAt"`
	Permissions []string  `gorm:"type:text;serializer:json" json:"$permissions"`
}

// NewBaseEntity assigns a fresh id and stamps both timestamps with the
// same UTC instant.
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:          uuid.NewString(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Permissions: []string{},
	}
}

func (e *BaseEntity) EntityID() string { return e.ID }
