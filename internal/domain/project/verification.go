package project

import (
	"strings"
	"time"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
)

// VerificationStatus is the review state of a project
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationInReview VerificationStatus = "in_review"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Verification records a third-party review of a project
type Verification struct {
	shared.BaseEntity
	ProjectID          string              `gorm:"type:varchar(36);not null;index" json:"projectId" validate:"notblank"`
	VerificationStatus *VerificationStatus `gorm:"type:varchar(20);index" json:"verification_status" validate:"omitempty,oneof=pending in_review verified rejected"`
	VerifierName       *string             `gorm:"type:varchar(200)" json:"verifier_name"`
	VerifiedAt         *time.Time          `json:"verified_at"`
	Remarks            *string             `gorm:"type:text" json:"remarks"`
}

// TableName returns the table name for GORM
func (Verification) TableName() string {
	return "project_verification"
}

// NewVerification creates an empty verification record for a project
func NewVerification(projectID string) *Verification {
	return &Verification{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  strings.TrimSpace(projectID),
	}
}

// Validate checks required fields and the status value
func (v *Verification) Validate() error {
	return shared.Validate(v)
}

// ValidateStatus checks a verification status supplied on its own
func ValidateStatus(s VerificationStatus) error {
	return shared.ValidateValue("verification_status", string(s), "oneof=pending in_review verified rejected")
}
