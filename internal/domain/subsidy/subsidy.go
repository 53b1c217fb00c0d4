package subsidy

import (
	"strings"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
)

// Status is the lifecycle state of a subsidy program
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusClosed   Status = "closed"
	StatusUpcoming Status = "upcoming"
)

// Subsidy is a government incentive program. IncentiveDetails is kept in
// its serialized form and decoded on the way out through View.
type Subsidy struct {
	shared.BaseEntity
	Name             string  `gorm:"type:varchar(200);not null" json:"name" validate:"notblank"`
	Country          string  `gorm:"type:varchar(100);not null;index" json:"country" validate:"notblank"`
	ProgramType      *string `gorm:"type:varchar(100);index" json:"program_type"`
	Status           *Status `gorm:"type:varchar(20);index" json:"status" validate:"omitempty,oneof=active inactive closed upcoming"`
	Description      *string `gorm:"type:text" json:"description"`
	IncentiveDetails *string `gorm:"type:text" json:"incentiveDetails"`
}

// TableName returns the table name for GORM
func (Subsidy) TableName() string {
	return "subsidies"
}

// NewSubsidy creates a subsidy program
func NewSubsidy(name, country string) *Subsidy {
	return &Subsidy{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Country:    strings.TrimSpace(country),
	}
}

// Validate checks required fields and that any incentive payload decodes
func (s *Subsidy) Validate() error {
	if err := shared.Validate(s); err != nil {
		return err
	}
	if s.IncentiveDetails != nil {
		if _, err := ParseIncentiveDetails(*s.IncentiveDetails); err != nil {
			return shared.NewValidationError("incentiveDetails must be a JSON object")
		}
	}
	return nil
}

// View is the API representation of a subsidy with decoded incentives
type View struct {
	shared.BaseEntity
	Name             string            `json:"name"`
	Country          string            `json:"country"`
	ProgramType      *string           `json:"program_type"`
	Status           *Status           `json:"status"`
	Description      *string           `json:"description"`
	IncentiveDetails *IncentiveDetails `json:"incentiveDetails"`
}

// View decodes the stored incentive payload. A payload that cannot be
// decoded yields a MalformedData error naming the record.
func (s *Subsidy) View() (*View, error) {
	var details *IncentiveDetails
	if s.IncentiveDetails != nil {
		d, err := ParseIncentiveDetails(*s.IncentiveDetails)
		if err != nil {
			return nil, shared.NewMalformedDataError("subsidy "+s.ID+" has malformed incentiveDetails", err)
		}
		details = d
	}
	return &View{
		BaseEntity:       s.BaseEntity,
		Name:             s.Name,
		Country:          s.Country,
		ProgramType:      s.ProgramType,
		Status:           s.Status,
		Description:      s.Description,
		IncentiveDetails: details,
	}, nil
}

// ValidateStatus checks a status supplied on its own
func ValidateStatus(s Status) error {
	return shared.ValidateValue("status", string(s), "oneof=active inactive closed upcoming")
}
