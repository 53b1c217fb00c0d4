package persistence

import (
	"github.com/Graviton17/TrustChain-sub001/internal/domain/company"
	"gorm.io/gorm"
)

// GormCompanyProfileRepository implements company.ProfileRepository
type GormCompanyProfileRepository struct {
	*GormRepository[company.Profile]
}

// NewGormCompanyProfileRepository creates a new GormCompanyProfileRepository
func NewGormCompanyProfileRepository(db *gorm.DB) *GormCompanyProfileRepository {
	return &GormCompanyProfileRepository{NewGormRepository[company.Profile](db, TableDef{
		Resource: "company profile",
		FilterColumns: map[string]string{
			"userId":       "user_id",
			"company_type": "company_type",
			"company_size": "company_size",
			"country":      "country",
			"state":        "state",
		},
		SortFields: NewSortWhitelist("company_name", "incorporation_year"),
	})}
}

// GormCompanyContactsRepository implements company.ContactsRepository
type GormCompanyContactsRepository struct {
	*GormRepository[company.Contacts]
}

// NewGormCompanyContactsRepository creates a new GormCompanyContactsRepository
func NewGormCompanyContactsRepository(db *gorm.DB) *GormCompanyContactsRepository {
	return &GormCompanyContactsRepository{NewGormRepository[company.Contacts](db, TableDef{
		Resource:      "company contacts",
		FilterColumns: map[string]string{"companyId": "company_id"},
	})}
}

// GormCompanyFinancialsRepository implements company.FinancialsRepository
type GormCompanyFinancialsRepository struct {
	*GormRepository[company.Financials]
}

// NewGormCompanyFinancialsRepository creates a new GormCompanyFinancialsRepository
func NewGormCompanyFinancialsRepository(db *gorm.DB) *GormCompanyFinancialsRepository {
	return &GormCompanyFinancialsRepository{NewGormRepository[company.Financials](db, TableDef{
		Resource: "company financials",
		FilterColumns: map[string]string{
			"companyId":     "company_id",
			"credit_rating": "credit_rating",
		},
		SortFields: NewSortWhitelist("annual_revenue", "net_worth"),
	})}
}

// GormCompanyOperationsRepository implements company.OperationsRepository
type GormCompanyOperationsRepository struct {
	*GormRepository[company.Operations]
}

// NewGormCompanyOperationsRepository creates a new GormCompanyOperationsRepository
func NewGormCompanyOperationsRepository(db *gorm.DB) *GormCompanyOperationsRepository {
	return &GormCompanyOperationsRepository{NewGormRepository[company.Operations](db, TableDef{
		Resource:      "company operations",
		FilterColumns: map[string]string{"companyId": "company_id"},
		SortFields:    NewSortWhitelist("employee_count"),
	})}
}

var (
	_ company.ProfileRepository    = (*GormCompanyProfileRepository)(nil)
	_ company.ContactsRepository   = (*GormCompanyContactsRepository)(nil)
	_ company.FinancialsRepository = (*GormCompanyFinancialsRepository)(nil)
	_ company.OperationsRepository = (*GormCompanyOperationsRepository)(nil)
)
