package company

import (
	"github.com/Graviton17/TrustChain-sub001/internal/domain/company"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateProfileRequest represents a request to register a company profile
type CreateProfileRequest struct {
	UserID            string        `json:"userId"`
	CompanyName       string        `json:"company_name"`
	CompanyType       *string       `json:"company_type"`
	CompanySize       *company.Size `json:"company_size"`
	IncorporationYear *int          `json:"incorporation_year"`
	Country           *string       `json:"country"`
	State             *string       `json:"state"`
	Website           *string       `json:"website"`
	Description       *string       `json:"description"`
}

// Entity builds the profile; optional fields stay nil when absent
func (r CreateProfileRequest) Entity() *company.Profile {
	p := company.NewProfile(r.UserID, r.CompanyName)
	p.CompanyType = r.CompanyType
	p.CompanySize = r.CompanySize
	p.IncorporationYear = r.IncorporationYear
	p.Country = r.Country
	p.State = r.State
	p.Website = r.Website
	p.Description = r.Description
	return p
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	UserID            *string       `json:"userId"`
	CompanyName       *string       `json:"company_name"`
	CompanyType       *string       `json:"company_type"`
	CompanySize       *company.Size `json:"company_size"`
	IncorporationYear *int          `json:"incorporation_year"`
	Country           *string       `json:"country"`
	State             *string       `json:"state"`
	Website           *string       `json:"website"`
	Description       *string       `json:"description"`
}

// Changes returns the columns present in the request
func (r UpdateProfileRequest) Changes() (shared.Changes, error) {
	c := shared.Changes{}
	if err := shared.SetRequiredString(c, "userId", "user_id", r.UserID); err != nil {
		return nil, err
	}
	if err := shared.SetRequiredString(c, "company_name", "company_name", r.CompanyName); err != nil {
		return nil, err
	}
	if r.CompanySize != nil {
		if err := company.ValidateSize(*r.CompanySize); err != nil {
			return nil, err
		}
	}
	shared.SetIfPresent(c, "company_type", r.CompanyType)
	shared.SetIfPresent(c, "company_size", r.CompanySize)
	shared.SetIfPresent(c, "incorporation_year", r.IncorporationYear)
	shared.SetIfPresent(c, "country", r.Country)
	shared.SetIfPresent(c, "state", r.State)
	shared.SetIfPresent(c, "website", r.Website)
	shared.SetIfPresent(c, "description", r.Description)
	return c, nil
}

// CreateContactsRequest represents a request to add company contacts
type CreateContactsRequest struct {
	CompanyID      string  `json:"companyId"`
	ContactPerson  *string `json:"contact_person"`
	ContactEmail   *string `json:"contact_email"`
	ContactPhone   *string `json:"contact_phone"`
	AlternatePhone *string `json:"alternate_phone"`
	Address        *string `json:"address"`
}

// Entity builds the contacts record
func (r CreateContactsRequest) Entity() *company.Contacts {
	c := company.NewContacts(r.CompanyID)
	c.ContactPerson = r.ContactPerson
	c.ContactEmail = r.ContactEmail
	c.ContactPhone = r.ContactPhone
	c.AlternatePhone = r.AlternatePhone
	c.Address = r.Address
	return c
}

// UpdateContactsRequest represents a partial contacts update
type UpdateContactsRequest struct {
	CompanyID      *string `json:"companyId"`
	ContactPerson  *string `json:"contact_person"`
	ContactEmail   *string `json:"contact_email"`
	ContactPhone   *string `json:"contact_phone"`
	AlternatePhone *string `json:"alternate_phone"`
	Address        *string `json:"address"`
}

// Changes returns the columns present in the request
func (r UpdateContactsRequest) Changes() (shared.Changes, error) {
	c := shared.Changes{}
	if err := shared.SetRequiredString(c, "companyId", "company_id", r.CompanyID); err != nil {
		return nil, err
	}
	shared.SetIfPresent(c, "contact_person", r.ContactPerson)
	shared.SetIfPresent(c, "contact_email", r.ContactEmail)
	shared.SetIfPresent(c, "contact_phone", r.ContactPhone)
	shared.SetIfPresent(c, "alternate_phone", r.AlternatePhone)
	shared.SetIfPresent(c, "address", r.Address)
	return c, nil
}

// CreateFinancialsRequest represents a request to record company financials
type CreateFinancialsRequest struct {
	CompanyID     string           `json:"companyId"`
	AnnualRevenue *decimal.Decimal `json:"annual_revenue"`
	NetWorth      *decimal.Decimal `json:"net_worth"`
	CreditRating  *string          `json:"credit_rating"`
	SuccessRate   *float64         `json:"success_rate"`
}

// Entity builds the financials record
func (r CreateFinancialsRequest) Entity() *company.Financials {
	f := company.NewFinancials(r.CompanyID)
	f.AnnualRevenue = r.AnnualRevenue
	f.NetWorth = r.NetWorth
	f.CreditRating = r.CreditRating
	f.SuccessRate = r.SuccessRate
	return f
}

// UpdateFinancialsRequest represents a partial financials update
type UpdateFinancialsRequest struct {
	CompanyID     *string          `json:"companyId"`
	AnnualRevenue *decimal.Decimal `json:"annual_revenue"`
	NetWorth      *decimal.Decimal `json:"net_worth"`
	CreditRating  *string          `json:"credit_rating"`
	SuccessRate   *float64         `json:"success_rate"`
}

// Changes returns the columns present in the request
func (r UpdateFinancialsRequest) Changes() (shared.Changes, error) {
	c := shared.Changes{}
	if err := shared.SetRequiredString(c, "companyId", "company_id", r.CompanyID); err != nil {
		return nil, err
	}
	shared.SetIfPresent(c, "annual_revenue", r.AnnualRevenue)
	shared.SetIfPresent(c, "net_worth", r.NetWorth)
	shared.SetIfPresent(c, "credit_rating", r.CreditRating)
	shared.SetIfPresent(c, "success_rate", r.SuccessRate)
	return c, nil
}

// CreateOperationsRequest represents a request to record company operations
type CreateOperationsRequest struct {
	CompanyID          string  `json:"companyId"`
	EmployeeCount      *int    `json:"employee_count"`
	OperationalAddress *string `json:"operational_address"`
	BusinessActivities *string `json:"business_activities"`
}

// Entity builds the operations record
func (r CreateOperationsRequest) Entity() *company.Operations {
	o := company.NewOperations(r.CompanyID)
	o.EmployeeCount = r.EmployeeCount
	o.OperationalAddress = r.OperationalAddress
	o.BusinessActivities = r.BusinessActivities
	return o
}

// UpdateOperationsRequest represents a partial operations update
type UpdateOperationsRequest struct {
	CompanyID          *string `json:"companyId"`
	EmployeeCount      *int    `json:"employee_count"`
	OperationalAddress *string `json:"operational_address"`
	BusinessActivities *string `json:"business_activities"`
}

// Changes returns the columns present in the request
func (r UpdateOperationsRequest) Changes() (shared.Changes, error) {
	c := shared.Changes{}
	if err := shared.SetRequiredString(c, "companyId", "company_id", r.CompanyID); err != nil {
		return nil, err
	}
	shared.SetIfPresent(c, "employee_count", r.EmployeeCount)
	shared.SetIfPresent(c, "operational_address", r.OperationalAddress)
	shared.SetIfPresent(c, "business_activities", r.BusinessActivities)
	return c, nil
}
