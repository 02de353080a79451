package domain

import "github.com/google/uuid"

// BasePay is a company's configured base-pay figure for payroll runs.
type BasePay struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   string    `json:"company_id"`
	City        string    `json:"city"`
	AmountCents int64     `json:"amount_cents"`
	EffectiveOn string    `json:"effective_on"` // YYYY-MM-DD
}

// InsuranceRate is a social-insurance contribution rate row for a city.
type InsuranceRate struct {
	ID             uuid.UUID `json:"id"`
	City           string    `json:"city"`
	Kind           string    `json:"kind"` // pension, medical, unemployment, injury, maternity
	EmployerPct    float64   `json:"employer_pct"`
	EmployeePct    float64   `json:"employee_pct"`
	BaseFloorCents int64     `json:"base_floor_cents"`
	BaseCapCents   int64     `json:"base_cap_cents"`
	EffectiveOn    string    `json:"effective_on"`
}

// HousingFundRate is a housing-fund contribution rate row for a city.
type HousingFundRate struct {
	ID             uuid.UUID `json:"id"`
	City           string    `json:"city"`
	EmployerPct    float64   `json:"employer_pct"`
	EmployeePct    float64   `json:"employee_pct"`
	BaseFloorCents int64     `json:"base_floor_cents"`
	BaseCapCents   int64     `json:"base_cap_cents"`
	EffectiveOn    string    `json:"effective_on"`
}
