package domain

import (
	"time"

	"github.com/google/uuid"
)

// Company is a client company managed by the back office.
type Company struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	TaxNumber  string    `json:"tax_number"`
	Contact    string    `json:"contact,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Franchise  bool      `json:"franchise"`
	Employees  int       `json:"employees"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	DisabledAt time.Time `json:"disabled_at,omitzero"`
}

// User is a back-office or company account.
type User struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Role        Role      `json:"role"`
	CompanyID   string    `json:"company_id,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
