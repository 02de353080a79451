package domain

import (
	"time"

	"github.com/google/uuid"
)

// Invoice is an uploaded invoice awaiting or past reconciliation.
type Invoice struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   string    `json:"company_id"`
	Number      string    `json:"number"`
	AmountCents int64     `json:"amount_cents"`
	IssuedAt    time.Time `json:"issued_at"`
	Status      string    `json:"status"`
	BatchID     string    `json:"batch_id,omitempty"`
}

// InvoiceQuota caps how much a company may invoice per period.
type InvoiceQuota struct {
	ID         uuid.UUID `json:"id"`
	CompanyID  string    `json:"company_id"`
	Period     string    `json:"period"` // e.g. "2026-08"
	LimitCents int64     `json:"limit_cents"`
	UsedCents  int64     `json:"used_cents"`
}

// ImportBatch is the server's record of one bulk workbook upload
// (employee import, invoice batch, non-invoiced-income batch).
type ImportBatch struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Filename  string    `json:"filename"`
	Rows      int       `json:"rows"`
	Accepted  int       `json:"accepted"`
	Rejected  int       `json:"rejected"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TaxSyncJob is one triggered synchronization run against the tax bureau.
type TaxSyncJob struct {
	ID         uuid.UUID `json:"id"`
	CompanyID  string    `json:"company_id,omitempty"`
	Period     string    `json:"period"`
	Status     string    `json:"status"`
	Message    string    `json:"message,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
}
