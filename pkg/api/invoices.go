package api

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/squarelake/paydesk/pkg/domain"
)

// ListInvoices fetches a page of invoices, optionally scoped to a company.
func (c *Client) ListInvoices(ctx context.Context, companyID string, current, size int) (domain.Page[domain.Invoice], error) {
	params := pageParams(current, size)
	if companyID != "" {
		params.Set("company_id", companyID)
	}
	var page domain.Page[domain.Invoice]
	if err := c.get(ctx, "/api/invoices?"+params.Encode(), &page); err != nil {
		return page, fmt.Errorf("api.ListInvoices: %w", err)
	}
	return page, nil
}

// UploadInvoiceBatch uploads an invoice workbook for reconciliation.
func (c *Client) UploadInvoiceBatch(ctx context.Context, filename string, r io.Reader) (*domain.ImportBatch, error) {
	var batch domain.ImportBatch
	if err := c.Upload(ctx, "/api/invoices/batches", "file", filename, r, nil, &batch); err != nil {
		return nil, fmt.Errorf("api.UploadInvoiceBatch: %w", err)
	}
	return &batch, nil
}

// UploadNonInvoicedBatch uploads a non-invoiced-income workbook.
func (c *Client) UploadNonInvoicedBatch(ctx context.Context, filename string, r io.Reader) (*domain.ImportBatch, error) {
	var batch domain.ImportBatch
	if err := c.Upload(ctx, "/api/non-invoiced/batches", "file", filename, r, nil, &batch); err != nil {
		return nil, fmt.Errorf("api.UploadNonInvoicedBatch: %w", err)
	}
	return &batch, nil
}

// ListImportBatches returns recent bulk-upload batches of the given kind.
func (c *Client) ListImportBatches(ctx context.Context, kind string, current, size int) (domain.Page[domain.ImportBatch], error) {
	params := pageParams(current, size)
	if kind != "" {
		params.Set("kind", kind)
	}
	var page domain.Page[domain.ImportBatch]
	if err := c.get(ctx, "/api/import-batches?"+params.Encode(), &page); err != nil {
		return page, fmt.Errorf("api.ListImportBatches: %w", err)
	}
	return page, nil
}

// QuotaRequest is the payload for creating or updating an invoice quota.
type QuotaRequest struct {
	CompanyID  string `json:"company_id"`
	Period     string `json:"period"`
	LimitCents int64  `json:"limit_cents"`
}

// ListQuotas fetches a page of invoice quotas.
func (c *Client) ListQuotas(ctx context.Context, companyID string, current, size int) (domain.Page[domain.InvoiceQuota], error) {
	params := pageParams(current, size)
	if companyID != "" {
		params.Set("company_id", companyID)
	}
	var page domain.Page[domain.InvoiceQuota]
	if err := c.get(ctx, "/api/invoice-quotas?"+params.Encode(), &page); err != nil {
		return page, fmt.Errorf("api.ListQuotas: %w", err)
	}
	return page, nil
}

// CreateQuota creates an invoice quota.
func (c *Client) CreateQuota(ctx context.Context, req QuotaRequest) (*domain.InvoiceQuota, error) {
	var created domain.InvoiceQuota
	if err := c.post(ctx, "/api/invoice-quotas", req, &created); err != nil {
		return nil, fmt.Errorf("api.CreateQuota: %w", err)
	}
	return &created, nil
}

// UpdateQuota updates an invoice quota.
func (c *Client) UpdateQuota(ctx context.Context, id string, req QuotaRequest) error {
	if err := c.put(ctx, "/api/invoice-quotas/"+url.PathEscape(id), req, nil); err != nil {
		return fmt.Errorf("api.UpdateQuota: %w", err)
	}
	return nil
}

// DeleteQuota removes an invoice quota.
func (c *Client) DeleteQuota(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/api/invoice-quotas/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("api.DeleteQuota: %w", err)
	}
	return nil
}

// TriggerTaxSync starts a tax-bureau synchronization run for a period,
// optionally scoped to one company.
func (c *Client) TriggerTaxSync(ctx context.Context, period, companyID string) (*domain.TaxSyncJob, error) {
	var job domain.TaxSyncJob
	payload := map[string]string{"period": period}
	if companyID != "" {
		payload["company_id"] = companyID
	}
	if err := c.post(ctx, "/api/tax/sync", payload, &job); err != nil {
		return nil, fmt.Errorf("api.TriggerTaxSync: %w", err)
	}
	return &job, nil
}

// ListTaxSyncJobs returns recent tax synchronization runs.
func (c *Client) ListTaxSyncJobs(ctx context.Context, current, size int) (domain.Page[domain.TaxSyncJob], error) {
	params := pageParams(current, size)
	var page domain.Page[domain.TaxSyncJob]
	if err := c.get(ctx, "/api/tax/sync/jobs?"+params.Encode(), &page); err != nil {
		return page, fmt.Errorf("api.ListTaxSyncJobs: %w", err)
	}
	return page, nil
}

// UploadTaxReport uploads a tax workbook for a period.
func (c *Client) UploadTaxReport(ctx context.Context, period, filename string, r io.Reader) (*domain.ImportBatch, error) {
	var batch domain.ImportBatch
	extra := map[string]string{"period": period}
	if err := c.Upload(ctx, "/api/tax/reports", "file", filename, r, extra, &batch); err != nil {
		return nil, fmt.Errorf("api.UploadTaxReport: %w", err)
	}
	return &batch, nil
}
