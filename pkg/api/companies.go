package api

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/squarelake/paydesk/pkg/domain"
)

// CompanyRequest is the payload for creating or updating a company.
type CompanyRequest struct {
	Name      string `json:"name"`
	TaxNumber string `json:"tax_number"`
	Contact   string `json:"contact,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Franchise bool   `json:"franchise"`
}

// pageParams builds the standard current/size query (1-based page).
func pageParams(current, size int) url.Values {
	params := url.Values{}
	params.Set("current", strconv.Itoa(current))
	params.Set("size", strconv.Itoa(size))
	return params
}

// ListCompanies fetches a page of companies, optionally filtered by a
// search query.
func (c *Client) ListCompanies(ctx context.Context, query string, current, size int) (domain.Page[domain.Company], error) {
	params := pageParams(current, size)
	if query != "" {
		params.Set("q", query)
	}
	var page domain.Page[domain.Company]
	if err := c.get(ctx, "/api/companies?"+params.Encode(), &page); err != nil {
		return page, fmt.Errorf("api.ListCompanies: %w", err)
	}
	return page, nil
}

// CreateCompany creates a new company.
func (c *Client) CreateCompany(ctx context.Context, req CompanyRequest) (*domain.Company, error) {
	var created domain.Company
	if err := c.post(ctx, "/api/companies", req, &created); err != nil {
		return nil, fmt.Errorf("api.CreateCompany: %w", err)
	}
	return &created, nil
}

// UpdateCompany updates an existing company.
func (c *Client) UpdateCompany(ctx context.Context, id string, req CompanyRequest) error {
	if err := c.put(ctx, "/api/companies/"+url.PathEscape(id), req, nil); err != nil {
		return fmt.Errorf("api.UpdateCompany: %w", err)
	}
	return nil
}

// DisableCompany disables a company. Companies are never hard-deleted.
func (c *Client) DisableCompany(ctx context.Context, id string) error {
	if err := c.post(ctx, "/api/companies/"+url.PathEscape(id)+"/disable", nil, nil); err != nil {
		return fmt.Errorf("api.DisableCompany: %w", err)
	}
	return nil
}

// ImportEmployees bulk-imports employees for a company from a workbook.
func (c *Client) ImportEmployees(ctx context.Context, companyID, filename string, r io.Reader) (*domain.ImportBatch, error) {
	var batch domain.ImportBatch
	extra := map[string]string{"company_id": companyID}
	if err := c.Upload(ctx, "/api/companies/"+url.PathEscape(companyID)+"/employees/import", "file", filename, r, extra, &batch); err != nil {
		return nil, fmt.Errorf("api.ImportEmployees: %w", err)
	}
	return &batch, nil
}
