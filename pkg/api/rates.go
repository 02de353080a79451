package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/squarelake/paydesk/pkg/domain"
)

// ListBasePay fetches base-pay configuration rows, optionally by city.
func (c *Client) ListBasePay(ctx context.Context, city string, current, size int) (domain.Page[domain.BasePay], error) {
	params := pageParams(current, size)
	if city != "" {
		params.Set("city", city)
	}
	var page domain.Page[domain.BasePay]
	if err := c.get(ctx, "/api/base-pay?"+params.Encode(), &page); err != nil {
		return page, fmt.Errorf("api.ListBasePay: %w", err)
	}
	return page, nil
}

// SaveBasePay creates or replaces a base-pay row.
func (c *Client) SaveBasePay(ctx context.Context, row domain.BasePay) error {
	if err := c.post(ctx, "/api/base-pay", row, nil); err != nil {
		return fmt.Errorf("api.SaveBasePay: %w", err)
	}
	return nil
}

// ListInsuranceRates fetches social-insurance rate rows, optionally by city.
func (c *Client) ListInsuranceRates(ctx context.Context, city string, current, size int) (domain.Page[domain.InsuranceRate], error) {
	params := pageParams(current, size)
	if city != "" {
		params.Set("city", city)
	}
	var page domain.Page[domain.InsuranceRate]
	if err := c.get(ctx, "/api/insurance-rates?"+params.Encode(), &page); err != nil {
		return page, fmt.Errorf("api.ListInsuranceRates: %w", err)
	}
	return page, nil
}

// SaveInsuranceRate creates or replaces an insurance rate row.
func (c *Client) SaveInsuranceRate(ctx context.Context, row domain.InsuranceRate) error {
	if err := c.post(ctx, "/api/insurance-rates", row, nil); err != nil {
		return fmt.Errorf("api.SaveInsuranceRate: %w", err)
	}
	return nil
}

// ListFundRates fetches housing-fund rate rows, optionally by city.
func (c *Client) ListFundRates(ctx context.Context, city string, current, size int) (domain.Page[domain.HousingFundRate], error) {
	params := pageParams(current, size)
	if city != "" {
		params.Set("city", city)
	}
	var page domain.Page[domain.HousingFundRate]
	if err := c.get(ctx, "/api/fund-rates?"+params.Encode(), &page); err != nil {
		return page, fmt.Errorf("api.ListFundRates: %w", err)
	}
	return page, nil
}

// SaveFundRate creates or replaces a housing-fund rate row.
func (c *Client) SaveFundRate(ctx context.Context, row domain.HousingFundRate) error {
	if err := c.post(ctx, "/api/fund-rates", row, nil); err != nil {
		return fmt.Errorf("api.SaveFundRate: %w", err)
	}
	return nil
}

// DeleteRate removes a rate row of the given kind ("insurance" or "fund").
func (c *Client) DeleteRate(ctx context.Context, kind, id string) error {
	var path string
	switch kind {
	case "insurance":
		path = "/api/insurance-rates/" + url.PathEscape(id)
	case "fund":
		path = "/api/fund-rates/" + url.PathEscape(id)
	default:
		return fmt.Errorf("api.DeleteRate: unknown rate kind %q", kind)
	}
	if err := c.delete(ctx, path); err != nil {
		return fmt.Errorf("api.DeleteRate: %w", err)
	}
	return nil
}
