package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/squarelake/paydesk/pkg/domain"
)

// UserRequest is the payload for creating or updating an account.
type UserRequest struct {
	Username    string      `json:"username"`
	DisplayName string      `json:"display_name"`
	Role        domain.Role `json:"role"`
	CompanyID   string      `json:"company_id,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Password    string      `json:"password,omitempty"` // create only
}

// ListUsers fetches a page of company-side accounts.
func (c *Client) ListUsers(ctx context.Context, query string, current, size int) (domain.Page[domain.User], error) {
	params := pageParams(current, size)
	if query != "" {
		params.Set("q", query)
	}
	var page domain.Page[domain.User]
	if err := c.get(ctx, "/api/users?"+params.Encode(), &page); err != nil {
		return page, fmt.Errorf("api.ListUsers: %w", err)
	}
	return page, nil
}

// CreateUser creates an account.
func (c *Client) CreateUser(ctx context.Context, req UserRequest) (*domain.User, error) {
	var created domain.User
	if err := c.post(ctx, "/api/users", req, &created); err != nil {
		return nil, fmt.Errorf("api.CreateUser: %w", err)
	}
	return &created, nil
}

// UpdateUser updates an account.
func (c *Client) UpdateUser(ctx context.Context, id string, req UserRequest) error {
	if err := c.put(ctx, "/api/users/"+url.PathEscape(id), req, nil); err != nil {
		return fmt.Errorf("api.UpdateUser: %w", err)
	}
	return nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/api/users/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("api.DeleteUser: %w", err)
	}
	return nil
}

// ListServiceUsers fetches a page of customer-service accounts. These live
// on a separate endpoint because only admins may manage them.
func (c *Client) ListServiceUsers(ctx context.Context, current, size int) (domain.Page[domain.User], error) {
	params := pageParams(current, size)
	var page domain.Page[domain.User]
	if err := c.get(ctx, "/api/service-users?"+params.Encode(), &page); err != nil {
		return page, fmt.Errorf("api.ListServiceUsers: %w", err)
	}
	return page, nil
}

// CreateServiceUser creates a customer-service account.
func (c *Client) CreateServiceUser(ctx context.Context, req UserRequest) (*domain.User, error) {
	var created domain.User
	if err := c.post(ctx, "/api/service-users", req, &created); err != nil {
		return nil, fmt.Errorf("api.CreateServiceUser: %w", err)
	}
	return &created, nil
}

// DeleteServiceUser removes a customer-service account.
func (c *Client) DeleteServiceUser(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/api/service-users/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("api.DeleteServiceUser: %w", err)
	}
	return nil
}
