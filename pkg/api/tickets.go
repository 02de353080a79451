package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/squarelake/paydesk/pkg/domain"
)

// ListTickets fetches a page of customer-service tickets, optionally
// filtered by search query and status.
func (c *Client) ListTickets(ctx context.Context, query, status string, current, size int) (domain.Page[domain.ServiceTicket], error) {
	params := pageParams(current, size)
	if query != "" {
		params.Set("q", query)
	}
	if status != "" {
		params.Set("status", status)
	}
	var page domain.Page[domain.ServiceTicket]
	if err := c.get(ctx, "/api/tickets?"+params.Encode(), &page); err != nil {
		return page, fmt.Errorf("api.ListTickets: %w", err)
	}
	return page, nil
}

// GetTicket fetches a single ticket by ID.
func (c *Client) GetTicket(ctx context.Context, id string) (*domain.ServiceTicket, error) {
	var t domain.ServiceTicket
	if err := c.get(ctx, "/api/tickets/"+url.PathEscape(id), &t); err != nil {
		return nil, fmt.Errorf("api.GetTicket: %w", err)
	}
	return &t, nil
}

// ListReplies returns a ticket's reply thread.
func (c *Client) ListReplies(ctx context.Context, ticketID string) ([]domain.TicketReply, error) {
	var replies []domain.TicketReply
	if err := c.get(ctx, "/api/tickets/"+url.PathEscape(ticketID)+"/replies", &replies); err != nil {
		return nil, fmt.Errorf("api.ListReplies: %w", err)
	}
	return replies, nil
}

// ReplyTicket posts a reply to a ticket. Internal replies are visible to
// back-office staff only.
func (c *Client) ReplyTicket(ctx context.Context, ticketID, body string, internal bool) (*domain.TicketReply, error) {
	var reply domain.TicketReply
	payload := map[string]any{"body": body, "internal": internal}
	if err := c.post(ctx, "/api/tickets/"+url.PathEscape(ticketID)+"/replies", payload, &reply); err != nil {
		return nil, fmt.Errorf("api.ReplyTicket: %w", err)
	}
	return &reply, nil
}

// SetTicketStatus moves a ticket to a new status.
func (c *Client) SetTicketStatus(ctx context.Context, ticketID, status string) error {
	payload := map[string]string{"status": status}
	if err := c.put(ctx, "/api/tickets/"+url.PathEscape(ticketID)+"/status", payload, nil); err != nil {
		return fmt.Errorf("api.SetTicketStatus: %w", err)
	}
	return nil
}

// ListAttachments returns a ticket's attachments.
func (c *Client) ListAttachments(ctx context.Context, ticketID string) ([]domain.Attachment, error) {
	var atts []domain.Attachment
	if err := c.get(ctx, "/api/tickets/"+url.PathEscape(ticketID)+"/attachments", &atts); err != nil {
		return nil, fmt.Errorf("api.ListAttachments: %w", err)
	}
	return atts, nil
}

// Stats returns the back-office dashboard summary.
func (c *Client) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.get(ctx, "/api/stats", &stats); err != nil {
		return nil, fmt.Errorf("api.Stats: %w", err)
	}
	return &stats, nil
}
