package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ticket statuses as the backend reports them.
const (
	TicketOpen     = "OPEN"
	TicketPending  = "PENDING"
	TicketResolved = "RESOLVED"
	TicketClosed   = "CLOSED"
)

// ServiceTicket is a customer-service request raised by a company.
type ServiceTicket struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   string    `json:"company_id"`
	CompanyName string    `json:"company_name"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	Category    string    `json:"category,omitempty"`
	Status      string    `json:"status"`
	AssigneeID  string    `json:"assignee_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TicketReply is a single message in a ticket's thread.
type TicketReply struct {
	ID        uuid.UUID `json:"id"`
	TicketID  uuid.UUID `json:"ticket_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Internal  bool      `json:"internal"`
	CreatedAt time.Time `json:"created_at"`
}

// Attachment is a file attached to a ticket.
type Attachment struct {
	ID       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	URL      string    `json:"url"`
}

// DashboardStats is the back-office summary shown on the dashboard.
type DashboardStats struct {
	OpenTickets     int `json:"open_tickets"`
	PendingTickets  int `json:"pending_tickets"`
	ResolvedToday   int `json:"resolved_today"`
	ActiveCompanies int `json:"active_companies"`
	PendingInvoices int `json:"pending_invoices"`
}
