package domain

import (
	"strings"
	"time"
)

type Task struct {
	ID          uint64
	PublicID    string
	AccountID   uint64
	UserID      uint64
	ClientID    *uint64
	InvoiceID   *uint64
	Description string
	IsRunning   bool
	TimeLog     TimeLog
	IsDeleted   bool
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Session carries the caller identity and the status filter selected for task listings.
type Session struct {
	AccountID    uint64
	UserID       uint64
	StatusFilter StatusSet
}

// SavePayload holds the optional fields accepted by a task save. Nil means "not supplied".
type SavePayload struct {
	Client      *string
	Description *string
	TimeLog     *TimeLog
	Action      Action
}

// TaskRow is a task joined with its client, primary contact and invoice.
type TaskRow struct {
	PublicID         string     `db:"public_id"`
	ClientName       string     `db:"client_name"`
	ClientPublicID   *string    `db:"client_public_id"`
	ClientUserID     *uint64    `db:"client_user_id"`
	ContactFirstName *string    `db:"first_name"`
	ContactLastName  *string    `db:"last_name"`
	ContactEmail     *string    `db:"email"`
	InvoiceStatusID  *uint64    `db:"invoice_status_id"`
	InvoiceNumber    *string    `db:"invoice_number"`
	InvoicePublicID  *string    `db:"invoice_public_id"`
	InvoiceUserID    *uint64    `db:"invoice_user_id"`
	InvoiceID        *uint64    `db:"invoice_id"`
	Balance          *float64   `db:"balance"`
	Description      string     `db:"description"`
	IsDeleted        bool       `db:"is_deleted"`
	DeletedAt        *time.Time `db:"deleted_at"`
	IsRunning        bool       `db:"is_running"`
	TimeLog          TimeLog    `db:"time_log"`
	CreatedAt        time.Time  `db:"created_at"`
	UserID           uint64     `db:"user_id"`
}

// Status derives the single billing status shown for the row.
func (r TaskRow) Status() TaskStatus {
	switch {
	case r.IsRunning:
		return TaskStatusRunning
	case r.hasInvoice() && r.Balance != nil && *r.Balance == 0:
		return TaskStatusPaid
	case r.hasInvoice():
		return TaskStatusInvoiced
	default:
		return TaskStatusLogged
	}
}

func (r TaskRow) hasInvoice() bool {
	return r.InvoiceID != nil && *r.InvoiceID > 0
}

// ResolveClientName picks the client name, then the contact full name, then the contact email.
func ResolveClientName(clientName, firstName, lastName, email string) string {
	if clientName != "" {
		return clientName
	}
	if fullName := strings.TrimSpace(firstName + " " + lastName); fullName != "" {
		return fullName
	}
	return email
}
