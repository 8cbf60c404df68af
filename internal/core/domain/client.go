package domain

import "time"

type Client struct {
	ID        uint64
	PublicID  string
	AccountID uint64
	UserID    uint64
	Name      string
	DeletedAt *time.Time
	Contacts  []Contact
}

type Contact struct {
	ID        uint64
	ClientID  uint64
	IsPrimary bool
	FirstName string
	LastName  string
	Email     string
	DeletedAt *time.Time
}

type Invoice struct {
	ID              uint64
	PublicID        string
	AccountID       uint64
	UserID          uint64
	InvoiceNumber   string
	Balance         float64
	InvoiceStatusID uint64
}

// DisplayName resolves the client label from its name or its primary, non-deleted contact.
func (c Client) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	for _, contact := range c.Contacts {
		if contact.IsPrimary && contact.DeletedAt == nil {
			return ResolveClientName("", contact.FirstName, contact.LastName, contact.Email)
		}
	}
	return ""
}
