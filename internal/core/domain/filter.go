package domain

import "strings"

type TaskStatus string

const (
	TaskStatusLogged   TaskStatus = "logged"
	TaskStatusRunning  TaskStatus = "running"
	TaskStatusInvoiced TaskStatus = "invoiced"
	TaskStatusPaid     TaskStatus = "paid"
)

// StatusSet is the selection of status tokens used to widen a task listing.
type StatusSet []TaskStatus

// ParseStatusSet reads a comma separated selection such as "logged,running".
// Unknown tokens and duplicates are dropped.
func ParseStatusSet(csv string) StatusSet {
	var set StatusSet
	for _, part := range strings.Split(csv, ",") {
		status := TaskStatus(strings.ToLower(strings.TrimSpace(part)))
		switch status {
		case TaskStatusLogged, TaskStatusRunning, TaskStatusInvoiced, TaskStatusPaid:
			if !set.Has(status) {
				set = append(set, status)
			}
		}
	}
	return set
}

func (s StatusSet) Has(status TaskStatus) bool {
	for _, candidate := range s {
		if candidate == status {
			return true
		}
	}
	return false
}

// StatusClause names one predicate of the status group.
type StatusClause string

const (
	// ClauseNotInvoiced: invoice reference absent or zero.
	ClauseNotInvoiced StatusClause = "not_invoiced"
	// ClauseRunning: the task has an open interval.
	ClauseRunning StatusClause = "running"
	// ClauseInvoiced: invoice reference set.
	ClauseInvoiced StatusClause = "invoiced"
	// ClauseInvoicedUnpaid: invoice reference set and invoice balance above zero.
	ClauseInvoicedUnpaid StatusClause = "invoiced_unpaid"
	// ClausePaid: invoice balance equal to zero.
	ClausePaid StatusClause = "paid"
)

// Scope restricts a listing to an account and optionally to one client. Its fields are ANDed.
type Scope struct {
	AccountID      uint64
	ClientPublicID string
}

// FilterSpec describes a task listing over tasks joined with their client, the client's
// primary contact and the invoice. Soft-deleted clients and contacts exclude the task.
//
// Scope, the status group and the search are ANDed together. Clauses inside the status
// group are ORed, so selecting more statuses never narrows the result. An empty status
// group applies no status predicate at all.
type FilterSpec struct {
	Scope  Scope
	Status []StatusClause
	Search string
}

// BuildFilter assembles the listing filter for an account.
func BuildFilter(accountID uint64, clientPublicID string, statuses StatusSet, search string) FilterSpec {
	spec := FilterSpec{
		Scope: Scope{
			AccountID:      accountID,
			ClientPublicID: clientPublicID,
		},
		Search: search,
	}

	if statuses.Has(TaskStatusLogged) {
		spec.Status = append(spec.Status, ClauseNotInvoiced)
	}
	if statuses.Has(TaskStatusRunning) {
		spec.Status = append(spec.Status, ClauseRunning)
	}
	if statuses.Has(TaskStatusInvoiced) {
		// With paid selected as well, zero balance invoices come in through ClausePaid.
		if statuses.Has(TaskStatusPaid) {
			spec.Status = append(spec.Status, ClauseInvoiced)
		} else {
			spec.Status = append(spec.Status, ClauseInvoicedUnpaid)
		}
	}
	if statuses.Has(TaskStatusPaid) {
		spec.Status = append(spec.Status, ClausePaid)
	}

	return spec
}

func (f FilterSpec) HasStatusFilter() bool {
	return len(f.Status) > 0
}

func (f FilterSpec) HasSearch() bool {
	return f.Search != ""
}

// Matches evaluates the filter against a task and its joined client and invoice, either of which may be nil.
func (f FilterSpec) Matches(task Task, client *Client, invoice *Invoice) bool {
	if task.AccountID != f.Scope.AccountID {
		return false
	}

	var contact *Contact
	if client != nil {
		if client.DeletedAt != nil {
			return false
		}
		contact = primaryContact(client.Contacts)
		if contact != nil && contact.DeletedAt != nil {
			return false
		}
	}

	if f.Scope.ClientPublicID != "" && (client == nil || client.PublicID != f.Scope.ClientPublicID) {
		return false
	}

	if f.HasStatusFilter() && !f.matchesStatus(task, invoice) {
		return false
	}

	if f.HasSearch() && !f.matchesSearch(task, client, contact) {
		return false
	}

	return true
}

func (f FilterSpec) matchesStatus(task Task, invoice *Invoice) bool {
	invoiced := task.InvoiceID != nil && *task.InvoiceID > 0
	for _, clause := range f.Status {
		switch clause {
		case ClauseNotInvoiced:
			if !invoiced {
				return true
			}
		case ClauseRunning:
			if task.IsRunning {
				return true
			}
		case ClauseInvoiced:
			if invoiced {
				return true
			}
		case ClauseInvoicedUnpaid:
			if invoiced && invoice != nil && invoice.Balance > 0 {
				return true
			}
		case ClausePaid:
			if invoice != nil && invoice.Balance == 0 {
				return true
			}
		}
	}
	return false
}

func (f FilterSpec) matchesSearch(task Task, client *Client, contact *Contact) bool {
	candidates := []string{task.Description}
	if client != nil {
		candidates = append(candidates, client.Name)
	}
	if contact != nil {
		candidates = append(candidates, contact.FirstName, contact.LastName)
	}

	needle := strings.ToLower(f.Search)
	for _, candidate := range candidates {
		if strings.Contains(strings.ToLower(candidate), needle) {
			return true
		}
	}
	return false
}

func primaryContact(contacts []Contact) *Contact {
	for idx := range contacts {
		if contacts[idx].IsPrimary {
			return &contacts[idx]
		}
	}
	return nil
}
