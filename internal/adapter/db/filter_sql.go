package db

import (
	"fmt"
	"strings"

	"tasktime/internal/core/domain"
)

const taskListSelect = `
SELECT
  t.public_id,
  COALESCE(
    NULLIF(cl.name, ''),
    NULLIF(TRIM(CONCAT_WS(' ', co.first_name, co.last_name)), ''),
    NULLIF(co.email, ''),
    ''
  ) AS client_name,
  cl.public_id AS client_public_id,
  cl.user_id AS client_user_id,
  co.first_name,
  co.last_name,
  co.email,
  i.invoice_status_id,
  i.invoice_number,
  i.public_id AS invoice_public_id,
  i.user_id AS invoice_user_id,
  t.invoice_id,
  i.balance,
  t.description,
  t.is_deleted,
  t.deleted_at,
  t.is_running,
  t.time_log,
  t.created_at,
  t.user_id
FROM tasks t
LEFT JOIN clients cl ON cl.id = t.client_id
LEFT JOIN contacts co ON co.client_id = cl.id AND co.is_primary = 1
LEFT JOIN invoices i ON i.id = t.invoice_id`

var statusClauseSQL = map[domain.StatusClause]string{
	domain.ClauseNotInvoiced:    "(t.invoice_id IS NULL OR t.invoice_id = 0)",
	domain.ClauseRunning:        "t.is_running = 1",
	domain.ClauseInvoiced:       "t.invoice_id > 0",
	domain.ClauseInvoicedUnpaid: "(t.invoice_id > 0 AND i.balance > 0)",
	domain.ClausePaid:           "i.balance = 0",
}

var searchColumns = []string{"cl.name", "co.first_name", "co.last_name", "t.description"}

// compileFilter turns a filter spec into the task listing query and its arguments.
func compileFilter(spec domain.FilterSpec) (string, []any, error) {
	conditions := []string{
		"t.account_id = ?",
		"cl.deleted_at IS NULL",
		"co.deleted_at IS NULL",
	}
	args := []any{spec.Scope.AccountID}

	if spec.Scope.ClientPublicID != "" {
		conditions = append(conditions, "cl.public_id = ?")
		args = append(args, spec.Scope.ClientPublicID)
	}

	if spec.HasStatusFilter() {
		alternatives := make([]string, 0, len(spec.Status))
		for _, clause := range spec.Status {
			fragment, ok := statusClauseSQL[clause]
			if !ok {
				return "", nil, fmt.Errorf("unsupported status clause %q", clause)
			}
			alternatives = append(alternatives, fragment)
		}
		conditions = append(conditions, "("+strings.Join(alternatives, " OR ")+")")
	}

	if spec.HasSearch() {
		pattern := "%" + escapeLike(strings.ToLower(spec.Search)) + "%"
		alternatives := make([]string, 0, len(searchColumns))
		for _, column := range searchColumns {
			alternatives = append(alternatives, "LOWER("+column+") LIKE ?")
			args = append(args, pattern)
		}
		conditions = append(conditions, "("+strings.Join(alternatives, " OR ")+")")
	}

	query := taskListSelect + "\nWHERE " + strings.Join(conditions, "\n  AND ") + "\nORDER BY t.id"
	return query, args, nil
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}
