//go:build integration
// +build integration

package tests

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	dbadapter "tasktime/internal/adapter/db"
)

const seedAccountID = 1

type IntegrationSuiteBase struct {
	suite.Suite

	adminDB    *sqlx.DB
	DB         *sqlx.DB
	testDBName string
}

func (s *IntegrationSuiteBase) SetupSuite() {
	host := envOrDefault("MYSQL_HOST", "127.0.0.1")
	port := envOrDefault("MYSQL_PORT", "3306")
	rootUser := envOrDefault("MYSQL_ROOT_USER", "root")
	rootPassword := envOrDefault("MYSQL_ROOT_PASSWORD", "root")
	database := envOrDefault("MYSQL_TEST_DATABASE", envOrDefault("MYSQL_DATABASE", "tasktime")+"_test")
	params := envOrDefault("MYSQL_PARAMS", "parseTime=true&multiStatements=true")

	adminDB, err := sqlx.Connect("mysql", mysqlDSN(rootUser, rootPassword, host, port, "", params))
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to mysql: %v", err)
	}
	s.adminDB = adminDB

	_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", database))
	s.Require().NoError(err)

	db, err := sqlx.Connect("mysql", mysqlDSN(rootUser, rootPassword, host, port, database, params))
	s.Require().NoError(err)
	s.DB = db
	s.testDBName = database
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}

	if s.adminDB != nil && s.testDBName != "" && strings.HasSuffix(s.testDBName, "_test") {
		_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.testDBName))
		s.Require().NoError(err)
	}

	if s.adminDB != nil {
		s.Require().NoError(s.adminDB.Close())
	}
}

// ResetDatabase recreates the schema through the embedded migrations and loads the seed data.
func (s *IntegrationSuiteBase) ResetDatabase() {
	resetSchema(s.T(), s.DB)
	seedBillingData(s.T(), s.DB)
}

func resetSchema(t *testing.T, db *sqlx.DB) {
	t.Helper()

	_, err := db.Exec(`
DROP TABLE IF EXISTS tasks;
DROP TABLE IF EXISTS invoices;
DROP TABLE IF EXISTS contacts;
DROP TABLE IF EXISTS clients;
DROP TABLE IF EXISTS schema_migrations;
`)
	require.NoError(t, err)
	require.NoError(t, dbadapter.Migrate(context.Background(), db))
}

// seedBillingData loads, for account 1:
//   - client-acme (named), client-jane (unnamed, primary contact Jane Doe),
//     client-gone (soft deleted), client-ghost (primary contact soft deleted)
//   - inv-open (balance 120) and inv-paid (balance 0)
//   - task-logged, task-running, task-invoiced, task-paid, task-orphan (no client),
//     task-gone, task-ghost, task-deleted (soft deleted)
//   - task-other on account 2
func seedBillingData(t *testing.T, db *sqlx.DB) {
	t.Helper()

	_, err := db.Exec(`
INSERT INTO clients (id, public_id, account_id, user_id, name, deleted_at) VALUES
  (1, 'client-acme', 1, 1, 'Acme Corp', NULL),
  (2, 'client-jane', 1, 1, '', NULL),
  (3, 'client-gone', 1, 1, 'Gone Ltd', '2026-01-01 00:00:00'),
  (4, 'client-ghost', 1, 1, 'Ghost Inc', NULL),
  (5, 'client-other', 2, 9, 'Other Account', NULL);

INSERT INTO contacts (client_id, account_id, is_primary, first_name, last_name, email, deleted_at) VALUES
  (1, 1, 1, 'Wile', 'Coyote', 'wile@acme.test', NULL),
  (2, 1, 1, 'Jane', 'Doe', 'jane@doe.test', NULL),
  (2, 1, 0, 'Backup', 'Person', 'backup@doe.test', NULL),
  (4, 1, 1, 'Casper', 'Ghost', 'casper@ghost.test', '2026-01-01 00:00:00');

INSERT INTO invoices (id, public_id, account_id, user_id, invoice_number, balance, invoice_status_id) VALUES
  (1, 'inv-open', 1, 1, 'INV-0001', 120.00, 2),
  (2, 'inv-paid', 1, 1, 'INV-0002', 0.00, 4);

INSERT INTO tasks (public_id, account_id, user_id, client_id, invoice_id, description, is_running, time_log, is_deleted, deleted_at, created_at, updated_at) VALUES
  ('task-logged', 1, 1, 1, NULL, 'Design review', 0, '[[1000,1600]]', 0, NULL, NOW(), NOW()),
  ('task-running', 1, 1, 2, NULL, 'Bug triage', 1, '[[1000,1600],[2000,null]]', 0, NULL, NOW(), NOW()),
  ('task-invoiced', 1, 1, 1, 1, 'Invoiced work', 0, '[[1000,4600]]', 0, NULL, NOW(), NOW()),
  ('task-paid', 1, 1, 2, 2, 'Paid work', 0, '[[1000,2800]]', 0, NULL, NOW(), NOW()),
  ('task-orphan', 1, 1, NULL, NULL, 'Internal 100% effort', 0, '[]', 0, NULL, NOW(), NOW()),
  ('task-gone', 1, 1, 3, NULL, 'Deleted client work', 0, '[]', 0, NULL, NOW(), NOW()),
  ('task-ghost', 1, 1, 4, NULL, 'Deleted contact work', 0, '[]', 0, NULL, NOW(), NOW()),
  ('task-deleted', 1, 1, 1, NULL, 'Archived work', 0, '[[1000,1100]]', 1, '2026-01-02 00:00:00', NOW(), NOW()),
  ('task-other', 2, 9, 5, NULL, 'Other account work', 0, '[]', 0, NULL, NOW(), NOW());
`)
	require.NoError(t, err)
}

func mysqlDSN(user, password, host, port, database, params string) string {
	if database == "" {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/?%s", user, password, host, port, params)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, password, host, port, database, params)
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
