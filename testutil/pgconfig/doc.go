// Package pgconfig provides PostgreSQL connections for sqlspy integration tests.
//
// The tests run against the database named by SQLSPY_TEST_POSTGRES_DSN and are skipped when it is
// not set. Every factory opens its handle through spydb, so the connections are traced, and
// configures the pool like a small production service.
package pgconfig
